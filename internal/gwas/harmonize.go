package gwas

import "strings"

// Harmonize re-expresses stat so that its coded allele equals codedAllele,
// flipping the effect according to effectType when needed. The record is
// modified in place and also returned for convenience.
//
// A codedAllele that is not one of the variant's alleles is a
// *BadInputError. Harmonizing a record to its current coded allele is a
// no-op.
func Harmonize(stat *AssociationStat, codedAllele string, effectType EffectType) (*AssociationStat, error) {
	codedAllele = strings.ToUpper(codedAllele)

	if !stat.Variant.HasAllele(codedAllele) {
		return nil, &BadInputError{Allele: codedAllele, Variant: stat.Variant}
	}

	if stat.CodedAlleleString() == codedAllele {
		return stat, nil
	}

	if err := stat.FlipCodedAllele(effectType); err != nil {
		return nil, err
	}
	return stat, nil
}
