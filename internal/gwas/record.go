package gwas

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// CodedAllele indicates which element of the variant's allele pair the
// effect size is reported for.
type CodedAllele int

const (
	A1Coded CodedAllele = iota
	A2Coded
)

func (c CodedAllele) String() string {
	if c == A1Coded {
		return "A1Coded"
	}
	return "A2Coded"
}

// EffectType describes the scale of a component's effect estimates.
// OR and HR are stored as ratios (the file reports the exponentiated
// value); Beta is a linear effect.
type EffectType string

const (
	EffectBeta  EffectType = "Beta"
	EffectOR    EffectType = "OR"
	EffectHR    EffectType = "HR"
	EffectOther EffectType = "Other"
)

// UnmarshalYAML decodes and validates an effect type from a manifest.
func (e *EffectType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch EffectType(s) {
	case EffectBeta, EffectOR, EffectHR, EffectOther:
		*e = EffectType(s)
		return nil
	}
	return fmt.Errorf("unknown effect type %q (expected Beta, OR, HR or Other)", s)
}

// Sex describes the sex stratum of a component's analysis.
type Sex string

const (
	SexBoth   Sex = "Both"
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

func (s *Sex) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch Sex(raw) {
	case SexBoth, SexMale, SexFemale:
		*s = Sex(raw)
		return nil
	}
	return fmt.Errorf("unknown sex %q (expected Male, Female or Both)", raw)
}

// Population describes the ancestry of a component's analysis.
type Population string

const (
	PopulationEUR   Population = "EUR"
	PopulationAIS   Population = "AIS"
	PopulationAFR   Population = "AFR"
	PopulationTRANS Population = "TRANS"
)

func (p *Population) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch Population(raw) {
	case PopulationEUR, PopulationAIS, PopulationAFR, PopulationTRANS:
		*p = Population(raw)
		return nil
	}
	return fmt.Errorf("unknown population %q (expected EUR, AIS, AFR or TRANS)", raw)
}

// AssociationStat is one genetic-association record: the effect of the
// coded allele on a trait, with its standard error and p-value.
type AssociationStat struct {
	Variant     *Variant
	CodedAllele CodedAllele
	Effect      float32
	SE          float32
	P           float32
}

// CodedAlleleString returns the allele the effect is currently reported for.
func (s *AssociationStat) CodedAlleleString() string {
	if s.CodedAllele == A1Coded {
		return s.Variant.Alleles[0]
	}
	return s.Variant.Alleles[1]
}

// ReferenceAlleleString returns the non-coded allele.
func (s *AssociationStat) ReferenceAlleleString() string {
	if s.CodedAllele == A1Coded {
		return s.Variant.Alleles[1]
	}
	return s.Variant.Alleles[0]
}

// FlipCodedAllele re-expresses the effect with respect to the other allele.
// Beta effects are negated; OR and HR effects go through the log scale
// (exp(-ln(x)), the reciprocal ratio). Flipping an Other effect type is
// undefined and returns an UndefinedFlipError.
func (s *AssociationStat) FlipCodedAllele(effectType EffectType) error {
	switch effectType {
	case EffectOR, EffectHR:
		beta := -math.Log(float64(s.Effect))
		s.Effect = float32(math.Exp(beta))
	case EffectBeta:
		s.Effect = -s.Effect
	default:
		return &UndefinedFlipError{EffectType: effectType}
	}

	if s.CodedAllele == A1Coded {
		s.CodedAllele = A2Coded
	} else {
		s.CodedAllele = A1Coded
	}
	return nil
}
