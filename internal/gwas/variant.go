// Package gwas provides the variant and association-record model for GWAS
// summary statistics, along with the query and harmonization engine.
package gwas

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Variant represents a single genomic variant from a summary-statistics file.
// Alleles are stored uppercased; their order carries no meaning.
type Variant struct {
	Name    string    // variant identifier (e.g., rs ID), may be empty
	Chrom   string    // chromosome name (e.g., "3", "chr3")
	Pos     uint32    // 1-based genomic position
	Alleles [2]string // unordered allele pair, uppercase
}

// NewVariant creates a Variant with the alleles normalized to uppercase.
func NewVariant(name, chrom string, pos uint32, a1, a2 string) *Variant {
	return &Variant{
		Name:    name,
		Chrom:   chrom,
		Pos:     pos,
		Alleles: [2]string{strings.ToUpper(a1), strings.ToUpper(a2)},
	}
}

// Equal reports whether two variants describe the same physical variant:
// same chromosome and position, and the same allele set in any order.
// The name is not part of variant identity.
func (v *Variant) Equal(o *Variant) bool {
	if v.Chrom != o.Chrom || v.Pos != o.Pos {
		return false
	}
	if v.Alleles[0] == o.Alleles[0] && v.Alleles[1] == o.Alleles[1] {
		return true
	}
	return v.Alleles[0] == o.Alleles[1] && v.Alleles[1] == o.Alleles[0]
}

// HasAllele reports whether allele is one of the variant's two alleles.
// The comparison is case-insensitive.
func (v *Variant) HasAllele(allele string) bool {
	allele = strings.ToUpper(allele)
	return v.Alleles[0] == allele || v.Alleles[1] == allele
}

// OtherAllele returns the allele opposite to the given one.
// The given allele must be one of the variant's alleles.
func (v *Variant) OtherAllele(allele string) string {
	if strings.ToUpper(allele) == v.Alleles[0] {
		return v.Alleles[1]
	}
	return v.Alleles[0]
}

// Region returns the single-position region expression covering this
// variant, in the form consumed by tabix ("chrom:pos-pos").
func (v *Variant) Region() string {
	return fmt.Sprintf("%s:%d-%d", v.Chrom, v.Pos, v.Pos)
}

func (v *Variant) String() string {
	return fmt.Sprintf("%s:%d %s/%s", v.Chrom, v.Pos, v.Alleles[0], v.Alleles[1])
}

// Variant spec: chr3:12345:G/C  or  3:12345:G:C  (optional "chr" prefix).
var reVariantSpec = regexp.MustCompile(`^(chr)?(\w+):(\d+):([ACGTNacgtn]+)[/:]([ACGTNacgtn]+)$`)

// ParseSpec parses a variant specification of the form "chrom:pos:A1/A2"
// into a Variant. The leading "chr" prefix is kept as part of the
// chromosome name so that it matches the file's own naming.
func ParseSpec(input string) (*Variant, error) {
	input = strings.TrimSpace(input)
	m := reVariantSpec.FindStringSubmatch(input)
	if m == nil {
		return nil, fmt.Errorf("cannot parse variant specification %q (expected chrom:pos:A1/A2)", input)
	}

	pos, err := strconv.ParseUint(m[3], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid position in variant specification %q", input)
	}

	return NewVariant("", m[1]+m[2], uint32(pos), m[4], m[5]), nil
}
