package gwas

import (
	"fmt"
	"strconv"
	"strings"
)

// Summary-statistics files have a fixed 8-column layout.
const (
	colName = iota
	colChrom
	colPos
	colOtherAllele
	colCodedAllele
	colEffect
	colSE
	colP

	numColumns
)

// ParseLine parses one tab-separated summary-statistics line into an
// AssociationStat. The coded-allele slot is resolved by comparing the
// coded-allele column against the variant's allele set, not by column
// position. lineNum is used for error reporting only.
func ParseLine(line string, lineNum int) (*AssociationStat, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < numColumns {
		return nil, &ParseError{
			Line:    lineNum,
			Message: fmt.Sprintf("expected %d columns, found %d", numColumns, len(fields)),
		}
	}

	pos, err := strconv.ParseUint(fields[colPos], 10, 32)
	if err != nil {
		return nil, &ParseError{
			Line:    lineNum,
			Message: fmt.Sprintf("invalid position: %s", fields[colPos]),
		}
	}

	otherAllele := strings.ToUpper(fields[colOtherAllele])
	codedAllele := strings.ToUpper(fields[colCodedAllele])

	v := NewVariant(fields[colName], fields[colChrom], uint32(pos), otherAllele, codedAllele)

	slot := A2Coded
	if codedAllele == v.Alleles[0] {
		slot = A1Coded
	}

	effect, err := parseFloatColumn(fields[colEffect], "effect", lineNum)
	if err != nil {
		return nil, err
	}
	se, err := parseFloatColumn(fields[colSE], "standard error", lineNum)
	if err != nil {
		return nil, err
	}
	p, err := parseFloatColumn(fields[colP], "p-value", lineNum)
	if err != nil {
		return nil, err
	}

	return &AssociationStat{
		Variant:     v,
		CodedAllele: slot,
		Effect:      effect,
		SE:          se,
		P:           p,
	}, nil
}

func parseFloatColumn(s, what string, lineNum int) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, &ParseError{
			Line:    lineNum,
			Message: fmt.Sprintf("invalid %s: %s", what, s),
		}
	}
	return float32(f), nil
}
