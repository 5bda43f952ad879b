package gwas

import (
	"fmt"
	"strconv"
	"strings"
)

// Region is a contiguous genomic interval on one chromosome, 1-based and
// inclusive on both ends.
type Region struct {
	Chrom string
	Start uint32
	End   uint32
}

// ParseRegion parses a region expression of the form "chrom:start-end",
// the syntax consumed by tabix.
func ParseRegion(input string) (*Region, error) {
	input = strings.TrimSpace(input)

	chrom, span, ok := strings.Cut(input, ":")
	if !ok || chrom == "" {
		return nil, fmt.Errorf("cannot parse region %q (expected chrom:start-end)", input)
	}

	startStr, endStr, ok := strings.Cut(span, "-")
	if !ok {
		return nil, fmt.Errorf("cannot parse region %q (expected chrom:start-end)", input)
	}

	start, err := strconv.ParseUint(startStr, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid region start in %q", input)
	}
	end, err := strconv.ParseUint(endStr, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid region end in %q", input)
	}
	if end < start {
		return nil, fmt.Errorf("region end before start in %q", input)
	}

	return &Region{Chrom: chrom, Start: uint32(start), End: uint32(end)}, nil
}

func (r *Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}
