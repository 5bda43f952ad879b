package gwas

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/statgen/sumstats/internal/tabix"
)

// OpenStream opens a line stream over the given indexed file, restricted
// to a region expression of the form "chrom:start-end".
type OpenStream func(file, region string) (LineStream, error)

// Engine answers region and single-variant queries against component
// summary-statistics files. Queries are independent: the engine holds no
// per-query state and one engine may serve any number of components.
type Engine struct {
	open   OpenStream
	logger *zap.Logger
}

// NewEngine creates an engine that retrieves lines through the tabix
// subprocess.
func NewEngine() *Engine {
	return &Engine{
		open: func(file, region string) (LineStream, error) {
			return tabix.NewRegionStream(file, region)
		},
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for skipped-line reporting.
func (e *Engine) SetLogger(l *zap.Logger) {
	e.logger = l
}

// SetStreamOpener replaces the line-stream opener. Tests use this to
// query against fake line streams without any file or subprocess.
func (e *Engine) SetStreamOpener(open OpenStream) {
	e.open = open
}

// RegionStats returns a lazy stream of all records the component has in
// the region, in the file's native coded-allele orientation. The caller
// owns the stream and must Close it, including on early termination.
func (e *Engine) RegionStats(c *Component, region string) (*RecordStream, error) {
	lines, err := e.open(c.FormattedFile, region)
	if err != nil {
		return nil, &RetrievalError{File: c.FormattedFile, Err: err}
	}
	return NewRecordStream(lines), nil
}

// VariantStats returns the component's single record for the variant,
// harmonized so that its effect is reported for codedAllele.
//
// Zero matching lines is a *NotFoundError, more than one a
// *AmbiguousMatchError; duplicate entries are never resolved by picking
// the first. Malformed lines are skipped and logged, never fatal.
func (e *Engine) VariantStats(c *Component, v *Variant, codedAllele string) (*AssociationStat, error) {
	codedAllele = strings.ToUpper(codedAllele)
	if !v.HasAllele(codedAllele) {
		return nil, &BadInputError{Allele: codedAllele, Variant: v}
	}

	stream, err := e.RegionStats(c, v.Region())
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var matches []*AssociationStat
	for {
		stat, err := stream.Next()
		if err != nil {
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, &RetrievalError{File: c.FormattedFile, Err: err}
		}
		if stat == nil {
			break
		}
		if stat.Variant.Equal(v) {
			matches = append(matches, stat)
		}
	}

	if skipped := stream.Skipped(); skipped > 0 {
		e.logger.Warn("skipped malformed summary-statistics lines",
			zap.String("file", c.FormattedFile),
			zap.Int("lines", skipped))
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Variant: v, File: c.FormattedFile}
	case 1:
		return Harmonize(matches[0], codedAllele, c.EffectType)
	default:
		return nil, &AmbiguousMatchError{Variant: v, File: c.FormattedFile, Count: len(matches)}
	}
}
