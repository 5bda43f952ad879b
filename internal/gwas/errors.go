package gwas

import "fmt"

// BadInputError reports a caller-supplied coded allele that is not an
// allele of the requested variant.
type BadInputError struct {
	Allele  string
	Variant *Variant
}

func (e *BadInputError) Error() string {
	return fmt.Sprintf("coded allele %q is not an allele of variant %s", e.Allele, e.Variant)
}

// RetrievalError reports a failure to retrieve lines from an indexed
// summary-statistics file (missing file or index, subprocess failure).
type RetrievalError struct {
	File string
	Err  error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieving records from %s: %v", e.File, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// NotFoundError reports that a requested variant has no record in a
// summary-statistics file. This is an expected outcome, not a defect.
type NotFoundError struct {
	Variant *Variant
	File    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("variant %s not found in %s", e.Variant, e.File)
}

// AmbiguousMatchError reports more than one record for the same variant
// in a single file, which signals a data-quality problem in the source.
type AmbiguousMatchError struct {
	Variant *Variant
	File    string
	Count   int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("variant %s has %d entries in %s", e.Variant, e.Count, e.File)
}

// UndefinedFlipError reports an attempt to harmonize a record whose
// component has an effect type that cannot be flipped. This indicates a
// component configuration defect and should abort the run.
type UndefinedFlipError struct {
	EffectType EffectType
}

func (e *UndefinedFlipError) Error() string {
	return fmt.Sprintf("cannot flip coded allele for effect type %q", string(e.EffectType))
}

// ParseError reports a malformed summary-statistics line. Parse errors
// are per-line: the stream that produced one can keep yielding records.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("summary stats parse error at line %d: %s", e.Line, e.Message)
}
