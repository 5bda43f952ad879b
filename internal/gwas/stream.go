package gwas

// LineStream is a lazy, forward-only source of summary-statistics lines.
// Next returns io.EOF-free semantics: ("", false, nil) signals a clean end
// of stream; a non-nil error is terminal. Close must release the
// underlying resources and is safe to call at any point, including before
// the stream is drained.
type LineStream interface {
	Next() (line string, ok bool, err error)
	Close() error
}

// RecordStream lazily parses association records from a LineStream.
// It is single-pass and not restartable; the caller controls how many
// records are pulled and must Close the stream when done.
type RecordStream struct {
	lines   LineStream
	lineNum int
	skipped int
}

// NewRecordStream wraps a line stream. The caller keeps ownership of
// nothing: closing the record stream closes the line stream.
func NewRecordStream(lines LineStream) *RecordStream {
	return &RecordStream{lines: lines}
}

// Next returns the next association record. A *ParseError is per-line:
// the stream remains usable and the skipped-line counter is incremented.
// Any other error is terminal. Returns nil, nil at end of stream.
func (s *RecordStream) Next() (*AssociationStat, error) {
	line, ok, err := s.lines.Next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	s.lineNum++

	stat, err := ParseLine(line, s.lineNum)
	if err != nil {
		s.skipped++
		return nil, err
	}
	return stat, nil
}

// Skipped returns the number of lines dropped due to parse errors so far.
func (s *RecordStream) Skipped() int {
	return s.skipped
}

// Close releases the underlying line source (file handle or subprocess).
func (s *RecordStream) Close() error {
	return s.lines.Close()
}
