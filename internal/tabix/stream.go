// Package tabix streams lines from tabix-indexed summary-statistics
// files, either through the external tabix executable for region queries
// or by reading the whole file directly.
package tabix

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultExecutable is the tabix binary resolved through PATH.
const DefaultExecutable = "tabix"

// Stream is a lazy, forward-only line source. It owns the underlying
// subprocess or file handle; Close releases it deterministically and is
// required even when the stream is not fully drained.
type Stream struct {
	reader *bufio.Reader

	// region mode
	cmd    *exec.Cmd
	stdout io.ReadCloser
	waited bool

	// whole-file mode
	file       *os.File
	gzipReader *gzip.Reader

	closed bool
}

// Option configures a region stream.
type Option func(*config)

type config struct {
	executable string
}

// WithExecutable overrides the tabix binary used for region retrieval.
func WithExecutable(path string) Option {
	return func(c *config) {
		if path != "" {
			c.executable = path
		}
	}
}

// NewRegionStream invokes tabix over the indexed file and streams the
// lines covering the region ("chrom:start-end"). A missing file or a
// failure to launch the subprocess is reported here, before any line is
// yielded; a nonzero tabix exit after partial output is reported by the
// Next call that observes the end of the pipe.
func NewRegionStream(file, region string, opts ...Option) (*Stream, error) {
	cfg := config{executable: DefaultExecutable}
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("stat summary stats file: %w", err)
	}

	cmd := exec.Command(cfg.executable, file, region)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe tabix stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start tabix: %w", err)
	}

	return &Stream{
		reader: bufio.NewReader(stdout),
		cmd:    cmd,
		stdout: stdout,
	}, nil
}

// NewFileStream reads a summary-statistics file from the start, skipping
// the single header line. Gzip-compressed files (including bgzip output)
// are detected by their magic bytes and decompressed transparently.
func NewFileStream(path string) (*Stream, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open summary stats file: %w", err)
	}

	s := &Stream{file: file}

	magic := make([]byte, 2)
	if _, err := io.ReadFull(file, magic); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		file.Close()
		return nil, fmt.Errorf("read summary stats file: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek summary stats file: %w", err)
	}

	if magic[0] == 0x1f && magic[1] == 0x8b {
		s.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		s.reader = bufio.NewReader(s.gzipReader)
	} else {
		s.reader = bufio.NewReader(file)
	}

	// Discard the header line. The columns are fixed by the format, so
	// the header carries no information for parsing.
	if _, _, err := s.Next(); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// Next returns the next line without its trailing newline. ok is false at
// the end of the stream. In region mode the tabix exit status is checked
// once the pipe is exhausted, so a subprocess that died mid-stream
// surfaces as an error rather than a clean end.
func (s *Stream) Next() (line string, ok bool, err error) {
	for {
		line, err = s.reader.ReadString('\n')
		if err == io.EOF {
			if line != "" {
				// Final line without trailing newline.
				return strings.TrimRight(line, "\r"), true, nil
			}
			if err := s.finish(); err != nil {
				return "", false, err
			}
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("read line: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		return line, true, nil
	}
}

// finish reaps the subprocess after its output is exhausted and reports
// a nonzero exit status.
func (s *Stream) finish() error {
	if s.cmd == nil || s.waited {
		return nil
	}
	s.waited = true
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("tabix: %w", err)
	}
	return nil
}

// Close releases the subprocess or file handle. It is safe to call more
// than once and after the stream is drained. Closing an undrained region
// stream kills the subprocess so that it is always reaped.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.cmd != nil {
		if !s.waited {
			s.stdout.Close()
			if s.cmd.Process != nil {
				s.cmd.Process.Kill()
			}
			s.waited = true
			s.cmd.Wait()
		}
		return nil
	}

	if s.gzipReader != nil {
		s.gzipReader.Close()
	}
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
