package tabix

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsHeader = "name\tchrom\tpos\tother_allele\tcoded_allele\teffect\tse\tp\n"

// writeFakeTabix installs a shell script standing in for the tabix binary.
func writeFakeTabix(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tabix")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func writeStatsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.formatted.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func drain(t *testing.T, s *Stream) ([]string, error) {
	t.Helper()
	var lines []string
	for {
		line, ok, err := s.Next()
		if err != nil {
			return lines, err
		}
		if !ok {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

func TestRegionStream_YieldsSubprocessOutput(t *testing.T) {
	file := writeStatsFile(t, statsHeader)
	fake := writeFakeTabix(t, `printf 'rs1\t3\t100\tG\tC\t0.5\t0.1\t0.02\nrs2\t3\t200\tA\tT\t0.1\t0.1\t0.5\n'`)

	s, err := NewRegionStream(file, "3:1-1000", WithExecutable(fake))
	require.NoError(t, err)
	defer s.Close()

	lines, err := drain(t, s)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "rs1\t3\t100\tG\tC\t0.5\t0.1\t0.02", lines[0])
}

func TestRegionStream_PassesFileAndRegion(t *testing.T) {
	file := writeStatsFile(t, statsHeader)
	fake := writeFakeTabix(t, `printf '%s\n%s\n' "$1" "$2"`)

	s, err := NewRegionStream(file, "3:12345-12345", WithExecutable(fake))
	require.NoError(t, err)
	defer s.Close()

	lines, err := drain(t, s)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, file, lines[0])
	assert.Equal(t, "3:12345-12345", lines[1])
}

func TestRegionStream_MissingFile(t *testing.T) {
	fake := writeFakeTabix(t, `exit 0`)

	_, err := NewRegionStream(filepath.Join(t.TempDir(), "nope.tsv.gz"), "3:1-2", WithExecutable(fake))
	assert.Error(t, err)
}

func TestRegionStream_NonzeroExitSurfacesAfterDrain(t *testing.T) {
	file := writeStatsFile(t, statsHeader)
	fake := writeFakeTabix(t, "printf 'rs1\\t3\\t100\\tG\\tC\\t0.5\\t0.1\\t0.02\\n'\nexit 1")

	s, err := NewRegionStream(file, "3:1-1000", WithExecutable(fake))
	require.NoError(t, err)
	defer s.Close()

	lines, err := drain(t, s)
	assert.Len(t, lines, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tabix")
}

func TestRegionStream_EmptyOutput(t *testing.T) {
	file := writeStatsFile(t, statsHeader)
	fake := writeFakeTabix(t, `exit 0`)

	s, err := NewRegionStream(file, "3:1-1000", WithExecutable(fake))
	require.NoError(t, err)
	defer s.Close()

	lines, err := drain(t, s)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRegionStream_CloseWithoutDraining(t *testing.T) {
	file := writeStatsFile(t, statsHeader)
	// A subprocess that would outlive the test unless Close reaps it.
	fake := writeFakeTabix(t, `exec sleep 60`)

	s, err := NewRegionStream(file, "3:1-1000", WithExecutable(fake))
	require.NoError(t, err)

	require.NoError(t, s.Close())
	// Close is idempotent.
	require.NoError(t, s.Close())
}

func TestFileStream_SkipsHeader(t *testing.T) {
	file := writeStatsFile(t, statsHeader+
		"rs1\t3\t100\tG\tC\t0.5\t0.1\t0.02\n"+
		"rs2\t3\t200\tA\tT\t0.1\t0.1\t0.5\n")

	s, err := NewFileStream(file)
	require.NoError(t, err)
	defer s.Close()

	lines, err := drain(t, s)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "rs1\t3\t100\tG\tC\t0.5\t0.1\t0.02", lines[0])
	assert.Equal(t, "rs2\t3\t200\tA\tT\t0.1\t0.1\t0.5", lines[1])
}

func TestFileStream_HeaderOnlyFileIsEmpty(t *testing.T) {
	s, err := NewFileStream(writeStatsFile(t, statsHeader))
	require.NoError(t, err)
	defer s.Close()

	lines, err := drain(t, s)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestFileStream_FinalLineWithoutNewline(t *testing.T) {
	s, err := NewFileStream(writeStatsFile(t, statsHeader+"rs1\t3\t100\tG\tC\t0.5\t0.1\t0.02"))
	require.NoError(t, err)
	defer s.Close()

	lines, err := drain(t, s)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "rs1\t3\t100\tG\tC\t0.5\t0.1\t0.02", lines[0])
}

func TestFileStream_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.formatted.tsv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)

	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(statsHeader + "rs1\t3\t100\tG\tC\t0.5\t0.1\t0.02\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	s, err := NewFileStream(path)
	require.NoError(t, err)
	defer s.Close()

	lines, err := drain(t, s)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "rs1\t3\t100\tG\tC\t0.5\t0.1\t0.02", lines[0])
}

func TestFileStream_MissingFile(t *testing.T) {
	_, err := NewFileStream(filepath.Join(t.TempDir(), "missing.tsv"))
	assert.Error(t, err)
}
