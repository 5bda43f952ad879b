// Package output provides result serialization for extracted association
// records.
package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/statgen/sumstats/internal/gwas"
)

// CSVWriter writes association records as CSV rows, one record per row,
// tagged with the dataset and trait they came from.
type CSVWriter struct {
	w *csv.Writer
}

var columns = []string{
	"dataset",
	"trait",
	"name",
	"chrom",
	"pos",
	"coded_allele",
	"other_allele",
	"effect",
	"se",
	"p",
}

// NewCSVWriter creates a writer emitting to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the column header row.
func (cw *CSVWriter) WriteHeader() error {
	return cw.w.Write(columns)
}

// Write writes a single record.
func (cw *CSVWriter) Write(dataset, trait string, stat *gwas.AssociationStat) error {
	return cw.w.Write([]string{
		dataset,
		trait,
		stat.Variant.Name,
		stat.Variant.Chrom,
		strconv.FormatUint(uint64(stat.Variant.Pos), 10),
		stat.CodedAlleleString(),
		stat.ReferenceAlleleString(),
		formatFloat(stat.Effect),
		formatFloat(stat.SE),
		formatFloat(stat.P),
	})
}

// Flush flushes buffered rows and reports any write error.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
