package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"billkit/internal/domain"
	"billkit/internal/totals"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row.
var columns = []string{
	"Verification ID",
	"Kind",
	"Document Number",
	"Billed To",
	"Place of Supply",
	"Status",
	"Claimed Total",
	"Recomputed Total",
	"Difference",
	"Errors",
	"Warnings",
	"Archived",
	"Created At",
}

// Columns returns a copy of the export header row.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Writer wraps csv.Writer for exporting verification records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteVerifications converts a batch of records to CSV rows and writes them.
func (w *Writer) WriteVerifications(records []domain.Verification) error {
	for i := range records {
		if err := w.csv.Write(verificationToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// verificationToRow converts a single record to one string per column.
func verificationToRow(v *domain.Verification) []string {
	diff := v.ClaimedTotal.Sub(v.RecomputedTotal)
	return []string{
		v.ID.String(),
		string(v.Kind),
		v.DocumentNumber,
		v.BilledTo,
		v.PlaceOfSupply,
		string(v.Status),
		totals.Round2(v.ClaimedTotal).StringFixed(2),
		totals.Round2(v.RecomputedTotal).StringFixed(2),
		totals.Round2(diff).StringFixed(2),
		strconv.Itoa(v.ErrorCount),
		strconv.Itoa(v.WarningCount),
		formatBool(v.HasSnapshot()),
		v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition.
// Format: {sanitized_name}_{YYYY-MM-DD}.{format}
func BuildFilename(name string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), format)
}
