package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"billkit/internal/domain"
)

func sampleVerification() domain.Verification {
	return domain.Verification{
		ID:              uuid.MustParse("7d3f0b7e-44a8-4a52-9c2b-5b0c6e1f2a10"),
		Kind:            domain.KindInvoice,
		DocumentNumber:  "INV-0042",
		BilledTo:        "Acme Retail",
		PlaceOfSupply:   "Delhi",
		Status:          domain.ValidationStatusInvalid,
		ClaimedTotal:    decimal.RequireFromString("11700"),
		RecomputedTotal: decimal.RequireFromString("11800"),
		ErrorCount:      2,
		WarningCount:    1,
		SnapshotKey:     "verifications/t/7d3f.json",
		CreatedAt:       time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)
	assert.Equal(t, Columns(), row)
	assert.Equal(t, "Verification ID", row[0])
	assert.Equal(t, "Created At", row[len(row)-1])
}

func TestWriteVerifications(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteVerifications([]domain.Verification{sampleVerification()}))
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)
	require.Len(t, row, len(columns))
	assert.Equal(t, "invoice", row[1])
	assert.Equal(t, "INV-0042", row[2])
	assert.Equal(t, "invalid", row[5])
	assert.Equal(t, "11700.00", row[6])
	assert.Equal(t, "11800.00", row[7])
	assert.Equal(t, "-100.00", row[8])
	assert.Equal(t, "2", row[9])
	assert.Equal(t, "Yes", row[11])
	assert.Equal(t, "2024-03-01T10:30:00Z", row[12])
}

func TestWriteVerifications_NoSnapshot(t *testing.T) {
	v := sampleVerification()
	v.SnapshotKey = ""
	assert.Equal(t, "No", verificationToRow(&v)[11])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, []domain.Verification{sampleVerification()}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Verification ID", rows[0][0])
	assert.Equal(t, "INV-0042", rows[1][2])

	claimed, err := f.GetCellValue(SheetName, "G2")
	require.NoError(t, err)
	assert.Equal(t, "11700", claimed)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Q1_2024_invoices", SanitizeFilename("Q1 2024 / invoices!"))
	assert.Equal(t, "verifications", SanitizeFilename("__verifications__"))
	long := SanitizeFilename(string(bytes.Repeat([]byte("a"), 150)))
	assert.Len(t, long, 100)
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "verifications_2024-03-01.csv", BuildFilename("verifications", domain.ExportFormatCSV, now))
	assert.Equal(t, "verifications_2024-03-01.xlsx", BuildFilename("verifications", domain.ExportFormatXLSX, now))
}
