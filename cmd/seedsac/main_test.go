package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"billkit/internal/domain"
)

func newWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	return f
}

func TestParseSheet(t *testing.T) {
	f := newWorkbook(t, [][]interface{}{
		{"Category", "SAC", "Description"},
		{"Graphics", "998313", "IT design"},
		{"", "998314", "orphan code"},
		{"Printing", "", "missing code"},
		{" Printing ", " 998912 ", " Printing services "},
		{"Graphics", "998314", "corrected"},
	})

	codes, err := parseSheet(f, "")
	require.NoError(t, err)

	assert.Equal(t, []domain.SACCode{
		{Category: "Graphics", Code: "998314", Description: "corrected"},
		{Category: "Printing", Code: "998912", Description: "Printing services"},
	}, codes)
}

func TestParseSheet_MissingSheet(t *testing.T) {
	f := newWorkbook(t, nil)

	_, err := parseSheet(f, "Nope")
	assert.Error(t, err)
}

func TestWriteSQL(t *testing.T) {
	var b strings.Builder
	err := writeSQL(&b, []domain.SACCode{
		{Category: "Studio on Rent", Code: "997212", Description: "Owner's premises"},
		{Category: "Printing", Code: "998912"},
	})
	require.NoError(t, err)

	sql := b.String()
	assert.Contains(t, sql, "-- 2 categories.")
	assert.Contains(t, sql, "('Studio on Rent', '997212', 'Owner''s premises'),\n  ('Printing', '998912', '')")
	assert.Contains(t, sql, "ON CONFLICT (category) DO UPDATE")
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}

func TestWriteSQL_Empty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, writeSQL(&b, nil))
	assert.NotContains(t, b.String(), "INSERT")
}
