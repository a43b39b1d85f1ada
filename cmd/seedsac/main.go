// Command seedsac loads the service-category to SAC mapping from an Excel
// workbook. By default it writes a SQL seed file; with -apply it upserts the
// rows straight into the sac_codes table.
//
// The sheet is read from its first row down. Columns: A=category, B=SAC code,
// C=description. Rows whose first cell is "Category" are treated as headers.
//
// Usage: go run ./cmd/seedsac -in sac_codes.xlsx [-sheet Sheet1] [-out db/seeds/sac_codes.sql | -apply]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"billkit/internal/config"
	"billkit/internal/domain"
	"billkit/internal/logger"
	"billkit/internal/repository/postgres"
	"billkit/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("seedsac failed")
	}
}

func run() error {
	inPath := flag.String("in", "sac_codes.xlsx", "input workbook")
	sheet := flag.String("sheet", "", "sheet name (defaults to the first sheet)")
	outPath := flag.String("out", "db/seeds/sac_codes.sql", "output SQL file")
	apply := flag.Bool("apply", false, "upsert into the database instead of writing SQL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Setup(cfg.Log)

	f, err := excelize.OpenFile(*inPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	codes, err := parseSheet(f, *sheet)
	if err != nil {
		return fmt.Errorf("parse sheet: %w", err)
	}
	log.Info().Int("rows", len(codes)).Str("file", *inPath).Msg("read SAC codes")

	if *apply {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		n, err := service.NewCatalogService(postgres.NewSACRepo(db)).Import(context.Background(), codes)
		if err != nil {
			return fmt.Errorf("import SAC codes: %w", err)
		}
		log.Info().Int("imported", n).Msg("SAC catalog updated")
		return nil
	}

	out, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := writeSQL(out, codes); err != nil {
		return fmt.Errorf("write SQL: %w", err)
	}
	log.Info().Str("out", *outPath).Msg("seed file written")
	return nil
}

// parseSheet reads category, code and description columns. Later rows for
// the same category replace earlier ones.
func parseSheet(f *excelize.File, sheet string) ([]domain.SACCode, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var codes []domain.SACCode
	for _, row := range rows {
		category := strings.TrimSpace(cellVal(row, 0))
		code := strings.TrimSpace(cellVal(row, 1))
		if category == "" || code == "" || strings.EqualFold(category, "category") {
			continue
		}
		entry := domain.SACCode{
			Category:    category,
			Code:        code,
			Description: strings.TrimSpace(cellVal(row, 2)),
		}
		if i, ok := index[category]; ok {
			codes[i] = entry
			continue
		}
		index[category] = len(codes)
		codes = append(codes, entry)
	}
	return codes, nil
}

func writeSQL(out io.Writer, codes []domain.SACCode) error {
	var b strings.Builder
	b.WriteString("-- SAC code seed data generated from Excel.\n")
	fmt.Fprintf(&b, "-- %d categories.\n", len(codes))
	b.WriteString("BEGIN;\n\n")
	if len(codes) > 0 {
		b.WriteString("INSERT INTO sac_codes (category, code, description) VALUES\n")
		for i := range codes {
			c := &codes[i]
			if i > 0 {
				b.WriteString(",\n")
			}
			fmt.Fprintf(&b, "  ('%s', '%s', '%s')", escapeSQL(c.Category), escapeSQL(c.Code), escapeSQL(c.Description))
		}
		b.WriteString("\nON CONFLICT (category) DO UPDATE SET code = EXCLUDED.code, description = EXCLUDED.description;\n")
	}
	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(out, b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
