package export

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"tmalin/leadharvest/internal/scraper"
	"tmalin/leadharvest/logger"
	apperrors "tmalin/leadharvest/pkg/errors"
)

// Columns is the fixed CSV column order. Appended files must have been
// written with the same columns.
var Columns = []string{
	"name", "email", "phone", "website", "address",
	"city", "state", "zip_code", "social_media", "specialty", "source_url",
}

// CSVExporter writes scraped records to a CSV file
type CSVExporter struct {
	path string
	log  *logger.Logger
}

// NewCSVExporter creates an exporter for the given output path
func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{
		path: path,
		log:  logger.ForComponent("exporter"),
	}
}

// Path returns the output file path
func (e *CSVExporter) Path() string {
	return e.path
}

// Export writes records to the output file. In overwrite mode the file
// is replaced and a header written; in append mode rows are added to
// the existing file, with a header only when the file is new or empty.
func (e *CSVExporter) Export(records []scraper.Record, appendMode bool) error {
	if len(records) == 0 {
		e.log.Warn().Str("path", e.path).Msg("No records to export")
		return nil
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.NewIO(e.path, err)
		}
	}

	writeHeader := true
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendMode {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		if info, err := os.Stat(e.path); err == nil && info.Size() > 0 {
			writeHeader = false
		}
	}

	file, err := os.OpenFile(e.path, flags, 0o644)
	if err != nil {
		return apperrors.NewIO(e.path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(Columns); err != nil {
			return apperrors.NewIO(e.path, err)
		}
	}
	for _, record := range records {
		if err := writer.Write(row(record)); err != nil {
			return apperrors.NewIO(e.path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewIO(e.path, err)
	}

	e.log.Info().Int("records", len(records)).Str("path", e.path).Msg("Export complete")
	return nil
}

func row(r scraper.Record) []string {
	return []string{
		r.Name, r.Email, r.Phone, r.Website, r.Address,
		r.City, r.State, r.ZipCode, r.SocialMedia, r.Specialty, r.SourceURL,
	}
}
