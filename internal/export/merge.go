package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tmalin/leadharvest/logger"
	apperrors "tmalin/leadharvest/pkg/errors"
)

// mergeColumns is the master file layout: the standard columns plus the
// originating source label.
var mergeColumns = append(append([]string{}, Columns...), "source")

// MergeDir combines every CSV under dir into one master file at
// outPath, tagging each row with a source label derived from its
// filename. Rows are deduplicated by name, keeping the first seen.
func MergeDir(dir, outPath string, dedupe bool) (total, written int, err error) {
	log := logger.ForComponent("merge")

	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return 0, 0, apperrors.NewIO(dir, err)
	}
	sort.Strings(paths)

	absOut, _ := filepath.Abs(outPath)
	var rows [][]string
	for _, path := range paths {
		if abs, _ := filepath.Abs(path); abs == absOut {
			continue
		}
		label := sourceLabel(path)
		if label == "master" {
			continue
		}

		loaded, err := loadRows(path, label)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable CSV")
			continue
		}
		rows = append(rows, loaded...)
	}

	total = len(rows)
	if dedupe {
		rows = dedupeByName(rows)
	}

	if parent := filepath.Dir(outPath); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return total, 0, apperrors.NewIO(outPath, err)
		}
	}
	file, err := os.Create(outPath)
	if err != nil {
		return total, 0, apperrors.NewIO(outPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(mergeColumns); err != nil {
		return total, 0, apperrors.NewIO(outPath, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return total, 0, apperrors.NewIO(outPath, err)
	}

	log.Info().Int("total", total).Int("written", len(rows)).Str("path", outPath).Msg("Merge complete")
	return total, len(rows), nil
}

// sourceLabel derives a source name from a results filename, e.g.
// yelp_results.csv becomes yelp.
func sourceLabel(path string) string {
	stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	for _, suffix := range []string{"_results", "_designers"} {
		if strings.HasSuffix(stem, suffix) {
			return strings.TrimSuffix(stem, suffix)
		}
	}
	return stem
}

// loadRows reads one CSV and remaps its rows onto mergeColumns, filling
// the source column with label. Columns the file lacks come out empty.
func loadRows(path, label string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIO(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewIO(path, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var rows [][]string
	for {
		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewIO(path, err)
		}

		row := make([]string, len(mergeColumns))
		for i, col := range Columns {
			if j, ok := index[col]; ok && j < len(raw) {
				row[i] = strings.TrimSpace(raw[j])
			}
		}
		row[len(row)-1] = label
		rows = append(rows, row)
	}
	return rows, nil
}

// dedupeByName keeps the first row per normalized name. Rows without a
// name pass through untouched.
func dedupeByName(rows [][]string) [][]string {
	seen := make(map[string]bool, len(rows))
	result := make([][]string, 0, len(rows))
	for _, row := range rows {
		name := strings.ToLower(strings.TrimSpace(row[0]))
		if name != "" {
			if seen[name] {
				continue
			}
			seen[name] = true
		}
		result = append(result, row)
	}
	return result
}
