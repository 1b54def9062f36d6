package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/inklight/keyscout/pkg/keyscout/signal"
)

// LoadRecordsJSONL loads signal records from a JSONL file, one record
// per line. Malformed lines and records without a keyword are logged
// and skipped so a partially corrupt capture still yields a usable
// batch.
func LoadRecordsJSONL(path string) ([]signal.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var records []signal.Record
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var rec signal.Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		if !rec.Valid() {
			log.Printf("Warning: skipping record without keyword at line %d in %s", i+1, path)
			continue
		}
		records = append(records, rec.Normalize())
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid records found in %s", path)
	}

	return records, nil
}

// WriteRecordsJSONL writes one record per line in the format that
// LoadRecordsJSONL reads back.
func WriteRecordsJSONL(w io.Writer, records []signal.Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode record %q: %w", rec.Keyword, err)
		}
	}
	return nil
}

// StaticSource serves a fixed set of records keyed by keyword, used to
// replay captured signals through the research pipeline.
type StaticSource struct {
	byKeyword map[string]signal.Record
}

// NewStaticSource indexes records by their exact keyword. Later
// duplicates win.
func NewStaticSource(records []signal.Record) *StaticSource {
	byKeyword := make(map[string]signal.Record, len(records))
	for _, rec := range records {
		byKeyword[rec.Keyword] = rec
	}
	return &StaticSource{byKeyword: byKeyword}
}

// Gather returns the stored record for each keyword, or a zero-valued
// record for keywords the capture never saw.
func (s *StaticSource) Gather(_ context.Context, keywords []string) []signal.Record {
	records := make([]signal.Record, len(keywords))
	for i, kw := range keywords {
		rec, ok := s.byKeyword[kw]
		if !ok {
			rec = signal.Record{Keyword: kw}
		}
		records[i] = rec
	}
	return records
}
