package pipeline

import (
	"fmt"
	"strings"
	"time"

	"deployment-analyzer/internal/model"
)

// DataShapeError reports a batch whose columns match none of the known
// naming schemes. This is a hard failure: it means the wrong file was
// loaded, not that a few rows are bad.
type DataShapeError struct {
	Columns []string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("could not identify required columns in the data (got: %s)",
		strings.Join(e.Columns, ", "))
}

// Column names of the German editorial workflow export.
var workflowColumns = []string{
	"IPTC_DE Anweisung",
	"IPTC_EN Anweisung",
	"Bild Upload Zeitpunkt",
	"Bild Veröffentlicht",
	"Bild Aktivierungszeitpunkt",
}

// Alternative generic naming scheme seen in re-exported files.
var genericColumns = []string{
	"Bildankunft",
	"Onlinestellung",
	"arrival",
	"activation",
	"published",
}

// Clean turns a raw batch into the filtered, feature-augmented batch the
// aggregator consumes. It deduplicates exact-duplicate rows, reconciles
// arrival timestamps, computes the delay, drops rows that are
// unreconcilable, negative or >= 24h, and derives the calendar features
// from the arrival timestamp.
//
// Clean is a pure function of its input: it never mutates the raw batch
// and can run concurrently on independent batches.
func Clean(batch model.RawBatch) ([]model.CleanedRecord, model.CleanStats, error) {
	if err := checkShape(batch.Columns); err != nil {
		return nil, model.CleanStats{}, err
	}

	stats := model.CleanStats{TotalRows: len(batch.Records)}

	// Exact-duplicate removal across accumulated files
	seen := make(map[string]bool, len(batch.Records))
	deduped := make([]model.RawRecord, 0, len(batch.Records))
	for _, rec := range batch.Records {
		key := rec.Key()
		if seen[key] {
			stats.Duplicates++
			continue
		}
		seen[key] = true
		deduped = append(deduped, rec)
	}

	cleaned := make([]model.CleanedRecord, 0, len(deduped))
	for _, rec := range deduped {
		arrival := rec.Arrival
		if arrival == nil {
			arrival = Reconcile(rec.Instruction, rec.Activation)
		}
		if arrival == nil || rec.Activation == nil {
			stats.DroppedUnreconciled++
			continue
		}

		delay := rec.Activation.Sub(*arrival).Minutes()
		if delay < 0 {
			// reconciliation invariant still violated; drop, never clamp
			stats.DroppedNegative++
			continue
		}
		if delay >= 24*60 {
			// sub-daily domain: anything past a day is a data entry error
			stats.DroppedOutlier++
			continue
		}

		published := false
		if rec.Published != nil {
			published = *rec.Published
		}

		cleaned = append(cleaned, model.CleanedRecord{
			Instruction:  rec.Instruction,
			Published:    published,
			Uploaded:     rec.Uploaded,
			Arrival:      *arrival,
			Activation:   *rec.Activation,
			DelayMinutes: delay,
			Weekday:      arrival.Weekday(),
			Hour:         arrival.Hour(),
			Day:          arrival.Day(),
			Month:        int(arrival.Month()),
			Year:         arrival.Year(),
			Date:         truncateToDate(*arrival),
			Rights:       ExtractRights(rec.Instruction),
			SourceFile:   rec.SourceFile,
		})
	}

	stats.Kept = len(cleaned)

	dropped := stats.TotalRows - stats.Kept
	if dropped > 0 {
		fmt.Printf("🧹 Cleaning Summary: %d rows kept, %d dropped (%d duplicate, %d unreconciled, %d negative, %d outlier)\n",
			stats.Kept, dropped, stats.Duplicates, stats.DroppedUnreconciled, stats.DroppedNegative, stats.DroppedOutlier)
	} else {
		fmt.Printf("🧹 Cleaning Summary: %d rows kept, nothing dropped\n", stats.Kept)
	}

	return cleaned, stats, nil
}

// checkShape verifies that at least one known column-naming scheme is
// present in the batch.
func checkShape(columns []string) error {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[strings.TrimSpace(c)] = true
		have[strings.ToLower(strings.TrimSpace(c))] = true
	}

	for _, c := range workflowColumns {
		if have[c] {
			return nil
		}
	}
	for _, c := range genericColumns {
		if have[c] || have[strings.ToLower(c)] {
			return nil
		}
	}

	return &DataShapeError{Columns: columns}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
