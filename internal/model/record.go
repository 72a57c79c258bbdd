package model

import (
	"fmt"
	"time"
)

// RawRecord is one imported row before reconciliation. Pointer fields are
// nil when the source column was absent or unparseable.
type RawRecord struct {
	Instruction   string     `json:"instruction"`
	InstructionEN string     `json:"instruction_en,omitempty"`
	Uploaded      *time.Time `json:"uploaded,omitempty"`
	Published     *bool      `json:"published,omitempty"`
	Activation    *time.Time `json:"activation,omitempty"`
	Arrival       *time.Time `json:"arrival,omitempty"`
	SourceFile    string     `json:"source_file,omitempty"`
}

// Key returns a string identity used for exact-duplicate removal.
func (r RawRecord) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		r.Instruction, r.InstructionEN,
		timeKey(r.Uploaded), boolKey(r.Published),
		timeKey(r.Activation), timeKey(r.Arrival))
}

func timeKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func boolKey(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return "1"
	}
	return "0"
}

// RawBatch is a set of imported rows together with the source column names,
// which the cleaner checks against the known naming schemes.
type RawBatch struct {
	Columns []string    `json:"columns"`
	Records []RawRecord `json:"records"`
}

// Merge concatenates another batch into this one. Column names are unioned
// so scheme detection still works across mixed files.
func (b *RawBatch) Merge(other RawBatch) {
	seen := make(map[string]bool, len(b.Columns))
	for _, c := range b.Columns {
		seen[c] = true
	}
	for _, c := range other.Columns {
		if !seen[c] {
			b.Columns = append(b.Columns, c)
			seen[c] = true
		}
	}
	b.Records = append(b.Records, other.Records...)
}

// RightsInfo holds rights-management fields extracted from instruction text.
type RightsInfo struct {
	Holder     string `json:"rights_holder,omitempty"`
	UsageTerms string `json:"usage_rights,omitempty"`
	Expiry     string `json:"expiry_date,omitempty"`
}

// CleanedRecord is a row that survived the validity filters, with the
// reconciled arrival timestamp and derived calendar features attached.
type CleanedRecord struct {
	Instruction  string     `json:"instruction"`
	Published    bool       `json:"published"`
	Uploaded     *time.Time `json:"uploaded,omitempty"`
	Arrival      time.Time  `json:"arrival"`
	Activation   time.Time  `json:"activation"`
	DelayMinutes float64    `json:"delay_minutes"`

	Weekday time.Weekday `json:"weekday"`
	Hour    int          `json:"hour"`
	Day     int          `json:"day"`
	Month   int          `json:"month"`
	Year    int          `json:"year"`
	Date    time.Time    `json:"date"`

	Rights     RightsInfo `json:"rights,omitempty"`
	SourceFile string     `json:"source_file,omitempty"`
}

// CleanStats counts what the cleaner dropped and why.
type CleanStats struct {
	TotalRows           int `json:"total_rows"`
	Duplicates          int `json:"duplicates"`
	DroppedUnreconciled int `json:"dropped_unreconciled"`
	DroppedNegative     int `json:"dropped_negative"`
	DroppedOutlier      int `json:"dropped_outlier"`
	Kept                int `json:"kept"`
}
