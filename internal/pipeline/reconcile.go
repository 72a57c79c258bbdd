package pipeline

import (
	"regexp"
	"time"
)

// timeFragmentRe matches the bracketed arrival time the editorial workflow
// embeds in instruction text, e.g. "… [14:03:27] …".
var timeFragmentRe = regexp.MustCompile(`\[(\d{2}:\d{2}:\d{2})\]`)

// Reconcile reconstructs the arrival timestamp for a record: it takes the
// first HH:MM:SS fragment found in the instruction text and puts it on the
// calendar date of the activation timestamp. When the candidate lands after
// the activation, the item must have arrived the previous day (arrival
// always precedes activation), so one day is subtracted.
//
// Returns nil when the fragment is absent or malformed, or when the
// reference is nil. Unparseable rows are an expected part of every batch,
// not an error.
func Reconcile(instruction string, reference *time.Time) *time.Time {
	if reference == nil {
		return nil
	}

	m := timeFragmentRe.FindStringSubmatch(instruction)
	if m == nil {
		return nil
	}

	frag, err := time.Parse("15:04:05", m[1])
	if err != nil {
		// matched digits but not a real time of day, e.g. [25:71:99]
		return nil
	}

	arrival := time.Date(
		reference.Year(), reference.Month(), reference.Day(),
		frag.Hour(), frag.Minute(), frag.Second(), 0,
		reference.Location(),
	)

	if arrival.After(*reference) {
		arrival = arrival.AddDate(0, 0, -1)
	}

	return &arrival
}
