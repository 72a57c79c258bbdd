package model

import (
	"strings"
	"time"
)

// Labels maps calendar ordinals to display strings for one locale.
// Bucket identity and ordering never depend on these strings; they are
// applied only when a grid's row labels are rendered. Weekday arrays are
// Monday-first, month arrays January-first.
type Labels struct {
	Locale        string
	Weekdays      [7]string
	WeekdaysShort [7]string
	Months        [12]string
	MonthsShort   [12]string
	AllData       string
}

var englishLabels = Labels{
	Locale:        "en",
	Weekdays:      [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
	WeekdaysShort: [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	Months: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	MonthsShort: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	AllData: "All Data",
}

var germanLabels = Labels{
	Locale:        "de",
	Weekdays:      [7]string{"Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag", "Sonntag"},
	WeekdaysShort: [7]string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"},
	Months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember"},
	MonthsShort: [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun",
		"Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
	AllData: "Alle Daten",
}

// LabelsFor resolves a locale identifier to a label table. The fallback
// chain is exact language match, then language prefix, then English.
func LabelsFor(locale string) Labels {
	lang := strings.ToLower(locale)
	if i := strings.IndexAny(lang, "_-."); i >= 0 {
		lang = lang[:i]
	}
	switch lang {
	case "de", "german":
		return germanLabels
	default:
		return englishLabels
	}
}

// MondayIndex converts a time.Weekday (Sunday=0) to the Monday-first
// ordinal (Monday=0 .. Sunday=6) that keys weekly buckets.
func MondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
