package journal

import "time"

// Entry is a single diary entry as supplied by the storage layer. A zero
// Date means the entry carries no usable calendar date; such entries are
// skipped by every date-keyed aggregation.
type Entry struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date,omitzero"`
	Content string    `json:"content"`
}

func (e Entry) Dated() bool { return !e.Date.IsZero() }

func MonthKey(t time.Time) string { return t.Format("2006-01") }

func DayKey(t time.Time) string { return t.Format("2006-01-02") }

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// ParseDate accepts the date spellings that show up in exported journals and
// in stored rows. The second return is false when nothing matched.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
