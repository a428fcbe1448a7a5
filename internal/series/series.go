// Package series turns raw entries into chronologically sorted monthly and
// daily buckets with lexicon counts and normalized rates. Downstream stages
// rely on the ordering and never re-sort.
package series

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"journal_insights/internal/journal"
	"journal_insights/internal/lexicon"
	"journal_insights/internal/pipeline"
)

var sentenceSplit = regexp.MustCompile(`[.!?。！？\n]+`)

// Metrics holds the per-bucket counts and rates shared by the monthly and
// daily views. Text keeps the joined bucket content for the predictive
// stages and is never serialized.
type Metrics struct {
	EntryCount         int     `json:"entryCount"`
	CharCount          int     `json:"charCount"`
	NegativeCount      int     `json:"negativeCount"`
	PositiveCount      int     `json:"positiveCount"`
	SymptomCount       int     `json:"symptomCount"`
	NegativeRate       float64 `json:"negativeRate"`
	SymptomRate        float64 `json:"symptomRate"`
	FirstPersonRate    float64 `json:"firstPersonRate"`
	SelfMonitoringRate float64 `json:"selfMonitoringRate"`
	ExistentialRate    float64 `json:"existentialRate"`
	NegativeRatio      float64 `json:"negativeRatio"`
	AvgSentenceLength  float64 `json:"avgSentenceLength"`
	Text               string  `json:"-"`
}

// MonthlyRecord is one calendar month (YYYY-MM) of aggregated metrics. The
// moving-average and seasonal fields stay nil until enough history exists;
// nil means "not yet computable", never zero.
type MonthlyRecord struct {
	Month string `json:"month"`
	Metrics
	NegRatioMA3       *float64 `json:"negRatioMA3,omitempty"`
	NegRatioMA6       *float64 `json:"negRatioMA6,omitempty"`
	SeasonalBaseline  *float64 `json:"seasonalBaseline,omitempty"`
	SeasonalDeviation *float64 `json:"seasonalDeviation,omitempty"`
}

// DailyRecord is one calendar day (YYYY-MM-DD) of aggregated metrics.
type DailyRecord struct {
	Day string `json:"day"`
	Metrics
}

// BuildMonthly groups dated entries by calendar month. Undated entries are
// dropped from this view.
func BuildMonthly(tab lexicon.Table, entries []journal.Entry, workers int) []MonthlyRecord {
	buckets, keys := group(entries, journal.MonthKey)
	out := make([]MonthlyRecord, len(keys))
	measureAll(len(keys), workers, func(i int) {
		key := keys[i]
		out[i] = MonthlyRecord{
			Month:   key,
			Metrics: measure(tab, buckets[key].text.String(), buckets[key].entries),
		}
	})
	return out
}

// BuildDaily groups dated entries by calendar day.
func BuildDaily(tab lexicon.Table, entries []journal.Entry, workers int) []DailyRecord {
	buckets, keys := group(entries, journal.DayKey)
	out := make([]DailyRecord, len(keys))
	measureAll(len(keys), workers, func(i int) {
		key := keys[i]
		out[i] = DailyRecord{
			Day:     key,
			Metrics: measure(tab, buckets[key].text.String(), buckets[key].entries),
		}
	})
	return out
}

type bucket struct {
	text    strings.Builder
	entries int
}

func group(entries []journal.Entry, keyFn func(t time.Time) string) (map[string]*bucket, []string) {
	buckets := map[string]*bucket{}
	for _, e := range entries {
		if !e.Dated() {
			continue
		}
		key := keyFn(e.Date)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		if b.text.Len() > 0 {
			b.text.WriteString("\n")
		}
		b.text.WriteString(e.Content)
		b.entries++
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	// Zero-padded keys sort chronologically as strings.
	sort.Strings(keys)
	return buckets, keys
}

// measureAll fans bucket measurement out over a worker pool; slots are
// disjoint, so the chronological order of the result is unaffected.
func measureAll(n, workers int, fn func(i int)) {
	pipeline.Run(n, workers, fn)
}

func measure(tab lexicon.Table, text string, entryCount int) Metrics {
	light := tab.Count(text, lexicon.LightNegative)
	deep := tab.Count(text, lexicon.DeepNegative)
	neg := light + deep
	pos := tab.Count(text, lexicon.Positive)
	symptoms := tab.Count(text, lexicon.PhysicalSymptom)
	chars := utf8.RuneCountInString(text)

	return Metrics{
		EntryCount:         entryCount,
		CharCount:          chars,
		NegativeCount:      neg,
		PositiveCount:      pos,
		SymptomCount:       symptoms,
		NegativeRate:       lexicon.RateFor(neg, chars),
		SymptomRate:        lexicon.RateFor(symptoms, chars),
		FirstPersonRate:    tab.Rate(text, lexicon.FirstPerson),
		SelfMonitoringRate: tab.Rate(text, lexicon.SelfMonitoring),
		ExistentialRate:    tab.Rate(text, lexicon.Existential),
		NegativeRatio:      lexicon.Ratio(neg, pos),
		AvgSentenceLength:  AvgSentenceLength(text),
		Text:               text,
	}
}

// AvgSentenceLength splits on sentence-terminal punctuation and newlines,
// discards empty fragments, and averages the remaining character lengths.
func AvgSentenceLength(text string) float64 {
	fragments := sentenceSplit.Split(text, -1)
	total := 0
	n := 0
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		total += utf8.RuneCountInString(f)
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
