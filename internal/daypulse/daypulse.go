// Package daypulse mines day-granularity predictive context straight from
// the daily series: ratio spikes, before-spike vocabulary, sleep-disruption
// lag, and sensory/interpersonal co-occurrence.
package daypulse

import (
	"math"
	"sort"
	"strings"
	"time"

	"journal_insights/internal/lexicon"
	"journal_insights/internal/series"
)

// minDays is the number of distinct dated days required before any daily
// predictive output is produced.
const minDays = 10

// SpikeWord is a candidate term tallied inside the 3-day windows preceding
// ratio spikes, alongside its whole-corpus frequency.
type SpikeWord struct {
	Word        string `json:"word"`
	BeforeSpike int    `json:"beforeSpikeCount"`
	CorpusCount int    `json:"corpusCount"`
}

// SleepCorrelation links sleep-disruption days to the following days' mood.
type SleepCorrelation struct {
	LagDays        int     `json:"lagDays"`
	Strength       float64 `json:"strength"`
	WithSleepMean  float64 `json:"withSleepMean"`
	WithoutMean    float64 `json:"withoutMean"`
	WithSamples    int     `json:"withSamples"`
	WithoutSamples int     `json:"withoutSamples"`
}

// SensoryLink pairs a sensory symptom term with the interpersonal term it
// most often shares a day with.
type SensoryLink struct {
	Symptom          string  `json:"symptom"`
	Partner          string  `json:"partner"`
	CoOccurrenceRate float64 `json:"coOccurrenceRate"`
	OccurrenceDays   int     `json:"occurrenceDays"`
}

// Context is the daily predictive output. The zero value is the valid
// "insufficient data" shape.
type Context struct {
	DayCount       int         `json:"dayCount"`
	SpikeThreshold float64     `json:"spikeThreshold"`
	SpikeDays      []string    `json:"spikeDays,omitempty"`
	PrecursorWords []SpikeWord `json:"precursorWords,omitempty"`
	SleepLag       *SleepCorrelation `json:"sleepLag,omitempty"`
	SensoryLinks   []SensoryLink     `json:"sensoryLinks,omitempty"`
}

// Build computes the daily predictive context. Fewer than 10 dated days
// returns the empty shape, not an error.
func Build(tab lexicon.Table, days []series.DailyRecord) Context {
	if len(days) < minDays {
		return Context{DayCount: len(days)}
	}

	threshold, spikes := findSpikes(days)
	ctx := Context{
		DayCount:       len(days),
		SpikeThreshold: threshold,
		SpikeDays:      spikes,
		PrecursorWords: spikeWords(tab, days, spikes),
		SleepLag:       sleepLag(tab, days),
		SensoryLinks:   sensoryLinks(tab, days),
	}
	return ctx
}

// findSpikes returns the 80th percentile of the strictly-positive daily
// ratios and the days at or above it.
func findSpikes(days []series.DailyRecord) (float64, []string) {
	var positives []float64
	for _, d := range days {
		if d.NegativeRatio > 0 {
			positives = append(positives, d.NegativeRatio)
		}
	}
	if len(positives) == 0 {
		return 0, nil
	}
	sort.Float64s(positives)
	idx := int(float64(len(positives)) * 0.8)
	if idx >= len(positives) {
		idx = len(positives) - 1
	}
	threshold := positives[idx]

	var spikes []string
	for _, d := range days {
		if d.NegativeRatio >= threshold && d.NegativeRatio > 0 {
			spikes = append(spikes, d.Day)
		}
	}
	return threshold, spikes
}

func spikeWords(tab lexicon.Table, days []series.DailyRecord, spikes []string) []SpikeWord {
	if len(spikes) == 0 {
		return nil
	}
	byDay := map[string]*series.DailyRecord{}
	var corpus strings.Builder
	for i := range days {
		byDay[days[i].Day] = &days[i]
		corpus.WriteString(strings.ToLower(days[i].Text))
		corpus.WriteString("\n")
	}
	corpusText := corpus.String()

	before := map[string]int{}
	for _, spike := range spikes {
		day, err := time.Parse("2006-01-02", spike)
		if err != nil {
			continue
		}
		for offset := 1; offset <= 3; offset++ {
			rec, ok := byDay[day.AddDate(0, 0, -offset).Format("2006-01-02")]
			if !ok {
				continue
			}
			text := strings.ToLower(rec.Text)
			for _, term := range tab.Terms(lexicon.PrecursorCandidate) {
				before[term] += strings.Count(text, term)
			}
		}
	}

	out := make([]SpikeWord, 0, len(before))
	for term, count := range before {
		if count == 0 {
			continue
		}
		out = append(out, SpikeWord{
			Word:        term,
			BeforeSpike: count,
			CorpusCount: strings.Count(corpusText, term),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BeforeSpike != out[j].BeforeSpike {
			return out[i].BeforeSpike > out[j].BeforeSpike
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > 15 {
		out = out[:15]
	}
	return out
}

// sleepLag partitions days by sleep-disruption mentions and compares the
// mean negative ratio of the following 1-3 days between the two groups.
func sleepLag(tab lexicon.Table, days []series.DailyRecord) *SleepCorrelation {
	byDay := map[string]*series.DailyRecord{}
	for i := range days {
		byDay[days[i].Day] = &days[i]
	}

	var withSum, withoutSum float64
	var withN, withoutN int
	for _, d := range days {
		day, err := time.Parse("2006-01-02", d.Day)
		if err != nil {
			continue
		}
		followSum := 0.0
		followN := 0
		for offset := 1; offset <= 3; offset++ {
			if rec, ok := byDay[day.AddDate(0, 0, offset).Format("2006-01-02")]; ok {
				followSum += rec.NegativeRatio
				followN++
			}
		}
		if followN == 0 {
			continue
		}
		followMean := followSum / float64(followN)
		if tab.Count(d.Text, lexicon.SleepDisruption) > 0 {
			withSum += followMean
			withN++
		} else {
			withoutSum += followMean
			withoutN++
		}
	}

	if withN < 3 || withoutN < 3 {
		return nil
	}
	withMean := withSum / float64(withN)
	withoutMean := withoutSum / float64(withoutN)
	diff := withMean - withoutMean
	if diff <= 0.03 {
		return nil
	}
	return &SleepCorrelation{
		LagDays:        2,
		Strength:       math.Min(1, 5*diff),
		WithSleepMean:  withMean,
		WithoutMean:    withoutMean,
		WithSamples:    withN,
		WithoutSamples: withoutN,
	}
}

// sensoryLinks reports sensory terms that share a day with interpersonal
// terms more than 30% of the time, over at least two occurrence-days.
func sensoryLinks(tab lexicon.Table, days []series.DailyRecord) []SensoryLink {
	interTerms := tab.Terms(lexicon.Interpersonal)
	var out []SensoryLink
	for _, symptom := range tab.Terms(lexicon.SensorySymptom) {
		occurrence := 0
		co := 0
		partnerDays := map[string]int{}
		for _, d := range days {
			text := strings.ToLower(d.Text)
			if !strings.Contains(text, symptom) {
				continue
			}
			occurrence++
			matched := false
			for _, inter := range interTerms {
				if strings.Contains(text, inter) {
					matched = true
					partnerDays[inter]++
				}
			}
			if matched {
				co++
			}
		}
		if occurrence < 2 {
			continue
		}
		rate := float64(co) / float64(occurrence)
		if rate <= 0.3 {
			continue
		}
		out = append(out, SensoryLink{
			Symptom:          symptom,
			Partner:          topPartner(partnerDays),
			CoOccurrenceRate: rate,
			OccurrenceDays:   occurrence,
		})
	}
	return out
}

func topPartner(partnerDays map[string]int) string {
	best := ""
	bestN := 0
	for term, n := range partnerDays {
		if n > bestN || (n == bestN && (best == "" || term < best)) {
			best = term
			bestN = n
		}
	}
	return best
}
