// Package state contrasts the latest months against the rest of the history:
// a composite stability snapshot plus rule-based predictive signals.
package state

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"journal_insights/internal/lexicon"
	"journal_insights/internal/series"
)

// Trend labels the short-term direction of the negative ratio.
type Trend string

const (
	Improving Trend = "improving"
	Stable    Trend = "stable"
	Worsening Trend = "worsening"
)

// Risk labels the snapshot's overall risk level.
type Risk string

const (
	RiskLow      Risk = "low"
	RiskModerate Risk = "moderate"
	RiskElevated Risk = "elevated"
)

// Severity orders predictive signals.
type Severity string

const (
	Watch   Severity = "watch"
	Caution Severity = "caution"
	Warning Severity = "warning"
)

// CurrentState contrasts the last 3 months against all prior months.
type CurrentState struct {
	RecentMonths            int     `json:"recentMonths"`
	HistoricalMonths        int     `json:"historicalMonths"`
	RecentNegativeRatio     float64 `json:"recentNegativeRatio"`
	HistoricalNegativeRatio float64 `json:"historicalNegativeRatio"`
	TrendSlope              float64 `json:"trendSlope"`
	NegRatioTrend           Trend   `json:"negRatioTrend"`
	AvgSymptomCount         float64 `json:"avgSymptomCount"`
	AvgEntryCount           float64 `json:"avgEntryCount"`
	OverallStability        float64 `json:"overallStability"`
	RiskLevel               Risk    `json:"riskLevel"`
}

// Current returns nil unless at least 3 recent and 3 historical months exist.
func Current(months []series.MonthlyRecord) *CurrentState {
	if len(months) < 6 {
		return nil
	}
	recent := months[len(months)-3:]
	historical := months[:len(months)-3]

	slope := olsSlope(recent)
	trend := Stable
	switch {
	case slope < -0.02:
		trend = Improving
	case slope > 0.02:
		trend = Worsening
	}

	recentNeg := meanRatio(recent)
	symptoms := meanSymptoms(recent)
	entries := meanEntries(recent)
	volatility := stdDevRatio(recent)

	stability := floor0(40-80*recentNeg) +
		floor0(20-2*symptoms) +
		floor0(20-100*volatility) +
		math.Min(20, 2*entries)
	if stability > 100 {
		stability = 100
	}

	risk := RiskLow
	switch {
	case recentNeg > 0.6 || symptoms > 5:
		risk = RiskElevated
	case recentNeg > 0.4 || trend == Worsening:
		risk = RiskModerate
	}

	return &CurrentState{
		RecentMonths:            len(recent),
		HistoricalMonths:        len(historical),
		RecentNegativeRatio:     recentNeg,
		HistoricalNegativeRatio: meanRatio(historical),
		TrendSlope:              slope,
		NegRatioTrend:           trend,
		AvgSymptomCount:         symptoms,
		AvgEntryCount:           entries,
		OverallStability:        stability,
		RiskLevel:               risk,
	}
}

// PrecursorWord is a candidate term whose prior-month presence preceded a
// sharp rise in the negative ratio. Score is bounded to [0,1].
type PrecursorWord struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// MinePrecursors scans the month before every rise of more than 0.15 in the
// negative ratio. A first hit starts a term at 0.3; each further hit adds
// 0.2, capped at 1.0. The top 10 by score are returned.
func MinePrecursors(tab lexicon.Table, months []series.MonthlyRecord) []PrecursorWord {
	scores := map[string]float64{}
	for i := 1; i < len(months); i++ {
		if months[i].NegativeRatio-months[i-1].NegativeRatio <= 0.15 {
			continue
		}
		prior := strings.ToLower(months[i-1].Text)
		for _, term := range tab.Terms(lexicon.PrecursorCandidate) {
			if !strings.Contains(prior, term) {
				continue
			}
			if s, ok := scores[term]; ok {
				scores[term] = math.Min(1, s+0.2)
			} else {
				scores[term] = 0.3
			}
		}
	}

	out := make([]PrecursorWord, 0, len(scores))
	for word, score := range scores {
		out = append(out, PrecursorWord{Word: word, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// Signal is one active predictive signal derived from the latest month.
type Signal struct {
	Kind        string   `json:"kind"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// DetectSignals compares the latest month against the previous one. The
// rules are independent and may all fire at once.
func DetectSignals(months []series.MonthlyRecord, precursors []PrecursorWord) []Signal {
	if len(months) < 2 {
		return nil
	}
	latest := months[len(months)-1]
	prev := months[len(months)-2]

	var out []Signal

	if float64(latest.SymptomCount) >= 1.5*float64(prev.SymptomCount) && latest.SymptomCount >= 3 {
		sev := Caution
		if latest.SymptomCount >= 5 {
			sev = Warning
		}
		out = append(out, Signal{
			Kind:        "symptom_surge",
			Severity:    sev,
			Description: fmt.Sprintf("physical symptom mentions rose from %d to %d", prev.SymptomCount, latest.SymptomCount),
		})
	}

	if relMagnitude(prev.FirstPersonRate, latest.FirstPersonRate-prev.FirstPersonRate) > 0.5 {
		out = append(out, Signal{
			Kind:        "first_person_shift",
			Severity:    Watch,
			Description: fmt.Sprintf("first-person rate moved from %.2f to %.2f", prev.FirstPersonRate, latest.FirstPersonRate),
		})
	}

	if prev.AvgSentenceLength > 0 && latest.AvgSentenceLength < 0.6*prev.AvgSentenceLength {
		out = append(out, Signal{
			Kind:        "sentence_shortening",
			Severity:    Caution,
			Description: fmt.Sprintf("average sentence length fell from %.1f to %.1f characters", prev.AvgSentenceLength, latest.AvgSentenceLength),
		})
	}

	if prev.EntryCount >= 5 && float64(latest.EntryCount) < 0.3*float64(prev.EntryCount) {
		out = append(out, Signal{
			Kind:        "entry_drop",
			Severity:    Caution,
			Description: fmt.Sprintf("entries fell from %d to %d", prev.EntryCount, latest.EntryCount),
		})
	}

	if prev.SelfMonitoringRate > 0.5 && latest.SelfMonitoringRate < 0.1 {
		out = append(out, Signal{
			Kind:        "self_monitoring_collapse",
			Severity:    Watch,
			Description: fmt.Sprintf("self-monitoring rate collapsed from %.2f to %.2f", prev.SelfMonitoringRate, latest.SelfMonitoringRate),
		})
	}

	latestText := strings.ToLower(latest.Text)
	top := precursors
	if len(top) > 5 {
		top = top[:5]
	}
	for _, p := range top {
		if !strings.Contains(latestText, p.Word) {
			continue
		}
		sev := Watch
		if p.Score > 0.6 {
			sev = Caution
		}
		out = append(out, Signal{
			Kind:        "precursor_word",
			Severity:    sev,
			Description: fmt.Sprintf("precursor word %q (score %.1f) appears in the latest month", p.Word, p.Score),
		})
	}

	return out
}

// LagCorrelation records a delayed association between symptom spikes and
// the following month's negative ratio.
type LagCorrelation struct {
	LagDays  int     `json:"lagDays"`
	Strength float64 `json:"strength"`
	Samples  int     `json:"samples"`
	AvgDelta float64 `json:"avgDelta"`
}

// SymptomLag looks at months whose symptom count exceeds 1.5x the series
// mean and averages the following month's negative-ratio delta. A record is
// emitted only when the average rise exceeds 0.03 across at least 2 months.
func SymptomLag(months []series.MonthlyRecord) *LagCorrelation {
	if len(months) < 2 {
		return nil
	}
	total := 0.0
	for _, m := range months {
		total += float64(m.SymptomCount)
	}
	mean := total / float64(len(months))

	var deltas []float64
	for i := 0; i+1 < len(months); i++ {
		if float64(months[i].SymptomCount) > 1.5*mean {
			deltas = append(deltas, months[i+1].NegativeRatio-months[i].NegativeRatio)
		}
	}
	if len(deltas) < 2 {
		return nil
	}

	sum := 0.0
	for _, d := range deltas {
		sum += d
	}
	avg := sum / float64(len(deltas))
	if avg <= 0.03 {
		return nil
	}
	return &LagCorrelation{
		LagDays:  30,
		Strength: math.Min(1, avg*10),
		Samples:  len(deltas),
		AvgDelta: avg,
	}
}

// PredictiveIndicators bundles the predictive outputs of the monthly path.
type PredictiveIndicators struct {
	PrecursorWords []PrecursorWord `json:"precursorWords"`
	ActiveSignals  []Signal        `json:"activeSignals"`
	SymptomLag     *LagCorrelation `json:"symptomLag,omitempty"`
}

// Predictive runs precursor mining, signal detection, and lag correlation
// over the monthly series.
func Predictive(tab lexicon.Table, months []series.MonthlyRecord) PredictiveIndicators {
	precursors := MinePrecursors(tab, months)
	return PredictiveIndicators{
		PrecursorWords: precursors,
		ActiveSignals:  DetectSignals(months, precursors),
		SymptomLag:     SymptomLag(months),
	}
}

// olsSlope fits ordinary least squares over the recent negative ratios with
// x = 0..n-1 and returns the slope.
func olsSlope(months []series.MonthlyRecord) float64 {
	n := float64(len(months))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, m := range months {
		x := float64(i)
		sumX += x
		sumY += m.NegativeRatio
		sumXY += x * m.NegativeRatio
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func meanRatio(months []series.MonthlyRecord) float64 {
	if len(months) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range months {
		sum += m.NegativeRatio
	}
	return sum / float64(len(months))
}

func meanSymptoms(months []series.MonthlyRecord) float64 {
	if len(months) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range months {
		sum += float64(m.SymptomCount)
	}
	return sum / float64(len(months))
}

func meanEntries(months []series.MonthlyRecord) float64 {
	if len(months) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range months {
		sum += float64(m.EntryCount)
	}
	return sum / float64(len(months))
}

func stdDevRatio(months []series.MonthlyRecord) float64 {
	if len(months) == 0 {
		return 0
	}
	mean := meanRatio(months)
	variance := 0.0
	for _, m := range months {
		d := m.NegativeRatio - mean
		variance += d * d
	}
	variance /= float64(len(months))
	return math.Sqrt(variance)
}

func relMagnitude(before, delta float64) float64 {
	return math.Abs(delta) / math.Max(math.Abs(before), 0.001)
}

func floor0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
