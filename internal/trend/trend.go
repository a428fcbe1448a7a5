// Package trend post-processes the monthly series: rolling averages,
// seasonal baselines with significance testing, and trend-shift detection.
package trend

import (
	"fmt"
	"math"
	"time"

	"journal_insights/internal/series"
	"journal_insights/internal/stats"
)

// ShiftType classifies a detected trend shift.
type ShiftType string

const (
	Deterioration   ShiftType = "deterioration"
	Recovery        ShiftType = "recovery"
	Plateau         ShiftType = "plateau"
	VocabularyShift ShiftType = "vocabulary_shift"
)

// Shift is a thresholded change between two adjacent 3-month windows.
// Magnitude is the window difference in units of the whole-series standard
// deviation.
type Shift struct {
	StartMonth   string             `json:"startMonth"`
	EndMonth     string             `json:"endMonth"`
	Type         ShiftType          `json:"type"`
	Magnitude    float64            `json:"magnitude"`
	MetricDeltas map[string]float64 `json:"metricDeltas"`
	Description  string             `json:"description"`
}

// FillMovingAverages sets NegRatioMA3/MA6 in place. A window that reaches
// before the start of the series leaves the field nil.
func FillMovingAverages(months []series.MonthlyRecord) {
	for i := range months {
		if i >= 2 {
			months[i].NegRatioMA3 = ptr(meanRatio(months[i-2 : i+1]))
		}
		if i >= 5 {
			months[i].NegRatioMA6 = ptr(meanRatio(months[i-5 : i+1]))
		}
	}
}

// FillSeasonalBaselines sets SeasonalBaseline/SeasonalDeviation in place.
// A baseline needs at least two records sharing the calendar month-of-year.
func FillSeasonalBaselines(months []series.MonthlyRecord) {
	byMonthOfYear := map[string][]int{}
	for i, m := range months {
		if len(m.Month) < 7 {
			continue
		}
		mm := m.Month[5:7]
		byMonthOfYear[mm] = append(byMonthOfYear[mm], i)
	}

	for _, idxs := range byMonthOfYear {
		if len(idxs) < 2 {
			continue
		}
		sum := 0.0
		for _, i := range idxs {
			sum += months[i].NegativeRatio
		}
		baseline := sum / float64(len(idxs))
		for _, i := range idxs {
			months[i].SeasonalBaseline = ptr(baseline)
			months[i].SeasonalDeviation = ptr(months[i].NegativeRatio - baseline)
		}
	}
}

// SeasonalStat aggregates one season against the rest of the series.
type SeasonalStat struct {
	Season           string               `json:"season"`
	MonthCount       int                  `json:"monthCount"`
	NegativeCount    int                  `json:"negativeCount"`
	PositiveCount    int                  `json:"positiveCount"`
	AvgNegativeRatio float64              `json:"avgNegativeRatio"`
	Test             stats.ChiSquareResult `json:"test"`
}

var seasonOrder = []string{"winter", "spring", "summer", "autumn"}

// SeasonalSummary compares each season's negative/positive counts against
// the pooled counts of the other seasons.
func SeasonalSummary(months []series.MonthlyRecord) []SeasonalStat {
	type tally struct {
		neg, pos, n int
		ratioSum    float64
	}
	tallies := map[string]*tally{}
	totalNeg, totalPos := 0, 0
	for _, m := range months {
		s := seasonOf(m.Month)
		if s == "" {
			continue
		}
		t, ok := tallies[s]
		if !ok {
			t = &tally{}
			tallies[s] = t
		}
		t.neg += m.NegativeCount
		t.pos += m.PositiveCount
		t.n++
		t.ratioSum += m.NegativeRatio
		totalNeg += m.NegativeCount
		totalPos += m.PositiveCount
	}

	out := make([]SeasonalStat, 0, len(tallies))
	for _, s := range seasonOrder {
		t, ok := tallies[s]
		if !ok {
			continue
		}
		out = append(out, SeasonalStat{
			Season:           s,
			MonthCount:       t.n,
			NegativeCount:    t.neg,
			PositiveCount:    t.pos,
			AvgNegativeRatio: t.ratioSum / float64(t.n),
			Test:             stats.ChiSquare2x2(t.neg, t.pos, totalNeg-t.neg, totalPos-t.pos),
		})
	}
	return out
}

func seasonOf(monthKey string) string {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return ""
	}
	switch t.Month() {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}

// DetectShifts slides a 3-month "before" window against the following
// 3-month "after" window. It needs at least 4 months of history; adjacent
// shifts of the same type starting within 3 months of the previous shift's
// end are merged. A plateau below both thresholds is never emitted.
func DetectShifts(months []series.MonthlyRecord) []Shift {
	if len(months) < 4 {
		return nil
	}

	sigma := stdDevRatio(months)
	threshold := math.Max(0.05, 0.8*sigma)

	var out []Shift
	for i := 3; i+3 <= len(months); i++ {
		before := months[i-3 : i]
		after := months[i : i+3]

		diff := meanRatio(after) - meanRatio(before)
		dFirst := meanOf(after, firstPerson) - meanOf(before, firstPerson)
		dLen := meanOf(after, sentenceLen) - meanOf(before, sentenceLen)
		dMon := meanOf(after, selfMonitoring) - meanOf(before, selfMonitoring)
		vocabScore := relMagnitude(meanOf(before, firstPerson), dFirst) +
			relMagnitude(meanOf(before, sentenceLen), dLen) +
			relMagnitude(meanOf(before, selfMonitoring), dMon)

		var typ ShiftType
		switch {
		case diff > threshold:
			typ = Deterioration
		case diff < -threshold:
			typ = Recovery
		case vocabScore > 1.5:
			typ = VocabularyShift
		default:
			continue
		}

		magnitude := 0.0
		if sigma > 0 {
			magnitude = math.Abs(diff) / sigma
		}
		shift := Shift{
			StartMonth: months[i-3].Month,
			EndMonth:   months[i+2].Month,
			Type:       typ,
			Magnitude:  magnitude,
			MetricDeltas: map[string]float64{
				"negativeRatio":      diff,
				"firstPersonRate":    dFirst,
				"avgSentenceLength":  dLen,
				"selfMonitoringRate": dMon,
			},
			Description: describeShift(typ, diff, vocabScore, months[i-3].Month, months[i+2].Month),
		}

		if last := len(out) - 1; last >= 0 && out[last].Type == typ && monthGap(out[last].EndMonth, shift.StartMonth) <= 3 {
			out[last].EndMonth = shift.EndMonth
			if shift.Magnitude > out[last].Magnitude {
				out[last].Magnitude = shift.Magnitude
			}
			continue
		}
		out = append(out, shift)
	}
	return out
}

func describeShift(typ ShiftType, diff, vocabScore float64, from, to string) string {
	switch typ {
	case Deterioration:
		return fmt.Sprintf("negative ratio climbed by %.2f between %s and %s", diff, from, to)
	case Recovery:
		return fmt.Sprintf("negative ratio dropped by %.2f between %s and %s", -diff, from, to)
	case VocabularyShift:
		return fmt.Sprintf("writing style changed between %s and %s (shift score %.2f) while the negative ratio held", from, to, vocabScore)
	default:
		return fmt.Sprintf("no notable change between %s and %s", from, to)
	}
}

// monthGap returns the signed number of calendar months from a to b.
func monthGap(a, b string) int {
	ta, errA := time.Parse("2006-01", a)
	tb, errB := time.Parse("2006-01", b)
	if errA != nil || errB != nil {
		return 0
	}
	return (tb.Year()-ta.Year())*12 + int(tb.Month()) - int(ta.Month())
}

func firstPerson(m series.MonthlyRecord) float64    { return m.FirstPersonRate }
func sentenceLen(m series.MonthlyRecord) float64    { return m.AvgSentenceLength }
func selfMonitoring(m series.MonthlyRecord) float64 { return m.SelfMonitoringRate }

func meanOf(months []series.MonthlyRecord, f func(series.MonthlyRecord) float64) float64 {
	if len(months) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range months {
		sum += f(m)
	}
	return sum / float64(len(months))
}

func meanRatio(months []series.MonthlyRecord) float64 {
	return meanOf(months, func(m series.MonthlyRecord) float64 { return m.NegativeRatio })
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

// relMagnitude is the absolute change relative to the before value, with the
// denominator floored to keep a flat metric from dividing by zero.
func relMagnitude(before, delta float64) float64 {
	return math.Abs(delta) / math.Max(math.Abs(before), 0.001)
}

func ptr(v float64) *float64 { return &v }
