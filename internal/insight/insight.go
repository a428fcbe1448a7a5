// Package insight runs the full analytics pipeline: entries in, one
// structured report out. Everything downstream of the raw entries is freshly
// computed per call; there is no cache and no shared state, so identical
// input always produces an identical report.
package insight

import (
	"strings"

	"journal_insights/internal/daypulse"
	"journal_insights/internal/depth"
	"journal_insights/internal/elevation"
	"journal_insights/internal/journal"
	"journal_insights/internal/lexicon"
	"journal_insights/internal/series"
	"journal_insights/internal/state"
	"journal_insights/internal/trend"
)

// Options tunes a Build call. The zero value uses the embedded lexicon and
// one counting worker per CPU.
type Options struct {
	Table   lexicon.Table
	Workers int
}

// VocabularyReport contrasts the vocabulary of the last 3 months against
// everything earlier. Present only when both periods exist.
type VocabularyReport struct {
	Recent      depth.Profile                        `json:"recent"`
	Historical  depth.Profile                        `json:"historical"`
	Depth       depth.DepthInterpretation            `json:"depth"`
	FirstPerson depth.FirstPersonShiftInterpretation `json:"firstPerson"`
}

// RunStats counts what a Build call saw and produced.
type RunStats struct {
	EntryCount      int `json:"entryCount"`
	DatedEntryCount int `json:"datedEntryCount"`
	MonthCount      int `json:"monthCount"`
	DayCount        int `json:"dayCount"`
	ShiftCount      int `json:"shiftCount"`
	SignalCount     int `json:"signalCount"`
}

// Report is the complete structured output of the analytics core.
type Report struct {
	Monthly      []series.MonthlyRecord     `json:"monthly"`
	Daily        []series.DailyRecord       `json:"daily"`
	TrendShifts  []trend.Shift              `json:"trendShifts,omitempty"`
	Seasonal     []trend.SeasonalStat       `json:"seasonal,omitempty"`
	Current      *state.CurrentState        `json:"current,omitempty"`
	Predictive   state.PredictiveIndicators `json:"predictive"`
	DailyContext daypulse.Context           `json:"dailyContext"`
	Vocabulary   *VocabularyReport          `json:"vocabulary,omitempty"`
	Elevation    []elevation.Point          `json:"elevation,omitempty"`
	Resilience   elevation.Resilience       `json:"resilience"`
	RunStats     RunStats                   `json:"runStats"`
}

// Build runs the whole pipeline over the supplied entries.
func Build(entries []journal.Entry, opts Options) Report {
	tab := opts.Table
	if tab == nil {
		tab = lexicon.Default()
	}

	monthly := series.BuildMonthly(tab, entries, opts.Workers)
	daily := series.BuildDaily(tab, entries, opts.Workers)

	trend.FillMovingAverages(monthly)
	trend.FillSeasonalBaselines(monthly)

	report := Report{
		Monthly:      monthly,
		Daily:        daily,
		TrendShifts:  trend.DetectShifts(monthly),
		Seasonal:     trend.SeasonalSummary(monthly),
		Current:      state.Current(monthly),
		Predictive:   state.Predictive(tab, monthly),
		DailyContext: daypulse.Build(tab, daily),
		Vocabulary:   vocabularyReport(tab, monthly),
		Elevation:    elevation.BuildMonthly(monthly),
	}
	report.Resilience = elevation.Scan(report.Elevation)

	dated := 0
	for _, e := range entries {
		if e.Dated() {
			dated++
		}
	}
	report.RunStats = RunStats{
		EntryCount:      len(entries),
		DatedEntryCount: dated,
		MonthCount:      len(monthly),
		DayCount:        len(daily),
		ShiftCount:      len(report.TrendShifts),
		SignalCount:     len(report.Predictive.ActiveSignals),
	}
	return report
}

// vocabularyReport splits the monthly series the same way the current-state
// snapshot does: last 3 months versus everything before them.
func vocabularyReport(tab lexicon.Table, monthly []series.MonthlyRecord) *VocabularyReport {
	if len(monthly) < 6 {
		return nil
	}
	recentText := joinTexts(monthly[len(monthly)-3:])
	historicalText := joinTexts(monthly[:len(monthly)-3])
	recent := depth.Measure(tab, recentText)
	historical := depth.Measure(tab, historicalText)
	return &VocabularyReport{
		Recent:      recent,
		Historical:  historical,
		Depth:       depth.CompareDepth(historical, recent),
		FirstPerson: depth.FirstPersonShift(historical, recent),
	}
}

func joinTexts(months []series.MonthlyRecord) string {
	var b strings.Builder
	for i, m := range months {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.Text)
	}
	return b.String()
}
