package trend

import (
	"fmt"
	"testing"

	"journal_insights/internal/series"
)

func monthsWithRatios(ratios ...float64) []series.MonthlyRecord {
	out := make([]series.MonthlyRecord, len(ratios))
	for i, r := range ratios {
		out[i] = series.MonthlyRecord{Month: fmt.Sprintf("2023-%02d", i+1)}
		out[i].NegativeRatio = r
	}
	return out
}

func TestMovingAverageGating(t *testing.T) {
	months := monthsWithRatios(0.1, 0.2, 0.3, 0.4, 0.5, 0.6)
	FillMovingAverages(months)

	for i := 0; i < 2; i++ {
		if months[i].NegRatioMA3 != nil {
			t.Fatalf("MA3 present at index %d, want absent", i)
		}
	}
	for i := 2; i < len(months); i++ {
		if months[i].NegRatioMA3 == nil {
			t.Fatalf("MA3 absent at index %d, want present", i)
		}
	}
	if got := *months[2].NegRatioMA3; got < 0.1999 || got > 0.2001 {
		t.Fatalf("MA3[2] = %f, want 0.2", got)
	}
	if months[4].NegRatioMA6 != nil {
		t.Fatalf("MA6 present at index 4, want absent")
	}
	if months[5].NegRatioMA6 == nil {
		t.Fatalf("MA6 absent at index 5, want present")
	}
}

func TestSeasonalBaselineNeedsTwoRecords(t *testing.T) {
	months := []series.MonthlyRecord{
		{Month: "2023-01"}, {Month: "2023-02"}, {Month: "2024-01"},
	}
	months[0].NegativeRatio = 0.2
	months[1].NegativeRatio = 0.5
	months[2].NegativeRatio = 0.4

	FillSeasonalBaselines(months)

	if months[1].SeasonalBaseline != nil {
		t.Fatal("single-record calendar month should have no baseline")
	}
	if months[0].SeasonalBaseline == nil || months[2].SeasonalBaseline == nil {
		t.Fatal("january appears twice, both records should carry a baseline")
	}
	if got := *months[0].SeasonalBaseline; got < 0.2999 || got > 0.3001 {
		t.Fatalf("january baseline = %f, want 0.3", got)
	}
	if got := *months[2].SeasonalDeviation; got < 0.0999 || got > 0.1001 {
		t.Fatalf("january 2024 deviation = %f, want 0.1", got)
	}
}

func TestFlatSeriesProducesNoShifts(t *testing.T) {
	months := monthsWithRatios(0.2, 0.2, 0.2, 0.2, 0.2, 0.2)
	if shifts := DetectShifts(months); len(shifts) != 0 {
		t.Fatalf("flat series produced %d shifts, want 0", len(shifts))
	}
}

func TestShortSeriesProducesNoShifts(t *testing.T) {
	months := monthsWithRatios(0.1, 0.9, 0.1)
	if shifts := DetectShifts(months); shifts != nil {
		t.Fatalf("3-month series produced shifts: %+v", shifts)
	}
}

func TestAdjacentSameTypeShiftsMerge(t *testing.T) {
	months := monthsWithRatios(0.1, 0.1, 0.1, 0.5, 0.5, 0.5, 0.9, 0.9, 0.9)
	shifts := DetectShifts(months)
	if len(shifts) != 1 {
		t.Fatalf("expected one merged shift, got %d: %+v", len(shifts), shifts)
	}
	s := shifts[0]
	if s.Type != Deterioration {
		t.Fatalf("shift type = %s, want deterioration", s.Type)
	}
	if s.StartMonth != "2023-01" || s.EndMonth != "2023-09" {
		t.Fatalf("merged span = %s..%s, want 2023-01..2023-09", s.StartMonth, s.EndMonth)
	}
	if s.Magnitude <= 0 {
		t.Fatalf("merged shift magnitude = %f, want > 0", s.Magnitude)
	}
}

func TestRecoveryDetection(t *testing.T) {
	months := monthsWithRatios(0.8, 0.8, 0.8, 0.1, 0.1, 0.1)
	shifts := DetectShifts(months)
	if len(shifts) != 1 || shifts[0].Type != Recovery {
		t.Fatalf("expected one recovery shift, got %+v", shifts)
	}
	if shifts[0].MetricDeltas["negativeRatio"] >= 0 {
		t.Fatalf("recovery should carry a negative ratio delta, got %f", shifts[0].MetricDeltas["negativeRatio"])
	}
}

func TestVocabularyShiftWithoutRatioMove(t *testing.T) {
	months := monthsWithRatios(0.3, 0.3, 0.3, 0.3, 0.3, 0.3)
	for i := range months {
		if i < 3 {
			months[i].FirstPersonRate = 10
			months[i].AvgSentenceLength = 50
			months[i].SelfMonitoringRate = 2
		} else {
			months[i].FirstPersonRate = 2
			months[i].AvgSentenceLength = 20
			months[i].SelfMonitoringRate = 0.2
		}
	}
	shifts := DetectShifts(months)
	if len(shifts) != 1 || shifts[0].Type != VocabularyShift {
		t.Fatalf("expected one vocabulary shift, got %+v", shifts)
	}
}

func TestSeasonalSummary(t *testing.T) {
	months := []series.MonthlyRecord{
		{Month: "2023-01"}, {Month: "2023-04"}, {Month: "2023-07"}, {Month: "2023-10"},
	}
	for i := range months {
		months[i].NegativeCount = 10 * (i + 1)
		months[i].PositiveCount = 20
		months[i].NegativeRatio = 0.3
	}
	out := SeasonalSummary(months)
	if len(out) != 4 {
		t.Fatalf("expected 4 seasons, got %d", len(out))
	}
	if out[0].Season != "winter" || out[3].Season != "autumn" {
		t.Fatalf("seasons out of order: %s..%s", out[0].Season, out[3].Season)
	}
	for _, s := range out {
		if s.Test.PValue < 0 || s.Test.PValue > 1 {
			t.Fatalf("season %s p-value out of range: %f", s.Season, s.Test.PValue)
		}
	}
}
