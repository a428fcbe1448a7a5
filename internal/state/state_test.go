package state

import (
	"fmt"
	"testing"

	"journal_insights/internal/lexicon"
	"journal_insights/internal/series"
)

func months(ratios ...float64) []series.MonthlyRecord {
	out := make([]series.MonthlyRecord, len(ratios))
	for i, r := range ratios {
		out[i] = series.MonthlyRecord{Month: fmt.Sprintf("2023-%02d", i+1)}
		out[i].NegativeRatio = r
	}
	return out
}

func TestCurrentNeedsThreeRecentAndThreeHistorical(t *testing.T) {
	if got := Current(months(0.2, 0.2, 0.2, 0.2, 0.2)); got != nil {
		t.Fatalf("5 months of history should yield no snapshot, got %+v", got)
	}
	if got := Current(months(0.2, 0.2, 0.2, 0.2, 0.2, 0.2)); got == nil {
		t.Fatal("6 months of history should yield a snapshot")
	}
}

func TestCurrentImprovingLowRisk(t *testing.T) {
	m := months(0.5, 0.5, 0.5, 0.5, 0.3, 0.1)
	cs := Current(m)
	if cs == nil {
		t.Fatal("expected a snapshot")
	}
	if cs.NegRatioTrend != Improving {
		t.Fatalf("trend = %s, want improving (slope %f)", cs.NegRatioTrend, cs.TrendSlope)
	}
	if cs.RiskLevel != RiskLow {
		t.Fatalf("risk = %s, want low", cs.RiskLevel)
	}
	if cs.OverallStability < 0 || cs.OverallStability > 100 {
		t.Fatalf("stability out of range: %f", cs.OverallStability)
	}
}

func TestCurrentElevatedRisk(t *testing.T) {
	cs := Current(months(0.2, 0.2, 0.2, 0.7, 0.7, 0.7))
	if cs == nil {
		t.Fatal("expected a snapshot")
	}
	if cs.RiskLevel != RiskElevated {
		t.Fatalf("risk = %s, want elevated for a recent ratio above 0.6", cs.RiskLevel)
	}
}

func TestCurrentWorseningIsModerate(t *testing.T) {
	cs := Current(months(0.1, 0.1, 0.1, 0.1, 0.2, 0.3))
	if cs == nil {
		t.Fatal("expected a snapshot")
	}
	if cs.NegRatioTrend != Worsening {
		t.Fatalf("trend = %s, want worsening", cs.NegRatioTrend)
	}
	if cs.RiskLevel != RiskModerate {
		t.Fatalf("risk = %s, want moderate while worsening", cs.RiskLevel)
	}
}

func TestMinePrecursors(t *testing.T) {
	m := months(0.1, 0.3, 0.3, 0.55)
	m[0].Text = "the deadline is close and I am tired"
	m[2].Text = "another deadline week"

	got := MinePrecursors(lexicon.Default(), m)
	if len(got) < 2 {
		t.Fatalf("expected at least 2 precursor words, got %+v", got)
	}
	if got[0].Word != "deadline" {
		t.Fatalf("top precursor = %q, want deadline", got[0].Word)
	}
	if got[0].Score < 0.499 || got[0].Score > 0.501 {
		t.Fatalf("deadline score = %f, want 0.5 (0.3 initial + 0.2 repeat)", got[0].Score)
	}
	for _, p := range got {
		if p.Score < 0 || p.Score > 1 {
			t.Fatalf("score out of bounds for %q: %f", p.Word, p.Score)
		}
	}
}

func TestDetectSignalsAllFire(t *testing.T) {
	prev := series.MonthlyRecord{Month: "2023-01"}
	prev.SymptomCount = 2
	prev.FirstPersonRate = 10
	prev.AvgSentenceLength = 50
	prev.EntryCount = 6
	prev.SelfMonitoringRate = 0.6

	latest := series.MonthlyRecord{Month: "2023-02"}
	latest.SymptomCount = 5
	latest.FirstPersonRate = 2
	latest.AvgSentenceLength = 20
	latest.EntryCount = 1
	latest.SelfMonitoringRate = 0.05
	latest.Text = "the deadline looms"

	precursors := []PrecursorWord{{Word: "deadline", Score: 0.7}}
	signals := DetectSignals([]series.MonthlyRecord{prev, latest}, precursors)

	want := map[string]Severity{
		"symptom_surge":            Warning,
		"first_person_shift":       Watch,
		"sentence_shortening":      Caution,
		"entry_drop":               Caution,
		"self_monitoring_collapse": Watch,
		"precursor_word":           Caution,
	}
	if len(signals) != len(want) {
		t.Fatalf("expected %d signals, got %d: %+v", len(want), len(signals), signals)
	}
	for _, s := range signals {
		sev, ok := want[s.Kind]
		if !ok {
			t.Fatalf("unexpected signal kind %q", s.Kind)
		}
		if s.Severity != sev {
			t.Fatalf("signal %s severity = %s, want %s", s.Kind, s.Severity, sev)
		}
	}
}

func TestDetectSignalsQuietMonths(t *testing.T) {
	m := months(0.2, 0.2)
	if signals := DetectSignals(m, nil); len(signals) != 0 {
		t.Fatalf("quiet months produced signals: %+v", signals)
	}
}

func TestSymptomLag(t *testing.T) {
	m := months(0.1, 0.2, 0.1, 0.2, 0.2, 0.2)
	counts := []int{10, 0, 10, 0, 2, 2}
	for i := range m {
		m[i].SymptomCount = counts[i]
	}

	lag := SymptomLag(m)
	if lag == nil {
		t.Fatal("expected a lag correlation")
	}
	if lag.LagDays != 30 || lag.Samples != 2 {
		t.Fatalf("lag = %+v, want 30 days over 2 samples", lag)
	}
	if lag.Strength != 1 {
		t.Fatalf("strength = %f, want 1 (avg delta 0.1 capped)", lag.Strength)
	}
}

func TestSymptomLagNeedsTwoQualifyingMonths(t *testing.T) {
	m := months(0.1, 0.5, 0.1, 0.1)
	m[0].SymptomCount = 10
	if lag := SymptomLag(m); lag != nil {
		t.Fatalf("single qualifying month produced a correlation: %+v", lag)
	}
}
