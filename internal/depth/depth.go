// Package depth compares the vocabulary of two writing periods: how often
// negative terms appear, how severe they are, and who the sentences are
// about. Its interpreters deliberately return two readings per conclusion;
// a single verdict would overstate what word counts can prove.
package depth

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"journal_insights/internal/lexicon"
	"journal_insights/internal/series"
)

// Profile holds the per-period normalized vocabulary metrics.
type Profile struct {
	CharCount          int     `json:"charCount"`
	LightNegativeCount int     `json:"lightNegativeCount"`
	DeepNegativeCount  int     `json:"deepNegativeCount"`
	LightNegativeRate  float64 `json:"lightNegativeRate"`
	DeepNegativeRate   float64 `json:"deepNegativeRate"`
	FirstPersonRate    float64 `json:"firstPersonRate"`
	OtherPersonRate    float64 `json:"otherPersonRate"`
	TaskWorkRate       float64 `json:"taskWorkRate"`
	SelfMonitoringRate float64 `json:"selfMonitoringRate"`
	QuestionRate       float64 `json:"questionRate"`
	ExclamationRate    float64 `json:"exclamationRate"`
	AvgSentenceLength  float64 `json:"avgSentenceLength"`
	DepthRatio         float64 `json:"depthRatio"`
	SubjectRatio       float64 `json:"subjectRatio"`
}

// Measure profiles one period of text.
func Measure(tab lexicon.Table, text string) Profile {
	light := tab.Count(text, lexicon.LightNegative)
	deep := tab.Count(text, lexicon.DeepNegative)
	first := tab.Count(text, lexicon.FirstPerson)
	other := tab.Count(text, lexicon.OtherPerson)
	chars := utf8.RuneCountInString(text)
	questions := strings.Count(text, "?") + strings.Count(text, "？")
	exclaims := strings.Count(text, "!") + strings.Count(text, "！")

	return Profile{
		CharCount:          chars,
		LightNegativeCount: light,
		DeepNegativeCount:  deep,
		LightNegativeRate:  lexicon.RateFor(light, chars),
		DeepNegativeRate:   lexicon.RateFor(deep, chars),
		FirstPersonRate:    lexicon.RateFor(first, chars),
		OtherPersonRate:    lexicon.RateFor(other, chars),
		TaskWorkRate:       tab.Rate(text, lexicon.TaskWork),
		SelfMonitoringRate: tab.Rate(text, lexicon.SelfMonitoring),
		QuestionRate:       lexicon.RateFor(questions, chars),
		ExclamationRate:    lexicon.RateFor(exclaims, chars),
		AvgSentenceLength:  series.AvgSentenceLength(text),
		DepthRatio:         lexicon.Ratio(deep, light),
		SubjectRatio:       lexicon.Ratio(other, first),
	}
}

// Pattern is the closed set of depth-change classifications.
type Pattern string

const (
	FrequencyDownDepthUp   Pattern = "frequency_down_depth_up"
	FrequencyDownDepthDown Pattern = "frequency_down_depth_down"
	FrequencyUpDepthUp     Pattern = "frequency_up_depth_up"
	PatternStable          Pattern = "stable"
	PatternOther           Pattern = "other"
)

// DepthInterpretation is the dual-reading result of comparing two periods.
// AlternativeReading is always populated; the type exists so no code path
// can collapse the comparison to a single verdict.
type DepthInterpretation struct {
	Pattern            Pattern  `json:"pattern"`
	FrequencyChange    float64  `json:"frequencyChange"`
	DepthChange        float64  `json:"depthChange"`
	Description        string   `json:"description"`
	AlternativeReading string   `json:"alternativeReading"`
	Evidence           []string `json:"evidence"`
}

// CompareDepth classifies the move from period a to period b. Frequency is
// the relative change in the total negative rate (15% gate); depth is the
// absolute change in the deep/light ratio (0.05 gate).
func CompareDepth(a, b Profile) DepthInterpretation {
	totalA := a.LightNegativeRate + a.DeepNegativeRate
	totalB := b.LightNegativeRate + b.DeepNegativeRate
	freq := 0.0
	switch {
	case totalA > 0:
		freq = (totalB - totalA) / totalA
	case totalB > 0:
		freq = 1
	}
	depthDelta := b.DepthRatio - a.DepthRatio

	evidence := []string{
		fmt.Sprintf("total negative rate: %.2f -> %.2f per 1000 chars (%+.0f%%)", totalA, totalB, freq*100),
		fmt.Sprintf("depth ratio: %.2f -> %.2f (%+.2f)", a.DepthRatio, b.DepthRatio, depthDelta),
	}

	result := DepthInterpretation{
		FrequencyChange: freq,
		DepthChange:     depthDelta,
		Evidence:        evidence,
	}

	switch {
	case freq < -0.15 && depthDelta > 0.05:
		result.Pattern = FrequencyDownDepthUp
		result.Description = "Negative expression appears less often, but what remains is drawn from the severe end of the vocabulary."
		result.AlternativeReading = "Fewer, deeper entries can also mean surface complaints simply stopped being worth writing down; the writing may have become more selective rather than the mood darker."
	case freq < -0.15 && depthDelta < -0.05:
		result.Pattern = FrequencyDownDepthDown
		result.Description = "Negative expression is both rarer and milder than in the earlier period."
		result.AlternativeReading = "A quieter vocabulary can also reflect avoidance: difficult topics may have left the journal rather than the life."
	case freq > 0.15 && depthDelta > 0.05:
		result.Pattern = FrequencyUpDepthUp
		result.Description = "Negative expression is both more frequent and more severe than before."
		result.AlternativeReading = "More and deeper negative writing can also mark a period of honest processing; journals often darken exactly when their writer starts facing things directly."
	case absF(freq) <= 0.15 && absF(depthDelta) <= 0.05:
		result.Pattern = PatternStable
		result.Description = "Negative vocabulary is stable across the two periods in both frequency and depth."
		result.AlternativeReading = "Stability in word counts does not rule out change; mood can move without the vocabulary following, especially in short or routine entries."
	default:
		result.Pattern = PatternOther
		result.Description = fmt.Sprintf("Negative vocabulary moved in a mixed direction (frequency %+.0f%%, depth %+.2f).", freq*100, depthDelta)
		result.AlternativeReading = "Mixed movement usually means the two metrics are tracking different things; neither direction alone should be read as the trend."
	}
	return result
}

// ShiftPattern is the closed set of first-person-shift classifications.
type ShiftPattern string

const (
	NoShift               ShiftPattern = "no_shift"
	RolePersonification   ShiftPattern = "role_personification"
	OutwardAdaptation     ShiftPattern = "outward_adaptation"
	ReducedSelfDisclosure ShiftPattern = "reduced_self_disclosure"
	MixedDecrease         ShiftPattern = "mixed_decrease"
	FirstPersonIncrease   ShiftPattern = "first_person_increase"
)

// FirstPersonShiftInterpretation is the dual-reading result of the
// first-person usage comparison.
type FirstPersonShiftInterpretation struct {
	Pattern            ShiftPattern `json:"pattern"`
	RelativeChange     float64      `json:"relativeChange"`
	Description        string       `json:"description"`
	AlternativeReading string       `json:"alternativeReading"`
	Evidence           []string     `json:"evidence"`
}

// FirstPersonShift interprets a change in first-person usage between two
// periods. Anything within a 30% relative change is reported as no shift.
// For a decrease the hypotheses are tried in a fixed order; an increase
// always gets the same two-sided reading.
func FirstPersonShift(a, b Profile) FirstPersonShiftInterpretation {
	change := relChange(a.FirstPersonRate, b.FirstPersonRate)
	result := FirstPersonShiftInterpretation{RelativeChange: change}

	if absF(change) <= 0.30 {
		result.Pattern = NoShift
		result.Description = "First-person usage is broadly unchanged; there is not enough movement to interpret."
		return result
	}

	if change > 0 {
		result.Pattern = FirstPersonIncrease
		result.Description = "The writing turned inward: first-person references rose noticeably between the periods."
		result.AlternativeReading = "More 'I' can mean growing self-absorption or growing self-awareness; the count alone cannot distinguish rumination from reflection."
		result.Evidence = []string{
			fmt.Sprintf("first-person rate: %.2f -> %.2f per 1000 chars (%+.0f%%)", a.FirstPersonRate, b.FirstPersonRate, change*100),
		}
		return result
	}

	base := fmt.Sprintf("first-person rate: %.2f -> %.2f per 1000 chars (%.0f%% drop)", a.FirstPersonRate, b.FirstPersonRate, -change*100)

	taskGrowth := relChange(a.TaskWorkRate, b.TaskWorkRate)
	otherGrowth := relChange(a.OtherPersonRate, b.OtherPersonRate)
	monitorDecline := -relChange(a.SelfMonitoringRate, b.SelfMonitoringRate)

	switch {
	case taskGrowth >= 0.30:
		result.Pattern = RolePersonification
		result.Description = "The self faded while task and work vocabulary grew; the writer may be narrating life through a role rather than a person."
		result.AlternativeReading = "A busy stretch produces the same shape: more deadlines on the page can crowd out 'I' without any change in identity."
		result.Evidence = []string{base, fmt.Sprintf("task/work rate grew %+.0f%%", taskGrowth*100)}
	case otherGrowth > 0.30:
		result.Pattern = OutwardAdaptation
		result.Description = "Attention moved from self to others; the journal reads more outward-facing than before."
		result.AlternativeReading = "An outward gaze is as compatible with richer relationships as with self-effacement; period content decides which, not the counts."
		result.Evidence = []string{base, fmt.Sprintf("other-person rate grew %+.0f%%", otherGrowth*100)}
	case monitorDecline >= 0.50:
		result.Pattern = ReducedSelfDisclosure
		result.Description = "Self-monitoring phrases largely disappeared along with the first person; the writer stopped reporting on their own state."
		result.AlternativeReading = "Less self-report is sometimes relief rather than suppression; people track themselves most when something feels wrong."
		result.Evidence = []string{base, fmt.Sprintf("self-monitoring rate fell %.0f%%", monitorDecline*100)}
	default:
		result.Pattern = MixedDecrease
		result.Description = "First-person usage dropped without a single companion metric explaining it; several readings remain open."
		result.AlternativeReading = "The drop may simply reflect a change of topic or format; shorter factual entries carry fewer 'I's by construction."
		result.Evidence = []string{
			base,
			fmt.Sprintf("task/work %+.0f%%, other-person %+.0f%%, self-monitoring %+.0f%%", taskGrowth*100, otherGrowth*100, -monitorDecline*100),
		}
	}
	return result
}

// relChange is (after-before)/before with the denominator floored; a zero
// before with a nonzero after counts as +100%.
func relChange(before, after float64) float64 {
	if before == 0 {
		if after == 0 {
			return 0
		}
		return 1
	}
	return (after - before) / before
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
