// Package elevation renders the stability series as a cumulative mountain
// walk. It is a narrative transform for visualization, not a measurement:
// the constants are chosen for readable trajectories, and the resilience
// scan describes the shape of the walk, nothing clinical.
package elevation

import (
	"math"

	"journal_insights/internal/series"
)

// Baseline is the cumulative starting value of every elevation sequence.
const Baseline = 1000.0

// Point is one period of the walk. Elevation is cumulative by construction:
// elevation[i] = elevation[i-1] + climb[i].
type Point struct {
	Period    string  `json:"period"`
	Climb     float64 `json:"climb"`
	Elevation float64 `json:"cumulativeElevation"`
	IsSlide   bool    `json:"isSlide"`
}

// scale fixes the climb composition per granularity. Each term is capped on
// its own before the combined climb is clamped to ±clampAbs.
type scale struct {
	clampAbs       float64
	volumeCap      float64
	volumePerEntry float64
	stabilitySpan  float64
	symptomCap     float64
	symptomPer     float64
	momentumCap    float64
	momentumSpan   float64
}

var (
	yearlyScale  = scale{clampAbs: 300, volumeCap: 20, volumePerEntry: 0.2, stabilitySpan: 400, symptomCap: 60, symptomPer: 0.5, momentumCap: 60, momentumSpan: 200}
	monthlyScale = scale{clampAbs: 100, volumeCap: 20, volumePerEntry: 2, stabilitySpan: 120, symptomCap: 25, symptomPer: 2.5, momentumCap: 30, momentumSpan: 80}
	dailyScale   = scale{clampAbs: 30, volumeCap: 6, volumePerEntry: 3, stabilitySpan: 40, symptomCap: 8, symptomPer: 2, momentumCap: 10, momentumSpan: 30}
)

type periodInput struct {
	period   string
	entries  int
	ratio    float64
	symptoms int
}

// BuildMonthly maps the monthly series onto an elevation walk.
func BuildMonthly(months []series.MonthlyRecord) []Point {
	in := make([]periodInput, len(months))
	for i, m := range months {
		in[i] = periodInput{period: m.Month, entries: m.EntryCount, ratio: m.NegativeRatio, symptoms: m.SymptomCount}
	}
	return build(in, monthlyScale)
}

// BuildDaily maps the daily series onto an elevation walk.
func BuildDaily(days []series.DailyRecord) []Point {
	in := make([]periodInput, len(days))
	for i, d := range days {
		in[i] = periodInput{period: d.Day, entries: d.EntryCount, ratio: d.NegativeRatio, symptoms: d.SymptomCount}
	}
	return build(in, dailyScale)
}

// BuildYearly folds the monthly series into calendar years first.
func BuildYearly(months []series.MonthlyRecord) []Point {
	type year struct {
		entries, neg, pos, symptoms int
	}
	years := map[string]*year{}
	var order []string
	for _, m := range months {
		if len(m.Month) < 4 {
			continue
		}
		key := m.Month[:4]
		y, ok := years[key]
		if !ok {
			y = &year{}
			years[key] = y
			order = append(order, key)
		}
		y.entries += m.EntryCount
		y.neg += m.NegativeCount
		y.pos += m.PositiveCount
		y.symptoms += m.SymptomCount
	}

	in := make([]periodInput, 0, len(order))
	for _, key := range order {
		y := years[key]
		ratio := 0.0
		if y.neg+y.pos > 0 {
			ratio = float64(y.neg) / float64(y.neg+y.pos)
		}
		in = append(in, periodInput{period: key, entries: y.entries, ratio: ratio, symptoms: y.symptoms})
	}
	return build(in, yearlyScale)
}

func build(in []periodInput, sc scale) []Point {
	out := make([]Point, len(in))
	elevation := Baseline
	for i, p := range in {
		volume := math.Min(sc.volumeCap, float64(p.entries)*sc.volumePerEntry)
		stability := (0.5 - p.ratio) * sc.stabilitySpan
		penalty := -math.Min(sc.symptomCap, float64(p.symptoms)*sc.symptomPer)
		momentum := 0.0
		if i > 0 {
			momentum = clamp((in[i-1].ratio-p.ratio)*sc.momentumSpan, -sc.momentumCap, sc.momentumCap)
		}
		climb := clamp(volume+stability+penalty+momentum, -sc.clampAbs, sc.clampAbs)
		elevation += climb
		out[i] = Point{
			Period:    p.period,
			Climb:     climb,
			Elevation: elevation,
			IsSlide:   climb < 0,
		}
	}
	return out
}

// SlideRun is a contiguous stretch of slides. RecoveryPeriods counts the
// periods after the run until cumulative positive climb reaches half the
// run's depth; nil when that never happens.
type SlideRun struct {
	StartPeriod     string  `json:"startPeriod"`
	EndPeriod       string  `json:"endPeriod"`
	Depth           float64 `json:"depth"`
	RecoveryPeriods *int    `json:"recoveryPeriods,omitempty"`
}

// Resilience summarizes how the walk falls and comes back.
type Resilience struct {
	SlideCount         int      `json:"slideCount"`
	TotalSlideDepth    float64  `json:"totalSlideDepth"`
	DeepestSlide       *SlideRun `json:"deepestSlide,omitempty"`
	AvgRecoveryPeriods *float64  `json:"avgRecoveryPeriods,omitempty"`
	RecoveryRatio      *float64  `json:"recoveryRatio,omitempty"`
}

// Scan derives resilience metrics from an elevation sequence. RecoveryRatio
// is nil exactly when there are no slides.
func Scan(points []Point) Resilience {
	var res Resilience
	var runs []SlideRun
	totalPositive := 0.0

	i := 0
	for i < len(points) {
		if !points[i].IsSlide {
			if points[i].Climb > 0 {
				totalPositive += points[i].Climb
			}
			i++
			continue
		}

		start := i
		depth := 0.0
		for i < len(points) && points[i].IsSlide {
			depth += -points[i].Climb
			res.SlideCount++
			i++
		}
		run := SlideRun{
			StartPeriod: points[start].Period,
			EndPeriod:   points[i-1].Period,
			Depth:       depth,
		}

		recovered := 0.0
		for j := i; j < len(points); j++ {
			if points[j].Climb > 0 {
				recovered += points[j].Climb
			}
			if recovered >= 0.5*depth {
				periods := j - i + 1
				run.RecoveryPeriods = &periods
				break
			}
		}

		res.TotalSlideDepth += depth
		runs = append(runs, run)
	}

	for idx := range runs {
		if res.DeepestSlide == nil || runs[idx].Depth > res.DeepestSlide.Depth {
			res.DeepestSlide = &runs[idx]
		}
	}

	recoverySum := 0.0
	recoveryN := 0
	for _, run := range runs {
		if run.RecoveryPeriods != nil {
			recoverySum += float64(*run.RecoveryPeriods)
			recoveryN++
		}
	}
	if recoveryN > 0 {
		avg := recoverySum / float64(recoveryN)
		res.AvgRecoveryPeriods = &avg
	}

	if res.SlideCount > 0 {
		ratio := math.Min(1, totalPositive/res.TotalSlideDepth)
		res.RecoveryRatio = &ratio
	}
	return res
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
