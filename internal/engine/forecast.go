package engine

import (
	"math"
	"sort"
	"time"

	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
)

const week = 7 * 24 * time.Hour

// buildForecast projects one initiative's completion from its trailing
// closure velocity. It returns false when the initiative has no remaining
// open issues.
func buildForecast(g *initiativeGroup, cfg *rules.Effective, now time.Time) (model.Forecast, bool) {
	open, _ := g.counts()
	if open == 0 {
		return model.Forecast{}, false
	}

	// Bucket closures in the trailing window into ISO weeks. A sample is a
	// week with at least one closure.
	windowStart := now.Add(-time.Duration(cfg.ForecastWindowWeeks) * week)
	buckets := make(map[int]int)
	total := 0
	for _, i := range g.issues {
		if i.ClosedAt == nil {
			continue
		}
		t := i.ClosedAt.UTC()
		if t.Before(windowStart) || t.After(now) {
			continue
		}
		year, wk := t.ISOWeek()
		buckets[year*100+wk]++
		total++
	}

	fc := model.Forecast{
		Initiative:      g.slug,
		RemainingIssues: open,
		Velocity:        model.Velocity{SampleSize: len(buckets)},
		Comparison: model.DueComparison{
			HasDueDate: g.dueDate != nil,
			Status:     model.ForecastNoData,
		},
	}

	if len(buckets) < cfg.ForecastMinSamples {
		return fc, true
	}

	avg := float64(total) / float64(len(buckets))
	if avg <= 0 {
		return fc, true
	}
	fc.Velocity.WeeklyAverage = avg

	minWeek, maxWeek := math.MaxInt, 0
	for _, n := range buckets {
		if n < minWeek {
			minWeek = n
		}
		if n > maxWeek {
			maxWeek = n
		}
	}

	weeksToDone := float64(open) / avg
	date := now.Add(time.Duration(weeksToDone * float64(week)))
	fc.ForecastDate = &date
	fc.Variance = model.Variance{
		OptimisticWeeks:  float64(open) / float64(maxWeek),
		PessimisticWeeks: float64(open) / math.Max(float64(minWeek), 0.5),
	}

	spread := fc.Variance.PessimisticWeeks - fc.Variance.OptimisticWeeks
	fc.Confidence = clamp(int(math.Round(100-spread/weeksToDone*50)), 0, 100)
	fc.Comparison.HasForecast = true

	if g.dueDate == nil {
		return fc, true
	}

	gap := int(math.Round(date.Sub(g.dueDate.Time).Hours() / 24 / 7))
	fc.Comparison.WeeksGap = gap
	fc.Comparison.IsLate = gap > 0
	switch {
	case gap <= 0:
		fc.Comparison.Status = model.ForecastOnTrack
	case gap <= 2:
		fc.Comparison.Status = model.ForecastWarning
	default:
		fc.Comparison.Status = model.ForecastAtRisk
	}
	return fc, true
}

// buildForecasts computes forecasts for every initiative with remaining
// work, sorted by slug.
func buildForecasts(groups []*initiativeGroup, cfg *rules.Effective, now time.Time) ([]model.Forecast, map[string]*model.Forecast) {
	var out []model.Forecast
	bySlug := make(map[string]*model.Forecast)
	for _, g := range groups {
		fc, ok := buildForecast(g, cfg, now)
		if !ok {
			continue
		}
		out = append(out, fc)
	}
	sort.Slice(out, func(x, y int) bool { return out[x].Initiative < out[y].Initiative })
	for n := range out {
		bySlug[out[n].Initiative] = &out[n]
	}
	return out, bySlug
}
