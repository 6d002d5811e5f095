// Package engine implements the pure analytics pipeline: given a snapshot,
// a resolved rule set, and an injected clock, it derives the full report
// bundle. Nothing in this package performs I/O or reads the wall clock.
package engine

import (
	"math"
	"time"

	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
)

// staleStatus classifies an open issue's age against the configured
// thresholds. Closed issues are never stale and report zero days open.
func staleStatus(i *model.Issue, cfg *rules.Effective, now time.Time) model.StaleStatus {
	if i.IsClosed() {
		return model.StaleStatus{}
	}

	days := daysBetween(i.CreatedAt, now)
	st := model.StaleStatus{DaysOpen: days}
	switch {
	case days >= cfg.StaleCriticalDays:
		st.IsStale = true
		st.Severity = "critical"
	case days >= cfg.StaleWarningDays:
		st.IsStale = true
		st.Severity = "warning"
	}
	return st
}

// daysBetween returns floor((to - from) / 24h) in UTC.
func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.UTC().Sub(from.UTC()).Hours() / 24))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundPct returns round(part/total × 100); zero when total is zero.
func roundPct(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
