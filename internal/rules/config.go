package rules

import (
	"fmt"

	"github.com/alfredjeanlab/gauge/internal/model"
)

// Defaults for thresholds and the forecast window.
const (
	DefaultDescriptionThreshold = 20
	DefaultStaleWarningDays     = 30
	DefaultStaleCriticalDays    = 60
	DefaultForecastWindowWeeks  = 12
	DefaultForecastMinSamples   = 3
)

// CriterionOverride adjusts one criterion. Nil fields keep the default.
type CriterionOverride struct {
	Enabled   *bool  `toml:"enabled"`
	Severity  string `toml:"severity"`
	Threshold *int   `toml:"threshold"` // description only
}

// StaleOverride adjusts the stale-age thresholds in days.
type StaleOverride struct {
	Warning  *int `toml:"warning"`
	Critical *int `toml:"critical"`
}

// ForecastOverride adjusts the velocity window.
type ForecastOverride struct {
	WindowWeeks *int `toml:"window_weeks"`
	MinSamples  *int `toml:"min_samples"`
}

// Overrides is the user-supplied configuration document.
type Overrides struct {
	Criteria        map[string]CriterionOverride `toml:"criteria"`
	StaleThresholds StaleOverride                `toml:"stale_thresholds"`
	Forecast        ForecastOverride             `toml:"forecast"`
}

// ConfigError records an invalid override; the resolver falls back to the
// default for the offending option.
type ConfigError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Error formats the config error.
func (e ConfigError) Error() string {
	return e.Key + ": " + e.Message
}

// EnabledCriterion is a registry entry paired with its effective severity.
type EnabledCriterion struct {
	Criterion
	Severity model.Severity
}

// Effective is the resolved rule set: the enabled criteria in canonical
// order plus every threshold the engine consults. It is immutable once
// resolved.
type Effective struct {
	Criteria             []EnabledCriterion
	DescriptionThreshold int
	StaleWarningDays     int
	StaleCriticalDays    int
	ForecastWindowWeeks  int
	ForecastMinSamples   int
	Errors               []ConfigError
}

// Enabled reports whether the criterion with the given key is enabled.
func (e *Effective) Enabled(key string) bool {
	for _, c := range e.Criteria {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Resolve merges user overrides onto the defaults. Invalid values never
// fail resolution; they fall back to the default and are recorded in
// Errors.
func Resolve(o Overrides) *Effective {
	eff := &Effective{
		DescriptionThreshold: DefaultDescriptionThreshold,
		StaleWarningDays:     DefaultStaleWarningDays,
		StaleCriticalDays:    DefaultStaleCriticalDays,
		ForecastWindowWeeks:  DefaultForecastWindowWeeks,
		ForecastMinSamples:   DefaultForecastMinSamples,
	}

	for key := range o.Criteria {
		if _, ok := CanonicalOrder[key]; !ok {
			eff.Errors = append(eff.Errors, ConfigError{
				Key:     "criteria." + key,
				Message: "unknown criterion",
			})
		}
	}

	for _, c := range Registry {
		ov := o.Criteria[c.Key]
		if ov.Enabled != nil && !*ov.Enabled {
			continue
		}

		severity := c.DefaultSeverity
		if ov.Severity != "" {
			s := model.Severity(ov.Severity)
			if s.IsValid() {
				severity = s
			} else {
				eff.Errors = append(eff.Errors, ConfigError{
					Key:     "criteria." + c.Key + ".severity",
					Message: fmt.Sprintf("invalid severity %q", ov.Severity),
				})
			}
		}

		if c.Key == KeyDescription && ov.Threshold != nil {
			if *ov.Threshold > 0 {
				eff.DescriptionThreshold = *ov.Threshold
			} else {
				eff.Errors = append(eff.Errors, ConfigError{
					Key:     "criteria.description.threshold",
					Message: fmt.Sprintf("must be positive, got %d", *ov.Threshold),
				})
			}
		}

		eff.Criteria = append(eff.Criteria, EnabledCriterion{Criterion: c, Severity: severity})
	}

	resolveDays := func(key string, v *int, dst *int) {
		if v == nil {
			return
		}
		if *v > 0 {
			*dst = *v
			return
		}
		eff.Errors = append(eff.Errors, ConfigError{
			Key:     key,
			Message: fmt.Sprintf("must be positive, got %d", *v),
		})
	}
	resolveDays("stale_thresholds.warning", o.StaleThresholds.Warning, &eff.StaleWarningDays)
	resolveDays("stale_thresholds.critical", o.StaleThresholds.Critical, &eff.StaleCriticalDays)
	resolveDays("forecast.window_weeks", o.Forecast.WindowWeeks, &eff.ForecastWindowWeeks)
	resolveDays("forecast.min_samples", o.Forecast.MinSamples, &eff.ForecastMinSamples)

	return eff
}

// Default resolves the configuration with no overrides.
func Default() *Effective {
	return Resolve(Overrides{})
}
