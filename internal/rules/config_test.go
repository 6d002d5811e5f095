package rules

import (
	"path/filepath"
	"testing"

	"github.com/alfredjeanlab/gauge/internal/model"
)

func boolp(b bool) *bool { return &b }
func intp(n int) *int    { return &n }

func TestResolve_Defaults(t *testing.T) {
	eff := Default()

	if len(eff.Criteria) != len(Registry) {
		t.Fatalf("enabled criteria = %d, want %d", len(eff.Criteria), len(Registry))
	}
	for i, c := range eff.Criteria {
		if c.Key != Registry[i].Key {
			t.Errorf("criteria[%d] = %q, want canonical %q", i, c.Key, Registry[i].Key)
		}
		if c.Severity != Registry[i].DefaultSeverity {
			t.Errorf("criteria[%d] severity = %q, want default %q", i, c.Severity, Registry[i].DefaultSeverity)
		}
	}
	if eff.DescriptionThreshold != DefaultDescriptionThreshold {
		t.Errorf("description threshold = %d, want %d", eff.DescriptionThreshold, DefaultDescriptionThreshold)
	}
	if eff.StaleWarningDays != 30 || eff.StaleCriticalDays != 60 {
		t.Errorf("stale thresholds = %d/%d, want 30/60", eff.StaleWarningDays, eff.StaleCriticalDays)
	}
	if eff.ForecastWindowWeeks != 12 || eff.ForecastMinSamples != 3 {
		t.Errorf("forecast window = %d/%d, want 12/3", eff.ForecastWindowWeeks, eff.ForecastMinSamples)
	}
	if len(eff.Errors) != 0 {
		t.Errorf("unexpected config errors: %v", eff.Errors)
	}
}

func TestResolve_DisableCriterion(t *testing.T) {
	eff := Resolve(Overrides{
		Criteria: map[string]CriterionOverride{
			KeyStale:  {Enabled: boolp(false)},
			KeyWeight: {Enabled: boolp(false)},
		},
	})

	if len(eff.Criteria) != len(Registry)-2 {
		t.Fatalf("enabled criteria = %d, want %d", len(eff.Criteria), len(Registry)-2)
	}
	if eff.Enabled(KeyStale) || eff.Enabled(KeyWeight) {
		t.Error("disabled criteria still reported as enabled")
	}
	if !eff.Enabled(KeyAssignee) {
		t.Error("assignee should remain enabled")
	}
}

func TestResolve_SeverityOverride(t *testing.T) {
	eff := Resolve(Overrides{
		Criteria: map[string]CriterionOverride{
			KeyLabels: {Severity: "high"},
		},
	})
	for _, c := range eff.Criteria {
		if c.Key == KeyLabels && c.Severity != model.SeverityHigh {
			t.Errorf("labels severity = %q, want high", c.Severity)
		}
	}
}

func TestResolve_InvalidSeverityFallsBack(t *testing.T) {
	eff := Resolve(Overrides{
		Criteria: map[string]CriterionOverride{
			KeyAssignee: {Severity: "urgent"},
		},
	})

	if len(eff.Errors) != 1 {
		t.Fatalf("config errors = %v, want exactly one", eff.Errors)
	}
	if eff.Errors[0].Key != "criteria.assignee.severity" {
		t.Errorf("error key = %q", eff.Errors[0].Key)
	}
	// The criterion stays enabled with its default severity.
	if !eff.Enabled(KeyAssignee) {
		t.Error("assignee should remain enabled after severity fallback")
	}
	for _, c := range eff.Criteria {
		if c.Key == KeyAssignee && c.Severity != model.SeverityHigh {
			t.Errorf("assignee severity = %q, want default high", c.Severity)
		}
	}
}

func TestResolve_InvalidThresholds(t *testing.T) {
	eff := Resolve(Overrides{
		Criteria: map[string]CriterionOverride{
			KeyDescription: {Threshold: intp(0)},
		},
		StaleThresholds: StaleOverride{Warning: intp(-5)},
		Forecast:        ForecastOverride{WindowWeeks: intp(0)},
	})

	if eff.DescriptionThreshold != DefaultDescriptionThreshold {
		t.Errorf("description threshold = %d, want default", eff.DescriptionThreshold)
	}
	if eff.StaleWarningDays != DefaultStaleWarningDays {
		t.Errorf("stale warning = %d, want default", eff.StaleWarningDays)
	}
	if eff.ForecastWindowWeeks != DefaultForecastWindowWeeks {
		t.Errorf("window weeks = %d, want default", eff.ForecastWindowWeeks)
	}
	if len(eff.Errors) != 3 {
		t.Errorf("config errors = %v, want 3", eff.Errors)
	}
}

func TestResolve_UnknownCriterion(t *testing.T) {
	eff := Resolve(Overrides{
		Criteria: map[string]CriterionOverride{
			"sprint": {Enabled: boolp(true)},
		},
	})
	if len(eff.Errors) != 1 || eff.Errors[0].Key != "criteria.sprint" {
		t.Errorf("config errors = %v, want unknown criterion error", eff.Errors)
	}
	if len(eff.Criteria) != len(Registry) {
		t.Errorf("enabled criteria = %d, want full registry", len(eff.Criteria))
	}
}

func TestLoadFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	want := Overrides{
		Criteria: map[string]CriterionOverride{
			KeyStale:       {Enabled: boolp(false)},
			KeyDescription: {Threshold: intp(40)},
		},
		StaleThresholds: StaleOverride{Warning: intp(14), Critical: intp(45)},
	}
	if err := SaveFile(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	eff := Resolve(got)
	if eff.Enabled(KeyStale) {
		t.Error("stale should be disabled after round trip")
	}
	if eff.DescriptionThreshold != 40 {
		t.Errorf("description threshold = %d, want 40", eff.DescriptionThreshold)
	}
	if eff.StaleWarningDays != 14 || eff.StaleCriticalDays != 45 {
		t.Errorf("stale thresholds = %d/%d, want 14/45", eff.StaleWarningDays, eff.StaleCriticalDays)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	got, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if len(got.Criteria) != 0 {
		t.Errorf("expected empty overrides, got %+v", got)
	}
}
