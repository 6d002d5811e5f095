package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alfredjeanlab/gauge/internal/engine"
	"github.com/alfredjeanlab/gauge/internal/model"
	"github.com/alfredjeanlab/gauge/internal/rules"
)

var testNow = time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

func testReport(t *testing.T) *model.Report {
	t.Helper()
	weight := 2
	due := model.Date{Time: testNow.Add(14 * 24 * time.Hour)}
	closed := testNow.Add(-7 * 24 * time.Hour)

	snap := &model.Snapshot{
		Epics: []model.Epic{
			{ID: 1, Title: "Checkout", Labels: []string{"initiative::checkout"}, DueDate: &due},
		},
		Issues: []model.Issue{
			{
				ID: 1, IID: 1, Title: "Session drop", State: model.StateOpened,
				Author:    &model.User{Name: "Ada Lovelace", Username: "ada"},
				Labels:    []string{"initiative::checkout", "team::payments", "bug", "p1"},
				Epic:      &model.EpicRef{ID: 1, Title: "Checkout"},
				CreatedAt: testNow.Add(-5 * 24 * time.Hour),
				UpdatedAt: testNow.Add(-24 * time.Hour),
				WebURL:    "https://example.test/issues/1",
			},
			{
				ID: 2, IID: 2, Title: "Retry logic", State: model.StateClosed,
				Assignees: []model.User{{Name: "Grace Hopper", Username: "grace"}},
				Labels:    []string{"initiative::checkout", "team::payments", "feature"},
				Weight:    &weight,
				CreatedAt: testNow.Add(-20 * 24 * time.Hour),
				UpdatedAt: closed,
				ClosedAt:  &closed,
			},
		},
	}
	return engine.Compute(snap, rules.Default(), testNow)
}

func TestNonCompliantTable_Columns(t *testing.T) {
	cfg := rules.Default()
	table := NonCompliantTable(testReport(t), cfg)

	wantLen := 5 + len(cfg.Criteria) + 7
	if len(table.Header) != wantLen {
		t.Fatalf("header = %d columns (%v), want %d", len(table.Header), table.Header, wantLen)
	}
	if table.Header[0] != "Issue ID" || table.Header[4] != "Violations" {
		t.Errorf("header prefix = %v", table.Header[:5])
	}
	if table.Header[len(table.Header)-1] != "URL" {
		t.Errorf("last column = %q, want URL", table.Header[len(table.Header)-1])
	}

	if len(table.Rows) == 0 {
		t.Fatal("no rows for a snapshot with violations")
	}
	for _, row := range table.Rows {
		if len(row) != wantLen {
			t.Fatalf("row = %d cells, want %d: %v", len(row), wantLen, row)
		}
		for _, cell := range row[5 : 5+len(cfg.Criteria)] {
			if cell != "YES" && cell != "NO" {
				t.Errorf("criterion cell = %q, want YES or NO", cell)
			}
		}
	}
}

func TestNonCompliantTable_YesNoMatchesViolations(t *testing.T) {
	cfg := rules.Default()
	report := testReport(t)
	table := NonCompliantTable(report, cfg)
	results := engine.NonCompliant(report.ComplianceResults)

	for n, row := range table.Rows {
		violated := make(map[string]bool)
		for _, v := range results[n].Violations {
			violated[v.Key] = true
		}
		for m, c := range cfg.Criteria {
			want := "YES"
			if violated[c.Key] {
				want = "NO"
			}
			if row[5+m] != want {
				t.Errorf("row %d criterion %s = %q, want %q", n, c.Key, row[5+m], want)
			}
		}
	}
}

func TestDoDTable_ExcludesComplete(t *testing.T) {
	report := testReport(t)
	table := DoDTable(report)
	for _, row := range table.Rows {
		if row[4] == "100" {
			t.Errorf("complete checklist included: %v", row)
		}
	}
}

func TestForecastTable_EmptyCellsWithoutProjection(t *testing.T) {
	report := &model.Report{
		Initiatives: []model.Initiative{{Slug: "rollout"}},
		Forecasts: []model.Forecast{{
			Initiative:      "rollout",
			RemainingIssues: 4,
			Velocity:        model.Velocity{SampleSize: 1},
			Comparison:      model.DueComparison{Status: model.ForecastNoData},
		}},
	}
	table := ForecastTable(report)
	row := table.Rows[0]
	if row[0] != "rollout" || row[1] != "4" || row[3] != "1" {
		t.Errorf("row = %v", row)
	}
	for _, idx := range []int{2, 4, 5, 6, 7, 8, 9} {
		if row[idx] != "" {
			t.Errorf("column %d = %q, want empty without a projection", idx, row[idx])
		}
	}
	if row[10] != "no-data" {
		t.Errorf("status = %q", row[10])
	}
}

func TestForecastTable_FormatsNumbers(t *testing.T) {
	date := testNow.Add(8 * 7 * 24 * time.Hour)
	due := model.Date{Time: testNow.Add(6 * 7 * 24 * time.Hour)}
	report := &model.Report{
		Initiatives: []model.Initiative{{Slug: "rollout", DueDate: &due}},
		Forecasts: []model.Forecast{{
			Initiative:      "rollout",
			RemainingIssues: 20,
			Velocity:        model.Velocity{WeeklyAverage: 2.5, SampleSize: 12},
			ForecastDate:    &date,
			Variance:        model.Variance{OptimisticWeeks: 5, PessimisticWeeks: 20},
			Confidence:      6,
			Comparison: model.DueComparison{
				HasDueDate: true, HasForecast: true, WeeksGap: 2, IsLate: true,
				Status: model.ForecastWarning,
			},
		}},
	}
	row := ForecastTable(report).Rows[0]
	want := []string{"rollout", "20", "2.5", "12", date.Format("2006-01-02"),
		"5", "20", "6", due.Format("2006-01-02"), "2", "warning"}
	for n := range want {
		if row[n] != want[n] {
			t.Errorf("column %d = %q, want %q", n, row[n], want[n])
		}
	}
}

func TestBuild_KnownAndUnknownNames(t *testing.T) {
	report := testReport(t)
	cfg := rules.Default()
	for _, name := range Names() {
		table, err := Build(name, report, cfg)
		if err != nil {
			t.Fatalf("build %s: %v", name, err)
		}
		if table.Name != name {
			t.Errorf("table name = %q, want %q", table.Name, name)
		}
	}
	if _, err := Build("bogus", report, cfg); err == nil {
		t.Error("expected an error for an unknown table")
	}
}

func TestWriteCSV_RoundTrips(t *testing.T) {
	table := &Table{
		Name:   "t",
		Header: []string{"A", "B"},
		Rows:   [][]string{{"one", "two, with comma"}, {"three", `quoted "four"`}},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("write: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header plus two rows", len(records))
	}
	if records[1][1] != "two, with comma" || records[2][1] != `quoted "four"` {
		t.Errorf("cells lost quoting: %v", records)
	}
}

func TestExportCSV_WritesAllTables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pack")
	if err := ExportCSV(dir, testReport(t), rules.Default()); err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, name := range Names() {
		data, err := os.ReadFile(filepath.Join(dir, name+".csv"))
		if err != nil {
			t.Fatalf("missing %s.csv: %v", name, err)
		}
		if !strings.Contains(string(data), ",") {
			t.Errorf("%s.csv has no delimited header: %q", name, data)
		}
	}
}
