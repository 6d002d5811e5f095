package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/gauge/internal/store"
)

// runColumns is the column list used for SELECT statements on the runs table.
const runColumns = `id, computed_at, now_utc, issue_count, epic_count,
	milestone_count, compliance_rate, shape_error_count`

func (s *PostgresStore) SaveRun(ctx context.Context, run *store.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, computed_at, now_utc, issue_count, epic_count,
			milestone_count, compliance_rate, shape_error_count, report
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)`,
		run.ID,
		run.ComputedAt,
		run.NowUTC,
		run.IssueCount,
		run.EpicCount,
		run.MilestoneCount,
		run.ComplianceRate,
		run.ShapeErrorCount,
		[]byte(run.Report),
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*store.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+`, report FROM runs WHERE id = $1`, id)
	return scanRunWithReport(row)
}

func (s *PostgresStore) LatestRun(ctx context.Context) (*store.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+`, report FROM runs ORDER BY computed_at DESC LIMIT 1`)
	return scanRunWithReport(row)
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit, offset int) ([]*store.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY computed_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*store.Run
	for rows.Next() {
		var r store.Run
		if err := rows.Scan(
			&r.ID, &r.ComputedAt, &r.NowUTC, &r.IssueCount, &r.EpicCount,
			&r.MilestoneCount, &r.ComplianceRate, &r.ShapeErrorCount,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

func (s *PostgresStore) PruneRuns(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY computed_at DESC LIMIT $1
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune runs affected: %w", err)
	}
	return int(n), nil
}

func scanRunWithReport(row *sql.Row) (*store.Run, error) {
	var r store.Run
	var report []byte
	err := row.Scan(
		&r.ID, &r.ComputedAt, &r.NowUTC, &r.IssueCount, &r.EpicCount,
		&r.MilestoneCount, &r.ComplianceRate, &r.ShapeErrorCount, &report,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	r.Report = report
	return &r, nil
}
