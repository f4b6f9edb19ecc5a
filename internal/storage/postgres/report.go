package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkhollow/wordwraith/internal/game/session"
)

// ErrNoReports is returned when aggregate queries run against an empty ledger.
var ErrNoReports = errors.New("no battle reports recorded")

// ReportRepository persists per-encounter battle reports.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a ReportRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts one battle report.
//
// Precondition: rep must come from Encounter.Report, so its ID and FoughtAt
// are set.
func (r *ReportRepository) Create(ctx context.Context, rep *session.Report) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO battle_reports
			(id, fought_at, player_name, enemy_name, floor, victory, fled,
			 turns_taken, words_completed, best_combo, accuracy, peak_wpm,
			 perfect_words, xp_earned, gold_earned, duration_ms)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		rep.ID, rep.FoughtAt, rep.PlayerName, rep.EnemyName, rep.Floor,
		rep.Victory, rep.Fled, rep.TurnsTaken, rep.WordsCompleted,
		rep.BestCombo, rep.Accuracy, rep.PeakWPM, rep.PerfectWords,
		rep.XPEarned, rep.GoldEarned, rep.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting battle report: %w", err)
	}
	return nil
}

// ListRecent returns the most recent reports, newest first.
//
// Precondition: limit must be > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]session.Report, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, fought_at, player_name, enemy_name, floor, victory, fled,
		       turns_taken, words_completed, best_combo, accuracy, peak_wpm,
		       perfect_words, xp_earned, gold_earned, duration_ms
		FROM battle_reports ORDER BY fought_at DESC, id LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing battle reports: %w", err)
	}
	defer rows.Close()

	reports := make([]session.Report, 0)
	for rows.Next() {
		var rep session.Report
		var durationMs int64
		if err := rows.Scan(
			&rep.ID, &rep.FoughtAt, &rep.PlayerName, &rep.EnemyName, &rep.Floor,
			&rep.Victory, &rep.Fled, &rep.TurnsTaken, &rep.WordsCompleted,
			&rep.BestCombo, &rep.Accuracy, &rep.PeakWPM, &rep.PerfectWords,
			&rep.XPEarned, &rep.GoldEarned, &durationMs,
		); err != nil {
			return nil, fmt.Errorf("scanning battle report row: %w", err)
		}
		rep.Duration = time.Duration(durationMs) * time.Millisecond
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// Bests aggregates a player's lifetime records across all stored reports.
type Bests struct {
	// Encounters is the total number of reports, fled and lost included.
	Encounters   int
	Victories    int
	PeakWPM      float64
	BestCombo    int
	HighestFloor int
	TotalXP      int
	TotalGold    int
}

// PersonalBests returns the lifetime records.
//
// Postcondition: Returns ErrNoReports when no reports have been stored.
func (r *ReportRepository) PersonalBests(ctx context.Context) (*Bests, error) {
	var b Bests
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE victory),
		       COALESCE(MAX(peak_wpm), 0),
		       COALESCE(MAX(best_combo), 0),
		       COALESCE(MAX(floor), 0),
		       COALESCE(SUM(xp_earned), 0),
		       COALESCE(SUM(gold_earned), 0)
		FROM battle_reports`,
	).Scan(
		&b.Encounters, &b.Victories, &b.PeakWPM, &b.BestCombo,
		&b.HighestFloor, &b.TotalXP, &b.TotalGold,
	)
	if err != nil {
		return nil, fmt.Errorf("querying personal bests: %w", err)
	}
	if b.Encounters == 0 {
		return nil, ErrNoReports
	}
	return &b, nil
}
