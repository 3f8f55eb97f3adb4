package submission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/revaya/roicalc/internal/roi"
)

// ErrNotFound is returned when no submission matches.
var ErrNotFound = errors.New("submission not found")

const timeLayout = "2006-01-02T15:04:05.000Z"

var columns = []string{
	"id",
	"name", "email", "business_name",
	"industry_type", "calls_per_week", "answer_percentage", "phone_coverage",
	"job_value", "close_rate", "monthly_spending",
	"monthly_call_volume", "perceived_answer_rate", "realistic_answer_rate", "coverage_setup",
	"perceived_missed_weekly", "perceived_missed_monthly",
	"actual_missed_weekly", "actual_missed_monthly",
	"new_business_missed_monthly", "lost_customers_monthly",
	"lost_revenue_monthly", "lost_revenue_annual",
	"ai_missed_weekly", "ai_missed_monthly",
	"revenue_recovered_monthly", "revenue_recovered_annual", "cost_per_answered_call",
	"actual_answer_rate", "daily_missed_calls", "monthly_missed_calls",
	"monthly_lost_revenue", "annual_lost_revenue",
	"pdf_downloaded", "pdf_downloaded_at", "created_at",
}

var (
	insertSQL = `INSERT INTO calculator_submissions (` + strings.Join(columns, ", ") +
		`) VALUES (?` + strings.Repeat(", ?", len(columns)-1) + `)`
	selectSQL = `SELECT ` + strings.Join(columns, ", ") + ` FROM calculator_submissions`
)

// Store reads and writes calculator_submissions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Insert writes rec with a fresh id and creation time and returns the
// stored row.
func (s *Store) Insert(ctx context.Context, rec Record) (Record, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
	rec.PDFDownloaded = false
	rec.PDFDownloadedAt = nil

	_, err := s.db.ExecContext(ctx, insertSQL,
		rec.ID,
		rec.Name, rec.Email, nullString(rec.BusinessName),
		string(rec.Industry), rec.CallsPerWeek, rec.AnswerPercentage, string(rec.PhoneCoverage),
		rec.JobValue, rec.CloseRate, rec.MonthlySpending,
		rec.MonthlyCallVolume, rec.PerceivedAnswerRate, rec.RealisticAnswerRate, rec.CoverageSetup,
		rec.PerceivedMissedWeekly, rec.PerceivedMissedMonthly,
		rec.ActualMissedWeekly, rec.ActualMissedMonthly,
		rec.NewBusinessMissedMonthly, rec.LostCustomersMonthly,
		rec.LostRevenueMonthly, rec.LostRevenueAnnual,
		rec.AIMissedWeekly, rec.AIMissedMonthly,
		rec.RevenueRecoveredMonthly, rec.RevenueRecoveredAnnual, nullFloat(rec.CostPerAnsweredCall),
		rec.ActualAnswerRate, rec.DailyMissedCalls, rec.MonthlyMissedCalls,
		rec.MonthlyLostRevenue, rec.AnnualLostRevenue,
		0, nil, rec.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Record{}, fmt.Errorf("inserting submission: %w", err)
	}
	return rec, nil
}

// MarkPDFDownloaded flags the most recent submission for email. It returns
// ErrNotFound when the email has never submitted.
func (s *Store) MarkPDFDownloaded(ctx context.Context, email string) (time.Time, error) {
	at := s.now().UTC().Truncate(time.Millisecond)
	res, err := s.db.ExecContext(ctx,
		`UPDATE calculator_submissions
		 SET pdf_downloaded = 1, pdf_downloaded_at = ?
		 WHERE id = (
			SELECT id FROM calculator_submissions
			WHERE email = ?
			ORDER BY created_at DESC, rowid DESC
			LIMIT 1
		 )`,
		at.Format(timeLayout), email,
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("marking pdf download: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return time.Time{}, fmt.Errorf("marking pdf download: %w", err)
	}
	if n == 0 {
		return time.Time{}, ErrNotFound
	}
	return at, nil
}

// List returns submissions newest first. A limit of zero or less returns
// every row.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.query(ctx, selectSQL+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

// ListByEmail returns the submissions for one email, newest first.
func (s *Store) ListByEmail(ctx context.Context, email string) ([]Record, error) {
	return s.query(ctx, selectSQL+` WHERE email = ? ORDER BY created_at DESC, rowid DESC`, email)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec          Record
		industry     string
		coverage     string
		businessName sql.NullString
		costPerCall  sql.NullFloat64
		downloaded   int64
		downloadedAt sql.NullString
		createdAt    string
	)
	err := rows.Scan(
		&rec.ID,
		&rec.Name, &rec.Email, &businessName,
		&industry, &rec.CallsPerWeek, &rec.AnswerPercentage, &coverage,
		&rec.JobValue, &rec.CloseRate, &rec.MonthlySpending,
		&rec.MonthlyCallVolume, &rec.PerceivedAnswerRate, &rec.RealisticAnswerRate, &rec.CoverageSetup,
		&rec.PerceivedMissedWeekly, &rec.PerceivedMissedMonthly,
		&rec.ActualMissedWeekly, &rec.ActualMissedMonthly,
		&rec.NewBusinessMissedMonthly, &rec.LostCustomersMonthly,
		&rec.LostRevenueMonthly, &rec.LostRevenueAnnual,
		&rec.AIMissedWeekly, &rec.AIMissedMonthly,
		&rec.RevenueRecoveredMonthly, &rec.RevenueRecoveredAnnual, &costPerCall,
		&rec.ActualAnswerRate, &rec.DailyMissedCalls, &rec.MonthlyMissedCalls,
		&rec.MonthlyLostRevenue, &rec.AnnualLostRevenue,
		&downloaded, &downloadedAt, &createdAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("scanning submission: %w", err)
	}

	rec.Industry = roi.Industry(industry)
	rec.PhoneCoverage = roi.Coverage(coverage)
	rec.BusinessName = businessName.String
	if costPerCall.Valid {
		v := costPerCall.Float64
		rec.CostPerAnsweredCall = &v
	}
	rec.PDFDownloaded = downloaded != 0
	if downloadedAt.Valid {
		t, err := time.Parse(timeLayout, downloadedAt.String)
		if err != nil {
			return Record{}, fmt.Errorf("parsing pdf_downloaded_at: %w", err)
		}
		rec.PDFDownloadedAt = &t
	}
	if rec.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return Record{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
