package submission_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revaya/roicalc/internal/database"
	"github.com/revaya/roicalc/internal/migrations"
	"github.com/revaya/roicalc/internal/roi"
	"github.com/revaya/roicalc/internal/submission"
)

func newStore(t *testing.T) *submission.Store {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Memory)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = migrations.Run(ctx, db)
	require.NoError(t, err)

	return submission.NewStore(db)
}

func answers(email string) roi.Answers {
	return roi.Answers{
		Industry:         roi.IndustryDental,
		CallsPerWeek:     140,
		AnswerPercentage: 85,
		PhoneCoverage:    roi.CoverageAnsweringService,
		JobValue:         900,
		CloseRate:        55,
		MonthlySpending:  650,
		Name:             "Riley",
		Email:            email,
		BusinessName:     "Bright Smiles",
	}
}

func TestNewRecordLegacyColumns(t *testing.T) {
	a := answers("riley@example.com")
	r := roi.Compute(a)
	rec := submission.NewRecord(a, r)

	assert.Equal(t, r.RealisticAnswerRate, rec.ActualAnswerRate)
	assert.InDelta(t, r.ActualMissedCallsWeekly/7, rec.DailyMissedCalls, 1e-9)
	assert.Equal(t, r.ActualMissedCallsMonthly, rec.MonthlyMissedCalls)
	assert.Equal(t, r.LostRevenueMonthly, rec.MonthlyLostRevenue)
	assert.Equal(t, r.LostRevenueAnnual, rec.AnnualLostRevenue)
	assert.Equal(t, "answering_service", rec.CoverageSetup)
	assert.Equal(t, r.CostPerAnsweredCall, rec.CostPerAnsweredCall)
	assert.Empty(t, rec.ID)
}

func TestStoreInsertAndList(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	a := answers("riley@example.com")
	r := roi.Compute(a)
	stored, err := s.Insert(ctx, submission.NewRecord(a, r))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())

	list, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, roi.IndustryDental, got.Industry)
	assert.Equal(t, "Bright Smiles", got.BusinessName)
	assert.InDelta(t, r.LostRevenueAnnual, got.LostRevenueAnnual, 1e-6)
	require.NotNil(t, got.CostPerAnsweredCall)
	assert.InDelta(t, *r.CostPerAnsweredCall, *got.CostPerAnsweredCall, 1e-9)
	assert.False(t, got.PDFDownloaded)
	assert.Nil(t, got.PDFDownloadedAt)
	assert.True(t, stored.CreatedAt.Equal(got.CreatedAt))
}

func TestStoreNullableColumns(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	a := answers("sky@example.com")
	a.BusinessName = ""
	a.MonthlySpending = 0
	_, err := s.Insert(ctx, submission.NewRecord(a, roi.Compute(a)))
	require.NoError(t, err)

	list, err := s.ListByEmail(ctx, "sky@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].BusinessName)
	assert.Nil(t, list[0].CostPerAnsweredCall)
}

func TestStoreListLimitAndOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	var ids []string
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		a := answers(email)
		rec, err := s.Insert(ctx, submission.NewRecord(a, roi.Compute(a)))
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}

	list, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
}

func TestStoreMarkPDFDownloadedLatestOnly(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	a := answers("riley@example.com")
	first, err := s.Insert(ctx, submission.NewRecord(a, roi.Compute(a)))
	require.NoError(t, err)
	second, err := s.Insert(ctx, submission.NewRecord(a, roi.Compute(a)))
	require.NoError(t, err)

	_, err = s.MarkPDFDownloaded(ctx, "riley@example.com")
	require.NoError(t, err)

	list, err := s.ListByEmail(ctx, "riley@example.com")
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[string]submission.Record{}
	for _, rec := range list {
		byID[rec.ID] = rec
	}
	assert.True(t, byID[second.ID].PDFDownloaded)
	assert.NotNil(t, byID[second.ID].PDFDownloadedAt)
	assert.False(t, byID[first.ID].PDFDownloaded)
}

func TestStoreMarkPDFDownloadedUnknownEmail(t *testing.T) {
	s := newStore(t)

	_, err := s.MarkPDFDownloaded(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, submission.ErrNotFound)
}
