// Package submission persists every completed calculation as a lead row
// and tracks whether the lead downloaded their report.
package submission

import (
	"time"

	"github.com/revaya/roicalc/internal/roi"
)

// Record is one row of calculator_submissions: the contact details, the
// raw answers, every computed figure and the legacy summary columns older
// dashboards still read.
type Record struct {
	ID string `json:"id"`

	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name,omitempty"`

	Industry         roi.Industry `json:"industry_type"`
	CallsPerWeek     float64      `json:"calls_per_week"`
	AnswerPercentage float64      `json:"answer_percentage"`
	PhoneCoverage    roi.Coverage `json:"phone_coverage"`
	JobValue         float64      `json:"job_value"`
	CloseRate        float64      `json:"close_rate"`
	MonthlySpending  float64      `json:"monthly_spending"`

	MonthlyCallVolume        float64  `json:"monthly_call_volume"`
	PerceivedAnswerRate      float64  `json:"perceived_answer_rate"`
	RealisticAnswerRate      float64  `json:"realistic_answer_rate"`
	CoverageSetup            string   `json:"coverage_setup"`
	PerceivedMissedWeekly    float64  `json:"perceived_missed_weekly"`
	PerceivedMissedMonthly   float64  `json:"perceived_missed_monthly"`
	ActualMissedWeekly       float64  `json:"actual_missed_weekly"`
	ActualMissedMonthly      float64  `json:"actual_missed_monthly"`
	NewBusinessMissedMonthly float64  `json:"new_business_missed_monthly"`
	LostCustomersMonthly     float64  `json:"lost_customers_monthly"`
	LostRevenueMonthly       float64  `json:"lost_revenue_monthly"`
	LostRevenueAnnual        float64  `json:"lost_revenue_annual"`
	AIMissedWeekly           float64  `json:"ai_missed_weekly"`
	AIMissedMonthly          float64  `json:"ai_missed_monthly"`
	RevenueRecoveredMonthly  float64  `json:"revenue_recovered_monthly"`
	RevenueRecoveredAnnual   float64  `json:"revenue_recovered_annual"`
	CostPerAnsweredCall      *float64 `json:"cost_per_answered_call"`

	ActualAnswerRate   float64 `json:"actual_answer_rate"`
	DailyMissedCalls   float64 `json:"daily_missed_calls"`
	MonthlyMissedCalls float64 `json:"monthly_missed_calls"`
	MonthlyLostRevenue float64 `json:"monthly_lost_revenue"`
	AnnualLostRevenue  float64 `json:"annual_lost_revenue"`

	PDFDownloaded   bool       `json:"pdf_downloaded"`
	PDFDownloadedAt *time.Time `json:"pdf_downloaded_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewRecord flattens answers and their results into a row. ID and
// CreatedAt are assigned on insert.
func NewRecord(a roi.Answers, r roi.Results) Record {
	return Record{
		Name:         a.Name,
		Email:        a.Email,
		BusinessName: a.BusinessName,

		Industry:         a.Industry,
		CallsPerWeek:     a.CallsPerWeek,
		AnswerPercentage: a.AnswerPercentage,
		PhoneCoverage:    a.PhoneCoverage,
		JobValue:         a.JobValue,
		CloseRate:        a.CloseRate,
		MonthlySpending:  a.MonthlySpending,

		MonthlyCallVolume:        r.MonthlyCallVolume,
		PerceivedAnswerRate:      r.PerceivedAnswerRate,
		RealisticAnswerRate:      r.RealisticAnswerRate,
		CoverageSetup:            string(a.PhoneCoverage),
		PerceivedMissedWeekly:    r.PerceivedMissedCallsWeekly,
		PerceivedMissedMonthly:   r.PerceivedMissedCallsMonthly,
		ActualMissedWeekly:       r.ActualMissedCallsWeekly,
		ActualMissedMonthly:      r.ActualMissedCallsMonthly,
		NewBusinessMissedMonthly: r.NewBusinessMissedMonthly,
		LostCustomersMonthly:     r.LostCustomersMonthly,
		LostRevenueMonthly:       r.LostRevenueMonthly,
		LostRevenueAnnual:        r.LostRevenueAnnual,
		AIMissedWeekly:           r.AIMissedCallsWeekly,
		AIMissedMonthly:          r.AIMissedCallsMonthly,
		RevenueRecoveredMonthly:  r.RevenueRecoveredMonthly,
		RevenueRecoveredAnnual:   r.RevenueRecoveredAnnual,
		CostPerAnsweredCall:      r.CostPerAnsweredCall,

		ActualAnswerRate:   r.RealisticAnswerRate,
		DailyMissedCalls:   r.ActualMissedCallsWeekly / 7,
		MonthlyMissedCalls: r.ActualMissedCallsMonthly,
		MonthlyLostRevenue: r.LostRevenueMonthly,
		AnnualLostRevenue:  r.LostRevenueAnnual,
	}
}
