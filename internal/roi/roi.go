// Package roi derives the missed-call revenue estimate from a completed set
// of quiz answers. It has zero external dependencies and performs no I/O:
// the same Answers always produce the same Results.
package roi

import "math"

// Answers is the complete set of user-supplied quiz inputs for one session.
type Answers struct {
	Industry         Industry `json:"industry"`
	CallsPerWeek     float64  `json:"callsPerWeek"`
	AnswerPercentage float64  `json:"answerPercentage"`
	PhoneCoverage    Coverage `json:"phoneCoverage"`
	JobValue         float64  `json:"jobValue"`
	CloseRate        float64  `json:"closeRate"`
	MonthlySpending  float64  `json:"monthlySpending"`

	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName,omitempty"`
}

// Results is the full set of derived metrics for one Answers value. Values
// are full precision; rounding belongs to whoever displays them.
type Results struct {
	MonthlyCallVolume           float64 `json:"monthlyCallVolume"`
	PerceivedAnswerRate         float64 `json:"perceivedAnswerRate"`
	RealisticAnswerRate         float64 `json:"realisticAnswerRate"`
	PerceivedMissedCallsWeekly  float64 `json:"perceivedMissedCallsWeekly"`
	PerceivedMissedCallsMonthly float64 `json:"perceivedMissedCallsMonthly"`
	ActualMissedCallsWeekly     float64 `json:"actualMissedCallsWeekly"`
	ActualMissedCallsMonthly    float64 `json:"actualMissedCallsMonthly"`
	NewBusinessMissedMonthly    float64 `json:"newBusinessMissedMonthly"`
	LostCustomersMonthly        float64 `json:"lostCustomersMonthly"`
	LostRevenueMonthly          float64 `json:"lostRevenueMonthly"`
	LostRevenueAnnual           float64 `json:"lostRevenueAnnual"`
	AIMissedCallsWeekly         float64 `json:"aiMissedCallsWeekly"`
	AIMissedCallsMonthly        float64 `json:"aiMissedCallsMonthly"`
	RevenueRecoveredMonthly     float64 `json:"revenueRecoveredMonthly"`
	RevenueRecoveredAnnual      float64 `json:"revenueRecoveredAnnual"`

	// CostPerAnsweredCall is nil when no spend was given or when nothing is
	// answered (zero volume or zero realistic rate).
	CostPerAnsweredCall *float64 `json:"costPerAnsweredCall"`
}

// Gaps are the perception-vs-reality deltas shown next to each other in the
// results table and the exported report.
type Gaps struct {
	AnswerRate    float64 `json:"answerRate"`
	MissedWeekly  float64 `json:"missedWeekly"`
	MissedMonthly float64 `json:"missedMonthly"`
}

// Gaps is derived from already computed fields only, so every consumer
// shows the same numbers.
func (r Results) Gaps() Gaps {
	return Gaps{
		AnswerRate:    r.PerceivedAnswerRate - r.RealisticAnswerRate,
		MissedWeekly:  r.ActualMissedCallsWeekly - r.PerceivedMissedCallsWeekly,
		MissedMonthly: r.ActualMissedCallsMonthly - r.PerceivedMissedCallsMonthly,
	}
}

// Compute applies the default policy to a.
func Compute(a Answers) Results {
	return DefaultPolicy().Compute(a)
}

// Compute derives Results from a using the policy's constants and coverage
// table. It never fails; out-of-range inputs must be rejected by the caller
// (see Answers.Validate).
func (p Policy) Compute(a Answers) Results {
	var r Results

	r.MonthlyCallVolume = a.CallsPerWeek * p.WeeksPerMonth

	r.PerceivedAnswerRate = a.AnswerPercentage
	r.RealisticAnswerRate = p.Coverage.Adjust(a.PhoneCoverage, r.PerceivedAnswerRate)

	r.PerceivedMissedCallsWeekly = missed(a.CallsPerWeek, r.PerceivedAnswerRate)
	r.PerceivedMissedCallsMonthly = r.PerceivedMissedCallsWeekly * p.WeeksPerMonth

	r.ActualMissedCallsWeekly = missed(a.CallsPerWeek, r.RealisticAnswerRate)
	r.ActualMissedCallsMonthly = r.ActualMissedCallsWeekly * p.WeeksPerMonth

	r.NewBusinessMissedMonthly = r.ActualMissedCallsMonthly * p.NewBusinessShare
	r.LostCustomersMonthly = r.NewBusinessMissedMonthly * (a.CloseRate / 100)
	r.LostRevenueMonthly = r.LostCustomersMonthly * a.JobValue
	r.LostRevenueAnnual = r.LostRevenueMonthly * monthsPerYear

	r.AIMissedCallsWeekly = missed(a.CallsPerWeek, p.AIAnswerRate)
	r.AIMissedCallsMonthly = r.AIMissedCallsWeekly * p.WeeksPerMonth

	r.RevenueRecoveredMonthly = (r.ActualMissedCallsMonthly - r.AIMissedCallsMonthly) *
		p.NewBusinessShare * (a.CloseRate / 100) * a.JobValue
	r.RevenueRecoveredAnnual = r.RevenueRecoveredMonthly * monthsPerYear

	r.CostPerAnsweredCall = costPerAnsweredCall(a.MonthlySpending, r.MonthlyCallVolume, r.RealisticAnswerRate)

	return r
}

const monthsPerYear = 12

// missed returns the calls left unanswered at rate percent. Writing the
// share as (100-rate)/100 keeps whole-percent inputs exact.
func missed(calls, rate float64) float64 {
	return calls * ((100 - rate) / 100)
}

func costPerAnsweredCall(spend, monthlyVolume, realisticRate float64) *float64 {
	if !(spend > 0) {
		return nil
	}
	answered := monthlyVolume * (realisticRate / 100)
	if !(answered > 0) {
		return nil
	}
	cost := spend / answered
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return nil
	}
	return &cost
}
