package roi

import (
	"errors"
	"fmt"
	"math"
)

// Policy holds the tunable assumptions behind the estimate. None of these
// values are derived; they are business policy and live here so they can be
// audited and changed without touching the arithmetic.
type Policy struct {
	// WeeksPerMonth converts weekly call counts to monthly ones.
	WeeksPerMonth float64
	// NewBusinessShare is the fraction of missed calls assumed to be
	// prospective new customers rather than repeat or admin calls.
	NewBusinessShare float64
	// AIAnswerRate is the answer rate, in percent, assumed for the AI
	// voice scenario.
	AIAnswerRate float64
	// Coverage maps each phone-coverage tier to its realism adjustment.
	Coverage CoverageTable
}

const (
	DefaultWeeksPerMonth    = 4.33
	DefaultNewBusinessShare = 0.60
	DefaultAIAnswerRate     = 95.0
)

// Adjustment discounts a self-reported answer rate. The rate is multiplied
// by Factor and then, when HasCeiling is set, capped at Ceiling percent.
type Adjustment struct {
	Factor     float64 `json:"factor"`
	Ceiling    float64 `json:"ceiling,omitempty"`
	HasCeiling bool    `json:"hasCeiling"`
}

// Apply returns the realistic rate for a perceived rate.
func (a Adjustment) Apply(perceived float64) float64 {
	realistic := perceived * a.Factor
	if a.HasCeiling && realistic > a.Ceiling {
		realistic = a.Ceiling
	}
	return realistic
}

// CoverageTable is the tier -> adjustment configuration.
type CoverageTable map[Coverage]Adjustment

// Adjust applies the tier's adjustment. Tiers missing from the table leave
// the rate untouched.
func (t CoverageTable) Adjust(c Coverage, perceived float64) float64 {
	adj, ok := t[c]
	if !ok {
		return perceived
	}
	return adj.Apply(perceived)
}

// DefaultCoverageTable returns the shipped realism table.
//
// These factors are provisional: the authoritative tier values have not
// been confirmed by the business owner. Deployments override them with
// ROI_COVERAGE_FACTORS and ROI_COVERAGE_CEILINGS.
func DefaultCoverageTable() CoverageTable {
	return CoverageTable{
		CoverageAlwaysStaffed:    {Factor: 0.95},
		CoverageAnsweringService: {Factor: 0.85},
		CoverageBusinessHours:    {Factor: 0.70},
		CoverageOwnerAnswers:     {Factor: 0.60},
		CoverageVoicemailOnly:    {Factor: 0.50, Ceiling: 30, HasCeiling: true},
	}
}

// DefaultPolicy returns a fresh copy of the default assumptions.
func DefaultPolicy() Policy {
	return Policy{
		WeeksPerMonth:    DefaultWeeksPerMonth,
		NewBusinessShare: DefaultNewBusinessShare,
		AIAnswerRate:     DefaultAIAnswerRate,
		Coverage:         DefaultCoverageTable(),
	}
}

// Validate reports every way p could break the estimate's guarantees:
// realistic rates above perceived ones, or a coverage tier that could
// outperform the AI scenario and produce negative recovered revenue.
func (p Policy) Validate() error {
	var errs []error

	if !finite(p.WeeksPerMonth) || p.WeeksPerMonth <= 0 {
		errs = append(errs, fmt.Errorf("weeks per month must be positive, got %v", p.WeeksPerMonth))
	}
	if !finite(p.NewBusinessShare) || p.NewBusinessShare < 0 || p.NewBusinessShare > 1 {
		errs = append(errs, fmt.Errorf("new business share must be within [0,1], got %v", p.NewBusinessShare))
	}
	if !finite(p.AIAnswerRate) || p.AIAnswerRate < 0 || p.AIAnswerRate > 100 {
		errs = append(errs, fmt.Errorf("ai answer rate must be within [0,100], got %v", p.AIAnswerRate))
	}

	for _, c := range Coverages() {
		adj, ok := p.Coverage[c]
		if !ok {
			errs = append(errs, fmt.Errorf("coverage %q: missing adjustment", c))
			continue
		}
		if !finite(adj.Factor) || adj.Factor < 0 || adj.Factor > 1 {
			errs = append(errs, fmt.Errorf("coverage %q: factor must be within [0,1], got %v", c, adj.Factor))
			continue
		}
		if adj.HasCeiling && (!finite(adj.Ceiling) || adj.Ceiling < 0 || adj.Ceiling > 100) {
			errs = append(errs, fmt.Errorf("coverage %q: ceiling must be within [0,100], got %v", c, adj.Ceiling))
			continue
		}
		if best := adj.Apply(100); best > p.AIAnswerRate {
			errs = append(errs, fmt.Errorf("coverage %q: best realistic rate %v exceeds ai answer rate %v", c, best, p.AIAnswerRate))
		}
	}
	for c := range p.Coverage {
		if !c.Valid() {
			errs = append(errs, fmt.Errorf("coverage %q: unknown tier", c))
		}
	}

	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
