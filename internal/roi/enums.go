package roi

// Industry is the business vertical picked on the first quiz step.
type Industry string

const (
	IndustryHVAC        Industry = "hvac"
	IndustryPlumbing    Industry = "plumbing"
	IndustryElectrical  Industry = "electrical"
	IndustryRoofing     Industry = "roofing"
	IndustryLandscaping Industry = "landscaping"
	IndustryCleaning    Industry = "cleaning"
	IndustryAutoRepair  Industry = "auto_repair"
	IndustryDental      Industry = "dental"
	IndustryLegal       Industry = "legal"
	IndustryRealEstate  Industry = "real_estate"
	IndustryOther       Industry = "other"
)

// IndustryDefault pre-populates the economics questions once an industry is
// chosen. The calculator itself never reads it.
type IndustryDefault struct {
	Label     string  `json:"label"`
	JobValue  float64 `json:"jobValue"`
	CloseRate float64 `json:"closeRate"`
}

var industryDefaults = map[Industry]IndustryDefault{
	IndustryHVAC:        {Label: "HVAC", JobValue: 450, CloseRate: 40},
	IndustryPlumbing:    {Label: "Plumbing", JobValue: 400, CloseRate: 45},
	IndustryElectrical:  {Label: "Electrical", JobValue: 350, CloseRate: 40},
	IndustryRoofing:     {Label: "Roofing", JobValue: 8500, CloseRate: 25},
	IndustryLandscaping: {Label: "Landscaping", JobValue: 300, CloseRate: 35},
	IndustryCleaning:    {Label: "Cleaning Services", JobValue: 200, CloseRate: 45},
	IndustryAutoRepair:  {Label: "Auto Repair", JobValue: 500, CloseRate: 50},
	IndustryDental:      {Label: "Dental", JobValue: 1200, CloseRate: 50},
	IndustryLegal:       {Label: "Legal Services", JobValue: 3500, CloseRate: 20},
	IndustryRealEstate:  {Label: "Real Estate", JobValue: 9000, CloseRate: 10},
	IndustryOther:       {Label: "Other", JobValue: 500, CloseRate: 30},
}

var industryOrder = []Industry{
	IndustryHVAC, IndustryPlumbing, IndustryElectrical, IndustryRoofing,
	IndustryLandscaping, IndustryCleaning, IndustryAutoRepair, IndustryDental,
	IndustryLegal, IndustryRealEstate, IndustryOther,
}

// Industries lists every industry in display order.
func Industries() []Industry {
	return append([]Industry(nil), industryOrder...)
}

// Defaults returns the pre-fill values for i.
func (i Industry) Defaults() (IndustryDefault, bool) {
	d, ok := industryDefaults[i]
	return d, ok
}

func (i Industry) Label() string {
	if d, ok := industryDefaults[i]; ok {
		return d.Label
	}
	return string(i)
}

func (i Industry) Valid() bool {
	_, ok := industryDefaults[i]
	return ok
}

// Coverage is the phone-staffing arrangement; it keys the realism table.
type Coverage string

const (
	CoverageAlwaysStaffed    Coverage = "always_staffed"
	CoverageAnsweringService Coverage = "answering_service"
	CoverageBusinessHours    Coverage = "business_hours"
	CoverageOwnerAnswers     Coverage = "owner_answers"
	CoverageVoicemailOnly    Coverage = "voicemail_only"
)

var coverageLabels = map[Coverage]string{
	CoverageAlwaysStaffed:    "Always staffed (24/7 receptionist)",
	CoverageAnsweringService: "Answering service after hours",
	CoverageBusinessHours:    "Business hours only",
	CoverageOwnerAnswers:     "I answer when I can",
	CoverageVoicemailOnly:    "Mostly voicemail",
}

// Coverages lists tiers from strongest to weakest.
func Coverages() []Coverage {
	return []Coverage{
		CoverageAlwaysStaffed,
		CoverageAnsweringService,
		CoverageBusinessHours,
		CoverageOwnerAnswers,
		CoverageVoicemailOnly,
	}
}

func (c Coverage) Label() string {
	if l, ok := coverageLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Coverage) Valid() bool {
	_, ok := coverageLabels[c]
	return ok
}
