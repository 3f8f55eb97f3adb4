// Package quiz describes the step-by-step questionnaire served to the front
// end. It only carries presentation metadata; the answers it collects are
// computed by package roi.
package quiz

import "github.com/revaya/roicalc/internal/roi"

type QuestionType string

const (
	TypeDropdown QuestionType = "dropdown"
	TypeSlider   QuestionType = "slider"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Question struct {
	ID           int          `json:"id"`
	AnswerKey    string       `json:"answerKey"`
	Type         QuestionType `json:"type"`
	QuestionText string       `json:"questionText"`
	Options      []Option     `json:"options,omitempty"`
	Min          *float64     `json:"min,omitempty"`
	Max          float64      `json:"max,omitempty"`
	Step         float64      `json:"step,omitempty"`
	Default      float64      `json:"default,omitempty"`
	Prefix       string       `json:"prefix,omitempty"`
	Suffix       string       `json:"suffix,omitempty"`
	Tip          string       `json:"tip,omitempty"`
	Optional     bool         `json:"optional,omitempty"`
}

// ContactField is one input on the final step.
type ContactField struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// Steps is the number of screens: every question plus the contact form.
func Steps() int {
	return len(Questions()) + 1
}

// Questions returns the questionnaire in display order.
func Questions() []Question {
	return []Question{
		{
			ID:           1,
			AnswerKey:    "industry",
			Type:         TypeDropdown,
			QuestionText: "What industry is your business in?",
			Options:      industryOptions(),
		},
		{
			ID:           2,
			AnswerKey:    "callsPerWeek",
			Type:         TypeSlider,
			QuestionText: "How many inbound calls does your business get per week?",
			Min:          bound(5),
			Max:          500,
			Step:         5,
			Default:      50,
			Tip:          "Include calls to every line: main number, mobile and tracking numbers.",
		},
		{
			ID:           3,
			AnswerKey:    "answerPercentage",
			Type:         TypeSlider,
			QuestionText: "What percentage of those calls do you think get answered live?",
			Min:          bound(0),
			Max:          100,
			Step:         5,
			Default:      80,
			Suffix:       "%",
		},
		{
			ID:           4,
			AnswerKey:    "phoneCoverage",
			Type:         TypeDropdown,
			QuestionText: "How are your phones covered today?",
			Options:      coverageOptions(),
		},
		{
			ID:           5,
			AnswerKey:    "jobValue",
			Type:         TypeSlider,
			QuestionText: "What is your average job or customer value?",
			Min:          bound(50),
			Max:          20000,
			Step:         50,
			Default:      500,
			Prefix:       "$",
			Tip:          "We pre-filled a typical value for your industry.",
		},
		{
			ID:           6,
			AnswerKey:    "closeRate",
			Type:         TypeSlider,
			QuestionText: "Out of every 10 new callers, how many become customers?",
			Min:          bound(5),
			Max:          100,
			Step:         5,
			Default:      30,
			Suffix:       "%",
		},
		{
			ID:           7,
			AnswerKey:    "monthlySpending",
			Type:         TypeSlider,
			QuestionText: "How much do you spend per month on phone coverage (staff, answering service)?",
			Min:          bound(0),
			Max:          10000,
			Step:         100,
			Prefix:       "$",
			Optional:     true,
		},
	}
}

func ContactFields() []ContactField {
	return []ContactField{
		{Key: "name", Label: "Name", Required: true},
		{Key: "email", Label: "Email", Required: true},
		{Key: "businessName", Label: "Business Name", Required: false},
	}
}

// Prefill returns the job value and close rate suggested for industry.
func Prefill(industry roi.Industry) (jobValue, closeRate float64, ok bool) {
	d, ok := industry.Defaults()
	if !ok {
		return 0, 0, false
	}
	return d.JobValue, d.CloseRate, true
}

// bound keeps a zero slider minimum in the encoded catalogue.
func bound(v float64) *float64 {
	return &v
}

func industryOptions() []Option {
	var opts []Option
	for _, i := range roi.Industries() {
		opts = append(opts, Option{Value: string(i), Label: i.Label()})
	}
	return opts
}

func coverageOptions() []Option {
	var opts []Option
	for _, c := range roi.Coverages() {
		opts = append(opts, Option{Value: string(c), Label: c.Label()})
	}
	return opts
}
