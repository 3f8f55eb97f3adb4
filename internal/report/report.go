// Package report exports a computed estimate as the "Missed Call Reality"
// document: Markdown, HTML (goldmark) and PDF (headless Chromium).
//
// Every number shown is read from roi.Results, including the perception
// gaps, so the export always agrees with the results screen.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/revaya/roicalc/internal/roi"
)

const (
	brand       = "REVAYA AI"
	title       = "Your Missed Call Reality Report"
	ctaHeadline = "Ready to stop losing revenue?"
	ctaLink     = "https://revaya.ai/contact"
	tagline     = "Revaya AI | Reclaim Time. Build Freedom."
)

// Row is a label/value line.
type Row struct {
	Label string
	Value string
}

// ComparisonRow is one line of the perception vs. reality table.
type ComparisonRow struct {
	Metric  string
	Think   string
	Reality string
	Gap     string
}

// Document is the assembled report, independent of output format.
type Document struct {
	BusinessName string
	Industry     string
	Date         time.Time

	Comparison []ComparisonRow
	Costing    []Row
	Breakdown  []string
	AI         []Row
	AIMath     []string
	// CostPerCall is empty when no spend was reported.
	CostPerCall []string
}

// Build assembles the report for answers and the results computed from
// them. Contact fields are only used for the header.
func Build(a roi.Answers, r roi.Results, date time.Time) Document {
	gaps := r.Gaps()
	aiRate := FormatNumber(100 - percentMissed(r)) + "%"

	doc := Document{
		BusinessName: strings.TrimSpace(a.BusinessName),
		Industry:     industryLabel(a.Industry),
		Date:         date,
		Comparison: []ComparisonRow{
			{
				Metric:  "Answer Rate",
				Think:   FormatNumber(r.PerceivedAnswerRate) + "%",
				Reality: FormatNumber(r.RealisticAnswerRate) + "%",
				Gap:     FormatAnswerRateGap(gaps.AnswerRate),
			},
			{
				Metric:  "Missed/Week",
				Think:   FormatNumber(r.PerceivedMissedCallsWeekly),
				Reality: FormatNumber(r.ActualMissedCallsWeekly),
				Gap:     FormatMissedGap(gaps.MissedWeekly),
			},
			{
				Metric:  "Missed/Month",
				Think:   FormatNumber(r.PerceivedMissedCallsMonthly),
				Reality: FormatNumber(r.ActualMissedCallsMonthly),
				Gap:     FormatMonthlyMissedGap(gaps.MissedMonthly),
			},
		},
		Costing: []Row{
			{Label: "Missed calls/month", Value: FormatNumber(r.ActualMissedCallsMonthly)},
			{Label: fmt.Sprintf("At %s%% close rate", FormatNumber(a.CloseRate)), Value: FormatNumber(r.LostCustomersMonthly) + " lost"},
			{Label: "Monthly Revenue Loss", Value: FormatCurrency(r.LostRevenueMonthly)},
			{Label: "Annual Revenue Loss", Value: FormatCurrency(r.LostRevenueAnnual)},
		},
		Breakdown: []string{
			FormatNumber(r.MonthlyCallVolume) + " total calls/month",
			fmt.Sprintf("%s%% answer rate (based on coverage: %s)", FormatNumber(r.RealisticAnswerRate), a.PhoneCoverage.Label()),
			FormatNumber(r.ActualMissedCallsMonthly) + " missed calls/month",
			fmt.Sprintf("%s potential new customers (%s of missed calls)", FormatNumber(r.NewBusinessMissedMonthly), newBusinessShare(r)),
			fmt.Sprintf("%s lost customers (%s × %s%% close rate)", FormatNumber(r.LostCustomersMonthly), FormatNumber(r.NewBusinessMissedMonthly), FormatNumber(a.CloseRate)),
			fmt.Sprintf("%s/month (%s × %s avg job value)", FormatCurrency(r.LostRevenueMonthly), FormatNumber(r.LostCustomersMonthly), FormatCurrency(a.JobValue)),
		},
		AI: []Row{
			{Label: "Answer rate", Value: aiRate},
			{Label: "Missed reduced to", Value: FormatNumber(r.AIMissedCallsWeekly) + "/week"},
			{Label: "Revenue Recovered Monthly", Value: FormatCurrency(r.RevenueRecoveredMonthly)},
			{Label: "Revenue Recovered Annual", Value: FormatCurrency(r.RevenueRecoveredAnnual)},
		},
		AIMath: []string{
			fmt.Sprintf("%s answer rate vs. %s%% current", aiRate, FormatNumber(r.RealisticAnswerRate)),
			fmt.Sprintf("Missed calls drop from %s/month to %s/month", FormatNumber(r.ActualMissedCallsMonthly), FormatNumber(r.AIMissedCallsMonthly)),
			fmt.Sprintf("Revenue recovered: %s/month", FormatCurrency(r.RevenueRecoveredMonthly)),
		},
	}

	if r.CostPerAnsweredCall != nil {
		doc.CostPerCall = []string{
			fmt.Sprintf("Currently spending: %s/month", FormatCurrency(a.MonthlySpending)),
			fmt.Sprintf("Current cost per answered call: %s", FormatCurrency(*r.CostPerAnsweredCall)),
		}
	}

	return doc
}

// percentMissed recovers the AI scenario's miss rate from the results so
// the report never restates a policy constant of its own.
func percentMissed(r roi.Results) float64 {
	if r.MonthlyCallVolume == 0 {
		return 100 - roi.DefaultAIAnswerRate
	}
	return r.AIMissedCallsMonthly / r.MonthlyCallVolume * 100
}

func newBusinessShare(r roi.Results) string {
	if r.ActualMissedCallsMonthly == 0 {
		return FormatNumber(roi.DefaultNewBusinessShare*100) + "%"
	}
	return FormatNumber(r.NewBusinessMissedMonthly/r.ActualMissedCallsMonthly*100) + "%"
}

func industryLabel(i roi.Industry) string {
	if i == "" {
		return "Not specified"
	}
	return i.Label()
}

// Markdown renders the document as GitHub-flavoured Markdown.
func (d Document) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n## %s\n\n", brand, title)

	if d.BusinessName != "" {
		fmt.Fprintf(&b, "Business: %s  \n", escape(d.BusinessName))
	}
	fmt.Fprintf(&b, "Industry: %s  \n", escape(d.Industry))
	fmt.Fprintf(&b, "Report Date: %s\n\n", d.Date.Format("January 2, 2006"))

	b.WriteString("### Perception vs. Reality\n\n")
	b.WriteString("| Metric | What You Think | Reality | Gap |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, row := range d.Comparison {
		fmt.Fprintf(&b, "| %s | %s | %s | **%s** |\n", row.Metric, row.Think, row.Reality, row.Gap)
	}
	b.WriteString("\n")

	b.WriteString("### What This Is Costing You\n\n")
	writeRows(&b, d.Costing)

	b.WriteString("#### Calculation Breakdown\n\n")
	writeBullets(&b, d.Breakdown)

	b.WriteString("### With 24/7 AI Voice Coverage\n\n")
	writeRows(&b, d.AI)

	b.WriteString("#### How AI Changes The Math\n\n")
	writeBullets(&b, d.AIMath)

	if len(d.CostPerCall) > 0 {
		b.WriteString("#### Cost Per Answered Call\n\n")
		writeBullets(&b, d.CostPerCall)
	}

	fmt.Fprintf(&b, "---\n\n**%s**\n\nSchedule your free strategy call: <%s>\n\n%s\n", ctaHeadline, ctaLink, tagline)

	return b.String()
}

func writeRows(b *strings.Builder, rows []Row) {
	b.WriteString("| | |\n|---|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | **%s** |\n", escape(r.Label), r.Value)
	}
	b.WriteString("\n")
}

func writeBullets(b *strings.Builder, lines []string) {
	for _, l := range lines {
		fmt.Fprintf(b, "- %s\n", escape(l))
	}
	b.WriteString("\n")
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "|", `\|`, "<", `\<`, ">", `\>`, "#", `\#`,
)

// escape neutralises Markdown syntax in user-supplied text.
func escape(s string) string {
	return mdEscaper.Replace(s)
}
