package report

import (
	"math"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func printer() *message.Printer {
	return message.NewPrinter(language.AmericanEnglish)
}

// maxWhole is the largest magnitude rendered through int64.
const maxWhole = 1 << 53

// FormatCurrency renders whole dollars with thousands separators: $12,345.
func FormatCurrency(v float64) string {
	switch {
	case math.IsNaN(v):
		return "$0"
	case math.Abs(v) >= maxWhole:
		if v < 0 {
			return printer().Sprintf("-$%.0f", -v)
		}
		return printer().Sprintf("$%.0f", v)
	}
	n := int64(math.Round(v))
	if n < 0 {
		return printer().Sprintf("-$%d", -n)
	}
	return printer().Sprintf("$%d", n)
}

// FormatNumber renders at most one decimal place, dropping it for whole
// values: 1,299 or 86.6.
func FormatNumber(v float64) string {
	r := math.Round(v*10) / 10
	if r == math.Trunc(r) {
		return printer().Sprintf("%d", int64(r))
	}
	return printer().Sprintf("%.1f", r)
}

// FormatAnswerRateGap shows a perceived-over-realistic gap as a loss.
func FormatAnswerRateGap(gap float64) string {
	sign := "+"
	if gap > 0 {
		sign = "-"
	}
	return sign + printer().Sprintf("%d", int64(math.Abs(math.Round(gap)))) + "%"
}

// FormatMissedGap shows extra missed calls revealed by the realism discount.
func FormatMissedGap(gap float64) string {
	return "+" + FormatNumber(gap)
}

// FormatMonthlyMissedGap is FormatMissedGap rounded to whole calls.
func FormatMonthlyMissedGap(gap float64) string {
	return "+" + printer().Sprintf("%d", int64(math.Round(gap)))
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Filename is the download name for a business's report on date.
func Filename(businessName string, date time.Time) string {
	slug := "business"
	if name := strings.TrimSpace(businessName); name != "" {
		slug = strings.ToLower(nonAlnum.ReplaceAllString(name, "-"))
	}
	return "missed-call-report-" + slug + "-" + date.Format("2006-01-02") + ".pdf"
}
