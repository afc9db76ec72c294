package services

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode"

	"farmpanel/internal/models"
)

// reportEntryLimit caps how many fleet rows a default report lists.
const reportEntryLimit = 5

// Report is a generated equipment report. Warning is set when the
// caller asked for a feature that is not built yet (custom templates);
// generation still falls through to the default format.
type Report struct {
	Type        string
	Content     string
	Warning     string
	GeneratedAt time.Time
}

type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// Generate builds a report of the given type. Custom templates are
// accepted but not rendered; a non-empty template only produces a
// warning and the default format is used. The report type is a
// presentation label and does not change the body.
func (s *ReportService) Generate(reportType, customTemplate string) (*Report, error) {
	if reportType == "" {
		reportType = "summary"
	}

	report := &Report{
		Type:        reportType,
		GeneratedAt: time.Now(),
	}

	if customTemplate != "" {
		report.Warning = "Custom template functionality is under development"
	}

	var equipment []models.Equipment
	if err := models.DB.Find(&equipment).Error; err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Equipment Report - %s</h2>\n", html.EscapeString(titleCase(reportType)))
	fmt.Fprintf(&b, "<p>Generated: %s</p>\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "<p>Total Equipment: %d</p>\n", len(equipment))
	b.WriteString("<ul>\n")

	for i, item := range equipment {
		if i >= reportEntryLimit {
			break
		}
		fmt.Fprintf(&b, "<li>%s - %s</li>\n", html.EscapeString(item.Name), html.EscapeString(item.Status))
	}

	b.WriteString("</ul>")
	report.Content = b.String()

	return report, nil
}

// titleCase upper-cases the first letter of every word and lowercases
// the rest. Any non-letter is a word boundary, so underscore-joined
// types like "annual_audit" render as "Annual_Audit".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
