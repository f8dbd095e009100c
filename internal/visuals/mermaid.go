package visuals

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"issueflow/internal/analysis"
)

// GenerateBucketChart creates a Mermaid bar chart of the duration distribution
// buckets (fast/normal/slow/stale or their aging equivalents).
func GenerateBucketChart(buckets []analysis.BucketCount, title string) string {
	if len(buckets) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0
	for _, b := range buckets {
		labels = append(labels, fmt.Sprintf("\"%s\"", safeLabel(b.Name)))
		values = append(values, fmt.Sprintf("%d", b.Count))
		if b.Count > maxVal {
			maxVal = b.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Issues\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateTrendChart creates a Mermaid line chart of the monthly median
// time-to-close: one line for all issues plus one per top label, aligned on
// the union of months. Months where a label's line has no gated data point
// carry 0 so every line spans the same x-axis.
func GenerateTrendChart(trend analysis.TrendSeries) string {
	if len(trend.Overall) == 0 {
		return ""
	}

	monthSet := make(map[string]bool)
	for _, p := range trend.Overall {
		monthSet[p.Month] = true
	}
	for _, series := range trend.ByLabel {
		for _, p := range series {
			monthSet[p.Month] = true
		}
	}
	var months []string
	for m := range monthSet {
		months = append(months, m)
	}
	slices.Sort(months)

	var labels []string
	maxY := 0.0
	for _, m := range months {
		labels = append(labels, fmt.Sprintf("\"%s\"", m))
	}

	lineFor := func(series []analysis.MonthPoint) string {
		byMonth := make(map[string]float64, len(series))
		for _, p := range series {
			byMonth[p.Month] = p.Median
			if p.Median > maxY {
				maxY = p.Median
			}
		}
		var values []string
		for _, m := range months {
			values = append(values, fmt.Sprintf("%.1f", byMonth[m]))
		}
		return strings.Join(values, ", ")
	}

	overall := lineFor(trend.Overall)
	var labelLines []string
	for _, label := range trend.Labels {
		labelLines = append(labelLines, lineFor(trend.ByLabel[label]))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Monthly Median Time-to-Close\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Median Days\" 0 --> %d\n", int(math.Ceil(maxY*1.2))+1))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", overall))
	for _, line := range labelLines {
		sb.WriteString(fmt.Sprintf("    line [%s]\n", line))
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateOldestChart creates a Mermaid bar chart of the oldest open issues
// by age.
func GenerateOldestChart(oldest []analysis.Record) string {
	if len(oldest) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0
	for _, r := range oldest {
		labels = append(labels, fmt.Sprintf("\"#%d\"", r.Number))
		values = append(values, fmt.Sprintf("%.1f", r.Value))
		if r.Value > maxVal {
			maxVal = r.Value
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Oldest Open Issues (Days)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Age (Days)\" 0 --> %d\n", int(math.Ceil(maxVal*1.1))+1))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateActivityChart creates a Mermaid line chart of a user's monthly
// activity, one line per label.
func GenerateActivityChart(report analysis.ActivityReport) string {
	if len(report.Months) == 0 {
		return ""
	}

	var labels []string
	for _, m := range report.Months {
		labels = append(labels, fmt.Sprintf("\"%s\"", m))
	}

	maxVal := 0
	var lines []string
	for _, label := range report.Labels {
		var values []string
		for _, v := range report.Series[label] {
			values = append(values, fmt.Sprintf("%d", v))
			if v > maxVal {
				maxVal = v
			}
		}
		lines = append(lines, strings.Join(values, ", "))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Monthly Activity: %s\"\n", safeLabel(report.User)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Events\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("    line [%s]\n", line))
	}
	sb.WriteString("```")
	return sb.String()
}

// safeLabel strips characters that break Mermaid's axis label parsing.
func safeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.ReplaceAll(s, "\n", " ")
}
