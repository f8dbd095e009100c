package analysis

import (
	"cmp"
	"slices"
)

// Record is one issue's contribution to a duration dataset. It exists only
// within a single analysis run and is never persisted.
type Record struct {
	Number   int
	Value    float64
	Labels   []string // at least one entry; "unlabeled" sentinel when the issue has none
	Assigned bool
	Creator  string
	Title    string
	URL      string
	Month    string // calendar-month key of the record's relevant instant, e.g. "2023-06"
}

// Summary holds the headline statistics of a duration dataset.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
}

// CategoryStat aggregates one category group. Groups below the configured
// minimum sample size are suppressed before reporting.
type CategoryStat struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Median   float64 `json:"median"`
	Mean     float64 `json:"mean"`
}

// MonthPoint is one point on a monthly median trend line.
type MonthPoint struct {
	Month  string  `json:"month"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// DayBuckets are the fixed duration thresholds for distribution histograms.
// Boundary values belong to the lower bucket.
var DayBuckets = []float64{7, 30, 90}

// Summarize computes count, mean, median and upper percentiles over a numeric
// sequence. Callers must short-circuit on empty input with a no-data outcome;
// an empty sequence yields the zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Summary{
		Count:  len(values),
		Mean:   sum / float64(len(values)),
		Median: Median(values),
		P90:    Percentile(values, 0.90),
		P95:    Percentile(values, 0.95),
	}
}

// Median finds the median value in a slice of floats without mutating it.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	temp := make([]float64, len(values))
	copy(temp, values)
	slices.Sort(temp)

	n := len(temp)
	if n%2 == 1 {
		return temp[n/2]
	}
	return (temp[n/2-1] + temp[n/2]) / 2.0
}

// Percentile returns the value at quantile q (0..1) without mutating the
// input.
func Percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}

	temp := make([]float64, len(values))
	copy(temp, values)
	slices.Sort(temp)

	idx := int(float64(len(temp)) * q)
	if idx >= len(temp) {
		idx = len(temp) - 1
	}
	return temp[idx]
}

// BucketCounts distributes values across len(bounds)+1 contiguous buckets.
// A value lands in the first bucket whose upper bound it does not exceed
// (<=); everything past the last bound lands in the final bucket. The counts
// always sum to len(values).
func BucketCounts(values []float64, bounds []float64) []int {
	counts := make([]int, len(bounds)+1)
	for _, v := range values {
		placed := false
		for i, b := range bounds {
			if v <= b {
				counts[i]++
				placed = true
				break
			}
		}
		if !placed {
			counts[len(bounds)]++
		}
	}
	return counts
}

// GroupByLabel aggregates records per label with fan-out: a record carrying N
// labels contributes its value to all N groups. Groups with fewer than
// minCount records are dropped. Results are ordered by median, ascending when
// ascending is true (fastest first) and descending otherwise (stalest first);
// ties break alphabetically for determinism.
func GroupByLabel(records []Record, minCount int, ascending bool) []CategoryStat {
	groups := make(map[string][]float64)
	for _, r := range records {
		for _, label := range r.Labels {
			groups[label] = append(groups[label], r.Value)
		}
	}
	return finalizeGroups(groups, minCount, ascending)
}

// GroupByAssignment aggregates records into "assigned" and "unassigned"
// groups.
func GroupByAssignment(records []Record, minCount int) []CategoryStat {
	groups := make(map[string][]float64)
	for _, r := range records {
		key := "unassigned"
		if r.Assigned {
			key = "assigned"
		}
		groups[key] = append(groups[key], r.Value)
	}
	return finalizeGroups(groups, minCount, true)
}

func finalizeGroups(groups map[string][]float64, minCount int, ascending bool) []CategoryStat {
	var results []CategoryStat
	for category, values := range groups {
		if len(values) < minCount {
			continue
		}
		var sum float64
		for _, v := range values {
			sum += v
		}
		results = append(results, CategoryStat{
			Category: category,
			Count:    len(values),
			Median:   Median(values),
			Mean:     sum / float64(len(values)),
		})
	}

	slices.SortFunc(results, func(a, b CategoryStat) int {
		if a.Median != b.Median {
			if ascending {
				return cmp.Compare(a.Median, b.Median)
			}
			return cmp.Compare(b.Median, a.Median)
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return results
}

// MonthlyMedianSeries builds an ordered (month, median) trend line from the
// records' month keys. Months with fewer than minCount records are excluded
// from the trend (they still count toward overall summary statistics).
func MonthlyMedianSeries(records []Record, minCount int) []MonthPoint {
	byMonth := make(map[string][]float64)
	for _, r := range records {
		if r.Month == "" {
			continue
		}
		byMonth[r.Month] = append(byMonth[r.Month], r.Value)
	}

	var series []MonthPoint
	for month, values := range byMonth {
		if len(values) < minCount {
			continue
		}
		series = append(series, MonthPoint{
			Month:  month,
			Median: Median(values),
			Count:  len(values),
		})
	}

	slices.SortFunc(series, func(a, b MonthPoint) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return series
}

// TopLabels returns the n most frequent labels across the records, counting
// each record once per label it carries. Ties break alphabetically.
func TopLabels(records []Record, n int) []string {
	counts := make(map[string]int)
	for _, r := range records {
		for _, label := range r.Labels {
			counts[label]++
		}
	}

	type labelCount struct {
		label string
		count int
	}
	var ranked []labelCount
	for label, count := range counts {
		ranked = append(ranked, labelCount{label, count})
	}
	slices.SortFunc(ranked, func(a, b labelCount) int {
		if a.count != b.count {
			return cmp.Compare(b.count, a.count)
		}
		return cmp.Compare(a.label, b.label)
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]string, 0, n)
	for _, lc := range ranked[:n] {
		out = append(out, lc.label)
	}
	return out
}
