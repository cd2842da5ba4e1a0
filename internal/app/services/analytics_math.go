package services

import (
	"math"
	"sort"
)

// Trend labels for a GPA series.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// trendThreshold is the minimum GPA movement counted as a real trend.
const trendThreshold = 0.3

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// classifyTrend compares the mean of the last two GPAs against the mean of
// the first two. Series shorter than two terms are stable.
func classifyTrend(gpas []float64) string {
	if len(gpas) < 2 {
		return TrendStable
	}
	early := meanOf(gpas[:2])
	recent := meanOf(gpas[len(gpas)-2:])
	switch diff := recent - early; {
	case diff > trendThreshold:
		return TrendImproving
	case diff < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// percentileRank is the share of cohort GPAs strictly below the student's,
// as a percentage. Falls back to the midpoint when the cohort carries no
// GPA data or the student has none.
func percentileRank(cohort []float64, gpa float64) float64 {
	if len(cohort) == 0 || gpa == 0 {
		return 50.0
	}
	below := 0
	for _, other := range cohort {
		if other < gpa {
			below++
		}
	}
	return round2(float64(below) / float64(len(cohort)) * 100)
}

// gpaHistogram buckets GPAs into the fixed report bands.
func gpaHistogram(gpas []float64) map[string]int {
	dist := map[string]int{
		"9.0-10.0":  0,
		"8.0-8.9":   0,
		"7.0-7.9":   0,
		"6.0-6.9":   0,
		"Below 6.0": 0,
	}
	for _, gpa := range gpas {
		switch {
		case gpa >= 9.0:
			dist["9.0-10.0"]++
		case gpa >= 8.0:
			dist["8.0-8.9"]++
		case gpa >= 7.0:
			dist["7.0-7.9"]++
		case gpa >= 6.0:
			dist["6.0-6.9"]++
		default:
			dist["Below 6.0"]++
		}
	}
	return dist
}

// gradeBand maps a mean GPA to the overview letter band.
func gradeBand(gpa float64) string {
	switch {
	case gpa >= 9.0:
		return "A+"
	case gpa >= 8.0:
		return "A"
	case gpa >= 7.0:
		return "B+"
	case gpa >= 6.0:
		return "B"
	case gpa >= 5.0:
		return "C"
	default:
		return "Below C"
	}
}

// gradeBandOrder fixes the presentation order of the overview bands.
var gradeBandOrder = []string{"A+", "A", "B+", "B", "C", "Below C"}
