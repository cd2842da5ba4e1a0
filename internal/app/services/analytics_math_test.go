package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name string
		gpas []float64
		want string
	}{
		{name: "no terms", gpas: nil, want: TrendStable},
		{name: "single term", gpas: []float64{7.5}, want: TrendStable},
		{name: "two equal terms", gpas: []float64{7.0, 7.0}, want: TrendStable},
		{name: "improving", gpas: []float64{6.0, 6.5, 7.5, 8.0}, want: TrendImproving},
		{name: "declining", gpas: []float64{8.0, 7.5, 6.5, 6.0}, want: TrendDeclining},
		{name: "movement within threshold", gpas: []float64{7.0, 7.2, 7.1, 7.3}, want: TrendStable},
		{name: "just above threshold", gpas: []float64{7.0, 7.0, 7.31, 7.31}, want: TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyTrend(tt.gpas))
		})
	}
}

func TestPercentileRank(t *testing.T) {
	t.Run("empty cohort defaults to midpoint", func(t *testing.T) {
		assert.Equal(t, 50.0, percentileRank(nil, 8.0))
	})

	t.Run("zero gpa defaults to midpoint", func(t *testing.T) {
		assert.Equal(t, 50.0, percentileRank([]float64{7.0, 8.0}, 0))
	})

	t.Run("counts strictly lower members", func(t *testing.T) {
		cohort := []float64{6.0, 7.0, 8.0, 9.0}
		assert.Equal(t, 50.0, percentileRank(cohort, 8.0))
		assert.Equal(t, 75.0, percentileRank(cohort, 8.5))
	})

	t.Run("stays within bounds", func(t *testing.T) {
		cohort := []float64{5.0, 6.0, 7.0}
		assert.Equal(t, 0.0, percentileRank(cohort, 4.0))
		assert.Equal(t, 100.0, percentileRank(cohort, 10.0))
	})
}

func TestMedianOf(t *testing.T) {
	assert.Equal(t, 0.0, medianOf(nil))
	assert.Equal(t, 7.0, medianOf([]float64{9.0, 7.0, 5.0}))
	assert.Equal(t, 7.5, medianOf([]float64{9.0, 7.0, 8.0, 6.0}))
}

func TestGpaHistogram(t *testing.T) {
	dist := gpaHistogram([]float64{9.5, 9.0, 8.2, 7.0, 6.5, 5.9, 3.0})

	assert.Equal(t, 2, dist["9.0-10.0"])
	assert.Equal(t, 1, dist["8.0-8.9"])
	assert.Equal(t, 1, dist["7.0-7.9"])
	assert.Equal(t, 1, dist["6.0-6.9"])
	assert.Equal(t, 2, dist["Below 6.0"])

	t.Run("empty input keeps all buckets at zero", func(t *testing.T) {
		empty := gpaHistogram(nil)
		assert.Len(t, empty, 5)
		for bucket, count := range empty {
			assert.Zero(t, count, "bucket %s", bucket)
		}
	})
}

func TestGradeBand(t *testing.T) {
	assert.Equal(t, "A+", gradeBand(9.2))
	assert.Equal(t, "A", gradeBand(8.0))
	assert.Equal(t, "B+", gradeBand(7.9))
	assert.Equal(t, "B", gradeBand(6.0))
	assert.Equal(t, "C", gradeBand(5.5))
	assert.Equal(t, "Below C", gradeBand(4.99))
}
