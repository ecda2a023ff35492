package pipeline

import (
	"fmt"
	"testing"

	"github.com/theirongolddev/tarifa/internal/model"
)

// syntheticLog builds n entries spread over a year with a mix of zero-hour
// and underpriced projects.
func syntheticLog(n int) []model.LoggedProject {
	log := make([]model.LoggedProject, n)
	for i := range log {
		hours := float64(i%12) * 1.5
		log[i] = model.LoggedProject{
			ID:    fmt.Sprintf("p-%d", i),
			Name:  fmt.Sprintf("Project %d", i),
			Price: 80 + float64(i%37)*11.25,
			Hours: hours,
			Date:  fmt.Sprintf("2025-%02d-%02d", i%12+1, i%28+1),
		}
	}
	return log
}

func BenchmarkAggregate(b *testing.B) {
	log := syntheticLog(10_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Aggregate(log, 31.5625)
	}
}

func BenchmarkAggregateMonths(b *testing.B) {
	log := syntheticLog(10_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = AggregateMonths(log, 31.5625)
	}
}
