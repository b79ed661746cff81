// Package analytics builds the dashboard's chart data. Only the status
// distribution reflects the seat store; the other series are fabricated
// for display.
package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/library-seat-monitor/internal/model"
	"github.com/iliyamo/library-seat-monitor/internal/repository"
	"github.com/iliyamo/library-seat-monitor/internal/timeutil"
)

// Rand is the random source for the fabricated series.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Series is a labelled numeric series.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// CountSeries is a labelled integer series.
type CountSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Distribution is the live status breakdown with its chart colours.
type Distribution struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

// Report carries all four charts.
type Report struct {
	GeneratedAt  time.Time    `json:"generated_at"`
	Occupancy    Series       `json:"occupancy"`
	Distribution Distribution `json:"distribution"`
	PeakHours    Series       `json:"peak_hours"`
	HoggingTrend CountSeries  `json:"hogging_trend"`
}

var (
	distributionLabels = []string{"Available", "Occupied", "Seat Hogging", "Reserved"}
	distributionColors = []string{"#28a745", "#ffc107", "#dc3545", "#6c757d"}
	peakLabels         = []string{"8am", "10am", "12pm", "2pm", "4pm", "6pm", "8pm", "10pm"}
	weekLabels         = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
)

// Generator produces reports.
type Generator struct {
	repo  *repository.SeatRepo
	clock timeutil.Clock

	mu  sync.Mutex
	rng Rand
}

// NewGenerator constructs a Generator.
func NewGenerator(repo *repository.SeatRepo, rng Rand, clock timeutil.Clock) *Generator {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Generator{repo: repo, rng: rng, clock: clock}
}

// Report builds a fresh report. Fabricated series change on every call.
func (g *Generator) Report(ctx context.Context) (Report, error) {
	st, err := g.repo.Stats(ctx)
	if err != nil {
		return Report{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return Report{
		GeneratedAt:  g.clock.Now(),
		Occupancy:    g.occupancy(),
		Distribution: NewDistribution(st),
		PeakHours:    g.peakHours(),
		HoggingTrend: g.hoggingTrend(),
	}, nil
}

// NewDistribution maps status counts onto the doughnut chart.
func NewDistribution(st model.SeatStats) Distribution {
	return Distribution{
		Labels: append([]string(nil), distributionLabels...),
		Values: []int{st.Available, st.Occupied, st.Hogging, st.Reserved},
		Colors: append([]string(nil), distributionColors...),
	}
}

// occupancy is 24 hourly rates in [50,90).
func (g *Generator) occupancy() Series {
	s := Series{Labels: make([]string, 24), Values: make([]float64, 24)}
	for h := 0; h < 24; h++ {
		s.Labels[h] = fmt.Sprintf("%d:00", h)
		s.Values[h] = g.rng.Float64()*40 + 50
	}
	return s
}

// peakHours puts the midday slots (10am to 4pm) in [80,95) and the rest
// in [40,70).
func (g *Generator) peakHours() Series {
	s := Series{Labels: append([]string(nil), peakLabels...), Values: make([]float64, len(peakLabels))}
	for i := range s.Values {
		if i >= 2 && i <= 5 {
			s.Values[i] = g.rng.Float64()*15 + 80
		} else {
			s.Values[i] = g.rng.Float64()*30 + 40
		}
	}
	return s
}

// hoggingTrend is a daily incident count in [5,35).
func (g *Generator) hoggingTrend() CountSeries {
	s := CountSeries{Labels: append([]string(nil), weekLabels...), Values: make([]int, len(weekLabels))}
	for i := range s.Values {
		s.Values[i] = g.rng.IntN(30) + 5
	}
	return s
}
