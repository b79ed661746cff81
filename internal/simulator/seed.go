package simulator

import (
	"time"

	"github.com/iliyamo/library-seat-monitor/internal/model"
)

// Rand is the random source the simulator draws from. *rand.Rand from
// math/rand/v2 satisfies it; tests substitute scripted sequences.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// GenerateSeats builds the fixed seat collection: perZone seats for every
// zone of every floor, numbered by one running sequence. Statuses are
// uniform; occupied and hogging seats start with up to two hours on the
// clock and every seat was last touched within the hour before now.
func GenerateSeats(perZone int, rng Rand, now time.Time) []model.Seat {
	seats := make([]model.Seat, 0, len(model.Floors)*len(model.Zones)*perZone)
	seq := 1
	for _, floor := range model.Floors {
		for _, zone := range model.Zones {
			for i := 0; i < perZone; i++ {
				status := model.Statuses[rng.IntN(len(model.Statuses))]
				age := time.Duration(rng.Float64() * float64(time.Hour))
				occupied := 0
				if status.Timed() {
					occupied = rng.IntN(120)
				}
				seats = append(seats, model.Seat{
					ID:           model.SeatID(floor, zone, seq),
					Floor:        floor,
					Zone:         zone,
					Status:       status,
					OccupiedTime: occupied,
					LastUpdate:   now.Add(-age),
				})
				seq++
			}
		}
	}
	return seats
}
