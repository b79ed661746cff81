package simulator

import (
	"github.com/iliyamo/library-seat-monitor/internal/config"
	"github.com/iliyamo/library-seat-monitor/internal/model"
)

// Apply runs the transition function for the seat's current status and
// reports whether the status changed. Occupied and hogging seats gain a
// minute on every application; there is no upper bound.
func Apply(cfg config.SimulationConfig, s *model.Seat, rng Rand) bool {
	switch s.Status {
	case model.StatusAvailable:
		if rng.Float64() < cfg.OccupyChance {
			s.Status = model.StatusOccupied
			s.OccupiedTime = 0
			return true
		}
	case model.StatusOccupied:
		s.OccupiedTime++
		if s.OccupiedTime > cfg.HoggingThreshold && rng.Float64() < cfg.HoggingChance {
			s.Status = model.StatusHogging
			return true
		}
	case model.StatusHogging:
		s.OccupiedTime++
		if rng.Float64() < cfg.ReleaseHoggingChance {
			s.Status = model.StatusAvailable
			s.OccupiedTime = 0
			return true
		}
	case model.StatusReserved:
		if rng.Float64() < cfg.ReleaseReservedChance {
			s.Status = model.StatusAvailable
			s.OccupiedTime = 0
			return true
		}
	}
	return false
}
