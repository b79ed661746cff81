// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import (
	"time"

	"github.com/iliyamo/library-seat-monitor/internal/model"
)

// SeatEvent is published whenever the simulator (or a staff override)
// moves a seat to a different status. It carries enough context for
// downstream consumers to log or aggregate without querying the service.
type SeatEvent struct {
	SeatID          string       `json:"seat_id"`
	Floor           string       `json:"floor"`
	Zone            model.Zone   `json:"zone"`
	From            model.Status `json:"from"`
	To              model.Status `json:"to"`
	OccupiedMinutes int          `json:"occupied_minutes"`
	Source          string       `json:"source"` // simulator | staff
	ChangedAt       time.Time    `json:"changed_at"`
}

// NewSeatEvent builds the event for a seat that just left status from.
func NewSeatEvent(s model.Seat, from model.Status, source string) SeatEvent {
	return SeatEvent{
		SeatID:          s.ID,
		Floor:           s.Floor,
		Zone:            s.Zone,
		From:            from,
		To:              s.Status,
		OccupiedMinutes: s.OccupiedTime,
		Source:          source,
		ChangedAt:       s.LastUpdate.UTC(),
	}
}
