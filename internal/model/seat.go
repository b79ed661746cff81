package model

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Status is the occupancy state of a study seat.
type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusHogging   Status = "hogging"
	StatusReserved  Status = "reserved"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusAvailable, StatusOccupied, StatusHogging, StatusReserved}

// Zone is a functional area of a floor.
type Zone string

const (
	ZoneQuiet    Zone = "quiet"
	ZoneGroup    Zone = "group"
	ZoneComputer Zone = "computer"
)

// Zones lists every zone in generation order.
var Zones = []Zone{ZoneQuiet, ZoneGroup, ZoneComputer}

// Floors lists the building levels in generation order.
var Floors = []string{"1/F", "G/F", "LG1", "LG3", "LG4", "LG5"}

var (
	ErrInvalidStatus = errors.New("invalid seat status")
	ErrInvalidZone   = errors.New("invalid zone")
	ErrInvalidFloor  = errors.New("invalid floor")
)

// Seat is one study seat. OccupiedTime is in minutes and only
// meaningful while the seat is occupied or hogging.
type Seat struct {
	ID           string    `json:"id"`
	Floor        string    `json:"floor"`
	Zone         Zone      `json:"zone"`
	Status       Status    `json:"status"`
	OccupiedTime int       `json:"occupied_time"`
	LastUpdate   time.Time `json:"last_update"`
}

// SeatID builds the display id: floor with "/" replaced by "-", the
// upper-cased zone initial and the running sequence number.
func SeatID(floor string, zone Zone, seq int) string {
	floorID := strings.Replace(floor, "/", "-", 1)
	initial := strings.ToUpper(string(zone)[:1])
	return floorID + "-" + initial + "-" + strconv.Itoa(seq)
}

// Label is the human-readable status text used in charts and details.
func (s Status) Label() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusOccupied:
		return "Occupied"
	case StatusHogging:
		return "Hogging"
	case StatusReserved:
		return "Reserved"
	}
	return string(s)
}

// Timed reports whether OccupiedTime carries meaning for this status.
func (s Status) Timed() bool {
	return s == StatusOccupied || s == StatusHogging
}

// ParseStatus validates a status string.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range Statuses {
		if s == known {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// ParseZone validates a zone string.
func ParseZone(v string) (Zone, error) {
	z := Zone(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range Zones {
		if z == known {
			return z, nil
		}
	}
	return "", ErrInvalidZone
}

// ParseFloor validates a floor name. Both "1/F" and the id form "1-F"
// are accepted so floors can travel in URL query strings.
func ParseFloor(v string) (string, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	for _, f := range Floors {
		if v == f || v == strings.Replace(f, "/", "-", 1) {
			return f, nil
		}
	}
	return "", ErrInvalidFloor
}

// SeatStats counts seats per status.
type SeatStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
	Hogging   int `json:"hogging"`
	Reserved  int `json:"reserved"`
}

// Add counts one seat with the given status.
func (st *SeatStats) Add(s Status) {
	st.Total++
	switch s {
	case StatusAvailable:
		st.Available++
	case StatusOccupied:
		st.Occupied++
	case StatusHogging:
		st.Hogging++
	case StatusReserved:
		st.Reserved++
	}
}
