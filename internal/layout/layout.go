// Package layout places seats on the floor map. Coordinates are
// percentages of the map's width and height.
package layout

import (
	"math"

	"github.com/iliyamo/library-seat-monitor/internal/model"
)

// Rect is an area of the map in percent.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ZoneArea is a labelled seat zone.
type ZoneArea struct {
	Zone  model.Zone `json:"zone"`
	Label string     `json:"label"`
	Rect
}

// Padding is the gap between seats and around the zone edge.
const Padding = 1.5

// minCell keeps seats legible in crowded zones.
const minCell = 3

// Default is the zone arrangement used on every floor.
var Default = []ZoneArea{
	{Zone: model.ZoneQuiet, Label: "Quiet Zone", Rect: Rect{X: 5, Y: 5, Width: 30, Height: 40}},
	{Zone: model.ZoneGroup, Label: "Group Study", Rect: Rect{X: 40, Y: 5, Width: 30, Height: 40}},
	{Zone: model.ZoneComputer, Label: "Computer Zone", Rect: Rect{X: 75, Y: 5, Width: 20, Height: 40}},
}

// Area returns the default area for a zone.
func Area(z model.Zone) (ZoneArea, bool) {
	for _, a := range Default {
		if a.Zone == z {
			return a, true
		}
	}
	return ZoneArea{}, false
}

// Columns is the seat grid width per zone.
func Columns(z model.Zone) int {
	switch z {
	case model.ZoneComputer:
		return 2
	case model.ZoneGroup:
		return 4
	default:
		return 3
	}
}

// Position returns the rectangle of the index-th of total seats in zone.
// Seats fill the zone row by row.
func Position(z model.Zone, index, total int) Rect {
	area, ok := Area(z)
	if !ok || total < 1 || index < 0 {
		return Rect{Width: minCell, Height: minCell}
	}
	cols := Columns(z)
	rows := (total + cols - 1) / cols
	col := index % cols
	row := index / cols

	w := math.Max(minCell, (area.Width-Padding*float64(cols+1))/float64(cols))
	h := math.Max(minCell, (area.Height-Padding*float64(rows+1))/float64(rows))
	return Rect{
		X:      area.X + Padding + float64(col)*(w+Padding),
		Y:      area.Y + Padding + float64(row)*(h+Padding),
		Width:  w,
		Height: h,
	}
}
