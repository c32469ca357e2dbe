package domain

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type SectionPosition string

const (
	SectionLeft   SectionPosition = "LEFT"
	SectionCenter SectionPosition = "CENTER"
	SectionRight  SectionPosition = "RIGHT"
)

func ParseSectionPosition(s string) (SectionPosition, error) {
	p := SectionPosition(strings.ToUpper(strings.TrimSpace(s)))

	switch p {
	case SectionLeft, SectionCenter, SectionRight:
		return p, nil
	}

	return "", BadRequest("invalid section position %q", s)
}

// Rank orders sections left to right.
func (p SectionPosition) Rank() int {
	switch p {
	case SectionLeft:
		return 0
	case SectionCenter:
		return 1
	case SectionRight:
		return 2
	}

	return 3
}

type Zone struct {
	ID   string
	Type string
	Name BilingualText
}

// LocationZone binds a zone category to a venue.
type LocationZone struct {
	ID         string
	LocationID string
	Zone       Zone
	Priority   int
}

type Section struct {
	ID             string
	LocationZoneID string
	Position       SectionPosition
}

type Row struct {
	ID        string
	SectionID string
	RowNumber int
	Order     int
}

type Seat struct {
	ID         string
	RowID      string
	SeatNumber int
	SeatLabel  string
}

type ZonePricing struct {
	LocationZoneID  string
	EventID         string
	ScheduleID      string
	OriginalPrice   decimal.Decimal
	DiscountedPrice *decimal.Decimal
}

func (p ZonePricing) Price() decimal.Decimal {
	return EffectivePrice(p.OriginalPrice, p.DiscountedPrice)
}

// VenueLayout is the flat hierarchy of one location as stored.
type VenueLayout struct {
	LocationID string
	Zones      []LocationZone
	Sections   []Section
	Rows       []Row
	Seats      []Seat
}

// SeatPlacement locates a seat in its venue hierarchy. It is also the snapshot persisted with a
// reservation so that historical bookings stay readable after the venue is reconfigured.
type SeatPlacement struct {
	SeatID          string
	LocationID      string
	LocationZoneID  string
	ZoneType        string
	SectionPosition SectionPosition
	RowNumber       int
	SeatNumber      int
	SeatLabel       string
}

// SeatLocator addresses a seat the way a customer reads it off the map.
type SeatLocator struct {
	ZoneType        string
	SectionPosition SectionPosition
	RowNumber       int
	SeatNumber      int
}

func (l SeatLocator) String() string {
	return fmt.Sprintf("%s/%s/row %d/seat %d", l.ZoneType, l.SectionPosition, l.RowNumber, l.SeatNumber)
}

type Availability struct {
	TotalSeats     int
	AvailableSeats int
}

func (a *Availability) add(o Availability) {
	a.TotalSeats += o.TotalSeats
	a.AvailableSeats += o.AvailableSeats
}

type SeatMap struct {
	ScheduleID string
	EventID    string
	LocationID string
	Availability
	Zones []ZoneNode
}

type ZoneNode struct {
	LocationZone LocationZone
	Pricing      *ZonePricing
	Availability
	Sections []SectionNode
}

type SectionNode struct {
	Section Section
	Availability
	Rows []RowNode
}

type RowNode struct {
	Row Row
	Availability
	Seats []SeatNode
}

type SeatNode struct {
	Seat      Seat
	Available bool
}

// BuildSeatMap assembles the hierarchy in canonical order (zone priority, section position,
// row number, seat number) and rolls availability up every level. A seat is available unless
// reserved contains its id.
func BuildSeatMap(schedule *Schedule, layout *VenueLayout, pricing []ZonePricing, reserved map[string]bool) *SeatMap {
	seatsByRow := make(map[string][]Seat)
	for _, seat := range layout.Seats {
		seatsByRow[seat.RowID] = append(seatsByRow[seat.RowID], seat)
	}

	rowsBySection := make(map[string][]Row)
	for _, row := range layout.Rows {
		rowsBySection[row.SectionID] = append(rowsBySection[row.SectionID], row)
	}

	sectionsByZone := make(map[string][]Section)
	for _, section := range layout.Sections {
		sectionsByZone[section.LocationZoneID] = append(sectionsByZone[section.LocationZoneID], section)
	}

	pricingByZone := make(map[string]ZonePricing, len(pricing))
	for _, p := range pricing {
		pricingByZone[p.LocationZoneID] = p
	}

	zones := slices.Clone(layout.Zones)
	slices.SortStableFunc(zones, func(a, b LocationZone) int {
		return cmp.Or(cmp.Compare(a.Priority, b.Priority), cmp.Compare(a.ID, b.ID))
	})

	seatMap := &SeatMap{
		ScheduleID: schedule.ID,
		EventID:    schedule.EventID,
		LocationID: layout.LocationID,
		Zones:      make([]ZoneNode, 0, len(zones)),
	}

	for _, zone := range zones {
		zoneNode := ZoneNode{LocationZone: zone, Sections: []SectionNode{}}
		if p, ok := pricingByZone[zone.ID]; ok {
			zoneNode.Pricing = &p
		}

		sections := sectionsByZone[zone.ID]
		slices.SortStableFunc(sections, func(a, b Section) int {
			return cmp.Or(cmp.Compare(a.Position.Rank(), b.Position.Rank()), cmp.Compare(a.ID, b.ID))
		})

		for _, section := range sections {
			sectionNode := SectionNode{Section: section, Rows: []RowNode{}}

			rows := rowsBySection[section.ID]
			slices.SortStableFunc(rows, func(a, b Row) int {
				return cmp.Or(cmp.Compare(a.RowNumber, b.RowNumber), cmp.Compare(a.Order, b.Order), cmp.Compare(a.ID, b.ID))
			})

			for _, row := range rows {
				rowNode := RowNode{Row: row, Seats: []SeatNode{}}

				seats := seatsByRow[row.ID]
				slices.SortStableFunc(seats, func(a, b Seat) int {
					return cmp.Or(cmp.Compare(a.SeatNumber, b.SeatNumber), cmp.Compare(a.ID, b.ID))
				})

				for _, seat := range seats {
					available := !reserved[seat.ID]
					rowNode.Seats = append(rowNode.Seats, SeatNode{Seat: seat, Available: available})
					rowNode.TotalSeats++
					if available {
						rowNode.AvailableSeats++
					}
				}

				sectionNode.add(rowNode.Availability)
				sectionNode.Rows = append(sectionNode.Rows, rowNode)
			}

			zoneNode.add(sectionNode.Availability)
			zoneNode.Sections = append(zoneNode.Sections, sectionNode)
		}

		seatMap.add(zoneNode.Availability)
		seatMap.Zones = append(seatMap.Zones, zoneNode)
	}

	return seatMap
}

func (m *SeatMap) Zone(locationZoneID string) (*ZoneNode, bool) {
	for i := range m.Zones {
		if m.Zones[i].LocationZone.ID == locationZoneID {
			return &m.Zones[i], true
		}
	}

	return nil, false
}

func (m *SeatMap) Section(sectionID string) (*SectionNode, bool) {
	for i := range m.Zones {
		for j := range m.Zones[i].Sections {
			if m.Zones[i].Sections[j].Section.ID == sectionID {
				return &m.Zones[i].Sections[j], true
			}
		}
	}

	return nil, false
}

func (m *SeatMap) Row(rowID string) (*RowNode, bool) {
	for i := range m.Zones {
		for j := range m.Zones[i].Sections {
			section := &m.Zones[i].Sections[j]
			for k := range section.Rows {
				if section.Rows[k].Row.ID == rowID {
					return &section.Rows[k], true
				}
			}
		}
	}

	return nil, false
}

// Locate resolves a customer-facing locator to the seat's placement. Zone types match
// case-insensitively.
func (m *SeatMap) Locate(loc SeatLocator) (SeatPlacement, bool) {
	for _, zone := range m.Zones {
		if !strings.EqualFold(zone.LocationZone.Zone.Type, loc.ZoneType) {
			continue
		}

		for _, section := range zone.Sections {
			if section.Section.Position != loc.SectionPosition {
				continue
			}

			for _, row := range section.Rows {
				if row.Row.RowNumber != loc.RowNumber {
					continue
				}

				for _, seat := range row.Seats {
					if seat.Seat.SeatNumber == loc.SeatNumber {
						return placementOf(m.LocationID, zone, section, row, seat), true
					}
				}
			}
		}
	}

	return SeatPlacement{}, false
}

// Placements indexes every seat of the map by id.
func (m *SeatMap) Placements() map[string]SeatPlacement {
	placements := make(map[string]SeatPlacement, m.TotalSeats)

	for _, zone := range m.Zones {
		for _, section := range zone.Sections {
			for _, row := range section.Rows {
				for _, seat := range row.Seats {
					placements[seat.Seat.ID] = placementOf(m.LocationID, zone, section, row, seat)
				}
			}
		}
	}

	return placements
}

func placementOf(locationID string, zone ZoneNode, section SectionNode, row RowNode, seat SeatNode) SeatPlacement {
	return SeatPlacement{
		SeatID:          seat.Seat.ID,
		LocationID:      locationID,
		LocationZoneID:  zone.LocationZone.ID,
		ZoneType:        zone.LocationZone.Zone.Type,
		SectionPosition: section.Section.Position,
		RowNumber:       row.Row.RowNumber,
		SeatNumber:      seat.Seat.SeatNumber,
		SeatLabel:       seat.Seat.SeatLabel,
	}
}

type SeatMapRepository interface {
	GetLayout(ctx context.Context, locationID string) (*VenueLayout, error)
	GetZonePricing(ctx context.Context, eventID, scheduleID string) ([]ZonePricing, error)
	GetSeatPlacements(ctx context.Context, seatIDs []string) (map[string]SeatPlacement, error)
	// GetReservedSeatIDs returns the reserved subset of seatIDs for the schedule, or every
	// reserved seat of the schedule when seatIDs is empty.
	GetReservedSeatIDs(ctx context.Context, scheduleID string, seatIDs []string) (map[string]bool, error)
}
