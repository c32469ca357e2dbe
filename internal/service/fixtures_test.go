package service

import (
	"io"
	"log/slog"
	"time"

	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	testUserID      = "user-1"
	testOtherUserID = "user-2"
	testEventID     = "event-1"
	testScheduleID  = "schedule-1"
	testLocationID  = "location-1"
	testSessionID   = "session-1"
	testCartID      = "cart-1"

	testWalletMethodID = "pm-wallet"
	testCashMethodID   = "pm-cash"
	testCardMethodID   = "pm-card"

	seatVIP35 = "seat-vip-c-3-5"
	seatVIP36 = "seat-vip-c-3-6"
	seatVIP11 = "seat-vip-c-1-1"
	seatVIPL1 = "seat-vip-l-1-1"
	seatSTD1  = "seat-std-r-1-1"
	seatSTD2  = "seat-std-r-1-2"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T {
	return &v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testEvent() *domain.Event {
	return &domain.Event{
		ID:              testEventID,
		Name:            domain.NewBilingualText("Riyadh Season Opening", "افتتاح موسم الرياض"),
		Active:          true,
		EndAt:           testNow.Add(30 * 24 * time.Hour),
		HaveSeats:       true,
		OriginalPrice:   dec("50"),
		DiscountedPrice: ptr(dec("40")),
		LocationID:      testLocationID,
	}
}

func testSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:      testScheduleID,
		EventID: testEventID,
		StartAt: testNow.Add(48 * time.Hour),
	}
}

func testSession(status domain.SessionStatus) *domain.Session {
	return &domain.Session{
		ID:         testSessionID,
		UserID:     testUserID,
		EventID:    testEventID,
		ScheduleID: testScheduleID,
		Code:       "AbCdEfGh",
		Status:     status,
	}
}

func paymentMethod(id, name string) *domain.PaymentMethod {
	return &domain.PaymentMethod{
		ID:     id,
		Name:   domain.NewBilingualText(name, ""),
		Active: true,
	}
}

// testLayout is a venue with a priced VIP zone (center and left sections) and an unpriced
// standard zone, deliberately listed out of canonical order.
func testLayout() *domain.VenueLayout {
	return &domain.VenueLayout{
		LocationID: testLocationID,
		Zones: []domain.LocationZone{
			{ID: "lz-std", LocationID: testLocationID, Priority: 2, Zone: domain.Zone{ID: "z-std", Type: "STANDARD"}},
			{ID: "lz-vip", LocationID: testLocationID, Priority: 1, Zone: domain.Zone{ID: "z-vip", Type: "VIP"}},
		},
		Sections: []domain.Section{
			{ID: "sec-vip-center", LocationZoneID: "lz-vip", Position: domain.SectionCenter},
			{ID: "sec-vip-left", LocationZoneID: "lz-vip", Position: domain.SectionLeft},
			{ID: "sec-std-right", LocationZoneID: "lz-std", Position: domain.SectionRight},
		},
		Rows: []domain.Row{
			{ID: "row-vip-c-3", SectionID: "sec-vip-center", RowNumber: 3},
			{ID: "row-vip-c-1", SectionID: "sec-vip-center", RowNumber: 1},
			{ID: "row-vip-l-1", SectionID: "sec-vip-left", RowNumber: 1},
			{ID: "row-std-r-1", SectionID: "sec-std-right", RowNumber: 1},
		},
		Seats: []domain.Seat{
			{ID: seatVIP36, RowID: "row-vip-c-3", SeatNumber: 6},
			{ID: seatVIP35, RowID: "row-vip-c-3", SeatNumber: 5},
			{ID: seatVIP11, RowID: "row-vip-c-1", SeatNumber: 1},
			{ID: seatVIPL1, RowID: "row-vip-l-1", SeatNumber: 1},
			{ID: seatSTD2, RowID: "row-std-r-1", SeatNumber: 2},
			{ID: seatSTD1, RowID: "row-std-r-1", SeatNumber: 1},
		},
	}
}

func testPricing() []domain.ZonePricing {
	return []domain.ZonePricing{
		{
			LocationZoneID:  "lz-vip",
			EventID:         testEventID,
			ScheduleID:      testScheduleID,
			OriginalPrice:   dec("100"),
			DiscountedPrice: ptr(dec("80")),
		},
	}
}

func placement(seatID, locationZoneID, zoneType string, position domain.SectionPosition, row, seat int) domain.SeatPlacement {
	return domain.SeatPlacement{
		SeatID:          seatID,
		LocationID:      testLocationID,
		LocationZoneID:  locationZoneID,
		ZoneType:        zoneType,
		SectionPosition: position,
		RowNumber:       row,
		SeatNumber:      seat,
	}
}

func vipPlacement(seatID string, seat int) domain.SeatPlacement {
	return placement(seatID, "lz-vip", "VIP", domain.SectionCenter, 3, seat)
}
