package app

import (
	"time"

	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const (
	testEventID    = "event-1"
	testScheduleID = "schedule-1"
	testLocationID = "location-1"
	testSessionID  = "session-1"

	seatA1 = "seat-vip-a-1"
	seatA2 = "seat-vip-a-2"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testEvent() *domain.Event {
	return &domain.Event{
		ID:              testEventID,
		Name:            domain.NewBilingualText("Opening Night", "ليلة الافتتاح"),
		Active:          true,
		EndAt:           time.Now().Add(30 * 24 * time.Hour),
		HaveSeats:       true,
		OriginalPrice:   dec("50"),
		DiscountedPrice: ptr(dec("40")),
		LocationID:      testLocationID,
	}
}

func testSchedule() *domain.Schedule {
	return &domain.Schedule{ID: testScheduleID, EventID: testEventID, StartAt: time.Now().Add(48 * time.Hour)}
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

// testLayout is a single VIP zone with one centre row of two seats.
func testLayout() *domain.VenueLayout {
	return &domain.VenueLayout{
		LocationID: testLocationID,
		Zones: []domain.LocationZone{
			{
				ID:         "lz-vip",
				LocationID: testLocationID,
				Priority:   1,
				Zone:       domain.Zone{ID: "z-vip", Type: "VIP", Name: domain.NewBilingualText("VIP", "كبار الشخصيات")},
			},
		},
		Sections: []domain.Section{{ID: "sec-vip-center", LocationZoneID: "lz-vip", Position: domain.SectionCenter}},
		Rows:     []domain.Row{{ID: "row-vip-1", SectionID: "sec-vip-center", RowNumber: 1}},
		Seats: []domain.Seat{
			{ID: seatA2, RowID: "row-vip-1", SeatNumber: 2},
			{ID: seatA1, RowID: "row-vip-1", SeatNumber: 1, SeatLabel: "A1"},
		},
	}
}

func testPricing() []domain.ZonePricing {
	return []domain.ZonePricing{{
		LocationZoneID:  "lz-vip",
		EventID:         testEventID,
		ScheduleID:      testScheduleID,
		OriginalPrice:   dec("100"),
		DiscountedPrice: ptr(dec("80")),
	}}
}

func paymentMethod(id, name string) *domain.PaymentMethod {
	return &domain.PaymentMethod{ID: id, Name: domain.NewBilingualText(name, ""), Active: true}
}

func (r *testRepos) expectSeatMap(reserved map[string]bool) {
	r.catalog.On("GetSchedule", mock.Anything, testScheduleID).Return(testSchedule(), nil)
	r.catalog.On("GetEvent", mock.Anything, testEventID).Return(testEvent(), nil)
	r.seats.On("GetLayout", mock.Anything, testLocationID).Return(testLayout(), nil)
	r.seats.On("GetZonePricing", mock.Anything, testEventID, testScheduleID).Return(testPricing(), nil)
	r.seats.On("GetReservedSeatIDs", mock.Anything, testScheduleID, []string(nil)).Return(reserved, nil)
}
