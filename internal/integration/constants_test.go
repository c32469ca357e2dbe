package integration_test

const (
	TestUserId      = "user-1"
	TestOtherUserId = "user-2"
	TestStaffId     = "staff-1"

	TestLocationId    = "location-1"
	TestSeatedEventId = "event-seated"
	TestOpenEventId   = "event-open"
	TestEndedEventId  = "event-ended"
	TestScheduleId    = "schedule-1"

	TestWalletMethodId   = "pm-wallet"
	TestCashMethodId     = "pm-cash"
	TestInactiveMethodId = "pm-card"

	TestSeatA1 = "seat-a1"
	TestSeatA2 = "seat-a2"
	TestSeatA3 = "seat-a3"

	// seeded wallets hold this much for user-1 through user-5
	TestWalletBalance = "500"
)
