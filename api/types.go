// Package api holds the JSON request and response bodies of the HTTP surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

// SeatValidationErrorResponse lists every problem found with a seat selection.
type SeatValidationErrorResponse struct {
	Message         string    `json:"message"`
	RequestId       string    `json:"requestId"`
	Timestamp       time.Time `json:"timestamp"`
	Missing         []string  `json:"missing"`
	OutsideLocation []string  `json:"outsideLocation"`
	Unavailable     []string  `json:"unavailable"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type Availability struct {
	TotalSeats     int `json:"totalSeats"`
	AvailableSeats int `json:"availableSeats"`
}

// Seat map

type ZonePricing struct {
	OriginalPrice   decimal.Decimal  `json:"originalPrice"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice,omitempty"`
	Price           decimal.Decimal  `json:"price"`
}

type Seat struct {
	Id         string `json:"id"`
	SeatNumber int    `json:"seatNumber"`
	SeatLabel  string `json:"seatLabel,omitempty"`
	Available  bool   `json:"available"`
}

type Row struct {
	Id        string `json:"id"`
	RowNumber int    `json:"rowNumber"`
	Availability
	Seats []Seat `json:"seats,omitempty"`
}

type Section struct {
	Id       string `json:"id"`
	Position string `json:"position"`
	Availability
	Rows []Row `json:"rows,omitempty"`
}

type Zone struct {
	Id       string       `json:"id"`
	Type     string       `json:"type"`
	Name     string       `json:"name"`
	Priority int          `json:"priority"`
	Pricing  *ZonePricing `json:"pricing"`
	Availability
	Sections []Section `json:"sections,omitempty"`
}

type SeatMapResponse struct {
	ScheduleId string `json:"scheduleId"`
	EventId    string `json:"eventId"`
	LocationId string `json:"locationId"`
	Availability
	Zones []Zone `json:"zones"`
}

type ZonesResponse struct {
	Zones []Zone `json:"zones"`
}

type SectionsResponse struct {
	Sections []Section `json:"sections"`
}

type RowsResponse struct {
	Rows []Row `json:"rows"`
}

type SeatsResponse struct {
	Seats []Seat `json:"seats"`
}

type SeatIdsRequest struct {
	SeatIds []string `json:"seatIds" validate:"required,min=1,max=50,dive,required"`
}

type SeatAvailabilityResponse struct {
	Availability map[string]bool `json:"availability"`
}

type SeatPlacement struct {
	SeatId          string `json:"seatId"`
	ZoneType        string `json:"zoneType"`
	SectionPosition string `json:"sectionPosition"`
	RowNumber       int    `json:"rowNumber"`
	SeatNumber      int    `json:"seatNumber"`
	SeatLabel       string `json:"seatLabel,omitempty"`
}

type SeatValidationResponse struct {
	Seats []SeatPlacement `json:"seats"`
}

// Sessions

type CreateSessionRequest struct {
	EventId    string `json:"eventId" validate:"required"`
	ScheduleId string `json:"scheduleId" validate:"required"`
}

type ToggleSeatRequest struct {
	ZoneType        string `json:"zoneType" validate:"required"`
	SectionPosition string `json:"sectionPosition" validate:"required,section_position"`
	RowNumber       int    `json:"rowNumber" validate:"required,min=1"`
	SeatNumber      int    `json:"seatNumber" validate:"required,min=1"`
}

type Session struct {
	Id         string    `json:"id"`
	Code       string    `json:"code"`
	EventId    string    `json:"eventId"`
	ScheduleId string    `json:"scheduleId"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SessionSeat struct {
	SeatPlacement
	Price *decimal.Decimal `json:"price"`
}

type SessionResponse struct {
	Session    Session         `json:"session"`
	Seats      []SessionSeat   `json:"seats"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type ToggleSeatResponse struct {
	Action    string        `json:"action"`
	Seat      SeatPlacement `json:"seat"`
	HeldSeats int           `json:"heldSeats"`
}

// Cart

type AddCartItemRequest struct {
	EventId  string `json:"eventId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type CartItem struct {
	Id            string          `json:"id"`
	EventId       string          `json:"eventId"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
}

type CartResponse struct {
	Id             string          `json:"id"`
	Status         string          `json:"status"`
	Items          []CartItem      `json:"items"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

// Checkout

type DirectCheckoutRequest struct {
	EventId         string `json:"eventId" validate:"required"`
	Quantity        int    `json:"quantity" validate:"required,min=1"`
	PaymentMethodId string `json:"paymentMethodId" validate:"required"`
	SessionId       string `json:"sessionId,omitempty"`
}

type CartCheckoutRequest struct {
	CartId          string `json:"cartId" validate:"required"`
	PaymentMethodId string `json:"paymentMethodId" validate:"required"`
}

type Transaction struct {
	Id        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Channel   string          `json:"channel"`
	Action    string          `json:"action"`
	Status    string          `json:"status"`
	WalletId  *string         `json:"walletId,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type BookingSeat struct {
	SeatPlacement
}

type Booking struct {
	Id              string          `json:"id"`
	BookingNumber   string          `json:"bookingNumber"`
	EventId         string          `json:"eventId"`
	ScheduleId      *string         `json:"scheduleId,omitempty"`
	Quantity        int             `json:"quantity"`
	UsedQuantity    int             `json:"usedQuantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Status          string          `json:"status"`
	TransactionId   string          `json:"transactionId"`
	PaymentMethodId string          `json:"paymentMethodId"`
	Seats           []BookingSeat   `json:"seats,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type CheckoutResponse struct {
	Transaction Transaction `json:"transaction"`
	Bookings    []Booking   `json:"bookings"`
}

// Payments and bookings

type Wallet struct {
	Id       string          `json:"id"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	Active   bool            `json:"active"`
}

type TopUpRequest struct {
	Amount          decimal.Decimal `json:"amount" validate:"required,positive_amount"`
	PaymentMethodId string          `json:"paymentMethodId" validate:"required"`
}

type TransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type BookingResponse struct {
	Booking Booking `json:"booking"`
}

type BookingsResponse struct {
	Bookings []Booking `json:"bookings"`
	Metadata Metadata  `json:"metadata"`
}

type UseBookingRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
