package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/venue-checkout/api"
	"github.com/metinatakli/venue-checkout/internal/domain"
)

func (app *Application) GetBookingsHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	bookings, metadata, err := app.paymentService.ListBookings(r.Context(), caller.UserID, readPagination(r))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.BookingsResponse{
		Bookings: make([]api.Booking, len(bookings)),
		Metadata: api.Metadata{
			CurrentPage:  metadata.CurrentPage,
			FirstPage:    metadata.FirstPage,
			LastPage:     metadata.LastPage,
			PageSize:     metadata.PageSize,
			TotalRecords: metadata.TotalRecords,
		},
	}

	for i := range bookings {
		resp.Bookings[i] = toApiBooking(&bookings[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	booking, err := app.paymentService.GetBooking(r.Context(), caller.UserID, chi.URLParam(r, "bookingId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeBooking(w, r, booking)
}

func (app *Application) ConfirmBookingHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	booking, err := app.paymentService.ConfirmBooking(r.Context(), caller, chi.URLParam(r, "bookingId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeBooking(w, r, booking)
}

func (app *Application) UseBookingHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	var input api.UseBookingRequest
	if !app.decodeAndValidate(w, r, &input) {
		return
	}

	booking, err := app.paymentService.AddUsedQuantity(r.Context(), caller, chi.URLParam(r, "bookingId"), input.Quantity)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeBooking(w, r, booking)
}

func (app *Application) writeBooking(w http.ResponseWriter, r *http.Request, booking *domain.Booking) {
	err := app.writeJSON(w, http.StatusOK, api.BookingResponse{Booking: toApiBooking(booking)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiBooking(b *domain.Booking) api.Booking {
	booking := api.Booking{
		Id:              b.ID,
		BookingNumber:   b.BookingNumber,
		EventId:         b.EventID,
		ScheduleId:      b.ScheduleID,
		Quantity:        b.Quantity,
		UsedQuantity:    b.UsedQuantity,
		UnitPrice:       b.UnitPrice,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		TransactionId:   b.TransactionID,
		PaymentMethodId: b.PaymentMethodID,
		CreatedAt:       b.CreatedAt,
	}

	for _, seat := range b.Seats {
		booking.Seats = append(booking.Seats, api.BookingSeat{SeatPlacement: toApiPlacement(seat.Snapshot)})
	}

	return booking
}
