package app

import (
	"net/http"

	"github.com/metinatakli/venue-checkout/api"
	"github.com/metinatakli/venue-checkout/internal/service"
)

func (app *Application) DirectCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	var input api.DirectCheckoutRequest
	if !app.decodeAndValidate(w, r, &input) {
		return
	}

	result, err := app.checkoutService.Direct(r.Context(), caller.UserID, service.DirectPurchase{
		EventID:         input.EventId,
		Quantity:        input.Quantity,
		PaymentMethodID: input.PaymentMethodId,
		SessionID:       input.SessionId,
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeCheckout(w, r, result)
}

func (app *Application) CartCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	var input api.CartCheckoutRequest
	if !app.decodeAndValidate(w, r, &input) {
		return
	}

	result, err := app.checkoutService.Cart(r.Context(), caller.UserID, service.CartPurchase{
		CartID:          input.CartId,
		PaymentMethodID: input.PaymentMethodId,
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeCheckout(w, r, result)
}

func (app *Application) writeCheckout(w http.ResponseWriter, r *http.Request, result *service.CheckoutResult) {
	resp := api.CheckoutResponse{
		Transaction: toApiTransaction(result.Transaction),
		Bookings:    make([]api.Booking, len(result.Bookings)),
	}

	for i := range result.Bookings {
		resp.Bookings[i] = toApiBooking(&result.Bookings[i])
	}

	err := app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
