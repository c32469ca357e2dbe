package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Route("/schedules/{scheduleId}", func(r chi.Router) {
		r.Get("/seat-map", app.GetSeatMapHandler)
		r.Get("/zones", app.GetZonesHandler)
		r.Get("/zones/{zoneId}/sections", app.GetSectionsHandler)
		r.Get("/sections/{sectionId}/rows", app.GetRowsHandler)
		r.Get("/rows/{rowId}/seats", app.GetSeatsHandler)
		r.Post("/seats/availability", app.CheckSeatAvailabilityHandler)
		r.Post("/seats/validation", app.ValidateSeatsHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Post("/sessions", app.CreateSessionHandler)
		r.Route("/sessions/{sessionId}", func(r chi.Router) {
			r.Get("/", app.GetSessionHandler)
			r.Post("/cancel", app.CancelSessionHandler)
			r.Post("/seats/toggle", app.ToggleSeatHandler)
			r.Delete("/seats", app.ClearSessionSeatsHandler)
			r.Delete("/seats/{seatId}", app.RemoveSessionSeatHandler)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", app.GetCartHandler)
			r.Post("/items", app.AddCartItemHandler)
			r.Patch("/items/{itemId}", app.UpdateCartItemHandler)
			r.Delete("/items/{itemId}", app.RemoveCartItemHandler)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/direct", app.DirectCheckoutHandler)
			r.Post("/cart", app.CartCheckoutHandler)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", app.GetWalletHandler)
			r.Post("/top-ups", app.TopUpWalletHandler)
		})

		r.Route("/transactions/{transactionId}", func(r chi.Router) {
			r.Post("/complete", app.CompleteTransactionHandler)
			r.Post("/cancel", app.CancelTransactionHandler)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", app.GetBookingsHandler)
			r.Get("/{bookingId}", app.GetBookingHandler)
			r.Post("/{bookingId}/confirm", app.ConfirmBookingHandler)
			r.Post("/{bookingId}/usage", app.UseBookingHandler)
		})
	})

	return r
}
