package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/venue-checkout/api"
	"github.com/metinatakli/venue-checkout/internal/domain"
)

func (app *Application) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	cart, err := app.cartService.Get(r.Context(), caller.UserID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeCart(w, r, http.StatusOK, cart)
}

func (app *Application) AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	var input api.AddCartItemRequest
	if !app.decodeAndValidate(w, r, &input) {
		return
	}

	cart, err := app.cartService.AddItem(r.Context(), caller.UserID, input.EventId, input.Quantity)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeCart(w, r, http.StatusOK, cart)
}

func (app *Application) UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	var input api.UpdateCartItemRequest
	if !app.decodeAndValidate(w, r, &input) {
		return
	}

	cart, err := app.cartService.UpdateItem(r.Context(), caller.UserID, chi.URLParam(r, "itemId"), input.Quantity)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeCart(w, r, http.StatusOK, cart)
}

func (app *Application) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	cart, err := app.cartService.RemoveItem(r.Context(), caller.UserID, chi.URLParam(r, "itemId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeCart(w, r, http.StatusOK, cart)
}

func (app *Application) writeCart(w http.ResponseWriter, r *http.Request, status int, cart *domain.Cart) {
	err := app.writeJSON(w, status, toApiCart(cart), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiCart(cart *domain.Cart) api.CartResponse {
	items := make([]api.CartItem, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = api.CartItem{
			Id:            item.ID,
			EventId:       item.EventID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			OriginalPrice: item.OriginalPrice,
		}
	}

	return api.CartResponse{
		Id:             cart.ID,
		Status:         string(cart.Status),
		Items:          items,
		TotalAmount:    cart.TotalAmount,
		DiscountAmount: cart.DiscountAmount,
	}
}
