package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/venue-checkout/api"
	"github.com/metinatakli/venue-checkout/internal/domain"
)

func (app *Application) GetWalletHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	wallet, err := app.paymentService.GetWallet(r.Context(), caller.UserID)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.Wallet{
		Id:       wallet.ID,
		Currency: wallet.Currency,
		Amount:   wallet.Amount,
		Active:   wallet.Active,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) TopUpWalletHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	var input api.TopUpRequest
	if !app.decodeAndValidate(w, r, &input) {
		return
	}

	txn, err := app.paymentService.RequestTopUp(r.Context(), caller.UserID, input.Amount, input.PaymentMethodId)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeTransaction(w, r, http.StatusCreated, txn)
}

func (app *Application) CompleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	txn, err := app.paymentService.CompleteTransaction(r.Context(), caller, chi.URLParam(r, "transactionId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeTransaction(w, r, http.StatusOK, txn)
}

func (app *Application) CancelTransactionHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	txn, err := app.paymentService.CancelTransaction(r.Context(), caller, chi.URLParam(r, "transactionId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeTransaction(w, r, http.StatusOK, txn)
}

func (app *Application) writeTransaction(w http.ResponseWriter, r *http.Request, status int, txn *domain.Transaction) {
	err := app.writeJSON(w, status, api.TransactionResponse{Transaction: toApiTransaction(txn)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiTransaction(txn *domain.Transaction) api.Transaction {
	return api.Transaction{
		Id:        txn.ID,
		Amount:    txn.Amount,
		Currency:  txn.Currency,
		Channel:   string(txn.Channel),
		Action:    string(txn.Action),
		Status:    string(txn.Status),
		WalletId:  txn.WalletID,
		CreatedAt: txn.CreatedAt,
	}
}
