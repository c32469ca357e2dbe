package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/venue-checkout/api"
	"github.com/metinatakli/venue-checkout/internal/domain"
)

func (app *Application) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	var input api.CreateSessionRequest
	if !app.decodeAndValidate(w, r, &input) {
		return
	}

	session, err := app.sessionService.Create(r.Context(), caller.UserID, input.EventId, input.ScheduleId)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.SessionResponse{
		Session: toApiSession(session),
		Seats:   []api.SessionSeat{},
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	detail, err := app.sessionService.Get(r.Context(), caller.UserID, chi.URLParam(r, "sessionId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toApiSessionDetail(detail), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ToggleSeatHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	var input api.ToggleSeatRequest
	if !app.decodeAndValidate(w, r, &input) {
		return
	}

	position, err := domain.ParseSectionPosition(input.SectionPosition)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	locator := domain.SeatLocator{
		ZoneType:        input.ZoneType,
		SectionPosition: position,
		RowNumber:       input.RowNumber,
		SeatNumber:      input.SeatNumber,
	}

	result, err := app.sessionService.ToggleSeat(r.Context(), caller.UserID, chi.URLParam(r, "sessionId"), locator)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.ToggleSeatResponse{
		Action:    string(result.Action),
		Seat:      toApiPlacement(result.Placement),
		HeldSeats: result.HeldSeats,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) RemoveSessionSeatHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	err := app.sessionService.RemoveSeat(r.Context(), caller.UserID, chi.URLParam(r, "sessionId"), chi.URLParam(r, "seatId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) ClearSessionSeatsHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	err := app.sessionService.ClearSeats(r.Context(), caller.UserID, chi.URLParam(r, "sessionId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) CancelSessionHandler(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetCaller(r)

	session, err := app.sessionService.Cancel(r.Context(), caller.UserID, chi.URLParam(r, "sessionId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.SessionResponse{
		Session: toApiSession(session),
		Seats:   []api.SessionSeat{},
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiSession(s *domain.Session) api.Session {
	return api.Session{
		Id:         s.ID,
		Code:       s.Code,
		EventId:    s.EventID,
		ScheduleId: s.ScheduleID,
		Status:     string(s.Status),
		CreatedAt:  s.CreatedAt,
	}
}

func toApiSessionDetail(d *domain.SessionDetail) api.SessionResponse {
	seats := make([]api.SessionSeat, len(d.Seats))
	for i, seat := range d.Seats {
		seats[i] = api.SessionSeat{
			SeatPlacement: toApiPlacement(seat.Placement),
			Price:         seat.Price,
		}
	}

	return api.SessionResponse{
		Session:    toApiSession(&d.Session),
		Seats:      seats,
		TotalPrice: d.TotalPrice,
	}
}
