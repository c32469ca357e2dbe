package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/venue-checkout/api"
	"github.com/metinatakli/venue-checkout/internal/domain"
)

func (app *Application) GetSeatMapHandler(w http.ResponseWriter, r *http.Request) {
	seatMap, err := app.seatMapService.FullMap(r.Context(), chi.URLParam(r, "scheduleId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	lang := r.Header.Get("Accept-Language")

	resp := api.SeatMapResponse{
		ScheduleId:   seatMap.ScheduleID,
		EventId:      seatMap.EventID,
		LocationId:   seatMap.LocationID,
		Availability: toApiAvailability(seatMap.Availability),
		Zones:        toApiZones(seatMap.Zones, lang, true),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetZonesHandler(w http.ResponseWriter, r *http.Request) {
	zones, err := app.seatMapService.Zones(r.Context(), chi.URLParam(r, "scheduleId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.ZonesResponse{Zones: toApiZones(zones, r.Header.Get("Accept-Language"), false)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSectionsHandler(w http.ResponseWriter, r *http.Request) {
	sections, err := app.seatMapService.Sections(r.Context(), chi.URLParam(r, "scheduleId"), chi.URLParam(r, "zoneId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.SectionsResponse{Sections: toApiSections(sections, false)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetRowsHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := app.seatMapService.Rows(r.Context(), chi.URLParam(r, "scheduleId"), chi.URLParam(r, "sectionId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.RowsResponse{Rows: toApiRows(rows, false)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSeatsHandler(w http.ResponseWriter, r *http.Request) {
	seats, err := app.seatMapService.Seats(r.Context(), chi.URLParam(r, "scheduleId"), chi.URLParam(r, "rowId"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.SeatsResponse{Seats: toApiSeats(seats)}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CheckSeatAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	var input api.SeatIdsRequest
	if !app.decodeAndValidate(w, r, &input) {
		return
	}

	availability, err := app.seatMapService.CheckAvailability(r.Context(), chi.URLParam(r, "scheduleId"), input.SeatIds)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, api.SeatAvailabilityResponse{Availability: availability}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ValidateSeatsHandler(w http.ResponseWriter, r *http.Request) {
	var input api.SeatIdsRequest
	if !app.decodeAndValidate(w, r, &input) {
		return
	}

	placements, err := app.seatMapService.ValidateForBooking(r.Context(), chi.URLParam(r, "scheduleId"), input.SeatIds)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.SeatValidationResponse{Seats: make([]api.SeatPlacement, 0, len(input.SeatIds))}
	seen := make(map[string]bool, len(input.SeatIds))

	for _, seatID := range input.SeatIds {
		if seen[seatID] {
			continue
		}
		seen[seatID] = true

		resp.Seats = append(resp.Seats, toApiPlacement(placements[seatID]))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiAvailability(a domain.Availability) api.Availability {
	return api.Availability{
		TotalSeats:     a.TotalSeats,
		AvailableSeats: a.AvailableSeats,
	}
}

func toApiZones(zones []domain.ZoneNode, lang string, nested bool) []api.Zone {
	apiZones := make([]api.Zone, len(zones))

	for i, z := range zones {
		apiZone := api.Zone{
			Id:           z.LocationZone.ID,
			Type:         z.LocationZone.Zone.Type,
			Name:         domain.Localize(z.LocationZone.Zone.Name, lang),
			Priority:     z.LocationZone.Priority,
			Availability: toApiAvailability(z.Availability),
		}

		if z.Pricing != nil {
			apiZone.Pricing = &api.ZonePricing{
				OriginalPrice:   z.Pricing.OriginalPrice,
				DiscountedPrice: z.Pricing.DiscountedPrice,
				Price:           z.Pricing.Price(),
			}
		}

		if nested {
			apiZone.Sections = toApiSections(z.Sections, true)
		}

		apiZones[i] = apiZone
	}

	return apiZones
}

func toApiSections(sections []domain.SectionNode, nested bool) []api.Section {
	apiSections := make([]api.Section, len(sections))

	for i, s := range sections {
		apiSections[i] = api.Section{
			Id:           s.Section.ID,
			Position:     string(s.Section.Position),
			Availability: toApiAvailability(s.Availability),
		}

		if nested {
			apiSections[i].Rows = toApiRows(s.Rows, true)
		}
	}

	return apiSections
}

func toApiRows(rows []domain.RowNode, nested bool) []api.Row {
	apiRows := make([]api.Row, len(rows))

	for i, row := range rows {
		apiRows[i] = api.Row{
			Id:           row.Row.ID,
			RowNumber:    row.Row.RowNumber,
			Availability: toApiAvailability(row.Availability),
		}

		if nested {
			apiRows[i].Seats = toApiSeats(row.Seats)
		}
	}

	return apiRows
}

func toApiSeats(seats []domain.SeatNode) []api.Seat {
	apiSeats := make([]api.Seat, len(seats))

	for i, seat := range seats {
		apiSeats[i] = api.Seat{
			Id:         seat.Seat.ID,
			SeatNumber: seat.Seat.SeatNumber,
			SeatLabel:  seat.Seat.SeatLabel,
			Available:  seat.Available,
		}
	}

	return apiSeats
}

func toApiPlacement(p domain.SeatPlacement) api.SeatPlacement {
	return api.SeatPlacement{
		SeatId:          p.SeatID,
		ZoneType:        p.ZoneType,
		SectionPosition: string(p.SectionPosition),
		RowNumber:       p.RowNumber,
		SeatNumber:      p.SeatNumber,
		SeatLabel:       p.SeatLabel,
	}
}
