package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"moneykeeper/internal/logger"
	"moneykeeper/internal/service"
	"moneykeeper/internal/utils"
	"moneykeeper/models"
)

// statsResponse is the JSON body of the per-table stats endpoint.
type statsResponse struct {
	Total float64 `json:"total"`
}

// userIDFromRequest extracts the authenticated user's ID put into the
// context by the auth middleware. A missing ID means the handler was reached
// without authentication, which is a wiring defect; the request is rejected
// with 401.
func userIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no user ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// recordIDFromRequest parses the "{id}" URL parameter.
func recordIDFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. An absent parameter
// yields zero, which the aggregation queries treat as "no constraint".
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %q query parameter", name)
	}
	return value, nil
}

// monthYearFromQuery parses the optional "month" and "year" constraints
// shared by the aggregation endpoints. A month outside 1..12 is rejected.
func monthYearFromQuery(r *http.Request) (month, year int, err error) {
	month, err = queryInt(r, "month")
	if err != nil {
		return 0, 0, err
	}
	if month > 12 {
		return 0, 0, fmt.Errorf("invalid %q query parameter", "month")
	}

	year, err = queryInt(r, "year")
	if err != nil {
		return 0, 0, err
	}

	return month, year, nil
}

// filterFromQuery assembles a RecordFilter from the list endpoint's query
// parameters.
func filterFromQuery(r *http.Request) (models.RecordFilter, error) {
	month, year, err := monthYearFromQuery(r)
	if err != nil {
		return models.RecordFilter{}, err
	}

	query := r.URL.Query()
	return models.RecordFilter{
		Category:  query.Get("category"),
		Month:     month,
		Year:      year,
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
		Search:    query.Get("search"),
	}, nil
}

func (h *Handler) createRecord(svc service.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		var record models.Record
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			log.Err(err).Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}
		record.UserID = userID

		created, err := svc.Create(r.Context(), record)
		if err != nil {
			log.Err(err).Msg("record creation failed")
			writeError(w, err)
			return
		}

		utils.WriteJSON(w, created, http.StatusCreated)
	}
}

func (h *Handler) listRecords(svc service.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		filter, err := filterFromQuery(r)
		if err != nil {
			log.Err(err).Msg("invalid filter parameters")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		records, err := svc.List(r.Context(), userID, filter)
		if err != nil {
			log.Err(err).Msg("record listing failed")
			writeError(w, err)
			return
		}

		utils.WriteJSON(w, records, http.StatusOK)
	}
}

func (h *Handler) getRecord(svc service.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		id, err := recordIDFromRequest(r)
		if err != nil {
			log.Err(err).Msg("invalid record id")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		record, err := svc.Get(r.Context(), userID, id)
		if err != nil {
			log.Err(err).Int64("id", id).Msg("record lookup failed")
			writeError(w, err)
			return
		}

		utils.WriteJSON(w, record, http.StatusOK)
	}
}

func (h *Handler) updateRecord(svc service.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		id, err := recordIDFromRequest(r)
		if err != nil {
			log.Err(err).Msg("invalid record id")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var update models.RecordUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Err(err).Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), userID, id, update)
		if err != nil {
			log.Err(err).Int64("id", id).Msg("record update failed")
			writeError(w, err)
			return
		}

		utils.WriteJSON(w, updated, http.StatusOK)
	}
}

func (h *Handler) deleteRecord(svc service.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		id, err := recordIDFromRequest(r)
		if err != nil {
			log.Err(err).Msg("invalid record id")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), userID, id); err != nil {
			log.Err(err).Int64("id", id).Msg("record deletion failed")
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) recordStats(svc service.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		month, year, err := monthYearFromQuery(r)
		if err != nil {
			log.Err(err).Msg("invalid stats parameters")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		total, err := svc.Stats(r.Context(), userID, month, year)
		if err != nil {
			log.Err(err).Msg("stats computation failed")
			writeError(w, err)
			return
		}

		utils.WriteJSON(w, statsResponse{Total: total}, http.StatusOK)
	}
}

func (h *Handler) recordsByCategory(svc service.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		month, year, err := monthYearFromQuery(r)
		if err != nil {
			log.Err(err).Msg("invalid category breakdown parameters")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		breakdown, err := svc.ByCategory(r.Context(), userID, month, year)
		if err != nil {
			log.Err(err).Msg("category breakdown failed")
			writeError(w, err)
			return
		}

		utils.WriteJSON(w, breakdown, http.StatusOK)
	}
}

func (h *Handler) recordsMonthly(svc service.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		year, err := queryInt(r, "year")
		if err != nil {
			log.Err(err).Msg("invalid monthly parameters")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		monthly, err := svc.Monthly(r.Context(), userID, year)
		if err != nil {
			log.Err(err).Msg("monthly aggregation failed")
			writeError(w, err)
			return
		}

		utils.WriteJSON(w, monthly, http.StatusOK)
	}
}
