package http

import (
	"net/http"

	"moneykeeper/internal/logger"
	"moneykeeper/internal/utils"
)

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.services.DashboardService.Stats(r.Context(), userID)
	if err != nil {
		log.Err(err).Msg("dashboard stats failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) expenseTrend(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	year, err := queryInt(r, "year")
	if err != nil {
		log.Err(err).Msg("invalid expense trend parameters")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	trend, err := h.services.DashboardService.ExpenseTrend(r.Context(), userID, year)
	if err != nil {
		log.Err(err).Msg("expense trend failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, trend, http.StatusOK)
}

func (h *Handler) incomeVsExpense(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	year, err := queryInt(r, "year")
	if err != nil {
		log.Err(err).Msg("invalid income vs expense parameters")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	comparison, err := h.services.DashboardService.IncomeVsExpense(r.Context(), userID, year)
	if err != nil {
		log.Err(err).Msg("income vs expense failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, comparison, http.StatusOK)
}
