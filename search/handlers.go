package search

import (
	"net/http"
	"strconv"

	"eventconnect/utils"

	"github.com/julienschmidt/httprouter"
)

// SearchEvents handles GET /api/search/events?q=
func SearchEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query().Get("q")
	if query == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Query is required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := QueryEvents(r.Context(), query, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"query":  query,
		"events": events,
	})
}
