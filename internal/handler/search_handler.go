package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gamebacklog/backend/internal/monitoring"
	"gamebacklog/backend/internal/search"
)

// minQueryLength keeps 0-1 character queries from hitting the provider.
const minQueryLength = 2

// SearchGames godoc
// @Summary      Search the external games database
// @Description  Looks up candidate games by title. Queries shorter than two characters return an empty set without contacting the provider; provider failures degrade to an empty set.
// @Tags         search
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Search query"
// @Success      200 {object} map[string]interface{}
// @Router       /search [get]
func (h *Handler) SearchGames(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < minQueryLength {
		c.JSON(http.StatusOK, gin.H{"query": query, "results": []search.Result{}})
		return
	}

	results, err := h.Search.SearchGames(c.Request.Context(), query)
	if err != nil {
		// Upstream trouble never blocks game creation; the client just
		// sees no suggestions.
		h.Log.WithError(err).Warn("Search provider failed")
		monitoring.SearchRequestsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusOK, gin.H{"query": query, "results": []search.Result{}})
		return
	}

	status := "ok"
	if len(results) == 0 {
		status = "empty"
	}
	monitoring.SearchRequestsTotal.WithLabelValues(status).Inc()
	c.JSON(http.StatusOK, gin.H{"query": query, "results": results})
}

// GetGameDetails godoc
// @Summary      Fetch one game from the external database
// @Tags         search
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Provider game ID"
// @Success      200 {object} search.Result
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /search/{id} [get]
func (h *Handler) GetGameDetails(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game id"})
		return
	}

	result, err := h.Search.GetGameDetails(c.Request.Context(), id)
	if errors.Is(err, search.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	if err != nil {
		h.Log.WithError(err).Warn("Search provider failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Search provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, result)
}
