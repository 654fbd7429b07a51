package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gamebacklog/backend/internal/models"
	"gamebacklog/backend/internal/monitoring"
)

// region --- DTOs ---

// GoalInput carries a goal supplied with a draft or patch. Ids and creation
// times are assigned by the store when absent.
type GoalInput struct {
	ID          string `json:"id"`
	Description string `json:"description" binding:"required"`
	Completed   bool   `json:"completed"`
}

// GameDraftInput defines the payload for adding a game.
type GameDraftInput struct {
	Title           string      `json:"title" binding:"required" example:"Hades"`
	Status          string      `json:"status" binding:"required,gamestatus" example:"backlog"`
	Platform        string      `json:"platform" binding:"omitempty,gameplatform" example:"steam"`
	Genre           []string    `json:"genre"`
	ImageURL        string      `json:"imageUrl"`
	HowLongToBeat   *float64    `json:"howLongToBeat"`
	MetacriticScore *int        `json:"metacriticScore"`
	UserScore       *int        `json:"userScore"`
	Goals           []GoalInput `json:"goals"`
	Notes           string      `json:"notes"`
}

// GamePatchInput defines a partial update; absent fields are untouched.
type GamePatchInput struct {
	Title           *string     `json:"title"`
	Status          *string     `json:"status" binding:"omitempty,gamestatus"`
	Platform        *string     `json:"platform" binding:"omitempty,gameplatform"`
	Genre           []string    `json:"genre"`
	ImageURL        *string     `json:"imageUrl"`
	HowLongToBeat   *float64    `json:"howLongToBeat"`
	MetacriticScore *int        `json:"metacriticScore"`
	UserScore       *int        `json:"userScore"`
	Goals           []GoalInput `json:"goals"`
	Notes           *string     `json:"notes"`
}

// StatusInput defines the payload for a status change.
type StatusInput struct {
	Status string `json:"status" binding:"required,gamestatus" example:"playing"`
}

func toGenres(names []string) []models.Genre {
	if names == nil {
		return nil
	}
	genres := make([]models.Genre, len(names))
	for i, name := range names {
		genres[i] = models.Genre(name)
	}
	return genres
}

func toGoals(inputs []GoalInput) []models.Goal {
	if inputs == nil {
		return nil
	}
	goals := make([]models.Goal, len(inputs))
	for i, in := range inputs {
		goals[i] = models.Goal{
			ID:          in.ID,
			Description: in.Description,
			Completed:   in.Completed,
		}
	}
	return goals
}

// endregion

// afterMutation keeps the library gauge current and notifies subscribers.
func (h *Handler) afterMutation(eventType string, payload interface{}) {
	monitoring.LibraryGames.Set(float64(h.Store.Len()))
	h.publish(eventType, payload)
}

// AddGame godoc
// @Summary      Add a game to the library
// @Description  Creates a game with a fresh id and dateAdded and persists the collection.
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameDraftInput true "Game draft"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /library [post]
func (h *Handler) AddGame(c *gin.Context) {
	var input GameDraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := models.Draft{
		Title:           input.Title,
		Status:          models.Status(input.Status),
		Platform:        models.Platform(input.Platform),
		Genre:           toGenres(input.Genre),
		ImageURL:        input.ImageURL,
		HowLongToBeat:   input.HowLongToBeat,
		MetacriticScore: input.MetacriticScore,
		UserScore:       input.UserScore,
		Goals:           toGoals(input.Goals),
		Notes:           input.Notes,
	}

	game, err := h.Store.AddGame(c.Request.Context(), draft)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.afterMutation("game.added", game)
	c.JSON(http.StatusCreated, h.mutationResponse(game))
}

// GetGames godoc
// @Summary      List the library
// @Description  Returns a page of games, optionally filtered by text query, status and platform.
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Param        q        query  string  false  "Case-insensitive match on title or genre"
// @Param        status   query  string  false  "Filter by status"
// @Param        platform query  string  false  "Filter by platform"
// @Param        page     query  int     false  "Page number" default(1)
// @Param        limit    query  int     false  "Items per page" default(20)
// @Success      200 {object} PaginatedResponse[models.Game]
// @Router       /library [get]
func (h *Handler) GetGames(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	games := h.Store.Filter(
		c.Query("q"),
		models.Status(c.Query("status")),
		models.Platform(c.Query("platform")),
	)
	c.JSON(http.StatusOK, paginateSlice(games, page, limit))
}

// GetGameByID godoc
// @Summary      Get a single game
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Game ID"
// @Success      200 {object} models.Game
// @Failure      404 {object} ErrorResponse
// @Router       /library/{id} [get]
func (h *Handler) GetGameByID(c *gin.Context) {
	game, err := h.Store.Game(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// UpdateGame godoc
// @Summary      Update a game
// @Description  Merges the given fields into the game. Genre and goals replace wholesale; a status change stamps dates the same way the status route does.
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string         true "Game ID"
// @Param        input body GamePatchInput true "Fields to change"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /library/{id} [patch]
func (h *Handler) UpdateGame(c *gin.Context) {
	var input GamePatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := models.Patch{
		Title:           input.Title,
		Genre:           toGenres(input.Genre),
		ImageURL:        input.ImageURL,
		HowLongToBeat:   input.HowLongToBeat,
		MetacriticScore: input.MetacriticScore,
		UserScore:       input.UserScore,
		Goals:           toGoals(input.Goals),
		Notes:           input.Notes,
	}
	if input.Status != nil {
		status := models.Status(*input.Status)
		patch.Status = &status
	}
	if input.Platform != nil {
		platform := models.Platform(*input.Platform)
		patch.Platform = &platform
	}

	game, err := h.Store.UpdateGame(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.afterMutation("game.updated", game)
	c.JSON(http.StatusOK, h.mutationResponse(game))
}

// UpdateGameStatus godoc
// @Summary      Change a game's status
// @Description  Any status may move to any other. First transition to playing stamps dateStarted; first transition to finished or completed stamps dateCompleted.
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string      true "Game ID"
// @Param        input body StatusInput true "New status"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /library/{id}/status [put]
func (h *Handler) UpdateGameStatus(c *gin.Context) {
	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.Store.UpdateGameStatus(c.Request.Context(), c.Param("id"), models.Status(input.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.afterMutation("game.updated", game)
	c.JSON(http.StatusOK, h.mutationResponse(game))
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Removes the game and all its goals.
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Game ID"
// @Success      200 {object} map[string]string "{"message": "Game deleted"}"
// @Failure      404 {object} ErrorResponse
// @Router       /library/{id} [delete]
func (h *Handler) DeleteGame(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.DeleteGame(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	h.afterMutation("game.deleted", gin.H{"id": id})
	resp := gin.H{"message": "Game deleted"}
	if err := h.Store.LastSaveError(); err != nil {
		resp["persist_warning"] = "changes may not survive a restart"
	}
	c.JSON(http.StatusOK, resp)
}

// GetStats godoc
// @Summary      Library dashboard counts
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} library.Stats
// @Router       /library/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Stats())
}

// GetCurrentlyPlaying godoc
// @Summary      Games currently being played
// @Tags         library
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Game
// @Router       /library/playing [get]
func (h *Handler) GetCurrentlyPlaying(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.CurrentlyPlaying())
}
