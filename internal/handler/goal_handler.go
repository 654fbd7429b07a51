package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AddGoalInput defines the payload for attaching a goal to a game.
type AddGoalInput struct {
	Description string `json:"description" binding:"required" example:"Finish the main story"`
}

// AddGoal godoc
// @Summary      Add a goal to a game
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path string       true "Game ID"
// @Param        input body AddGoalInput true "Goal description"
// @Success      201 {object} models.Goal
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /library/{id}/goals [post]
func (h *Handler) AddGoal(c *gin.Context) {
	var input AddGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.Store.AddGoal(c.Request.Context(), c.Param("id"), input.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.afterMutation("goal.added", goal)
	c.JSON(http.StatusCreated, goal)
}

// ToggleGoal godoc
// @Summary      Toggle a goal's completed flag
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "Game ID"
// @Param        goalID path string true "Goal ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /library/{id}/goals/{goalID}/toggle [put]
func (h *Handler) ToggleGoal(c *gin.Context) {
	game, err := h.Store.ToggleGoal(c.Request.Context(), c.Param("id"), c.Param("goalID"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.afterMutation("game.updated", game)
	c.JSON(http.StatusOK, h.mutationResponse(game))
}

// RemoveGoal godoc
// @Summary      Remove a goal from a game
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "Game ID"
// @Param        goalID path string true "Goal ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /library/{id}/goals/{goalID} [delete]
func (h *Handler) RemoveGoal(c *gin.Context) {
	game, err := h.Store.RemoveGoal(c.Request.Context(), c.Param("id"), c.Param("goalID"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.afterMutation("game.updated", game)
	c.JSON(http.StatusOK, h.mutationResponse(game))
}
