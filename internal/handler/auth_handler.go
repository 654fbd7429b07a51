package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"gamebacklog/backend/pkg/token"
)

// LoginInput defines the structure for owner login.
type LoginInput struct {
	Password string `json:"password" binding:"required" example:"hunter2hunter2"`
}

const tokenTTL = time.Hour * 24 * 30 // one device token per month is plenty

// Login godoc
// @Summary      Exchange the owner password for a device token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Owner password"
// @Success      200 {object} map[string]string "{"token": "..."}"
// @Failure      401 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.PassHash, []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	signed, err := token.Generate(h.Secret, tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed})
}
