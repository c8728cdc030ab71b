package controllers

import (
	"errors"
	"net/http"

	"salonbook-backend/models"
	"salonbook-backend/scheduling"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondServiceError maps a service error to its HTTP status. Anything
// unrecognised is a collaborator failure and hides its details.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var verr *services.ValidationError
	var rerr *scheduling.RuleError

	switch {
	case errors.As(err, &verr):
		utils.RespondWithError(c, http.StatusBadRequest, verr.Error())
	case errors.As(err, &rerr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": rerr.Message, "code": rerr.Code})
	case errors.Is(err, services.ErrNoServices):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrSlotTaken),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrServiceExists),
		errors.Is(err, services.ErrServiceStillActive),
		errors.Is(err, services.ErrEmailTaken):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}

// identityFromContext returns the caller set by the auth middlewares, or
// nil for anonymous requests.
func identityFromContext(c *gin.Context) *models.Identity {
	id := c.GetString("userId")
	if id == "" {
		return nil
	}
	return &models.Identity{
		ID:          id,
		DisplayName: c.GetString("userName"),
		Email:       c.GetString("userEmail"),
		Role:        c.GetString("role"),
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID")
		return uuid.Nil, false
	}
	return id, true
}
