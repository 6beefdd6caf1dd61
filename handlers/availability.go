package handlers

import (
	"net/http"

	"panchakarma/models"

	"github.com/gin-gonic/gin"
)

// GetAvailabilityHandler returns a practitioner's bookable slots over the
// rolling horizon, as a date -> times map.
func (hb *HandlerBundle) GetAvailabilityHandler(c *gin.Context) {
	slots, err := hb.Availability.GetAvailability(c.Request.Context(), c.Param("practitionerUID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": slots})
}

// SetRecurringHandler replaces the authenticated practitioner's weekly schedule.
func (hb *HandlerBundle) SetRecurringHandler(c *gin.Context) {
	var recurring map[string]models.RecurringRule
	if err := c.ShouldBindJSON(&recurring); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Practitioners.SetRecurring(c.Request.Context(), subjectID(c), recurring); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// SetOverrideHandler pins the slot list for one date; an empty list closes it.
func (hb *HandlerBundle) SetOverrideHandler(c *gin.Context) {
	var req models.DateOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Practitioners.SetOverride(c.Request.Context(), subjectID(c), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
