package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListJourneysHandler returns the authenticated patient's journeys.
func (hb *HandlerBundle) ListJourneysHandler(c *gin.Context) {
	journeys, err := hb.Journeys.ListByPatient(c.Request.Context(), subjectID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"journeys": journeys})
}

// CompleteTaskHandler marks one journey task completed. The task is addressed
// by its position in the journey's task list.
func (hb *HandlerBundle) CompleteTaskHandler(c *gin.Context) {
	taskIndex, err := strconv.Atoi(c.Param("taskIndex"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task index must be an integer"})
		return
	}

	if err := hb.Journeys.CompleteTask(c.Request.Context(), subjectID(c), c.Param("journeyID"), taskIndex); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
