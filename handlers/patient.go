package handlers

import (
	"net/http"
	"time"

	"panchakarma/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterPatientHandler creates a patient profile keyed by the Firebase uid.
func (hb *HandlerBundle) RegisterPatientHandler(c *gin.Context) {
	var p models.Patient
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p.ID = subjectID(c)
	p.Role = "patient"
	p.CreatedAt = time.Now().UTC()

	if err := hb.Patients.Create(&p); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetPatientProfileHandler returns the authenticated patient's profile.
func (hb *HandlerBundle) GetPatientProfileHandler(c *gin.Context) {
	p, err := hb.Patients.GetByID(subjectID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// SubmitFeedbackHandler records the patient's note about a practitioner.
func (hb *HandlerBundle) SubmitFeedbackHandler(c *gin.Context) {
	var req struct {
		PractitionerUID string `json:"practitioner_uid" binding:"required"`
		Text            string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	fb := &models.Feedback{
		ID:              uuid.New().String(),
		PractitionerUID: req.PractitionerUID,
		PatientUID:      subjectID(c),
		Text:            req.Text,
	}
	if err := hb.Feedback.Create(fb); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}
