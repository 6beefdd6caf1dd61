package handlers

import (
	"net/http"

	"panchakarma/models"

	"github.com/gin-gonic/gin"
)

// RegisterPractitionerHandler creates a practitioner profile in Pending
// Review. The document id is the caller's Firebase uid.
func (hb *HandlerBundle) RegisterPractitionerHandler(c *gin.Context) {
	var p models.Practitioner
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p.ID = subjectID(c)

	if err := hb.Practitioners.Register(c.Request.Context(), p); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": models.VerificationPending})
}

// GetPractitionerHandler returns one practitioner profile.
func (hb *HandlerBundle) GetPractitionerHandler(c *gin.Context) {
	p, err := hb.Practitioners.GetProfile(c.Request.Context(), c.Param("practitionerUID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdatePractitionerHandler applies a partial profile update for the
// authenticated practitioner.
func (hb *HandlerBundle) UpdatePractitionerHandler(c *gin.Context) {
	var upd models.PractitionerProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Practitioners.UpdateProfile(c.Request.Context(), subjectID(c), upd); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// ListPractitionersHandler lists verified practitioners for patient browsing.
func (hb *HandlerBundle) ListPractitionersHandler(c *gin.Context) {
	list, err := hb.Practitioners.ListVerified(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"practitioners": list})
}

// PractitionerFeedbackHandler returns the feedback left for the authenticated
// practitioner.
func (hb *HandlerBundle) PractitionerFeedbackHandler(c *gin.Context) {
	list, err := hb.Feedback.ListByPractitioner(subjectID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": list})
}
