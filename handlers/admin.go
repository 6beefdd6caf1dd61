package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminPendingPractitionersHandler lists profiles awaiting verification.
func (hb *HandlerBundle) AdminPendingPractitionersHandler(c *gin.Context) {
	list, err := hb.Practitioners.ListPendingReview(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"practitioners": list})
}

// AdminApprovePractitionerHandler marks a practitioner verified.
func (hb *HandlerBundle) AdminApprovePractitionerHandler(c *gin.Context) {
	if err := hb.Practitioners.Approve(c.Request.Context(), c.Param("practitionerUID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}

// AdminPatientsHandler lists all registered patients.
func (hb *HandlerBundle) AdminPatientsHandler(c *gin.Context) {
	list, err := hb.Patients.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": list})
}
