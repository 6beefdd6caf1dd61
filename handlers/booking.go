package handlers

import (
	"net/http"

	"panchakarma/models"

	"github.com/gin-gonic/gin"
)

// RequestSessionHandler books a new session for the authenticated patient.
func (hb *HandlerBundle) RequestSessionHandler(c *gin.Context) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess, err := hb.Sessions.RequestSession(c.Request.Context(), subjectID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// CreatePaymentOrderHandler opens a gateway order for an unpaid session.
func (hb *HandlerBundle) CreatePaymentOrderHandler(c *gin.Context) {
	order, err := hb.Sessions.CreatePaymentOrder(c.Request.Context(), subjectID(c), c.Param("sessionID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ConfirmPaymentHandler verifies the checkout proof and schedules the session.
func (hb *HandlerBundle) ConfirmPaymentHandler(c *gin.Context) {
	var proof models.PaymentProof
	if err := c.ShouldBindJSON(&proof); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess, err := hb.Sessions.ConfirmPayment(c.Request.Context(), subjectID(c), proof)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// CancelSessionHandler cancels an unpaid session inside its window.
func (hb *HandlerBundle) CancelSessionHandler(c *gin.Context) {
	if err := hb.Sessions.CancelSession(c.Request.Context(), subjectID(c), c.Param("sessionID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// RescheduleSessionHandler moves a session to a new offered slot.
func (hb *HandlerBundle) RescheduleSessionHandler(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess, err := hb.Sessions.Reschedule(c.Request.Context(), subjectID(c), c.Param("sessionID"), req.Date, req.Time)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// CompleteSessionHandler lets the assigned practitioner mark a session done.
func (hb *HandlerBundle) CompleteSessionHandler(c *gin.Context) {
	if err := hb.Sessions.CompleteSession(c.Request.Context(), subjectID(c), c.Param("sessionID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

// PatientSessionsHandler lists the authenticated patient's sessions.
func (hb *HandlerBundle) PatientSessionsHandler(c *gin.Context) {
	views, err := hb.Sessions.PatientSessions(c.Request.Context(), subjectID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": views})
}

// PractitionerSessionsHandler lists the authenticated practitioner's sessions
// along with the count of distinct patients holding an active booking.
func (hb *HandlerBundle) PractitionerSessionsHandler(c *gin.Context) {
	views, err := hb.Sessions.PractitionerSessions(c.Request.Context(), subjectID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	active := map[string]bool{}
	for _, v := range views {
		if v.Status == models.SessionStatusPaymentPending || v.Status == models.SessionStatusScheduled {
			active[v.PatientUID] = true
		}
	}
	c.JSON(http.StatusOK, gin.H{"sessions": views, "active_patients": len(active)})
}
