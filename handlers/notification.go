package handlers

import (
	"net/http"

	"panchakarma/models"

	"github.com/gin-gonic/gin"
)

// ListNotificationsHandler returns the caller's inbox, newest first.
func (hb *HandlerBundle) ListNotificationsHandler(c *gin.Context) {
	list, err := hb.Notifications.ListForRecipient(c.Request.Context(), subjectID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// GetNotificationPreferencesHandler returns the caller's delivery toggles.
func (hb *HandlerBundle) GetNotificationPreferencesHandler(c *gin.Context) {
	prefs, err := hb.Notifications.GetPreferences(c.Request.Context(), subjectID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// SaveNotificationPreferencesHandler upserts the caller's delivery toggles.
func (hb *HandlerBundle) SaveNotificationPreferencesHandler(c *gin.Context) {
	var prefs models.NotificationPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	prefs.UserID = subjectID(c)

	if err := hb.Notifications.SavePreferences(c.Request.Context(), prefs); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}
