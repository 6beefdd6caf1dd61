package handlers

import (
	"errors"
	"net/http"

	feedbackRepo "panchakarma/database/repository/feedback"
	patientRepo "panchakarma/database/repository/patient"
	"panchakarma/services/booking"
	"panchakarma/services/journey"
	"panchakarma/services/notification"
	"panchakarma/services/practitioner"
	"panchakarma/services/scheduling"
	"panchakarma/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the services the endpoint handlers need.
type HandlerBundle struct {
	Sessions      booking.SessionService
	Practitioners practitioner.PractitionerService
	Availability  scheduling.AvailabilityService
	Journeys      journey.JourneyService
	Notifications notification.NotificationService
	Patients      patientRepo.PatientRepository
	Feedback      feedbackRepo.FeedbackRepository
}

// subjectID returns the authenticated uid set by the auth middleware.
func subjectID(c *gin.Context) string {
	return c.GetString("subjectID")
}

// respondServiceError maps service sentinels onto HTTP statuses: missing
// documents are 404, ownership violations 403, slot races 409, everything the
// caller can fix 400, the rest 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrSessionNotFound),
		errors.Is(err, booking.ErrPractitionerNotFound),
		errors.Is(err, practitioner.ErrProfileNotFound),
		errors.Is(err, journey.ErrJourneyNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())

	case errors.Is(err, booking.ErrNotSessionOwner),
		errors.Is(err, journey.ErrNotJourneyOwner):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())

	case errors.Is(err, booking.ErrSlotTaken),
		errors.Is(err, practitioner.ErrAlreadyRegistered):
		utils.JSONError(c, http.StatusConflict, "Conflict", err.Error())

	case errors.Is(err, booking.ErrInvalidSlot),
		errors.Is(err, booking.ErrUnknownTherapy),
		errors.Is(err, booking.ErrSlotUnavailable),
		errors.Is(err, booking.ErrPractitionerNotVerified),
		errors.Is(err, booking.ErrNotAwaitingPayment),
		errors.Is(err, booking.ErrNothingToPay),
		errors.Is(err, booking.ErrPaymentVerification),
		errors.Is(err, booking.ErrNotCancellable),
		errors.Is(err, booking.ErrNotReschedulable),
		errors.Is(err, journey.ErrTaskIndexOutOfRange),
		errors.Is(err, practitioner.ErrInvalidWeekday),
		errors.Is(err, practitioner.ErrInvalidRecurringRule),
		errors.Is(err, practitioner.ErrInvalidDate),
		errors.Is(err, practitioner.ErrInvalidTime):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())

	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
