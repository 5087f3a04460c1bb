package booking

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/tidyhome/tidyhome-api/internal/pkg/errorhandler"
	"github.com/tidyhome/tidyhome-api/internal/pkg/response"
	"github.com/tidyhome/tidyhome-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests.
type Handler struct {
	service  *Service
	upgrader websocket.Upgrader
}

// NewHandler creates a booking handler. An empty origin list accepts any
// origin on the live channel.
func NewHandler(service *Service, allowedOrigins []string) *Handler {
	return &Handler{
		service:  service,
		upgrader: newUpgrader(allowedOrigins),
	}
}

// StartSession handles POST /bookings/sessions
// @Summary Start a booking wizard
// @Tags Booking
// @Produce json
// @Success 201 {object} response.Response{data=View}
// @Router /bookings/sessions [post]
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Start(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, view)
}

// GetSession handles GET /bookings/sessions/{id}
// @Summary Current wizard view
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Response{data=View}
// @Failure 404 {object} response.Response
// @Router /bookings/sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, view)
}

// PatchServiceDetails handles PATCH /bookings/sessions/{id}/service
// @Summary Update service details
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body ServiceDetailsPatch true "Changed fields"
// @Success 200 {object} response.Response{data=View}
// @Failure 400,404,409,422 {object} response.Response
// @Router /bookings/sessions/{id}/service [patch]
func (h *Handler) PatchServiceDetails(w http.ResponseWriter, r *http.Request) {
	var req ServiceDetailsPatch
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.service.ApplyServiceDetails(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, view)
}

// PatchSchedule handles PATCH /bookings/sessions/{id}/schedule
// @Summary Update schedule and location
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body SchedulePatch true "Changed fields"
// @Success 200 {object} response.Response{data=View}
// @Failure 400,404,409,422 {object} response.Response
// @Router /bookings/sessions/{id}/schedule [patch]
func (h *Handler) PatchSchedule(w http.ResponseWriter, r *http.Request) {
	var req SchedulePatch
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.service.ApplySchedule(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, view)
}

// PatchPayment handles PATCH /bookings/sessions/{id}/payment
// @Summary Update payment
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body PaymentPatch true "Changed fields"
// @Success 200 {object} response.Response{data=View}
// @Failure 400,404,409,422 {object} response.Response
// @Router /bookings/sessions/{id}/payment [patch]
func (h *Handler) PatchPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentPatch
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.service.ApplyPayment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, view)
}

// Command returns a handler for a payload-less wizard command
// (next, back, hours increment and decrement).
func (h *Handler) Command(cmd Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := h.service.Step(r.Context(), chi.URLParam(r, "id"), cmd)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		response.OK(w, view)
	}
}

// Submit handles POST /bookings/sessions/{id}/submit
// @Summary Confirm the booking
// @Tags Booking
// @Produce json
// @Success 201 {object} response.Response{data=ConfirmationResponse}
// @Failure 404,409,422 {object} response.Response
// @Router /bookings/sessions/{id}/submit [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.Submit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, booking.ToResponse())
}

// GetConfirmation handles GET /bookings/confirmations/{id}
// @Summary Confirmed booking
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Response{data=ConfirmationResponse}
// @Failure 404 {object} response.Response
// @Router /bookings/confirmations/{id} [get]
func (h *Handler) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetConfirmation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, booking.ToResponse())
}

// Cancel handles POST /bookings/confirmations/{id}/cancel
// @Summary Cancel a confirmed booking
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Response{data=ConfirmationResponse}
// @Failure 404,409 {object} response.Response
// @Router /bookings/confirmations/{id}/cancel [post]
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, booking.ToResponse())
}

// Modify handles POST /bookings/confirmations/{id}/modify
// @Summary Open a pre-filled wizard from a confirmed booking
// @Tags Booking
// @Produce json
// @Success 201 {object} response.Response{data=View}
// @Failure 404 {object} response.Response
// @Router /bookings/confirmations/{id}/modify [post]
func (h *Handler) Modify(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Modify(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, view)
}

// Recur handles POST /bookings/confirmations/{id}/recur
// @Summary Open a repeating wizard from a confirmed booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body RecurRequest true "Repeat options"
// @Success 201 {object} response.Response{data=View}
// @Failure 400,404,422 {object} response.Response
// @Router /bookings/confirmations/{id}/recur [post]
func (h *Handler) Recur(w http.ResponseWriter, r *http.Request) {
	var req RecurRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.service.Recur(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.Created(w, view)
}

// decode reads and validates the body; it writes the error response itself.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := response.DecodeJSON(r.Body, req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		errorhandler.HandleValidationError(r.Context(), w, boundaryErrors(errs))
		return false
	}
	return true
}

// boundaryErrors marks struct-tag failures as out of range: the patch was refused.
func boundaryErrors(errs map[string]string) FieldErrors {
	out := make(FieldErrors, len(errs))
	for field, msg := range errs {
		out.add(field, KindOutOfRange, msg)
	}
	return out
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if stepErr := AsStepError(err); stepErr != nil {
		errorhandler.HandleValidationError(r.Context(), w, stepErr.Fields)
		return
	}

	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.NotFound(w, "Booking session not found")
	case errors.Is(err, ErrConfirmationNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, ErrUnknownCommand):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrStepNotActive),
		errors.Is(err, ErrNoPreviousStep),
		errors.Is(err, ErrNoNextStep),
		errors.Is(err, ErrWizardClosed),
		errors.Is(err, ErrNothingPriced),
		errors.Is(err, ErrAlreadyCancelled):
		response.Conflict(w, err.Error())
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "BOOKING_FAILED", "Failed to process booking", err)
	}
}
