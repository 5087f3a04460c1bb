package booking

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns booking router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	// Wizard sessions
	r.Post("/sessions", h.StartSession)
	r.Get("/sessions/{id}", h.GetSession)
	r.Patch("/sessions/{id}/service", h.PatchServiceDetails)
	r.Patch("/sessions/{id}/schedule", h.PatchSchedule)
	r.Patch("/sessions/{id}/payment", h.PatchPayment)
	r.Post("/sessions/{id}/next", h.Command(CommandNext))
	r.Post("/sessions/{id}/back", h.Command(CommandBack))
	r.Post("/sessions/{id}/hours/increment", h.Command(CommandIncrementHours))
	r.Post("/sessions/{id}/hours/decrement", h.Command(CommandDecrementHours))
	r.Post("/sessions/{id}/submit", h.Submit)
	r.Get("/sessions/{id}/live", h.Live)

	// Confirmed bookings
	r.Get("/confirmations/{id}", h.GetConfirmation)
	r.Post("/confirmations/{id}/cancel", h.Cancel)
	r.Post("/confirmations/{id}/modify", h.Modify)
	r.Post("/confirmations/{id}/recur", h.Recur)

	return r
}
