package reference

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns reference router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/countries", h.ListCountries)
	r.Get("/payment-methods", h.ListPaymentMethods)
	r.Get("/saved-cards", h.ListSavedCards)

	return r
}
