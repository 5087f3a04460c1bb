package reference

import (
	"net/http"

	"github.com/tidyhome/tidyhome-api/internal/pkg/response"
)

// Handler serves reference data.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListCountries handles GET /reference/countries
// @Summary Country and currency codes
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Response{data=[]Country}
// @Router /reference/countries [get]
func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.repo.Countries())
}

// ListPaymentMethods handles GET /reference/payment-methods
// @Summary Payment method catalog
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Response{data=[]PaymentMethodInfo}
// @Router /reference/payment-methods [get]
func (h *Handler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.repo.PaymentMethods())
}

// ListSavedCards handles GET /reference/saved-cards
// @Summary Saved cards
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Response{data=[]SavedCard}
// @Router /reference/saved-cards [get]
func (h *Handler) ListSavedCards(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.repo.SavedCards())
}
