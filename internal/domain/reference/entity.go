// Package reference serves the static lists the booking form is built from.
package reference

import "github.com/tidyhome/tidyhome-api/internal/domain/catalog"

// Country feeds the phone and billing country pickers.
type Country struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	DialCode string `json:"dial_code"`
	Currency string `json:"currency"`
}

// PaymentMethodInfo describes a payment option for display.
type PaymentMethodInfo struct {
	Code        catalog.PaymentMethod `json:"code"`
	Label       string                `json:"label"`
	Description string                `json:"description"`
}

// SavedCard is a card the customer stored earlier. Only display data is kept.
type SavedCard struct {
	ID      string `json:"id"`
	Network string `json:"network"`
	Last4   string `json:"last4"`
	Holder  string `json:"holder"`
	Expiry  string `json:"expiry"`
}

// Masked renders the card the way the picker shows it.
func (c SavedCard) Masked() string {
	return "**** " + c.Last4
}
