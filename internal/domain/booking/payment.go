package booking

import (
	"encoding/json"
	"fmt"

	"github.com/tidyhome/tidyhome-api/internal/domain/catalog"
	"github.com/tidyhome/tidyhome-api/internal/pkg/widget"
)

// PaymentDetails is the variant part of a draft's payment, keyed by method.
type PaymentDetails interface {
	Method() catalog.PaymentMethod
}

// SavedCardPayment pays with a card from the customer's saved-card listing.
type SavedCardPayment struct {
	CardID string `json:"card_id,omitempty"`
	CVC    string `json:"cvc,omitempty"`
}

// BillingInfo is asked for with a new card only.
type BillingInfo struct {
	Name        string `json:"name,omitempty" validate:"max=100"`
	Address     string `json:"address,omitempty" validate:"max=200"`
	City        string `json:"city,omitempty" validate:"max=100"`
	CountryCode string `json:"country_code,omitempty" validate:"max=8"`
}

// NewCardPayment pays with a card typed into the form.
type NewCardPayment struct {
	Number   string      `json:"card_number,omitempty"`
	Holder   string      `json:"card_holder,omitempty"`
	Expiry   string      `json:"expiry,omitempty"`
	CVC      string      `json:"cvc,omitempty"`
	SaveCard bool        `json:"save_card"`
	Billing  BillingInfo `json:"billing"`
}

// Network is the display badge for the typed number.
func (p NewCardPayment) Network() widget.CardNetwork {
	return widget.ClassifyCard(p.Number)
}

type ApplePayPayment struct{}

type CashPayment struct{}

func (SavedCardPayment) Method() catalog.PaymentMethod { return catalog.PaymentSavedCards }
func (NewCardPayment) Method() catalog.PaymentMethod   { return catalog.PaymentNewCard }
func (ApplePayPayment) Method() catalog.PaymentMethod  { return catalog.PaymentApplePay }
func (CashPayment) Method() catalog.PaymentMethod      { return catalog.PaymentCash }

// Payment wraps the active variant. The zero value means no method chosen yet.
type Payment struct {
	Details PaymentDetails
}

// Method returns "" while no method is chosen.
func (p Payment) Method() catalog.PaymentMethod {
	if p.Details == nil {
		return ""
	}
	return p.Details.Method()
}

func newPaymentDetails(method catalog.PaymentMethod) (PaymentDetails, error) {
	switch method {
	case catalog.PaymentSavedCards:
		return SavedCardPayment{}, nil
	case catalog.PaymentNewCard:
		return NewCardPayment{}, nil
	case catalog.PaymentApplePay:
		return ApplePayPayment{}, nil
	case catalog.PaymentCash:
		return CashPayment{}, nil
	}
	return nil, fmt.Errorf("unknown payment method %q", method)
}

// clone works because every variant is a value type.
func (p Payment) clone() Payment {
	return p
}

// sanitized drops secrets before a booking is frozen.
func (p Payment) sanitized() Payment {
	switch d := p.Details.(type) {
	case SavedCardPayment:
		d.CVC = ""
		return Payment{Details: d}
	case NewCardPayment:
		d.Number = widget.MaskCard(d.Number)
		d.CVC = ""
		return Payment{Details: d}
	}
	return p
}

type paymentEnvelope struct {
	Method  catalog.PaymentMethod `json:"method,omitempty"`
	Details json.RawMessage       `json:"details,omitempty"`
}

func (p Payment) MarshalJSON() ([]byte, error) {
	if p.Details == nil {
		return []byte(`{}`), nil
	}

	raw, err := json.Marshal(p.Details)
	if err != nil {
		return nil, err
	}
	return json.Marshal(paymentEnvelope{Method: p.Details.Method(), Details: raw})
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	var env paymentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Method == "" {
		p.Details = nil
		return nil
	}

	switch env.Method {
	case catalog.PaymentSavedCards:
		var d SavedCardPayment
		if err := unmarshalDetails(env.Details, &d); err != nil {
			return err
		}
		p.Details = d
	case catalog.PaymentNewCard:
		var d NewCardPayment
		if err := unmarshalDetails(env.Details, &d); err != nil {
			return err
		}
		p.Details = d
	case catalog.PaymentApplePay:
		p.Details = ApplePayPayment{}
	case catalog.PaymentCash:
		p.Details = CashPayment{}
	default:
		return fmt.Errorf("unknown payment method %q", env.Method)
	}
	return nil
}

func unmarshalDetails(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
