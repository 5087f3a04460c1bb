// Package pricing derives the price breakdown of a cleaning booking.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tidyhome/tidyhome-api/internal/domain/catalog"
)

// Default rates. Config may override them; nothing else should repeat these values.
const (
	DefaultHourlyRate  = "50"
	DefaultIroningRate = "15"
	DefaultVATRate     = "0.05"
)

// Rates are the adjustable price constants.
type Rates struct {
	Hourly  decimal.Decimal
	Ironing decimal.Decimal
	VAT     decimal.Decimal
}

// DefaultRates returns the built-in rates.
func DefaultRates() Rates {
	return Rates{
		Hourly:  decimal.RequireFromString(DefaultHourlyRate),
		Ironing: decimal.RequireFromString(DefaultIroningRate),
		VAT:     decimal.RequireFromString(DefaultVATRate),
	}
}

// Input is the part of a draft that affects the price.
type Input struct {
	BookingType  catalog.BookingType
	Hours        int
	IroningHours int
}

// Breakdown is always derived from a draft and never stored on its own.
type Breakdown struct {
	BasePrice   decimal.Decimal `json:"base_price"`
	AddOnsPrice decimal.Decimal `json:"add_ons_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	VAT         decimal.Decimal `json:"vat"`
	Total       decimal.Decimal `json:"total"`
}

// IsZero reports a draft with nothing priced yet; cost displays stay hidden.
func (b Breakdown) IsZero() bool {
	return b.Total.IsZero()
}

// Engine prices drafts with a fixed set of rates.
type Engine struct {
	rates Rates
}

// NewEngine creates a pricing engine.
func NewEngine(rates Rates) *Engine {
	return &Engine{rates: rates}
}

// Rates returns the rates the engine prices with.
func (e *Engine) Rates() Rates {
	return e.rates
}

// Calculate is pure: the same input always yields the same breakdown.
// Only Total is rounded (half up, to whole currency units).
func (e *Engine) Calculate(in Input) Breakdown {
	base := decimal.Zero
	if in.Hours > 0 {
		base = e.rates.Hourly.Mul(decimal.NewFromInt(int64(in.Hours)))
	}

	addOns := decimal.Zero
	if in.BookingType == catalog.BookingTypeHome && in.IroningHours > 0 {
		addOns = e.rates.Ironing.Mul(decimal.NewFromInt(int64(in.IroningHours)))
	}

	subtotal := base.Add(addOns)
	vat := subtotal.Mul(e.rates.VAT)

	return Breakdown{
		BasePrice:   base,
		AddOnsPrice: addOns,
		Subtotal:    subtotal,
		VAT:         vat,
		Total:       roundHalfUp(subtotal.Add(vat)),
	}
}

// decimal rounds half away from zero; prices are never negative so that is half up.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
