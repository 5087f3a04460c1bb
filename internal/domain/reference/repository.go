package reference

import (
	"github.com/tidyhome/tidyhome-api/internal/domain/catalog"
)

// Currency is the only currency prices are quoted in.
const Currency = "AED"

var defaultCountries = []Country{
	{Code: "AE", Name: "United Arab Emirates", DialCode: "+971", Currency: "AED"},
	{Code: "SA", Name: "Saudi Arabia", DialCode: "+966", Currency: "SAR"},
	{Code: "QA", Name: "Qatar", DialCode: "+974", Currency: "QAR"},
	{Code: "KW", Name: "Kuwait", DialCode: "+965", Currency: "KWD"},
	{Code: "BH", Name: "Bahrain", DialCode: "+973", Currency: "BHD"},
	{Code: "OM", Name: "Oman", DialCode: "+968", Currency: "OMR"},
	{Code: "GB", Name: "United Kingdom", DialCode: "+44", Currency: "GBP"},
	{Code: "US", Name: "United States", DialCode: "+1", Currency: "USD"},
	{Code: "IN", Name: "India", DialCode: "+91", Currency: "INR"},
}

var paymentMethods = []PaymentMethodInfo{
	{Code: catalog.PaymentSavedCards, Label: "Saved cards", Description: "Pay with a card you used before"},
	{Code: catalog.PaymentNewCard, Label: "Credit or debit card", Description: "Visa or Mastercard"},
	{Code: catalog.PaymentApplePay, Label: "Apple Pay", Description: "Confirm with your Apple device"},
	{Code: catalog.PaymentCash, Label: "Cash", Description: "Pay the cleaner on the day"},
}

// DefaultSavedCards is the listing served until a card vault is connected.
var DefaultSavedCards = []SavedCard{
	{ID: "card_visa_4242", Network: "visa", Last4: "4242", Holder: "Demo Customer", Expiry: "12/29"},
	{ID: "card_mc_5454", Network: "mastercard", Last4: "5454", Holder: "Demo Customer", Expiry: "08/28"},
}

// Repository holds the reference lists in memory.
type Repository struct {
	countries []Country
	cards     []SavedCard
	cardIndex map[string]SavedCard
}

// NewRepository builds the repository. Nil cards means DefaultSavedCards.
func NewRepository(cards []SavedCard) *Repository {
	if cards == nil {
		cards = DefaultSavedCards
	}

	r := &Repository{
		countries: defaultCountries,
		cards:     append([]SavedCard(nil), cards...),
		cardIndex: make(map[string]SavedCard, len(cards)),
	}
	for _, c := range r.cards {
		r.cardIndex[c.ID] = c
	}
	return r
}

func (r *Repository) Countries() []Country {
	return append([]Country(nil), r.countries...)
}

func (r *Repository) PaymentMethods() []PaymentMethodInfo {
	return append([]PaymentMethodInfo(nil), paymentMethods...)
}

func (r *Repository) SavedCards() []SavedCard {
	return append([]SavedCard(nil), r.cards...)
}

// HasSavedCard lets the booking wizard check a selected card id.
func (r *Repository) HasSavedCard(id string) bool {
	_, ok := r.cardIndex[id]
	return ok
}
