package reference

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func serve(t *testing.T, path string) envelope {
	t.Helper()

	r := chi.NewRouter()
	r.Mount("/reference", NewHandler(NewRepository(nil)).Routes())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !env.Success {
		t.Fatalf("expected success response, got %s", rec.Body.String())
	}
	return env
}

func TestHandler_ListPaymentMethods(t *testing.T) {
	env := serve(t, "/reference/payment-methods")

	var methods []PaymentMethodInfo
	if err := json.Unmarshal(env.Data, &methods); err != nil {
		t.Fatalf("decode methods: %v", err)
	}
	if len(methods) != 4 {
		t.Fatalf("expected 4 payment methods, got %d", len(methods))
	}
	if methods[0].Code != "saved-cards" {
		t.Fatalf("expected saved-cards first, got %s", methods[0].Code)
	}
}

func TestHandler_ListCountries(t *testing.T) {
	env := serve(t, "/reference/countries")

	var countries []Country
	if err := json.Unmarshal(env.Data, &countries); err != nil {
		t.Fatalf("decode countries: %v", err)
	}
	if len(countries) == 0 || countries[0].Currency != Currency {
		t.Fatalf("expected home country quoted in %s first, got %+v", Currency, countries)
	}
}

func TestHandler_ListSavedCards(t *testing.T) {
	env := serve(t, "/reference/saved-cards")

	var cards []SavedCard
	if err := json.Unmarshal(env.Data, &cards); err != nil {
		t.Fatalf("decode cards: %v", err)
	}
	if len(cards) != len(DefaultSavedCards) {
		t.Fatalf("expected %d cards, got %d", len(DefaultSavedCards), len(cards))
	}
}

func TestRepository_HasSavedCard(t *testing.T) {
	repo := NewRepository([]SavedCard{{ID: "c1", Last4: "1111"}})

	if !repo.HasSavedCard("c1") {
		t.Fatal("expected c1 to exist")
	}
	if repo.HasSavedCard("card_visa_4242") {
		t.Fatal("expected default cards to be replaced")
	}
	if got := repo.SavedCards()[0].Masked(); got != "**** 1111" {
		t.Fatalf("expected **** 1111, got %q", got)
	}
}
