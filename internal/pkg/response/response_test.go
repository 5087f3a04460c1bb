package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON body, got %q", rec.Body.String())
	}
	return resp
}

func TestValidationError_CarriesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"date": "Choose a date"})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp.Success || resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR envelope, got %+v", resp)
	}
	details, ok := resp.Error.Details.(map[string]interface{})
	if !ok || details["date"] != "Choose a date" {
		t.Fatalf("expected date detail, got %#v", resp.Error.Details)
	}
}

func TestErrorWithError_HidesTraceUnlessExposed(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorWithError(rec, http.StatusInternalServerError, "BOOM", "failed", errors.New("redis down"))
	if trace := decode(t, rec).Error.ErrorTrace; trace != "" {
		t.Fatalf("expected no trace, got %q", trace)
	}

	SetExposeErrors(true)
	defer SetExposeErrors(false)

	rec = httptest.NewRecorder()
	ErrorWithError(rec, http.StatusInternalServerError, "BOOM", "failed", errors.New("redis down"))
	if trace := decode(t, rec).Error.ErrorTrace; trace != "redis down" {
		t.Fatalf("expected trace redis down, got %q", trace)
	}
}

func TestCreated_SetsSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !decode(t, rec).Success {
		t.Fatal("expected success true")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
}
