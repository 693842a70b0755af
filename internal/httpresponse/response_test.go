package httpresponse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LanSanter/GO-game-proj/internal/errors"
)

func TestWriteResponseWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusCreated, map[string]int{"n": 1})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var got struct {
		Status int
		Body   map[string]int
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != http.StatusCreated || got.Body["n"] != 1 {
		t.Fatalf("unexpected envelope %+v", got)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, errors.ErrRecordNotFound)

	var got struct {
		Body ErrorResponse
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNotFound || got.Body.Code != errors.Code(errors.ErrRecordNotFound) {
		t.Fatalf("unexpected error response %d %+v", rec.Code, got.Body)
	}
}

func TestWriteInternalErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteInternalErrorResponse(rec)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var v map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
}
