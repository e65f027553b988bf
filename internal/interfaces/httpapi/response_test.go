package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/pickem-league/pickem-api/internal/domain/lineup"
	"github.com/pickem-league/pickem-api/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_EditsLocked(t *testing.T) {
	mapped := mapError(context.Background(), fmt.Errorf("%w: question 2", usecase.ErrEditsLocked))

	if mapped.HTTPStatus != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", mapped.HTTPStatus)
	}
	if mapped.Reason != "editsLocked" {
		t.Fatalf("unexpected reason %q", mapped.Reason)
	}
}

func TestMapError_LineupRules(t *testing.T) {
	mapped := mapError(context.Background(), fmt.Errorf("%w: Travis Kelce (week 3)", lineup.ErrPlayerAlreadyUsed))

	if mapped.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", mapped.HTTPStatus)
	}
	if mapped.Reason != "invalidLineup" {
		t.Fatalf("unexpected reason %q", mapped.Reason)
	}
}
