package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"name": "Sarah"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
		Error   *APIError         `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Data["name"] != "Sarah" || body.Error != nil {
		t.Fatalf("body = %+v", body)
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter, string)
		status int
		code   string
	}{
		{"bad request", BadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NotFound, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", Conflict, http.StatusConflict, "CONFLICT"},
		{"internal", InternalError, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unavailable", Unavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec, "boom")

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			var body APIResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success || body.Error == nil || body.Error.Code != tt.code || body.Error.Message != "boom" {
				t.Fatalf("body = %+v", body)
			}
		})
	}
}
