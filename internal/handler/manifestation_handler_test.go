package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/dreamsync/internal/manifestation"
	"github.com/hitoshi/dreamsync/internal/model"
)

func TestManifestationHandler_CreateManifestation(t *testing.T) {
	service := &mockManifestationService{
		createFunc: func(ctx context.Context, userID string, input manifestation.CreateInput) (*model.Manifestation, error) {
			return &model.Manifestation{
				ID:        "m-1",
				UserID:    userID,
				Text:      input.Text,
				Category:  model.ManifestationCategory(input.Category),
				Date:      "2025-06-01",
				Completed: false,
				CreatedAt: time.Now(),
			}, nil
		},
	}
	h := NewManifestationHandler(service)

	body := `{"text":"海外で働く","category":"career"}`
	req := authedRequest(http.MethodPost, "/api/manifestations", "user-1", body)
	rec := httptest.NewRecorder()

	h.CreateManifestation(rec, req)

	// 作成時のステータスは200
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var res manifestationResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("レスポンスのデコードに失敗: %v", err)
	}
	if res.Completed {
		t.Error("completed = true, want false")
	}
	if res.Date != "2025-06-01" {
		t.Errorf("date = %q, want %q", res.Date, "2025-06-01")
	}
}

func TestManifestationHandler_UpdateManifestation(t *testing.T) {
	service := &mockManifestationService{
		updateFunc: func(ctx context.Context, userID, id string, input manifestation.UpdateInput) (*model.Manifestation, error) {
			if id != "m-1" {
				t.Errorf("id = %q, want %q", id, "m-1")
			}
			if !input.Completed {
				t.Error("completed = false, want true")
			}
			return &model.Manifestation{
				ID:        id,
				UserID:    userID,
				Text:      input.Text,
				Category:  model.ManifestationCategory(input.Category),
				Date:      input.Date,
				Completed: input.Completed,
			}, nil
		},
	}
	h := NewManifestationHandler(service)

	body := `{"text":"海外で働く","category":"career","date":"2025-06-01","completed":true}`
	req := authedRequest(http.MethodPut, "/api/manifestations/m-1", "user-1", body)
	req = withURLParam(req, "id", "m-1")
	rec := httptest.NewRecorder()

	h.UpdateManifestation(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var res map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("レスポンスのデコードに失敗: %v", err)
	}
	if res["completed"] != true {
		t.Errorf("completed = %v, want true", res["completed"])
	}
	// 更新レスポンスにゼロ値のcreatedAtを含めない
	if _, ok := res["createdAt"]; ok {
		t.Error("createdAtが含まれている")
	}
}

func TestManifestationHandler_DeleteManifestation(t *testing.T) {
	service := &mockManifestationService{
		deleteFunc: func(ctx context.Context, userID, id string) error {
			return nil
		},
	}
	h := NewManifestationHandler(service)

	req := authedRequest(http.MethodDelete, "/api/manifestations/m-1", "user-1", "")
	req = withURLParam(req, "id", "m-1")
	rec := httptest.NewRecorder()

	h.DeleteManifestation(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var res successResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("レスポンスのデコードに失敗: %v", err)
	}
	if !res.Success {
		t.Error("success = false, want true")
	}
}

func TestManifestationHandler_CreateManifestation_ValidationError(t *testing.T) {
	service := &mockManifestationService{
		createFunc: func(ctx context.Context, userID string, input manifestation.CreateInput) (*model.Manifestation, error) {
			return nil, model.NewValidationError("本文は必須です")
		},
	}
	h := NewManifestationHandler(service)

	req := authedRequest(http.MethodPost, "/api/manifestations", "user-1", `{"category":"career"}`)
	rec := httptest.NewRecorder()

	h.CreateManifestation(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var res apiErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("レスポンスのデコードに失敗: %v", err)
	}
	if res.Code != model.ErrCodeValidationFailed {
		t.Errorf("code = %q, want %q", res.Code, model.ErrCodeValidationFailed)
	}
}
