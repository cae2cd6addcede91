package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/dreamsync/internal/energy"
	"github.com/hitoshi/dreamsync/internal/model"
)

func TestEnergyHandler_ListEntries(t *testing.T) {
	service := &mockEnergyService{
		listFunc: func(ctx context.Context, userID string) ([]*model.EnergyEntry, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q, want %q", userID, "user-1")
			}
			return []*model.EnergyEntry{
				{ID: "e-2", UserID: "user-1", Date: "2025-06-02", Level: 4, CreatedAt: time.Now()},
				{ID: "e-1", UserID: "user-1", Date: "2025-06-01", Level: 2, CreatedAt: time.Now()},
			}, nil
		},
	}
	h := NewEnergyHandler(service)

	req := authedRequest(http.MethodGet, "/api/energy-entries", "user-1", "")
	rec := httptest.NewRecorder()

	h.ListEntries(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var res []energyEntryResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("レスポンスのデコードに失敗: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("len(res) = %d, want 2", len(res))
	}
	if res[0].ID != "e-2" {
		t.Errorf("res[0].ID = %q, want %q", res[0].ID, "e-2")
	}
}

func TestEnergyHandler_ListEntries_Empty(t *testing.T) {
	service := &mockEnergyService{
		listFunc: func(ctx context.Context, userID string) ([]*model.EnergyEntry, error) {
			return nil, nil
		},
	}
	h := NewEnergyHandler(service)

	req := authedRequest(http.MethodGet, "/api/energy-entries", "user-1", "")
	rec := httptest.NewRecorder()

	h.ListEntries(rec, req)

	// 空の場合もnullではなく空配列を返す
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want %q", got, "[]\n")
	}
}

func TestEnergyHandler_CreateEntry(t *testing.T) {
	service := &mockEnergyService{
		createFunc: func(ctx context.Context, userID string, input energy.CreateInput) (*model.EnergyEntry, error) {
			if input.Level != 3 {
				t.Errorf("level = %d, want 3", input.Level)
			}
			return &model.EnergyEntry{
				ID:     "e-1",
				UserID: userID,
				Date:   "2025-06-01",
				Level:  input.Level,
				Notes:  input.Notes,
			}, nil
		},
	}
	h := NewEnergyHandler(service)

	body := `{"level":3,"notes":"普通の日","date":"2025-06-01"}`
	req := authedRequest(http.MethodPost, "/api/energy-entries", "user-1", body)
	rec := httptest.NewRecorder()

	h.CreateEntry(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var res energyEntryResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("レスポンスのデコードに失敗: %v", err)
	}
	if res.UserID != "user-1" {
		t.Errorf("userId = %q, want %q", res.UserID, "user-1")
	}
}

func TestEnergyHandler_CreateEntry_ValidationError(t *testing.T) {
	service := &mockEnergyService{
		createFunc: func(ctx context.Context, userID string, input energy.CreateInput) (*model.EnergyEntry, error) {
			return nil, model.NewValidationError("レベルは1〜5で指定してください")
		},
	}
	h := NewEnergyHandler(service)

	req := authedRequest(http.MethodPost, "/api/energy-entries", "user-1", `{"level":9}`)
	rec := httptest.NewRecorder()

	h.CreateEntry(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestEnergyHandler_CreateEntry_NoAuthContext(t *testing.T) {
	h := NewEnergyHandler(&mockEnergyService{})

	req := httptest.NewRequest(http.MethodPost, "/api/energy-entries", nil)
	rec := httptest.NewRecorder()

	h.CreateEntry(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestEnergyHandler_DeleteEntry(t *testing.T) {
	var deletedID string
	service := &mockEnergyService{
		deleteFunc: func(ctx context.Context, userID, id string) error {
			deletedID = id
			return nil
		},
	}
	h := NewEnergyHandler(service)

	req := authedRequest(http.MethodDelete, "/api/energy-entries/e-1", "user-1", "")
	req = withURLParam(req, "id", "e-1")
	rec := httptest.NewRecorder()

	h.DeleteEntry(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if deletedID != "e-1" {
		t.Errorf("deletedID = %q, want %q", deletedID, "e-1")
	}

	var res successResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("レスポンスのデコードに失敗: %v", err)
	}
	if !res.Success {
		t.Error("success = false, want true")
	}
}
