package recommendation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hitoshi/dreamsync/internal/model"
	"github.com/hitoshi/dreamsync/internal/security"
)

type mockRepo struct {
	listFunc   func(ctx context.Context, userID string, band model.EnergyBand) ([]*model.Recommendation, error)
	createFunc func(ctx context.Context, rec *model.Recommendation) error
	updateFunc func(ctx context.Context, rec *model.Recommendation) error
	deleteFunc func(ctx context.Context, id, userID string) error
}

func (r *mockRepo) ListByUserAndBand(ctx context.Context, userID string, band model.EnergyBand) ([]*model.Recommendation, error) {
	return r.listFunc(ctx, userID, band)
}

func (r *mockRepo) Create(ctx context.Context, rec *model.Recommendation) error {
	return r.createFunc(ctx, rec)
}

func (r *mockRepo) Update(ctx context.Context, rec *model.Recommendation) error {
	return r.updateFunc(ctx, rec)
}

func (r *mockRepo) Delete(ctx context.Context, id, userID string) error {
	return r.deleteFunc(ctx, id, userID)
}

func newTestService(repo *mockRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, security.NewTextSanitizer(), logger)
}

func TestService_List_MergesDefaults(t *testing.T) {
	repo := &mockRepo{
		listFunc: func(ctx context.Context, userID string, band model.EnergyBand) ([]*model.Recommendation, error) {
			return []*model.Recommendation{
				{ID: "rec-1", UserID: userID, Title: "散歩", EnergyLevel: band},
			}, nil
		},
	}
	svc := newTestService(repo)

	recs, err := svc.List(context.Background(), "user-1", "low")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// システム標準3件 + ユーザー作成1件
	if len(recs) != 4 {
		t.Fatalf("len(recs) = %d, want 4", len(recs))
	}

	seen := make(map[string]bool)
	for _, rec := range recs {
		if seen[rec.ID] {
			t.Errorf("duplicate id %q in merged list", rec.ID)
		}
		seen[rec.ID] = true
	}

	for i := 0; i < 3; i++ {
		if !recs[i].IsDefault {
			t.Errorf("recs[%d].IsDefault = false, want true", i)
		}
	}
	if recs[3].ID != "rec-1" {
		t.Errorf("recs[3].ID = %q, want %q", recs[3].ID, "rec-1")
	}
}

func TestService_List_EmptyBand(t *testing.T) {
	repo := &mockRepo{
		listFunc: func(ctx context.Context, userID string, band model.EnergyBand) ([]*model.Recommendation, error) {
			t.Error("repository should not be queried when band is absent")
			return nil, nil
		},
	}
	svc := newTestService(repo)

	// 区分未指定は空の一覧
	recs, err := svc.List(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0", len(recs))
	}

	// 未定義の区分も空の一覧
	recs, err = svc.List(context.Background(), "user-1", "extreme")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0", len(recs))
	}
}

func TestService_Create(t *testing.T) {
	var created *model.Recommendation
	repo := &mockRepo{
		createFunc: func(ctx context.Context, rec *model.Recommendation) error {
			created = rec
			return nil
		},
	}
	svc := newTestService(repo)

	rec, err := svc.Create(context.Background(), "user-1", Input{
		Title:       "ヨガ",
		Description: "朝の20分ヨガ",
		Type:        "meditation",
		Link:        "https://example.com/yoga",
		EnergyLevel: "medium",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created == nil {
		t.Fatal("recommendation was not persisted")
	}
	if rec.IsDefault {
		t.Error("rec.IsDefault = true, want false")
	}
	if rec.ID == "" {
		t.Error("rec.ID is empty")
	}
	if rec.EnergyLevel != model.BandMedium {
		t.Errorf("rec.EnergyLevel = %q, want %q", rec.EnergyLevel, model.BandMedium)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService(&mockRepo{})

	valid := Input{
		Title:       "ヨガ",
		Description: "説明",
		Type:        "meditation",
		EnergyLevel: "low",
	}

	tests := []struct {
		name   string
		mutate func(in *Input)
	}{
		{"titleなし", func(in *Input) { in.Title = "" }},
		{"descriptionなし", func(in *Input) { in.Description = "" }},
		{"不正なtype", func(in *Input) { in.Type = "gaming" }},
		{"不正なenergyLevel", func(in *Input) { in.EnergyLevel = "extreme" }},
		{"不正なlink", func(in *Input) { in.Link = "javascript:alert(1)" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			_, err := svc.Create(context.Background(), "user-1", input)

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *model.APIError", err)
			}
			if apiErr.Code != model.ErrCodeValidationFailed {
				t.Errorf("apiErr.Code = %q, want %q", apiErr.Code, model.ErrCodeValidationFailed)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	var updated *model.Recommendation
	repo := &mockRepo{
		updateFunc: func(ctx context.Context, rec *model.Recommendation) error {
			updated = rec
			return nil
		},
	}
	svc := newTestService(repo)

	err := svc.Update(context.Background(), "user-1", "rec-1", Input{
		Title:       "長めの散歩",
		Description: "30分歩く",
		Type:        "walk",
		EnergyLevel: "high",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated == nil {
		t.Fatal("recommendation was not updated")
	}
	if updated.ID != "rec-1" || updated.UserID != "user-1" {
		t.Errorf("update scoped to (%q, %q), want (rec-1, user-1)", updated.ID, updated.UserID)
	}
}

func TestDefaultsForBand_ReturnsCopies(t *testing.T) {
	first := DefaultsForBand(model.BandLow)
	if len(first) != 3 {
		t.Fatalf("len(defaults) = %d, want 3", len(first))
	}

	first[0].Title = "書き換え"

	second := DefaultsForBand(model.BandLow)
	if second[0].Title == "書き換え" {
		t.Error("mutation leaked into the embedded defaults")
	}
}
