package manifestation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hitoshi/dreamsync/internal/model"
	"github.com/hitoshi/dreamsync/internal/security"
)

type mockRepo struct {
	listFunc   func(ctx context.Context, userID string) ([]*model.Manifestation, error)
	createFunc func(ctx context.Context, m *model.Manifestation) error
	updateFunc func(ctx context.Context, m *model.Manifestation) error
	deleteFunc func(ctx context.Context, id, userID string) error
}

func (r *mockRepo) ListByUser(ctx context.Context, userID string) ([]*model.Manifestation, error) {
	return r.listFunc(ctx, userID)
}

func (r *mockRepo) Create(ctx context.Context, m *model.Manifestation) error {
	return r.createFunc(ctx, m)
}

func (r *mockRepo) Update(ctx context.Context, m *model.Manifestation) error {
	return r.updateFunc(ctx, m)
}

func (r *mockRepo) Delete(ctx context.Context, id, userID string) error {
	return r.deleteFunc(ctx, id, userID)
}

func newTestService(repo *mockRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, security.NewTextSanitizer(), logger)
}

func TestService_Create(t *testing.T) {
	var created *model.Manifestation
	repo := &mockRepo{
		createFunc: func(ctx context.Context, m *model.Manifestation) error {
			created = m
			return nil
		},
	}
	svc := newTestService(repo)

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Text:     "5km走る",
		Category: "health",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created == nil {
		t.Fatal("manifestation was not persisted")
	}
	if m.ID == "" {
		t.Error("m.ID is empty")
	}
	if m.Completed {
		t.Error("m.Completed = true, want false")
	}
	if m.UserID != "user-1" {
		t.Errorf("m.UserID = %q, want %q", m.UserID, "user-1")
	}

	// サーバー付与の日付はRFC3339形式
	if _, err := time.Parse(time.RFC3339, m.Date); err != nil {
		t.Errorf("m.Date = %q is not RFC3339: %v", m.Date, err)
	}
}

func TestService_Create_SanitizesText(t *testing.T) {
	repo := &mockRepo{
		createFunc: func(ctx context.Context, m *model.Manifestation) error {
			return nil
		},
	}
	svc := newTestService(repo)

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Text:     `<script>alert(1)</script>目標`,
		Category: "personal",
		Notes:    "<b>メモ</b>",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if m.Text != "目標" {
		t.Errorf("m.Text = %q, want %q", m.Text, "目標")
	}
	if m.Notes != "メモ" {
		t.Errorf("m.Notes = %q, want %q", m.Notes, "メモ")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService(&mockRepo{})

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"textなし", CreateInput{Category: "health"}},
		{"不正なカテゴリ", CreateInput{Text: "目標", Category: "unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", tt.input)

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
	var updated *model.Manifestation
	repo := &mockRepo{
		updateFunc: func(ctx context.Context, m *model.Manifestation) error {
			updated = m
			return nil
		},
	}
	svc := newTestService(repo)

	m, err := svc.Update(context.Background(), "user-1", "mani-1", UpdateInput{
		Text:      "10km走る",
		Category:  "health",
		Notes:     "距離を伸ばした",
		Date:      "2026-08-30T10:00:00Z",
		Completed: true,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated == nil {
		t.Fatal("manifestation was not updated")
	}
	if updated.ID != "mani-1" {
		t.Errorf("updated.ID = %q, want %q", updated.ID, "mani-1")
	}
	if !m.Completed {
		t.Error("m.Completed = false, want true")
	}
}

func TestService_List_RepositoryError(t *testing.T) {
	repo := &mockRepo{
		listFunc: func(ctx context.Context, userID string) ([]*model.Manifestation, error) {
			return nil, errors.New("db down")
		},
	}
	svc := newTestService(repo)

	_, err := svc.List(context.Background(), "user-1")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *model.APIError", err)
	}
	if apiErr.Code != model.ErrCodeInternal {
		t.Errorf("apiErr.Code = %q, want %q", apiErr.Code, model.ErrCodeInternal)
	}
}

func TestService_Delete(t *testing.T) {
	var gotID, gotUserID string
	repo := &mockRepo{
		deleteFunc: func(ctx context.Context, id, userID string) error {
			gotID, gotUserID = id, userID
			return nil
		},
	}
	svc := newTestService(repo)

	if err := svc.Delete(context.Background(), "user-1", "mani-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if gotID != "mani-1" || gotUserID != "user-1" {
		t.Errorf("Delete scoped to (%q, %q), want (mani-1, user-1)", gotID, gotUserID)
	}
}
