// Package manifestation はマニフェステーション（目標）管理のドメインロジックを提供する。
package manifestation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/dreamsync/internal/model"
	"github.com/hitoshi/dreamsync/internal/repository"
	"github.com/hitoshi/dreamsync/internal/security"
)

// CreateInput は目標作成の入力。
type CreateInput struct {
	Text     string
	Category string
	Notes    string
}

// UpdateInput は目標更新の入力。全フィールドを置換する。
type UpdateInput struct {
	Text      string
	Category  string
	Notes     string
	Date      string
	Completed bool
}

// Service は目標管理のサービス層。
type Service struct {
	repo      repository.ManifestationRepository
	sanitizer security.TextSanitizerService
	logger    *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.ManifestationRepository, sanitizer security.TextSanitizerService, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// List はユーザーの目標一覧を日付降順で返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.Manifestation, error) {
	manifestations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("目標一覧の取得に失敗しました", "error", err, "user_id", userID)
		return nil, model.NewInternalError()
	}
	return manifestations, nil
}

// Create は目標を作成する。IDと日付はサーバーが付与し、completedはfalseで初期化する。
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*model.Manifestation, error) {
	if err := validateFields(input.Text, input.Category); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := &model.Manifestation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      s.sanitizer.Sanitize(input.Text),
		Category:  model.ManifestationCategory(input.Category),
		Notes:     s.sanitizer.Sanitize(input.Notes),
		Date:      now.Format(time.RFC3339),
		Completed: false,
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("目標の作成に失敗しました", "error", err, "user_id", userID)
		return nil, model.NewInternalError()
	}

	return m, nil
}

// Update は目標の全フィールドを置換する。
func (s *Service) Update(ctx context.Context, userID, id string, input UpdateInput) (*model.Manifestation, error) {
	if err := validateFields(input.Text, input.Category); err != nil {
		return nil, err
	}
	if input.Date == "" {
		return nil, model.NewValidationError("dateは必須です")
	}

	m := &model.Manifestation{
		ID:        id,
		UserID:    userID,
		Text:      s.sanitizer.Sanitize(input.Text),
		Category:  model.ManifestationCategory(input.Category),
		Notes:     s.sanitizer.Sanitize(input.Notes),
		Date:      input.Date,
		Completed: input.Completed,
	}

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.Error("目標の更新に失敗しました", "error", err, "user_id", userID)
		return nil, model.NewInternalError()
	}

	return m, nil
}

// Delete は目標を削除する。対象が存在しなくても成功として扱う。
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("目標の削除に失敗しました", "error", err, "user_id", userID)
		return model.NewInternalError()
	}
	return nil
}

// validateFields は作成・更新共通の必須フィールドを検証する。
func validateFields(text, category string) error {
	if text == "" {
		return model.NewValidationError("textは必須です")
	}
	if !model.ManifestationCategory(category).IsValid() {
		return model.NewValidationError("categoryの値が不正です")
	}
	return nil
}
