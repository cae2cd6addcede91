// Package vision はビジョンボード管理のドメインロジックを提供する。
package vision

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/dreamsync/internal/model"
	"github.com/hitoshi/dreamsync/internal/repository"
	"github.com/hitoshi/dreamsync/internal/security"
)

// CreateInput はビジョンアイテム作成の入力。
// 数値フィールドのnilはデフォルト値（x/y 0、width/height 150、zIndex 0）に解決される。
type CreateInput struct {
	ImageURL string
	Section  string
	Text     string
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	ZIndex   *int
}

// UpdateInput はビジョンアイテム部分更新の入力。
// nilフィールドは「リクエストで省略された」ことを表す。文字列フィールドは
// 既存値を維持し、数値フィールドはデフォルト値に解決される。
type UpdateInput struct {
	ImageURL *string
	Section  *string
	Text     *string
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	ZIndex   *int
}

// Service はビジョンボード管理のサービス層。
type Service struct {
	repo      repository.VisionItemRepository
	sanitizer security.TextSanitizerService
	logger    *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.VisionItemRepository, sanitizer security.TextSanitizerService, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// List はユーザーのビジョンアイテム一覧を返す。順序は保証しない。
func (s *Service) List(ctx context.Context, userID string) ([]*model.VisionItem, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ビジョンアイテム一覧の取得に失敗しました", "error", err, "user_id", userID)
		return nil, model.NewInternalError()
	}
	return items, nil
}

// Create はビジョンアイテムを作成する。
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*model.VisionItem, error) {
	if input.ImageURL == "" {
		return nil, model.NewValidationError("image_urlは必須です")
	}
	if !model.VisionSection(input.Section).IsValid() {
		return nil, model.NewValidationError("sectionの値が不正です")
	}

	item := &model.VisionItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ImageURL:  input.ImageURL,
		Section:   model.VisionSection(input.Section),
		Text:      s.sanitizer.Sanitize(input.Text),
		X:         resolveFloat(input.X, model.DefaultVisionX),
		Y:         resolveFloat(input.Y, model.DefaultVisionY),
		Width:     resolveFloat(input.Width, model.DefaultVisionWidth),
		Height:    resolveFloat(input.Height, model.DefaultVisionHeight),
		ZIndex:    resolveInt(input.ZIndex, model.DefaultVisionZIndex),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("ビジョンアイテムの作成に失敗しました", "error", err, "user_id", userID)
		return nil, model.NewInternalError()
	}

	return item, nil
}

// Update はビジョンアイテムを部分更新し、更新後のアイテムを返す。
// 省略された文字列フィールドは既存値を維持し、省略された数値フィールドは
// デフォルト値に戻る。対象が存在しない場合はNOT_FOUNDエラーを返す。
func (s *Service) Update(ctx context.Context, userID, id string, input UpdateInput) (*model.VisionItem, error) {
	if input.Section != nil && !model.VisionSection(*input.Section).IsValid() {
		return nil, model.NewValidationError("sectionの値が不正です")
	}
	if input.ImageURL != nil && *input.ImageURL == "" {
		return nil, model.NewValidationError("image_urlを空にすることはできません")
	}

	if input.Text != nil {
		sanitized := s.sanitizer.Sanitize(*input.Text)
		input.Text = &sanitized
	}

	item, err := s.repo.Update(ctx, id, userID, &repository.VisionItemUpdate{
		ImageURL: input.ImageURL,
		Section:  input.Section,
		Text:     input.Text,
		X:        input.X,
		Y:        input.Y,
		Width:    input.Width,
		Height:   input.Height,
		ZIndex:   input.ZIndex,
	})
	if err != nil {
		s.logger.Error("ビジョンアイテムの更新に失敗しました", "error", err, "user_id", userID)
		return nil, model.NewInternalError()
	}
	if item == nil {
		return nil, model.NewNotFoundError()
	}

	return item, nil
}

// Delete はビジョンアイテムを削除する。対象が存在しなくても成功として扱う。
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("ビジョンアイテムの削除に失敗しました", "error", err, "user_id", userID)
		return model.NewInternalError()
	}
	return nil
}

// resolveFloat はnilポインタをデフォルト値に解決する。
func resolveFloat(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

// resolveInt はnilポインタをデフォルト値に解決する。
func resolveInt(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}
