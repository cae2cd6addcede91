// Package energy はエネルギー記録管理のドメインロジックを提供する。
package energy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/dreamsync/internal/model"
	"github.com/hitoshi/dreamsync/internal/repository"
	"github.com/hitoshi/dreamsync/internal/security"
)

// dateLayout は記録日付の形式（日単位）。
const dateLayout = "2006-01-02"

// CreateInput はエネルギー記録作成の入力。
// Dateを省略した場合は当日（UTC）が使用される。
type CreateInput struct {
	Level int
	Notes string
	Date  string
}

// Service はエネルギー記録管理のサービス層。
// 同一ユーザー・同一日付の記録は1件に制限され、再登録は上書きとなる。
type Service struct {
	repo      repository.EnergyEntryRepository
	sanitizer security.TextSanitizerService
	logger    *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.EnergyEntryRepository, sanitizer security.TextSanitizerService, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// List はユーザーの記録一覧を日付降順で返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.EnergyEntry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("エネルギー記録一覧の取得に失敗しました", "error", err, "user_id", userID)
		return nil, model.NewInternalError()
	}
	return entries, nil
}

// Create はエネルギー記録を作成する。同一日付の既存記録がある場合は
// レベルとメモを上書きし、既存記録のIDを維持する。
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*model.EnergyEntry, error) {
	if input.Level < model.MinEnergyLevel || input.Level > model.MaxEnergyLevel {
		return nil, model.NewValidationError(fmt.Sprintf("levelは%d〜%dの整数で指定してください", model.MinEnergyLevel, model.MaxEnergyLevel))
	}

	date := input.Date
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, model.NewValidationError("dateはYYYY-MM-DD形式で指定してください")
	}

	entry := &model.EnergyEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      date,
		Level:     input.Level,
		Notes:     s.sanitizer.Sanitize(input.Notes),
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		s.logger.Error("エネルギー記録の保存に失敗しました", "error", err, "user_id", userID)
		return nil, model.NewInternalError()
	}
	entry.ID = id

	return entry, nil
}

// Delete はエネルギー記録を削除する。対象が存在しなくても成功として扱う。
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("エネルギー記録の削除に失敗しました", "error", err, "user_id", userID)
		return model.NewInternalError()
	}
	return nil
}
