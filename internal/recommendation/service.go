// Package recommendation はおすすめアクティビティ管理のドメインロジックを提供する。
//
// おすすめはエネルギー区分（low/medium/high）単位で管理され、一覧は
// システム標準（コード埋め込み）とユーザー作成（DB永続化）のマージとなる。
package recommendation

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/dreamsync/internal/model"
	"github.com/hitoshi/dreamsync/internal/repository"
	"github.com/hitoshi/dreamsync/internal/security"
)

// Input はおすすめ作成・更新の入力。更新時は全フィールドを置換する。
type Input struct {
	Title       string
	Description string
	Type        string
	Link        string
	EnergyLevel string
}

// Service はおすすめ管理のサービス層。
type Service struct {
	repo      repository.RecommendationRepository
	sanitizer security.TextSanitizerService
	logger    *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.RecommendationRepository, sanitizer security.TextSanitizerService, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// List は指定区分のおすすめ一覧を返す。システム標準を先頭に、
// ユーザー作成分を後ろに連結する（重複なし）。
// bandが空文字列の場合は空の一覧を返す（区分未指定は絞り込み不能として扱う）。
func (s *Service) List(ctx context.Context, userID, band string) ([]*model.Recommendation, error) {
	if band == "" {
		return []*model.Recommendation{}, nil
	}

	energyBand := model.EnergyBand(band)
	if !energyBand.IsValid() {
		return []*model.Recommendation{}, nil
	}

	custom, err := s.repo.ListByUserAndBand(ctx, userID, energyBand)
	if err != nil {
		s.logger.Error("おすすめ一覧の取得に失敗しました", "error", err, "user_id", userID)
		return nil, model.NewInternalError()
	}

	recs := DefaultsForBand(energyBand)
	return append(recs, custom...), nil
}

// Create はユーザー作成のおすすめを登録する。
func (s *Service) Create(ctx context.Context, userID string, input Input) (*model.Recommendation, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	rec := &model.Recommendation{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Type:        model.RecommendationType(input.Type),
		Link:        input.Link,
		EnergyLevel: model.EnergyBand(input.EnergyLevel),
		IsDefault:   false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("おすすめの作成に失敗しました", "error", err, "user_id", userID)
		return nil, model.NewInternalError()
	}

	return rec, nil
}

// Update はユーザー作成のおすすめの全フィールドを置換する。
// システム標準のおすすめ（default-*）はDBに存在しないため、対象行なしの
// 更新となり状態は変化しない。
func (s *Service) Update(ctx context.Context, userID, id string, input Input) error {
	if err := s.validateInput(&input); err != nil {
		return err
	}

	rec := &model.Recommendation{
		ID:          id,
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Type:        model.RecommendationType(input.Type),
		Link:        input.Link,
		EnergyLevel: model.EnergyBand(input.EnergyLevel),
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		s.logger.Error("おすすめの更新に失敗しました", "error", err, "user_id", userID)
		return model.NewInternalError()
	}

	return nil
}

// Delete はユーザー作成のおすすめを削除する。対象が存在しなくても成功として扱う。
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		s.logger.Error("おすすめの削除に失敗しました", "error", err, "user_id", userID)
		return model.NewInternalError()
	}
	return nil
}

// validateInput は入力を検証し、自由テキストをサニタイズする。
// リンクはhttp/httpsのURLのみ許可する（空は可）。
func (s *Service) validateInput(input *Input) error {
	input.Title = s.sanitizer.Sanitize(input.Title)
	input.Description = s.sanitizer.Sanitize(input.Description)

	if input.Title == "" {
		return model.NewValidationError("titleは必須です")
	}
	if input.Description == "" {
		return model.NewValidationError("descriptionは必須です")
	}
	if !model.RecommendationType(input.Type).IsValid() {
		return model.NewValidationError("typeの値が不正です")
	}
	if !model.EnergyBand(input.EnergyLevel).IsValid() {
		return model.NewValidationError("energyLevelの値が不正です")
	}
	if input.Link != "" {
		u, err := url.Parse(input.Link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return model.NewValidationError("linkはhttpまたはhttpsのURLで指定してください")
		}
	}

	return nil
}
