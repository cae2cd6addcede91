package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/dreamsync/internal/model"
	"github.com/hitoshi/dreamsync/internal/repository"
)

// Result は登録・ログイン成功時の結果。
type Result struct {
	Token   string
	UserID  string
	Profile model.Profile
}

// Service はユーザー登録とログインのビジネスロジックを提供する。
type Service struct {
	users      repository.UserRepository
	tokens     *TokenManager
	bcryptCost int
	logger     *slog.Logger
}

// NewService はServiceを生成する。
func NewService(users repository.UserRepository, tokens *TokenManager, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register は新規ユーザーを登録し、アクセストークンを発行する。
// メールアドレスが既に登録済みの場合はDUPLICATE_EMAILエラーを返す。
func (s *Service) Register(ctx context.Context, email, password string) (*Result, error) {
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("ユーザー検索に失敗しました", "error", err)
		return nil, model.NewInternalError()
	}
	if existing != nil {
		return nil, model.NewDuplicateEmailError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error("パスワードハッシュの生成に失敗しました", "error", err)
		return nil, model.NewInternalError()
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("ユーザー作成に失敗しました", "error", err)
		return nil, model.NewInternalError()
	}

	s.logger.Info("ユーザーを登録しました", "user_id", user.ID)

	return s.buildResult(user)
}

// Login はメールアドレスとパスワードでユーザーを認証し、アクセストークンを発行する。
// メールアドレス未登録とパスワード不一致は区別せず、同一のエラーを返す。
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("ユーザー検索に失敗しました", "error", err)
		return nil, model.NewInternalError()
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	s.logger.Info("ユーザーがログインしました", "user_id", user.ID)

	return s.buildResult(user)
}

// buildResult はトークンを発行し、プロフィール付きの結果を組み立てる。
func (s *Service) buildResult(user *model.User) (*Result, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("トークン発行に失敗しました", "error", err)
		return nil, model.NewInternalError()
	}

	return &Result{
		Token:  token,
		UserID: user.ID,
		Profile: model.Profile{
			Email: user.Email,
			Name:  user.DisplayName(),
		},
	}, nil
}

// validateCredentials はメールアドレスとパスワードの形式を検証する。
func validateCredentials(email, password string) error {
	if email == "" {
		return model.NewValidationError("メールアドレスは必須です")
	}
	if !strings.Contains(email, "@") {
		return model.NewValidationError("メールアドレスの形式が正しくありません")
	}
	if password == "" {
		return model.NewValidationError("パスワードは必須です")
	}
	return nil
}
