package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/apigate/internal/model"
	"github.com/hitoshi/apigate/internal/repository"
)

// NameSanitizer は表示名からHTML等の危険な文字列を除去するインターフェース。
// security.NameSanitizerの部分集合として定義する。
type NameSanitizer interface {
	Sanitize(s string) string
}

// AuthResult は認証成功時の結果を表す。
// ハンドラーはTokenをCookieに設定し、Userの非機密フィールドをレスポンスに含める。
type AuthResult struct {
	User  *model.User
	Token string
}

// Service はサインアップとログインのビジネスロジックを提供する。
type Service struct {
	userRepo  repository.UserRepository
	hasher    *PasswordHasher
	tokens    *TokenService
	sanitizer NameSanitizer
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	hasher *PasswordHasher,
	tokens *TokenService,
	sanitizer NameSanitizer,
) *Service {
	return &Service{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		sanitizer: sanitizer,
	}
}

// Signup は新規ユーザーを登録し、トークンを発行する。
// 処理の流れ: 必須フィールド検証 → 表示名サニタイズ → パスワードハッシュ化 →
// ユーザー作成 → トークン発行。
// バリデーションは存在チェックのみで、メール形式やパスワード強度は検証しない。
func (s *Service) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if err := requireFields(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}); err != nil {
		return nil, err
	}

	name = s.sanitizer.Sanitize(name)

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == repository.ErrDuplicateEmail {
			return nil, model.NewDuplicateEmailError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(model.TokenClaims{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("new user signed up",
		slog.String("user_id", user.ID),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// Login はメールアドレスとパスワードでログインし、トークンを発行する。
// ユーザーが存在しない場合とパスワード不一致の場合は異なるエラーを返す。
// この区別はアカウントの存在を漏らすが、既存クライアントが依存しているため維持している。
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := requireFields(map[string]string{
		"email":    email,
		"password": password,
	}); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, model.NewBadCredentialsError()
	}

	token, err := s.tokens.Issue(model.TokenClaims{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// requireFields は必須フィールドの存在を検証する。
// 空白のみの値も未指定として扱う。
func requireFields(fields map[string]string) error {
	// mapの走査順に依存しないよう、欠落フィールドは固定順で報告する
	for _, name := range []string{"name", "email", "password"} {
		v, ok := fields[name]
		if !ok {
			continue
		}
		if strings.TrimSpace(v) == "" {
			return model.NewValidationError(name)
		}
	}
	return nil
}
