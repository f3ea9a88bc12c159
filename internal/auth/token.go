package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/apigate/internal/model"
)

// トークン検証の失敗理由を表すセンチネルエラー。
var (
	// ErrTokenExpired はトークンの有効期限が切れていることを表す。
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid は署名不一致・形式不正などでトークンが無効であることを表す。
	ErrTokenInvalid = errors.New("token invalid")
)

// tokenIssuer はトークンのiss（発行者）クレームに設定する値。
const tokenIssuer = "apigate"

// jwtClaims はJWTトークンのクレーム（ペイロード）を表す。
type jwtClaims struct {
	jwt.RegisteredClaims
	// UserID は認証済みユーザーの一意識別子。
	UserID string `json:"user_id"`
	// Email はユーザーのメールアドレス。
	Email string `json:"email"`
}

// TokenService は署名付き・期限付きの本人性トークンの発行と検証を提供する。
// 署名鍵はプロセス全体の設定として起動時に1回読み込み、以降は読み取り専用。
// 鍵ローテーションの仕組みは持たない。
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService はTokenServiceを生成する。
// secretはHS256署名用の秘密鍵、ttlはトークンの有効期間を指定する。
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue はクレームから署名付きトークンを発行する。
func (s *TokenService) Issue(claims model.TokenClaims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
		UserID: claims.UserID,
		Email:  claims.Email,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、クレームを返す。
// 期限切れの場合はErrTokenExpired、それ以外の無効なトークンの場合はErrTokenInvalidを返す。
func (s *TokenService) Verify(tokenString string) (*model.TokenClaims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return &model.TokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}
