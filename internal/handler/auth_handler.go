// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/apigate/internal/auth"
	"github.com/hitoshi/apigate/internal/middleware"
	"github.com/hitoshi/apigate/internal/model"
)

// AccountServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AccountServiceInterface interface {
	Signup(ctx context.Context, name, email, password string) (*auth.AuthResult, error)
	Login(ctx context.Context, email, password string) (*auth.AuthResult, error)
}

// AuthMetricsRecorder は認証メトリクスの記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type AuthMetricsRecorder interface {
	RecordSignup()
	RecordLoginSuccess()
	RecordLoginFailure()
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain string
	CookieSecure bool
	TokenMaxAge  int // トークンCookieの有効期間（秒）
}

// AuthHandler はサインアップ・ログインのHTTPハンドラー。
type AuthHandler struct {
	service AccountServiceInterface
	metrics AuthMetricsRecorder
	config  AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AccountServiceInterface, metrics AuthMetricsRecorder, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		metrics: metrics,
		config:  config,
	}
}

// signupRequest はサインアップリクエストのボディを表す。
type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest はログインリクエストのボディを表す。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup は新規ユーザーを登録し、トークンCookieを設定する。
// POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeValidation,
			Message:  "リクエストボディのJSONが不正です。",
			Category: "validation",
		})
		return
	}

	result, err := h.service.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	h.metrics.RecordSignup()
	h.setTokenCookie(w, result.Token)
	writeSuccessEnvelope(w, "User is created", userPayload(result.User))
}

// Login はメールアドレスとパスワードでログインし、トークンCookieを設定する。
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeValidation,
			Message:  "リクエストボディのJSONが不正です。",
			Category: "validation",
		})
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.RecordLoginFailure()
		h.writeAuthError(w, err)
		return
	}

	h.metrics.RecordLoginSuccess()
	h.setTokenCookie(w, result.Token)
	writeSuccessEnvelope(w, "Logged in", userPayload(result.User))
}

// setTokenCookie はトークンをHTTP Only Cookieとして設定する。
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.TokenMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// writeAuthError はサービス層のエラーをHTTPレスポンスに変換する。
// パスワード不一致は402、存在しないユーザーは404を返す。
// この区別は既存クライアントとの互換性のために維持している。
func (h *AuthHandler) writeAuthError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		slog.Error("auth handler internal error", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	switch apiErr.Code {
	case model.ErrCodeValidation:
		middleware.WriteErrorResponse(w, http.StatusBadRequest, apiErr)
	case model.ErrCodeUserNotFound:
		middleware.WriteErrorResponse(w, http.StatusNotFound, apiErr)
	case model.ErrCodeBadCredentials:
		middleware.WriteErrorResponse(w, http.StatusPaymentRequired, apiErr)
	case model.ErrCodeDuplicateEmail:
		middleware.WriteErrorResponse(w, http.StatusConflict, apiErr)
	default:
		middleware.WriteInternalServerError(w)
	}
}

// userPayload はレスポンスに含める非機密のユーザーフィールドを返す。
// パスワードハッシュは決して含めない。
func userPayload(user *model.User) map[string]any {
	return map[string]any{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt.Format(time.RFC3339),
	}
}
