// Package auth はパスワード認証、トークン発行・検証、アカウント操作を提供する。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost はbcryptのデフォルトコストファクタ。
// ブルートフォース耐性とログイン遅延のバランスを取る調整値で、
// 一般的なハードウェアで1回の検証が1秒を大きく下回る範囲に収める。
const DefaultBcryptCost = 10

// PasswordHasher はパスワードのハッシュ化と検証を提供する。
// bcryptによるソルト付き一方向ハッシュを使用する。
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher はPasswordHasherを生成する。
// costが0以下の場合はDefaultBcryptCostを使用する。
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash は平文パスワードからソルト付きハッシュを生成する。
// 入力形式によるエラーは発生せず、内部的な失敗時のみエラーを返す。
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify は平文パスワードとハッシュの一致を検証する。
// 不一致の場合はエラーを発生させずfalseを返す。
func (h *PasswordHasher) Verify(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
