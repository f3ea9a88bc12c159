// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashにはbcryptハッシュのみを格納し、平文パスワードは決して保持しない。
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenClaims はトークンに埋め込まれる本人性情報を表す。
// トークンはサーバー側に永続化せず、署名と有効期限のみで検証する。
type TokenClaims struct {
	UserID string
	Email  string
}
