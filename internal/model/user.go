// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"
)

// User はサービス利用ユーザーを表す。
// PasswordHashにはbcryptハッシュを保持し、平文パスワードは保存しない。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

// Profile はAPIレスポンスに含める最小限のユーザープロフィール。
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DisplayName はユーザーの表示名を返す。
// Nameが未設定の場合はメールアドレスのローカル部を表示名とする。
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if i := strings.Index(u.Email, "@"); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}
