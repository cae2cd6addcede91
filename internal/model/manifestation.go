package model

import "time"

// ManifestationCategory はマニフェステーション（目標）のカテゴリを表す。
type ManifestationCategory string

const (
	CategoryPersonal      ManifestationCategory = "personal"
	CategoryCareer        ManifestationCategory = "career"
	CategoryRelationships ManifestationCategory = "relationships"
	CategoryHealth        ManifestationCategory = "health"
	CategoryFinancial     ManifestationCategory = "financial"
	CategorySpiritual     ManifestationCategory = "spiritual"
)

// IsValid はカテゴリが定義済みの6値のいずれかであるかを返す。
func (c ManifestationCategory) IsValid() bool {
	switch c {
	case CategoryPersonal, CategoryCareer, CategoryRelationships,
		CategoryHealth, CategoryFinancial, CategorySpiritual:
		return true
	}
	return false
}

// Manifestation はユーザーが設定した目標を表す。
// DateはRFC3339形式のタイムスタンプ文字列（作成時にサーバーが付与）。
type Manifestation struct {
	ID        string
	UserID    string
	Text      string
	Category  ManifestationCategory
	Notes     string
	Date      string
	Completed bool
	CreatedAt time.Time
}
