package model

import "time"

// VisionSection はビジョンボード上のセクションを表す。
type VisionSection string

const (
	// SectionCareer はキャリア・財務セクション。
	SectionCareer VisionSection = "career"
	// SectionRelationships は人間関係セクション。
	SectionRelationships VisionSection = "relationships"
	// SectionPersonal は自己成長セクション。
	SectionPersonal VisionSection = "personal"
	// SectionHealth は健康セクション。
	SectionHealth VisionSection = "health"
)

// IsValid はセクションが定義済みの値かどうかを返す。
func (s VisionSection) IsValid() bool {
	switch s {
	case SectionCareer, SectionRelationships, SectionPersonal, SectionHealth:
		return true
	}
	return false
}

// VisionItem はビジョンボード上に配置された画像アイテムを表す。
// 画像はURLまたはdata URIで保持し、配置座標・サイズ・重なり順を持つ。
type VisionItem struct {
	ID        string
	UserID    string
	ImageURL  string
	Section   VisionSection
	Text      string
	X         float64
	Y         float64
	Width     float64
	Height    float64
	ZIndex    int
	CreatedAt time.Time
}

// ビジョンアイテムの数値フィールドのデフォルト値。
// 更新リクエストで省略されたフィールドにはこの値が適用される。
const (
	DefaultVisionX      = 0
	DefaultVisionY      = 0
	DefaultVisionWidth  = 150
	DefaultVisionHeight = 150
	DefaultVisionZIndex = 0
)
