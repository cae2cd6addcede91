package model

import "time"

// RecommendationType はおすすめアクティビティの種別を表す。
type RecommendationType string

const (
	TypeMeditation   RecommendationType = "meditation"
	TypeMusic        RecommendationType = "music"
	TypeBreathing    RecommendationType = "breathing"
	TypeWalk         RecommendationType = "walk"
	TypeVideo        RecommendationType = "video"
	TypeReading      RecommendationType = "reading"
	TypeProductivity RecommendationType = "productivity"
)

// IsValid は種別が定義済みの値かどうかを返す。
func (t RecommendationType) IsValid() bool {
	switch t {
	case TypeMeditation, TypeMusic, TypeBreathing, TypeWalk,
		TypeVideo, TypeReading, TypeProductivity:
		return true
	}
	return false
}

// Recommendation はエネルギー区分に紐づくおすすめアクティビティを表す。
// ユーザーが作成したものはDBに永続化され、IsDefault=falseとなる。
// システム標準のおすすめ（IsDefault=true）はコードに埋め込まれ、永続化されない。
type Recommendation struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Type        RecommendationType
	Link        string
	EnergyLevel EnergyBand
	IsDefault   bool
	CreatedAt   time.Time
}
