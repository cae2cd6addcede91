package model

import "time"

// EnergyEntry は1日単位のエネルギーレベル記録を表す。
// Dateは "2006-01-02" 形式の日付文字列で、同一ユーザー・同一日付の記録は1件に限る。
type EnergyEntry struct {
	ID        string
	UserID    string
	Date      string
	Level     int
	Notes     string
	CreatedAt time.Time
}

// エネルギーレベルの有効範囲。
const (
	MinEnergyLevel = 1
	MaxEnergyLevel = 5
)

// EnergyBand はエネルギーレベルの区分（low/medium/high）を表す。
// おすすめアクティビティはこの区分単位で管理される。
type EnergyBand string

const (
	// BandLow はレベル2以下の区分。
	BandLow EnergyBand = "low"
	// BandMedium はレベル3の区分。
	BandMedium EnergyBand = "medium"
	// BandHigh はレベル4以上の区分。
	BandHigh EnergyBand = "high"
)

// IsValid は区分が定義済みの値かどうかを返す。
func (b EnergyBand) IsValid() bool {
	switch b {
	case BandLow, BandMedium, BandHigh:
		return true
	}
	return false
}

// BandForLevel はエネルギーレベル（1〜5）を区分にマッピングする。
// レベル2以下はlow、3はmedium、4以上はhigh。
func BandForLevel(level int) EnergyBand {
	switch {
	case level <= 2:
		return BandLow
	case level == 3:
		return BandMedium
	default:
		return BandHigh
	}
}
