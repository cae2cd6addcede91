package recommendation

import "github.com/hitoshi/dreamsync/internal/model"

// defaultsByBand はシステム標準のおすすめアクティビティ。
// DBには永続化せず、一覧取得時にユーザー作成分とマージして返す。
// IDは固定で、ユーザー作成分のUUIDと衝突しない。
var defaultsByBand = map[model.EnergyBand][]model.Recommendation{
	model.BandLow: {
		{
			ID:          "default-low-1",
			Title:       "エネルギーを取り戻す誘導瞑想",
			Description: "10分間のやさしい瞑想。エネルギーを充電し、心を落ち着かせます。",
			Type:        model.TypeMeditation,
			Link:        "https://www.youtube.com/watch?v=AdGUYhwojGU",
			EnergyLevel: model.BandLow,
			IsDefault:   true,
		},
		{
			ID:          "default-low-2",
			Title:       "心を鎮めるサウンドスケープ",
			Description: "自然音と穏やかな音楽で気分を和らげ、リラックスできます。",
			Type:        model.TypeMusic,
			Link:        "https://www.youtube.com/watch?v=pRtVNjv0NWs",
			EnergyLevel: model.BandLow,
			IsDefault:   true,
		},
		{
			ID:          "default-low-3",
			Title:       "疲労のためのEFTタッピング",
			Description: "シンプルなタッピングの手順で、滞りを解消して新しいエネルギーを見つけます。",
			Type:        model.TypeMeditation,
			Link:        "https://www.youtube.com/watch?v=bFwap7I8btU",
			EnergyLevel: model.BandLow,
			IsDefault:   true,
		},
	},
	model.BandMedium: {
		{
			ID:          "default-medium-1",
			Title:       "4-7-8呼吸法",
			Description: "ストレスを減らし、神経系を落ち着かせる効果的な呼吸エクササイズ。",
			Type:        model.TypeBreathing,
			Link:        "https://www.youtube.com/watch?v=LiUnFJ8P4gM",
			EnergyLevel: model.BandMedium,
			IsDefault:   true,
		},
		{
			ID:          "default-medium-2",
			Title:       "マインドフルな散歩",
			Description: "自然の中を15分歩きましょう。",
			Type:        model.TypeWalk,
			EnergyLevel: model.BandMedium,
			IsDefault:   true,
		},
		{
			ID:          "default-medium-3",
			Title:       "ポジティブ・アファメーション",
			Description: "心の静けさをもたらす力強いアファメーション。",
			Type:        model.TypeMeditation,
			Link:        "https://www.youtube.com/watch?v=H1AM0-9koVc",
			EnergyLevel: model.BandMedium,
			IsDefault:   true,
		},
	},
	model.BandHigh: {
		{
			ID:          "default-high-1",
			Title:       "生産性を高めるテクニック",
			Description: "ポモドーロ・テクニックなど、集中状態を最大限に活かす方法を学びます。",
			Type:        model.TypeProductivity,
			EnergyLevel: model.BandHigh,
			IsDefault:   true,
		},
		{
			ID:          "default-high-2",
			Title:       "モチベーションが上がるトーク",
			Description: "目標に向かう意欲を引き出す刺激的な講演。",
			Type:        model.TypeVideo,
			Link:        "https://www.youtube.com/watch?v=HyaRgych_yk",
			EnergyLevel: model.BandHigh,
			IsDefault:   true,
		},
		{
			ID:          "default-high-3",
			Title:       "自己成長のための読書",
			Description: "マインドセットを強化する本のおすすめリスト。",
			Type:        model.TypeReading,
			Link:        "https://www.audible.de/blog/laura-malina-seiler-buchempfehlungen",
			EnergyLevel: model.BandHigh,
			IsDefault:   true,
		},
	},
}

// DefaultsForBand は指定区分のシステム標準おすすめのコピーを返す。
// 呼び出し側の変更が埋め込みデータへ波及しないようにする。
func DefaultsForBand(band model.EnergyBand) []*model.Recommendation {
	defaults := defaultsByBand[band]
	recs := make([]*model.Recommendation, len(defaults))
	for i := range defaults {
		rec := defaults[i]
		recs[i] = &rec
	}
	return recs
}
