// Package repository はデータ永続化のインターフェースを定義する。
//
// 全メソッド共通の契約: 検証済みの引数を受け取り、パラメータ化された
// SQL文を1回だけ発行する。ユーザー所有テーブルへの操作は常に
// user_idでスコープされ、他ユーザーの行には決して影響しない。
package repository

import (
	"context"

	"github.com/hitoshi/dreamsync/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成する。メールアドレス重複はDB制約で拒否される。
	Create(ctx context.Context, user *model.User) error

	// FindByEmail はメールアドレス完全一致（大文字小文字を区別）でユーザーを検索する。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// VisionItemRepository はビジョンアイテムの永続化インターフェース。
type VisionItemRepository interface {
	// ListByUser はユーザーのビジョンアイテム一覧を返す。順序は保証しない。
	ListByUser(ctx context.Context, userID string) ([]*model.VisionItem, error)

	// Create はビジョンアイテムを作成する。
	Create(ctx context.Context, item *model.VisionItem) error

	// Update は部分更新をサーバー側でマージして適用し、更新後の行を返す。
	// nilの文字列フィールドは既存値を維持し、nilの数値フィールドにはデフォルト値を適用する。
	// 対象行が存在しない場合はnilを返す。
	Update(ctx context.Context, id, userID string, updates *VisionItemUpdate) (*model.VisionItem, error)

	// Delete は指定IDのアイテムを削除する。対象が存在しなくてもエラーにしない。
	Delete(ctx context.Context, id, userID string) error
}

// VisionItemUpdate はビジョンアイテム部分更新の入力。
// nilフィールドは「リクエストで省略された」ことを表す。
type VisionItemUpdate struct {
	ImageURL *string
	Section  *string
	Text     *string
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	ZIndex   *int
}

// EnergyEntryRepository はエネルギー記録の永続化インターフェース。
type EnergyEntryRepository interface {
	// ListByUser はユーザーの記録一覧を日付降順で返す。
	ListByUser(ctx context.Context, userID string) ([]*model.EnergyEntry, error)

	// Upsert は記録を作成する。同一ユーザー・同一日付の既存行がある場合は
	// レベルとメモを上書きし、既存行のIDを維持する（1日1件の制約）。
	// 最終的に保存された行のIDを返す。
	Upsert(ctx context.Context, entry *model.EnergyEntry) (string, error)

	// Delete は指定IDの記録を削除する。対象が存在しなくてもエラーにしない。
	Delete(ctx context.Context, id, userID string) error
}

// ManifestationRepository はマニフェステーションの永続化インターフェース。
type ManifestationRepository interface {
	// ListByUser はユーザーの目標一覧を日付降順で返す。
	ListByUser(ctx context.Context, userID string) ([]*model.Manifestation, error)

	// Create は目標を作成する。
	Create(ctx context.Context, m *model.Manifestation) error

	// Update は全フィールドを置換する。
	Update(ctx context.Context, m *model.Manifestation) error

	// Delete は指定IDの目標を削除する。対象が存在しなくてもエラーにしない。
	Delete(ctx context.Context, id, userID string) error
}

// RecommendationRepository はユーザー作成おすすめの永続化インターフェース。
// システム標準のおすすめは永続化されないため、このインターフェースの対象外。
type RecommendationRepository interface {
	// ListByUserAndBand はユーザーのおすすめ一覧をエネルギー区分の完全一致で返す。
	ListByUserAndBand(ctx context.Context, userID string, band model.EnergyBand) ([]*model.Recommendation, error)

	// Create はおすすめを作成する。
	Create(ctx context.Context, rec *model.Recommendation) error

	// Update は全フィールドを置換する。
	Update(ctx context.Context, rec *model.Recommendation) error

	// Delete は指定IDのおすすめを削除する。対象が存在しなくてもエラーにしない。
	Delete(ctx context.Context, id, userID string) error
}
