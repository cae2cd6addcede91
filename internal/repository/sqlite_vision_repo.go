package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/dreamsync/internal/model"
)

// SQLiteVisionItemRepo はSQLiteを使用したビジョンアイテムリポジトリ。
type SQLiteVisionItemRepo struct {
	db *sql.DB
}

// NewSQLiteVisionItemRepo はSQLiteVisionItemRepoを生成する。
func NewSQLiteVisionItemRepo(db *sql.DB) *SQLiteVisionItemRepo {
	return &SQLiteVisionItemRepo{db: db}
}

// ListByUser はユーザーのビジョンアイテム一覧を返す。順序は保証しない。
func (r *SQLiteVisionItemRepo) ListByUser(ctx context.Context, userID string) ([]*model.VisionItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, image_url, section, text, x, y, width, height, z_index, created_at
		 FROM vision_items WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list vision items: %w", err)
	}
	defer rows.Close()

	var items []*model.VisionItem
	for rows.Next() {
		item := &model.VisionItem{}
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ImageURL, &item.Section, &item.Text,
			&item.X, &item.Y, &item.Width, &item.Height, &item.ZIndex, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vision item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vision items: %w", err)
	}

	return items, nil
}

// Create はビジョンアイテムを作成する。
func (r *SQLiteVisionItemRepo) Create(ctx context.Context, item *model.VisionItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vision_items (id, user_id, image_url, section, text, x, y, width, height, z_index, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.ImageURL, item.Section, item.Text,
		item.X, item.Y, item.Width, item.Height, item.ZIndex, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert vision item: %w", err)
	}
	return nil
}

// Update は部分更新をサーバー側でマージして適用し、更新後の行を返す。
// 文字列フィールドはCOALESCEで既存値を維持し、数値フィールドは呼び出し側で
// デフォルト値に解決済みの値をそのまま書き込む。対象行が存在しない場合はnilを返す。
func (r *SQLiteVisionItemRepo) Update(ctx context.Context, id, userID string, updates *VisionItemUpdate) (*model.VisionItem, error) {
	x := resolveFloat(updates.X, model.DefaultVisionX)
	y := resolveFloat(updates.Y, model.DefaultVisionY)
	width := resolveFloat(updates.Width, model.DefaultVisionWidth)
	height := resolveFloat(updates.Height, model.DefaultVisionHeight)
	zIndex := resolveInt(updates.ZIndex, model.DefaultVisionZIndex)

	item := &model.VisionItem{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE vision_items
		 SET image_url = COALESCE(?, image_url),
		     section = COALESCE(?, section),
		     text = COALESCE(?, text),
		     x = ?, y = ?, width = ?, height = ?, z_index = ?
		 WHERE id = ? AND user_id = ?
		 RETURNING id, user_id, image_url, section, text, x, y, width, height, z_index, created_at`,
		updates.ImageURL, updates.Section, updates.Text,
		x, y, width, height, zIndex,
		id, userID,
	).Scan(
		&item.ID, &item.UserID, &item.ImageURL, &item.Section, &item.Text,
		&item.X, &item.Y, &item.Width, &item.Height, &item.ZIndex, &item.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update vision item: %w", err)
	}

	return item, nil
}

// Delete は指定IDのアイテムを削除する。対象が存在しなくてもエラーにしない。
func (r *SQLiteVisionItemRepo) Delete(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM vision_items WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete vision item: %w", err)
	}
	return nil
}

// resolveFloat はnilポインタをデフォルト値に解決する。
func resolveFloat(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

// resolveInt はnilポインタをデフォルト値に解決する。
func resolveInt(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

// compile-time interface check
var _ VisionItemRepository = (*SQLiteVisionItemRepo)(nil)
