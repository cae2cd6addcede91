package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/dreamsync/internal/model"
)

// SQLiteManifestationRepo はSQLiteを使用したマニフェステーションリポジトリ。
type SQLiteManifestationRepo struct {
	db *sql.DB
}

// NewSQLiteManifestationRepo はSQLiteManifestationRepoを生成する。
func NewSQLiteManifestationRepo(db *sql.DB) *SQLiteManifestationRepo {
	return &SQLiteManifestationRepo{db: db}
}

// ListByUser はユーザーの目標一覧を日付降順で返す。
func (r *SQLiteManifestationRepo) ListByUser(ctx context.Context, userID string) ([]*model.Manifestation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, text, category, notes, completed, date, created_at
		 FROM manifestations WHERE user_id = ? ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list manifestations: %w", err)
	}
	defer rows.Close()

	var manifestations []*model.Manifestation
	for rows.Next() {
		m := &model.Manifestation{}
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Text, &m.Category, &m.Notes, &m.Completed, &m.Date, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan manifestation: %w", err)
		}
		manifestations = append(manifestations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate manifestations: %w", err)
	}

	return manifestations, nil
}

// Create は目標を作成する。
func (r *SQLiteManifestationRepo) Create(ctx context.Context, m *model.Manifestation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO manifestations (id, user_id, text, category, notes, completed, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Text, m.Category, m.Notes, m.Completed, m.Date, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert manifestation: %w", err)
	}
	return nil
}

// Update は全フィールドを置換する。
func (r *SQLiteManifestationRepo) Update(ctx context.Context, m *model.Manifestation) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE manifestations
		 SET text = ?, category = ?, notes = ?, completed = ?, date = ?
		 WHERE id = ? AND user_id = ?`,
		m.Text, m.Category, m.Notes, m.Completed, m.Date, m.ID, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update manifestation: %w", err)
	}
	return nil
}

// Delete は指定IDの目標を削除する。対象が存在しなくてもエラーにしない。
func (r *SQLiteManifestationRepo) Delete(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM manifestations WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete manifestation: %w", err)
	}
	return nil
}

// compile-time interface check
var _ ManifestationRepository = (*SQLiteManifestationRepo)(nil)
