package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/dreamsync/internal/model"
)

// SQLiteRecommendationRepo はSQLiteを使用したおすすめリポジトリ。
// システム標準のおすすめはここを通らない（永続化されない）。
type SQLiteRecommendationRepo struct {
	db *sql.DB
}

// NewSQLiteRecommendationRepo はSQLiteRecommendationRepoを生成する。
func NewSQLiteRecommendationRepo(db *sql.DB) *SQLiteRecommendationRepo {
	return &SQLiteRecommendationRepo{db: db}
}

// ListByUserAndBand はユーザーのおすすめ一覧をエネルギー区分の完全一致で返す。
func (r *SQLiteRecommendationRepo) ListByUserAndBand(ctx context.Context, userID string, band model.EnergyBand) ([]*model.Recommendation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, type, link, energy_level, created_at
		 FROM recommendations WHERE user_id = ? AND energy_level = ?`,
		userID, band,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	var recs []*model.Recommendation
	for rows.Next() {
		rec := &model.Recommendation{}
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Title, &rec.Description, &rec.Type,
			&rec.Link, &rec.EnergyLevel, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}

	return recs, nil
}

// Create はおすすめを作成する。
func (r *SQLiteRecommendationRepo) Create(ctx context.Context, rec *model.Recommendation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recommendations (id, user_id, title, description, type, link, energy_level, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Title, rec.Description, rec.Type, rec.Link, rec.EnergyLevel, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}
	return nil
}

// Update は全フィールドを置換する。
func (r *SQLiteRecommendationRepo) Update(ctx context.Context, rec *model.Recommendation) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE recommendations
		 SET title = ?, description = ?, type = ?, link = ?, energy_level = ?
		 WHERE id = ? AND user_id = ?`,
		rec.Title, rec.Description, rec.Type, rec.Link, rec.EnergyLevel, rec.ID, rec.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recommendation: %w", err)
	}
	return nil
}

// Delete は指定IDのおすすめを削除する。対象が存在しなくてもエラーにしない。
func (r *SQLiteRecommendationRepo) Delete(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM recommendations WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete recommendation: %w", err)
	}
	return nil
}

// compile-time interface check
var _ RecommendationRepository = (*SQLiteRecommendationRepo)(nil)
