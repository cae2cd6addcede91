package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/dreamsync/internal/model"
)

// SQLiteEnergyEntryRepo はSQLiteを使用したエネルギー記録リポジトリ。
type SQLiteEnergyEntryRepo struct {
	db *sql.DB
}

// NewSQLiteEnergyEntryRepo はSQLiteEnergyEntryRepoを生成する。
func NewSQLiteEnergyEntryRepo(db *sql.DB) *SQLiteEnergyEntryRepo {
	return &SQLiteEnergyEntryRepo{db: db}
}

// ListByUser はユーザーの記録一覧を日付降順で返す。
func (r *SQLiteEnergyEntryRepo) ListByUser(ctx context.Context, userID string) ([]*model.EnergyEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, date, level, notes, created_at
		 FROM energy_entries WHERE user_id = ? ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list energy entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.EnergyEntry
	for rows.Next() {
		entry := &model.EnergyEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Date, &entry.Level, &entry.Notes, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan energy entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate energy entries: %w", err)
	}

	return entries, nil
}

// Upsert は記録を作成する。同一ユーザー・同一日付の既存行がある場合は
// レベルとメモを上書きし、既存行のIDを維持する（UNIQUE(user_id, date)）。
// RETURNINGにより1文で最終的な行のIDを取得する。
func (r *SQLiteEnergyEntryRepo) Upsert(ctx context.Context, entry *model.EnergyEntry) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO energy_entries (id, user_id, date, level, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET
		     level = excluded.level,
		     notes = excluded.notes
		 RETURNING id`,
		entry.ID, entry.UserID, entry.Date, entry.Level, entry.Notes, entry.CreatedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to upsert energy entry: %w", err)
	}
	return id, nil
}

// Delete は指定IDの記録を削除する。対象が存在しなくてもエラーにしない。
func (r *SQLiteEnergyEntryRepo) Delete(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM energy_entries WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete energy entry: %w", err)
	}
	return nil
}

// compile-time interface check
var _ EnergyEntryRepository = (*SQLiteEnergyEntryRepo)(nil)
