package client

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/hitoshi/dreamsync/internal/model"
)

// ErrNotAuthenticated は未ログイン状態でデータ操作を行った場合のエラー。
var ErrNotAuthenticated = errors.New("client: ログインしていません")

// snapshot はローカルに永続化する状態のスナップショット。
// 認証情報とキャッシュ済みコレクションのみを保存する。
type snapshot struct {
	UserID  string  `json:"userId"`
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`

	VisionItems     []VisionItem     `json:"visionItems"`
	EnergyEntries   []EnergyEntry    `json:"energyEntries"`
	Manifestations  []Manifestation  `json:"manifestations"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Store は認証情報とユーザー所有コレクションのキャッシュを一元管理する状態ストア。
// 各操作はAPI呼び出しの成功後にのみキャッシュへ反映する（楽観的更新は行わない）。
// APIが401を返した場合は自動的にログアウトし、キャッシュを破棄する。
type Store struct {
	client *Client
	logger *slog.Logger
	path   string

	mu    sync.RWMutex
	state snapshot
}

// NewStore はStoreを生成する。pathのスナップショットが存在すれば状態を復元する。
// pathが空の場合は永続化を行わない。
func NewStore(client *Client, path string, logger *slog.Logger) *Store {
	s := &Store{
		client: client,
		logger: logger,
		path:   path,
	}
	s.restore()
	return s
}

// restore はスナップショットファイルから状態を復元する。
func (s *Store) restore() {
	if s.path == "" {
		return
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("スナップショットの読み込みに失敗", slog.String("error", err.Error()))
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("スナップショットの解析に失敗", slog.String("error", err.Error()))
		return
	}

	s.state = snap
	s.client.SetToken(snap.Token)
}

// persist は現在の状態をスナップショットファイルに書き出す。
// 呼び出し側でロックを保持していること。
func (s *Store) persist() {
	if s.path == "" {
		return
	}

	data, err := json.Marshal(s.state)
	if err != nil {
		s.logger.Warn("スナップショットのエンコードに失敗", slog.String("error", err.Error()))
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Warn("スナップショットの書き込みに失敗", slog.String("error", err.Error()))
	}
}

// IsAuthenticated はログイン済みかどうかを返す。
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.UserID != "" && s.state.Token != ""
}

// UserID は認証済みユーザーのIDを返す。未ログイン時は空文字。
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.UserID
}

// Profile は認証済みユーザーのプロフィールを返す。
func (s *Store) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Profile
}

// Register は新規登録し、認証状態を初期化する。
func (s *Store) Register(ctx context.Context, email, password string) error {
	result, err := s.client.Register(ctx, email, password)
	if err != nil {
		return err
	}
	s.setIdentity(result)
	return nil
}

// Login はログインし、認証状態を初期化する。
func (s *Store) Login(ctx context.Context, email, password string) error {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.setIdentity(result)
	return nil
}

// setIdentity は認証結果を状態に反映し、キャッシュをリセットする。
func (s *Store) setIdentity(result *AuthResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = snapshot{
		UserID:  result.UserID,
		Token:   result.Token,
		Profile: result.Profile,
	}
	s.client.SetToken(result.Token)
	s.persist()
}

// Logout は認証状態とキャッシュを破棄し、スナップショットをクリアする。
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = snapshot{}
	s.client.ClearToken()
	s.persist()
}

// guard は未ログインならErrNotAuthenticatedを返す。
func (s *Store) guard() error {
	if !s.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// fail は失敗した操作をログに記録し、401の場合はログアウトする。
// キャッシュは変更前の状態のまま維持される。
func (s *Store) fail(op string, err error) error {
	s.logger.Warn("API呼び出しに失敗",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	if errors.Is(err, ErrUnauthorized) {
		s.Logout()
	}
	return err
}

// LoadUserData はエネルギー記録・目標・ビジョンアイテムを一括取得してキャッシュを入れ替える。
func (s *Store) LoadUserData(ctx context.Context) error {
	if err := s.guard(); err != nil {
		return err
	}

	data, err := s.client.FetchUserData(ctx, s.UserID())
	if err != nil {
		return s.fail("load_user_data", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.EnergyEntries = data.EnergyEntries
	s.state.Manifestations = data.Manifestations
	s.state.VisionItems = data.VisionItems
	s.persist()
	return nil
}

// --- ビジョンアイテム ---

// VisionItems はキャッシュ済みビジョンアイテムのコピーを返す。
func (s *Store) VisionItems() []VisionItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]VisionItem(nil), s.state.VisionItems...)
}

// AddVisionItem はビジョンアイテムを作成し、キャッシュに追加する。
func (s *Store) AddVisionItem(ctx context.Context, input VisionItemInput) error {
	if err := s.guard(); err != nil {
		return err
	}

	item, err := s.client.CreateVisionItem(ctx, input)
	if err != nil {
		return s.fail("add_vision_item", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.VisionItems = append(s.state.VisionItems, *item)
	s.persist()
	return nil
}

// UpdateVisionItem はビジョンアイテムを更新し、キャッシュ内の同一IDを置き換える。
func (s *Store) UpdateVisionItem(ctx context.Context, id string, input VisionItemInput) error {
	if err := s.guard(); err != nil {
		return err
	}

	item, err := s.client.UpdateVisionItem(ctx, id, input)
	if err != nil {
		return s.fail("update_vision_item", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.VisionItems = replaceByID(s.state.VisionItems, *item, func(v VisionItem) string { return v.ID })
	s.persist()
	return nil
}

// RemoveVisionItem はビジョンアイテムを削除し、キャッシュから除外する。
func (s *Store) RemoveVisionItem(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	if err := s.client.DeleteVisionItem(ctx, id); err != nil {
		return s.fail("remove_vision_item", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.VisionItems = filterByID(s.state.VisionItems, id, func(v VisionItem) string { return v.ID })
	s.persist()
	return nil
}

// --- エネルギー記録 ---

// EnergyEntries はキャッシュ済みエネルギー記録のコピーを返す。
func (s *Store) EnergyEntries() []EnergyEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]EnergyEntry(nil), s.state.EnergyEntries...)
}

// AddEnergyEntry はエネルギー記録を作成し、キャッシュに反映する。
// サーバー側で同一日付の記録が上書きされた場合は既存IDの要素を置き換える。
func (s *Store) AddEnergyEntry(ctx context.Context, input EnergyEntryInput) error {
	if err := s.guard(); err != nil {
		return err
	}

	entry, err := s.client.CreateEnergyEntry(ctx, input)
	if err != nil {
		return s.fail("add_energy_entry", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i, e := range s.state.EnergyEntries {
		if e.ID == entry.ID {
			s.state.EnergyEntries[i] = *entry
			replaced = true
			break
		}
	}
	if !replaced {
		s.state.EnergyEntries = append(s.state.EnergyEntries, *entry)
	}
	s.persist()
	return nil
}

// RemoveEnergyEntry はエネルギー記録を削除し、キャッシュから除外する。
func (s *Store) RemoveEnergyEntry(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	if err := s.client.DeleteEnergyEntry(ctx, id); err != nil {
		return s.fail("remove_energy_entry", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.EnergyEntries = filterByID(s.state.EnergyEntries, id, func(e EnergyEntry) string { return e.ID })
	s.persist()
	return nil
}

// --- 目標 ---

// Manifestations はキャッシュ済み目標のコピーを返す。
func (s *Store) Manifestations() []Manifestation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Manifestation(nil), s.state.Manifestations...)
}

// AddManifestation は目標を作成し、キャッシュに追加する。
func (s *Store) AddManifestation(ctx context.Context, input ManifestationInput) error {
	if err := s.guard(); err != nil {
		return err
	}

	m, err := s.client.CreateManifestation(ctx, input)
	if err != nil {
		return s.fail("add_manifestation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Manifestations = append(s.state.Manifestations, *m)
	s.persist()
	return nil
}

// UpdateManifestation は目標を更新し、キャッシュ内の同一IDを置き換える。
func (s *Store) UpdateManifestation(ctx context.Context, id string, input ManifestationInput) error {
	if err := s.guard(); err != nil {
		return err
	}

	m, err := s.client.UpdateManifestation(ctx, id, input)
	if err != nil {
		return s.fail("update_manifestation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Manifestations = replaceByID(s.state.Manifestations, *m, func(v Manifestation) string { return v.ID })
	s.persist()
	return nil
}

// RemoveManifestation は目標を削除し、キャッシュから除外する。
func (s *Store) RemoveManifestation(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	if err := s.client.DeleteManifestation(ctx, id); err != nil {
		return s.fail("remove_manifestation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Manifestations = filterByID(s.state.Manifestations, id, func(m Manifestation) string { return m.ID })
	s.persist()
	return nil
}

// --- おすすめ ---

// Recommendations はキャッシュ済みおすすめのコピーを返す。
func (s *Store) Recommendations() []Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Recommendation(nil), s.state.Recommendations...)
}

// LoadRecommendations は指定区分のおすすめ一覧を取得してキャッシュを入れ替える。
func (s *Store) LoadRecommendations(ctx context.Context, band string) error {
	if err := s.guard(); err != nil {
		return err
	}

	recs, err := s.client.ListRecommendations(ctx, band)
	if err != nil {
		return s.fail("load_recommendations", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Recommendations = recs
	s.persist()
	return nil
}

// LoadRecommendationsForLevel は記録したエネルギーレベル（1〜5）を区分に変換し、
// その区分のおすすめ一覧を取得してキャッシュを入れ替える。
// エネルギーチェック直後に当日のレベルからおすすめを引くための入口。
func (s *Store) LoadRecommendationsForLevel(ctx context.Context, level int) error {
	return s.LoadRecommendations(ctx, string(model.BandForLevel(level)))
}

// AddRecommendation はおすすめを作成し、キャッシュに追加する。
func (s *Store) AddRecommendation(ctx context.Context, input RecommendationInput) error {
	if err := s.guard(); err != nil {
		return err
	}

	rec, err := s.client.CreateRecommendation(ctx, input)
	if err != nil {
		return s.fail("add_recommendation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Recommendations = append(s.state.Recommendations, *rec)
	s.persist()
	return nil
}

// UpdateRecommendation はおすすめの全フィールドを置換し、キャッシュ内の同一IDへ反映する。
// サーバーは成功フラグのみを返すため、キャッシュは入力値から再構成する
// （ID・作成日時・IsDefaultは既存のキャッシュ値を維持する）。
func (s *Store) UpdateRecommendation(ctx context.Context, id string, input RecommendationInput) error {
	if err := s.guard(); err != nil {
		return err
	}

	if err := s.client.UpdateRecommendation(ctx, id, input); err != nil {
		return s.fail("update_recommendation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Recommendations {
		if s.state.Recommendations[i].ID != id {
			continue
		}
		rec := &s.state.Recommendations[i]
		rec.Title = input.Title
		rec.Description = input.Description
		rec.Type = input.Type
		rec.Link = input.Link
		rec.EnergyLevel = input.EnergyLevel
		break
	}
	s.persist()
	return nil
}

// RemoveRecommendation はおすすめを削除し、キャッシュから除外する。
func (s *Store) RemoveRecommendation(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}

	if err := s.client.DeleteRecommendation(ctx, id); err != nil {
		return s.fail("remove_recommendation", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Recommendations = filterByID(s.state.Recommendations, id, func(r Recommendation) string { return r.ID })
	s.persist()
	return nil
}

// replaceByID はスライス内の同一ID要素を置き換える。見つからなければ変更しない。
func replaceByID[T any](items []T, item T, idOf func(T) string) []T {
	id := idOf(item)
	for i := range items {
		if idOf(items[i]) == id {
			items[i] = item
			break
		}
	}
	return items
}

// filterByID はスライスから指定IDの要素を除外する。
func filterByID[T any](items []T, id string, idOf func(T) string) []T {
	result := items[:0]
	for _, item := range items {
		if idOf(item) != id {
			result = append(result, item)
		}
	}
	return result
}
