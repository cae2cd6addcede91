// Package client はDreamSync APIのクライアントと統合状態ストアを提供する。
// サーバーと同一モジュール内のGoアプリケーション（CLIや別サービス）からの利用を想定する。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrUnauthorized はトークンが無効・期限切れの場合に返されるセンチネルエラー。
// ストアはこのエラーを検知するとログアウト処理を行う。
var ErrUnauthorized = errors.New("client: 認証エラー")

// APIError はサーバーの統一エラーフォーマットを保持する。
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Category   string `json:"category"`
	Action     string `json:"action"`
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("client: [%s] %s", e.Code, e.Message)
}

// AuthResult は登録・ログイン成功時のレスポンス。
type AuthResult struct {
	Token   string  `json:"token"`
	UserID  string  `json:"userId"`
	Profile Profile `json:"profile"`
}

// Profile はユーザープロフィール。
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// VisionItem はビジョンボード上の画像アイテム。
type VisionItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ImageURL  string    `json:"imageUrl"`
	Section   string    `json:"section"`
	Text      string    `json:"text"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	ZIndex    int       `json:"zIndex"`
	CreatedAt time.Time `json:"createdAt"`
}

// EnergyEntry は1日単位のエネルギーレベル記録。
type EnergyEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Level     int       `json:"level"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Manifestation はユーザーの目標。
type Manifestation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	Notes     string    `json:"notes"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Recommendation はエネルギー区分に紐づくおすすめアクティビティ。
type Recommendation struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Link        string    `json:"link,omitempty"`
	EnergyLevel string    `json:"energyLevel"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// UserData はユーザーデータ一括取得のレスポンス。
type UserData struct {
	EnergyEntries  []EnergyEntry   `json:"energyEntries"`
	Manifestations []Manifestation `json:"manifestations"`
	VisionItems    []VisionItem    `json:"visionItems"`
}

// Client はDreamSync APIへのHTTPリクエストを発行するRESTクライアント。
// 設定されたトークンを全リクエストのAuthorizationヘッダーに付与する。
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New はbaseURLを指すClientを生成する。
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken は以降のリクエストに付与するトークンを設定する。
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken は設定済みのトークンを破棄する。
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Register は新規ユーザーを登録する。
func (c *Client) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Login はユーザーを認証する。
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListVisionItems はビジョンアイテム一覧を取得する。
func (c *Client) ListVisionItems(ctx context.Context) ([]VisionItem, error) {
	var items []VisionItem
	if err := c.do(ctx, http.MethodGet, "/api/vision-items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateVisionItem はビジョンアイテムを作成する。
func (c *Client) CreateVisionItem(ctx context.Context, input VisionItemInput) (*VisionItem, error) {
	var item VisionItem
	if err := c.do(ctx, http.MethodPost, "/api/vision-items", input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateVisionItem はビジョンアイテムを部分更新する。
func (c *Client) UpdateVisionItem(ctx context.Context, id string, input VisionItemInput) (*VisionItem, error) {
	var item VisionItem
	if err := c.do(ctx, http.MethodPut, "/api/vision-items/"+id, input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteVisionItem はビジョンアイテムを削除する。
func (c *Client) DeleteVisionItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/vision-items/"+id, nil, nil)
}

// ListEnergyEntries はエネルギー記録一覧を取得する。
func (c *Client) ListEnergyEntries(ctx context.Context) ([]EnergyEntry, error) {
	var entries []EnergyEntry
	if err := c.do(ctx, http.MethodGet, "/api/energy-entries", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateEnergyEntry はエネルギー記録を作成する。同一日付の既存記録は上書きされる。
func (c *Client) CreateEnergyEntry(ctx context.Context, input EnergyEntryInput) (*EnergyEntry, error) {
	var entry EnergyEntry
	if err := c.do(ctx, http.MethodPost, "/api/energy-entries", input, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEnergyEntry はエネルギー記録を削除する。
func (c *Client) DeleteEnergyEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/energy-entries/"+id, nil, nil)
}

// ListManifestations は目標一覧を取得する。
func (c *Client) ListManifestations(ctx context.Context) ([]Manifestation, error) {
	var manifestations []Manifestation
	if err := c.do(ctx, http.MethodGet, "/api/manifestations", nil, &manifestations); err != nil {
		return nil, err
	}
	return manifestations, nil
}

// CreateManifestation は目標を作成する。
func (c *Client) CreateManifestation(ctx context.Context, input ManifestationInput) (*Manifestation, error) {
	var m Manifestation
	if err := c.do(ctx, http.MethodPost, "/api/manifestations", input, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateManifestation は目標の全フィールドを置換する。
func (c *Client) UpdateManifestation(ctx context.Context, id string, input ManifestationInput) (*Manifestation, error) {
	var m Manifestation
	if err := c.do(ctx, http.MethodPut, "/api/manifestations/"+id, input, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteManifestation は目標を削除する。
func (c *Client) DeleteManifestation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/manifestations/"+id, nil, nil)
}

// ListRecommendations はエネルギー区分で絞り込んだおすすめ一覧を取得する。
func (c *Client) ListRecommendations(ctx context.Context, band string) ([]Recommendation, error) {
	var recs []Recommendation
	path := "/api/recommendations?energyLevel=" + band
	if err := c.do(ctx, http.MethodGet, path, nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// CreateRecommendation はユーザー作成のおすすめを登録する。
func (c *Client) CreateRecommendation(ctx context.Context, input RecommendationInput) (*Recommendation, error) {
	var rec Recommendation
	if err := c.do(ctx, http.MethodPost, "/api/recommendations", input, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateRecommendation はおすすめの全フィールドを置換する。
func (c *Client) UpdateRecommendation(ctx context.Context, id string, input RecommendationInput) error {
	return c.do(ctx, http.MethodPut, "/api/recommendations/"+id, input, nil)
}

// DeleteRecommendation はおすすめを削除する。
func (c *Client) DeleteRecommendation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/recommendations/"+id, nil, nil)
}

// FetchUserData はユーザーのエネルギー記録・目標・ビジョンアイテムを一括取得する。
func (c *Client) FetchUserData(ctx context.Context, userID string) (*UserData, error) {
	var data UserData
	if err := c.do(ctx, http.MethodGet, "/api/users/"+userID+"/data", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// VisionItemInput はビジョンアイテムの作成・更新リクエスト。
// サーバー側の契約に合わせ、画像URLのみスネークケースで送信する。
type VisionItemInput struct {
	ImageURL string   `json:"image_url,omitempty"`
	Section  string   `json:"section,omitempty"`
	Text     string   `json:"text,omitempty"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	ZIndex   *int     `json:"zIndex,omitempty"`
}

// EnergyEntryInput はエネルギー記録の作成リクエスト。
type EnergyEntryInput struct {
	Level int    `json:"level"`
	Notes string `json:"notes,omitempty"`
	Date  string `json:"date,omitempty"`
}

// ManifestationInput は目標の作成・更新リクエスト。
type ManifestationInput struct {
	Text      string `json:"text"`
	Category  string `json:"category"`
	Notes     string `json:"notes,omitempty"`
	Date      string `json:"date,omitempty"`
	Completed bool   `json:"completed"`
}

// RecommendationInput はおすすめの作成・更新リクエスト。
type RecommendationInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Link        string `json:"link,omitempty"`
	EnergyLevel string `json:"energyLevel"`
}

// do はリクエストを発行し、レスポンスをoutにデコードする。
// 401はErrUnauthorized、その他の非2xxはAPIErrorとして返す。
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: リクエストのエンコードに失敗: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: リクエストの生成に失敗: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: リクエストの実行に失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		if err := json.NewDecoder(res.Body).Decode(apiErr); err != nil {
			return fmt.Errorf("client: サーバーエラー (status %d)", res.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("client: レスポンスのデコードに失敗: %w", err)
	}
	return nil
}
