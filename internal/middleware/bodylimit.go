package middleware

import "net/http"

// NewBodyLimitMiddleware はリクエストボディのサイズ上限を設定するミドルウェアを返す。
// 画像のdata URIを含むビジョンアイテムのリクエストを想定した上限とする。
// 上限を超えた読み取りはハンドラーのデコード時にエラーとなる。
func NewBodyLimitMiddleware(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
