// Package entries は公開APIディレクトリ（上流entries API）のクライアントを提供する。
package entries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Entry は上流APIディレクトリの1エントリを表す。
type Entry struct {
	API         string `json:"API"`
	Description string `json:"Description"`
	Auth        string `json:"Auth"`
	HTTPS       bool   `json:"HTTPS"`
	Cors        string `json:"Cors"`
	Link        string `json:"Link"`
	Category    string `json:"Category"`
}

// Payload は上流entries APIのレスポンス全体を表す。
type Payload struct {
	Count   int     `json:"count"`
	Entries []Entry `json:"entries"`
}

// Client は上流entries APIのクライアント。
// リトライやキャッシュは行わず、1リクエストを1回のHTTP呼び出しで転送する。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string // テスト用にエンドポイントを差し替え可能
	maxSize    int64
}

// NewClient はClientの新しいインスタンスを生成する。
// baseURLには上流APIのベースURL（例: "https://api.publicapis.org"）を指定する。
func NewClient(httpClient *http.Client, logger *slog.Logger, baseURL string, maxSize int64) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    baseURL,
		maxSize:    maxSize,
	}
}

// Fetch は上流APIからエントリ一覧を取得する。
// categoryが空でない場合はクエリパラメータとして付与する。
// カテゴリ名の妥当性は上流に委ね、事前検証は行わない。
func (c *Client) Fetch(ctx context.Context, category string) (*Payload, error) {
	reqURL, err := url.Parse(c.baseURL + "/entries")
	if err != nil {
		return nil, fmt.Errorf("エンドポイントURLのパースに失敗しました: %w", err)
	}

	if category != "" {
		q := reqURL.Query()
		q.Set("category", category)
		reqURL.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", "apigate/1.0")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("上流entries APIの呼び出しに失敗しました",
			slog.String("error", err.Error()),
			slog.String("url", reqURL.String()),
		)
		return nil, fmt.Errorf("上流APIの呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("上流entries APIがエラーステータスを返しました",
			slog.Int("http_status", resp.StatusCode),
			slog.String("url", reqURL.String()),
		)
		return nil, fmt.Errorf("上流APIがステータス %d を返しました", resp.StatusCode)
	}

	// レスポンスサイズに上限を設ける
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxSize))
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Error("上流entries APIのレスポンスのパースに失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	c.logger.Info("fetched upstream entries",
		slog.Int("count", len(payload.Entries)),
		slog.String("category", category),
		slog.Float64("duration_ms", float64(time.Since(start).Nanoseconds())/float64(time.Millisecond)),
	)

	return &payload, nil
}
