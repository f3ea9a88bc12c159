package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/apigate/internal/entries"
	"github.com/hitoshi/apigate/internal/middleware"
	"github.com/hitoshi/apigate/internal/model"
)

// maxSlicedEntries はGET /api/getDataで返すエントリの最大数。
const maxSlicedEntries = 100

// EntriesFetcher はエントリハンドラーが必要とする上流クライアントのインターフェース。
type EntriesFetcher interface {
	Fetch(ctx context.Context, category string) (*entries.Payload, error)
}

// UpstreamMetricsRecorder は上流呼び出しメトリクスの記録に必要なインターフェース。
// metrics.Collectorの部分集合として定義する。
type UpstreamMetricsRecorder interface {
	RecordUpstreamLatency(duration time.Duration)
	RecordUpstreamFailure()
}

// EntriesHandler は公開APIディレクトリへのプロキシエンドポイントのHTTPハンドラー。
// 上流の呼び出しはリトライ・キャッシュなしの単純な転送で、
// 失敗はすべて500として返す。
type EntriesHandler struct {
	fetcher EntriesFetcher
	metrics UpstreamMetricsRecorder
}

// NewEntriesHandler はEntriesHandlerを生成する。
func NewEntriesHandler(fetcher EntriesFetcher, metrics UpstreamMetricsRecorder) *EntriesHandler {
	return &EntriesHandler{
		fetcher: fetcher,
		metrics: metrics,
	}
}

// GetData は上流APIからエントリを取得し、先頭100件を返す。
// GET /api/getData
func (h *EntriesHandler) GetData(w http.ResponseWriter, r *http.Request) {
	payload, err := h.fetchUpstream(r.Context(), "")
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusInternalServerError, model.NewUpstreamFailedError())
		return
	}

	sliced := payload.Entries
	if len(sliced) > maxSlicedEntries {
		sliced = sliced[:maxSlicedEntries]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"slicedData": sliced,
	})
}

// GetDataByCategory は上流APIからカテゴリ指定でエントリを取得し、全ペイロードを返す。
// カテゴリの指定は任意で、上流API側でのフィルタリングに委ねる。
// GET /api/getDataBycategory?category=<string>
func (h *EntriesHandler) GetDataByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	payload, err := h.fetchUpstream(r.Context(), category)
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusInternalServerError, model.NewUpstreamFailedError())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": payload,
	})
}

// fetchUpstream は上流APIを呼び出し、メトリクスを記録する。
func (h *EntriesHandler) fetchUpstream(ctx context.Context, category string) (*entries.Payload, error) {
	start := time.Now()
	payload, err := h.fetcher.Fetch(ctx, category)
	h.metrics.RecordUpstreamLatency(time.Since(start))
	if err != nil {
		h.metrics.RecordUpstreamFailure()
		slog.Error("upstream entries fetch failed",
			slog.String("error", err.Error()),
			slog.String("category", category),
		)
		return nil, err
	}
	return payload, nil
}
