package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/apigate/internal/entries"
	"github.com/hitoshi/apigate/internal/middleware"
	"github.com/hitoshi/apigate/internal/model"
)

// --- モック定義 ---

type mockFetcher struct {
	fetchFn func(ctx context.Context, category string) (*entries.Payload, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, category string) (*entries.Payload, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, category)
	}
	return nil, errors.New("not configured")
}

// recordingUpstreamMetrics は上流メトリクスの呼び出しを記録するモック。
type recordingUpstreamMetrics struct {
	latencyCalls int
	failureCalls int
}

func (m *recordingUpstreamMetrics) RecordUpstreamLatency(time.Duration) { m.latencyCalls++ }
func (m *recordingUpstreamMetrics) RecordUpstreamFailure()              { m.failureCalls++ }

func makeEntries(n int) []entries.Entry {
	result := make([]entries.Entry, n)
	for i := range result {
		result[i] = entries.Entry{
			API:      fmt.Sprintf("API-%d", i),
			Category: "Animals",
			Link:     fmt.Sprintf("https://example.com/%d", i),
		}
	}
	return result
}

// --- GetDataのテスト ---

func TestEntriesHandler_GetData_SlicesToFirst100(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, category string) (*entries.Payload, error) {
			if category != "" {
				t.Errorf("category = %q, want empty", category)
			}
			return &entries.Payload{Count: 150, Entries: makeEntries(150)}, nil
		},
	}
	h := NewEntriesHandler(fetcher, &recordingUpstreamMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/getData", nil)
	w := httptest.NewRecorder()

	h.GetData(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		SlicedData []entries.Entry `json:"slicedData"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("レスポンスのデコードに失敗した: %v", err)
	}
	if len(body.SlicedData) != 100 {
		t.Errorf("len(slicedData) = %d, want 100", len(body.SlicedData))
	}
	// 先頭からの切り出しであること
	if body.SlicedData[0].API != "API-0" {
		t.Errorf("slicedData[0].API = %q, want %q", body.SlicedData[0].API, "API-0")
	}
	if body.SlicedData[99].API != "API-99" {
		t.Errorf("slicedData[99].API = %q, want %q", body.SlicedData[99].API, "API-99")
	}
}

func TestEntriesHandler_GetData_FewerThan100_ReturnsAll(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, category string) (*entries.Payload, error) {
			return &entries.Payload{Count: 3, Entries: makeEntries(3)}, nil
		},
	}
	h := NewEntriesHandler(fetcher, &recordingUpstreamMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/getData", nil)
	w := httptest.NewRecorder()

	h.GetData(w, req)

	var body struct {
		SlicedData []entries.Entry `json:"slicedData"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("レスポンスのデコードに失敗した: %v", err)
	}
	if len(body.SlicedData) != 3 {
		t.Errorf("len(slicedData) = %d, want 3", len(body.SlicedData))
	}
}

func TestEntriesHandler_GetData_UpstreamFailure_Returns500(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, category string) (*entries.Payload, error) {
			return nil, errors.New("connection timeout")
		},
	}
	metrics := &recordingUpstreamMetrics{}
	h := NewEntriesHandler(fetcher, metrics)

	req := httptest.NewRequest(http.MethodGet, "/api/getData", nil)
	w := httptest.NewRecorder()

	h.GetData(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var body middleware.ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("エラーレスポンスのデコードに失敗した: %v", err)
	}
	if body.Code != model.ErrCodeUpstreamFailed {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeUpstreamFailed)
	}
	if metrics.failureCalls != 1 {
		t.Errorf("failureCalls = %d, want 1", metrics.failureCalls)
	}
}

// --- GetDataByCategoryのテスト ---

func TestEntriesHandler_GetDataByCategory_PropagatesCategory(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, category string) (*entries.Payload, error) {
			if category != "Animals" {
				t.Errorf("category = %q, want %q", category, "Animals")
			}
			return &entries.Payload{Count: 2, Entries: makeEntries(2)}, nil
		},
	}
	h := NewEntriesHandler(fetcher, &recordingUpstreamMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/getDataBycategory?category=Animals", nil)
	w := httptest.NewRecorder()

	h.GetDataByCategory(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	// スライスせず全ペイロードをそのまま返すこと
	var body struct {
		Data entries.Payload `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("レスポンスのデコードに失敗した: %v", err)
	}
	if body.Data.Count != 2 {
		t.Errorf("data.count = %d, want 2", body.Data.Count)
	}
	if len(body.Data.Entries) != 2 {
		t.Errorf("len(data.entries) = %d, want 2", len(body.Data.Entries))
	}
}

func TestEntriesHandler_GetDataByCategory_MissingCategory_PassesEmpty(t *testing.T) {
	// カテゴリ未指定でもエラーにせず、上流にそのまま委ねる
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, category string) (*entries.Payload, error) {
			if category != "" {
				t.Errorf("category = %q, want empty", category)
			}
			return &entries.Payload{Count: 0, Entries: nil}, nil
		},
	}
	h := NewEntriesHandler(fetcher, &recordingUpstreamMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/getDataBycategory", nil)
	w := httptest.NewRecorder()

	h.GetDataByCategory(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestEntriesHandler_GetDataByCategory_UpstreamFailure_Returns500(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, category string) (*entries.Payload, error) {
			return nil, errors.New("upstream 503")
		},
	}
	h := NewEntriesHandler(fetcher, &recordingUpstreamMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/getDataBycategory?category=Animals", nil)
	w := httptest.NewRecorder()

	h.GetDataByCategory(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestEntriesHandler_RecordsLatencyOnEveryCall(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, category string) (*entries.Payload, error) {
			return &entries.Payload{}, nil
		},
	}
	metrics := &recordingUpstreamMetrics{}
	h := NewEntriesHandler(fetcher, metrics)

	req := httptest.NewRequest(http.MethodGet, "/api/getData", nil)
	h.GetData(httptest.NewRecorder(), req)

	if metrics.latencyCalls != 1 {
		t.Errorf("latencyCalls = %d, want 1", metrics.latencyCalls)
	}
	if metrics.failureCalls != 0 {
		t.Errorf("failureCalls = %d, want 0", metrics.failureCalls)
	}
}
