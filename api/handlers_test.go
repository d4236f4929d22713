package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"pricescout/cache"
	"pricescout/search"
)

type stubSearcher struct {
	items []search.ScoredItem
	err   error
	calls int
}

func (s *stubSearcher) Search(_ context.Context, term, category string) ([]search.ScoredItem, error) {
	s.calls++
	return s.items, s.err
}

func newTestServer(searcher Searcher) *Server {
	return NewServer(0, searcher, cache.NewMemory(cache.DefaultTTL), nil, zap.NewNop())
}

func postSearch(t *testing.T, srv *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	srv.SearchHandler(rec, req)
	return rec
}

func resultItems() []search.ScoredItem {
	return []search.ScoredItem{
		{
			RawItem: search.RawItem{
				Title:    "Apple iPhone 15 128GB",
				Price:    "₹69,999",
				Link:     "https://example.com/iphone-15",
				Platform: search.PlatformAmazon,
			},
			Score:           200,
			NormalizedPrice: 69999,
		},
	}
}

func TestSearchHandler_MissingInput(t *testing.T) {
	srv := newTestServer(&stubSearcher{})

	testCases := []struct {
		name string
		body SearchRequest
	}{
		{"MissingTerm", SearchRequest{Category: "products"}},
		{"BlankTerm", SearchRequest{SearchTerm: "   ", Category: "products"}},
		{"MissingCategory", SearchRequest{SearchTerm: "iphone"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postSearch(t, srv, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestSearchHandler_InvalidCategory(t *testing.T) {
	srv := newTestServer(&stubSearcher{err: search.ErrInvalidCategory})
	rec := postSearch(t, srv, SearchRequest{SearchTerm: "iphone", Category: "hotels"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSearchHandler_NoResults(t *testing.T) {
	srv := newTestServer(&stubSearcher{err: search.ErrNoResults})
	rec := postSearch(t, srv, SearchRequest{SearchTerm: "iphone", Category: "products"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected a generic error message in the body")
	}
}

func TestSearchHandler_InternalError(t *testing.T) {
	srv := newTestServer(&stubSearcher{err: context.DeadlineExceeded})
	rec := postSearch(t, srv, SearchRequest{SearchTerm: "iphone", Category: "products"})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestSearchHandler_Success(t *testing.T) {
	srv := newTestServer(&stubSearcher{items: resultItems()})
	rec := postSearch(t, srv, SearchRequest{SearchTerm: "iphone 15", Category: "products"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var items []search.ScoredItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Apple iPhone 15 128GB" {
		t.Fatalf("unexpected payload: %+v", items)
	}
}

func TestSearchHandler_CacheShortCircuits(t *testing.T) {
	stub := &stubSearcher{items: resultItems()}
	srv := newTestServer(stub)

	if rec := postSearch(t, srv, SearchRequest{SearchTerm: "iPhone 15", Category: "products"}); rec.Code != http.StatusOK {
		t.Fatalf("first request failed: %d", rec.Code)
	}
	// case and whitespace variants must resolve to the same entry
	rec := postSearch(t, srv, SearchRequest{SearchTerm: "  iphone 15  ", Category: "products"})
	if rec.Code != http.StatusOK {
		t.Fatalf("second request failed: %d", rec.Code)
	}

	if stub.calls != 1 {
		t.Errorf("expected a single aggregation, searcher was called %d times", stub.calls)
	}

	var items []search.ScoredItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Apple iPhone 15 128GB" {
		t.Fatalf("cached payload differs: %+v", items)
	}
}

func TestSearchHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(&stubSearcher{})
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	srv.SearchHandler(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
