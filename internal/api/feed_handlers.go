package api

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"imobhub/internal/service/feed"

	"go.uber.org/zap"
)

type feedImportRequest struct {
	Origin string `json:"origin"`
	XML    string `json:"xml"`
}

// handleFeedImport runs the normalize/upsert/prune pipeline for a pasted
// or proxied feed.
func (s *Server) handleFeedImport(w http.ResponseWriter, r *http.Request) {
	var req feedImportRequest
	if err := decodeJSON(r, &req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		apiError(w, "origin is required", http.StatusBadRequest)
		return
	}

	result, err := s.importer.ImportFeed(r.Context(), origin, req.XML)
	if errors.Is(err, feed.ErrInvalidContent) || errors.Is(err, feed.ErrNoListings) {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		s.logger.Error("feed import failed", zap.Error(err), zap.String("origin", origin))
		apiError(w, "import failed", http.StatusInternalServerError)
		return
	}

	apiJSON(w, result, http.StatusOK)
}

// handleFeedProxy streams a remote feed back to the browser, sidestepping
// the provider's CORS policy. The body is copied through, never buffered
// whole.
func (s *Server) handleFeedProxy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	rawURL := r.URL.Query().Get("url")
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		apiError(w, "url must be an http(s) address", http.StatusBadRequest)
		return
	}

	upstreamReq, err := http.NewRequestWithContext(r.Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		apiError(w, "url must be an http(s) address", http.StatusBadRequest)
		return
	}

	resp, err := s.httpClient.Do(upstreamReq)
	if err != nil {
		s.logger.Error("feed proxy upstream failed", zap.Error(err), zap.String("url", rawURL))
		apiError(w, "upstream fetch failed", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		s.logger.Warn("feed proxy stream interrupted", zap.Error(err), zap.String("url", rawURL))
	}
}
