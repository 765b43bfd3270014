package proxy

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mvaldes-dev/portfolio-gallery/internal/middleware"
)

// AlbumOption is one row of the normalized album list. Title is null when
// the upstream row has none.
type AlbumOption struct {
	Slug  string  `json:"slug"`
	Title *string `json:"title"`
}

type listAlbumsResponse struct {
	OK     bool          `json:"ok"`
	Albums []AlbumOption `json:"albums"`
}

// ListAlbums forwards a GET to the upstream album listing and normalizes the
// payload to a canonical {slug, title} list. Unlike the other two proxies it
// wraps upstream failures in its own envelope instead of relaying bytes.
//
// GET /proxy-list-albums
func (s *Server) ListAlbums(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLoggerFromContext(r.Context())

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method not allowed (%s). Use GET.", r.Method))
		return
	}

	adminSecret := strings.TrimSpace(s.cfg.AdminSecret)
	listAlbumsURL := strings.TrimSpace(s.cfg.ListAlbumsURL)

	if adminSecret == "" {
		writeError(w, http.StatusInternalServerError, "Server misconfigured (missing ADMIN_SECRET)")
		return
	}
	if listAlbumsURL == "" {
		writeError(w, http.StatusInternalServerError, "Server misconfigured (missing LIST_ALBUMS_URL)")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, listAlbumsURL, nil)
	if err != nil {
		writeErrorDetails(w, http.StatusBadGateway, "Upstream network error", map[string]any{"message": err.Error()})
		return
	}
	req.Header.Set("x-admin-secret", adminSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := s.upstream.Do(req)
	if err != nil {
		logger.Error("upstream list call failed", "error", err)
		writeErrorDetails(w, http.StatusBadGateway, "Upstream network error", map[string]any{"message": err.Error()})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		writeErrorDetails(w, http.StatusBadGateway, "Upstream network error", map[string]any{"message": err.Error()})
		return
	}

	payload := decodePayload(resp.Header.Get("Content-Type"), body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		writeErrorDetails(w, resp.StatusCode, fmt.Sprintf("Upstream error (HTTP %d)", resp.StatusCode), payload)
		return
	}

	albums, ok := normalizeAlbums(payload)
	if !ok {
		logger.Warn("unrecognized album payload from upstream")
		writeErrorDetails(w, http.StatusBadGateway, "Unexpected upstream payload (expected albums with slug/title)", payload)
		return
	}

	writeJSON(w, http.StatusOK, listAlbumsResponse{OK: true, Albums: albums})
}

// decodePayload parses a JSON body into generic values; non-JSON bodies are
// kept as text so they can still ride along as error details.
func decodePayload(contentType string, body []byte) any {
	if strings.Contains(strings.ToLower(contentType), "application/json") {
		var payload any
		if err := json.Unmarshal(body, &payload); err == nil {
			return payload
		}
		return nil
	}
	return string(body)
}

// normalizeAlbums accepts the three recognized payload shapes: a bare array,
// or an object carrying the array under albums, data, or items (checked in
// that order). Rows without a non-blank slug are dropped.
func normalizeAlbums(payload any) ([]AlbumOption, bool) {
	var rows []any

	switch v := payload.(type) {
	case []any:
		rows = v
	case map[string]any:
		for _, key := range []string{"albums", "data", "items"} {
			if candidate, ok := v[key].([]any); ok {
				rows = candidate
				break
			}
		}
		if rows == nil {
			return nil, false
		}
	default:
		return nil, false
	}

	albums := make([]AlbumOption, 0, len(rows))
	for _, row := range rows {
		record, ok := row.(map[string]any)
		if !ok {
			continue
		}

		slug, _ := record["slug"].(string)
		slug = strings.TrimSpace(slug)
		if slug == "" {
			continue
		}

		var title *string
		if t, ok := record["title"].(string); ok {
			title = &t
		}

		albums = append(albums, AlbumOption{Slug: slug, Title: title})
	}

	return albums, true
}
