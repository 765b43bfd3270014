package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mvaldes-dev/portfolio-gallery/internal/middleware"
)

// CreateAlbum validates a JSON album definition, renames is_visible to the
// upstream's is_public, forwards it with the admin secret, and relays the
// upstream response verbatim.
//
// POST /proxy-create-album
func (s *Server) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLoggerFromContext(r.Context())

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method not allowed (%s). Use POST.", r.Method))
		return
	}

	adminSecret := strings.TrimSpace(s.cfg.AdminSecret)
	createAlbumURL := strings.TrimSpace(s.cfg.CreateAlbumURL)

	if adminSecret == "" {
		writeError(w, http.StatusInternalServerError, "Server misconfigured (missing ADMIN_SECRET)")
		return
	}
	if createAlbumURL == "" {
		writeError(w, http.StatusInternalServerError, "Server misconfigured (missing PROJECTFOTO_UPLOAD_ALBUM_URL)")
		return
	}

	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	record, ok := raw.(map[string]any)
	if !ok {
		writeError(w, http.StatusBadRequest, "Body must be an object")
		return
	}

	title, ok := record["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		writeError(w, http.StatusBadRequest, "Missing or invalid title")
		return
	}

	subtitle, ok := record["subtitle"].(string)
	if !ok || strings.TrimSpace(subtitle) == "" {
		writeError(w, http.StatusBadRequest, "Missing or invalid subtitle")
		return
	}

	slug, ok := record["slug"].(string)
	if !ok || strings.TrimSpace(slug) == "" {
		writeError(w, http.StatusBadRequest, "Missing or invalid slug")
		return
	}

	isVisible, ok := record["is_visible"].(bool)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing or invalid is_visible (must be boolean)")
		return
	}

	coverPath, ok := record["cover_path"].(string)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing or invalid cover_path (must be string)")
		return
	}

	// The upstream names the visibility field is_public; this is the only
	// field renamed by any of the proxies.
	payload := map[string]any{
		"title":      strings.TrimSpace(title),
		"subtitle":   strings.TrimSpace(subtitle),
		"slug":       strings.TrimSpace(slug),
		"is_public":  isVisible,
		"cover_path": coverPath,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		writeErrorDetails(w, http.StatusBadGateway, "Upstream network error", map[string]any{"message": err.Error()})
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, createAlbumURL, bytes.NewReader(body))
	if err != nil {
		writeErrorDetails(w, http.StatusBadGateway, "Upstream network error", map[string]any{"message": err.Error()})
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-admin-secret", adminSecret)

	resp, err := s.upstream.Do(req)
	if err != nil {
		logger.Error("upstream create call failed", "error", err)
		writeErrorDetails(w, http.StatusBadGateway, "Upstream network error", map[string]any{"message": err.Error()})
		return
	}
	defer resp.Body.Close()

	logger.Debug("relaying upstream create response", "status", resp.StatusCode)
	relay(w, resp)
}
