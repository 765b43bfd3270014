package proxy

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/mvaldes-dev/portfolio-gallery/internal/middleware"
)

// maxFormMemory bounds the in-memory portion of multipart parsing; larger
// file parts spill to disk.
const maxFormMemory = 32 << 20

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, `\"`)

// UploadPhoto forwards a multipart photo upload to the upstream photo
// service, attaching the admin secret, and relays the upstream response
// verbatim.
//
// POST /proxy-upload-photo
func (s *Server) UploadPhoto(w http.ResponseWriter, r *http.Request) {
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
	uploadURL := strings.TrimSpace(s.cfg.UploadURL)

	if adminSecret == "" {
		writeError(w, http.StatusInternalServerError, "Server misconfigured (missing ADMIN_SECRET)")
		return
	}
	if uploadURL == "" {
		writeError(w, http.StatusInternalServerError, "Server misconfigured (missing PROJECTFOTO_UPLOAD_URL)")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "multipart/form-data") {
		writeError(w, http.StatusUnsupportedMediaType, "Expected multipart/form-data")
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	albumSlug := r.FormValue("album_slug")
	if strings.TrimSpace(albumSlug) == "" {
		writeError(w, http.StatusBadRequest, "Missing album_slug")
		return
	}

	form := r.MultipartForm
	caption := firstValue(form, "caption")

	var body bytes.Buffer
	forward := multipart.NewWriter(&body)

	part, err := createFilePart(forward, header)
	if err == nil {
		_, err = io.Copy(part, file)
	}
	if err != nil {
		logger.Error("failed to rebuild multipart body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	_ = forward.WriteField("album_slug", albumSlug)

	// Some upstreams still require `alt`. When the client doesn't send it,
	// derive it from the caption, falling back to a fixed placeholder.
	alt := strings.TrimSpace(firstValue(form, "alt"))
	if alt == "" {
		alt = strings.TrimSpace(caption)
	}
	if alt == "" {
		alt = "Imagen"
	}
	_ = forward.WriteField("alt", alt)

	if strings.TrimSpace(caption) != "" {
		_ = forward.WriteField("caption", caption)
	}

	// location and taken_at are forwarded exactly as received, empty values
	// included. The asymmetry with caption's blank-filtering is deliberate.
	if values, ok := form.Value["location"]; ok && len(values) > 0 {
		_ = forward.WriteField("location", values[0])
	}
	if values, ok := form.Value["taken_at"]; ok && len(values) > 0 {
		_ = forward.WriteField("taken_at", values[0])
	}

	if err := forward.Close(); err != nil {
		logger.Error("failed to finish multipart body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, uploadURL, &body)
	if err != nil {
		writeErrorDetails(w, http.StatusBadGateway, "Upstream network error", map[string]any{"message": err.Error()})
		return
	}
	req.Header.Set("Content-Type", forward.FormDataContentType())
	// The caller's own Authorization header is never forwarded upstream.
	req.Header.Set("x-admin-secret", adminSecret)

	resp, err := s.upstream.Do(req)
	if err != nil {
		logger.Error("upstream upload call failed", "error", err)
		writeErrorDetails(w, http.StatusBadGateway, "Upstream network error", map[string]any{"message": err.Error()})
		return
	}
	defer resp.Body.Close()

	logger.Debug("relaying upstream upload response", "status", resp.StatusCode)
	relay(w, resp)
}

// firstValue returns the first value for a multipart field, or "" when the
// field is absent.
func firstValue(form *multipart.Form, key string) string {
	if form == nil {
		return ""
	}
	if values, ok := form.Value[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

// createFilePart mirrors the inbound file part's filename and content type
// onto the forwarded request.
func createFilePart(w *multipart.Writer, header *multipart.FileHeader) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(header.Filename)))
	if contentType := header.Header.Get("Content-Type"); contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return w.CreatePart(h)
}
