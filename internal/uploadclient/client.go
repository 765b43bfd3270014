package uploadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/mvaldes-dev/portfolio-gallery/internal/image"
	"github.com/mvaldes-dev/portfolio-gallery/internal/metadata"
	"github.com/mvaldes-dev/portfolio-gallery/internal/proxy"
	"github.com/mvaldes-dev/portfolio-gallery/internal/session"
)

var (
	ErrNetwork            = errors.New("network error")
	ErrRedirected         = errors.New("request was redirected; check the proxy base URL (use the project base URL with no path)")
	ErrUnexpectedResponse = errors.New("unexpected response from upload proxy")
)

// StatusError is a non-success response from the proxy, carrying the
// server's own error message when one could be extracted.
type StatusError struct {
	Status  int
	Message string
	Details any
}

func (e *StatusError) Error() string {
	return e.Message
}

// UploadedPhoto is the record the upstream creates on success. It is never
// mutated by this package.
type UploadedPhoto struct {
	ID        string `json:"id"`
	ImagePath string `json:"image_path"`
	PublicURL string `json:"public_url"`
}

// Metadata carries the optional upload fields. Blank values are omitted
// from the request.
type Metadata struct {
	Location string
	TakenAt  string
}

// AlbumDefinition is the payload for creating an album through the proxy.
type AlbumDefinition struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Slug      string `json:"slug"`
	IsVisible bool   `json:"is_visible"`
	CoverPath string `json:"cover_path"`
}

type Config struct {
	// BaseURL is the proxy server's base URL, with no path.
	BaseURL string
	// APIKey is sent as the apikey header on every call.
	APIKey string
	// Session supplies the bearer token.
	Session session.Provider
	// HTTPClient is optional; redirect-following is disabled on a copy of
	// whatever is supplied.
	HTTPClient *http.Client
}

// Client talks to the proxy endpoints. Every operation makes exactly one
// attempt; there is no retry, and cancellation flows through ctx.
type Client struct {
	baseURL string
	apiKey  string
	session session.Provider
	http    *http.Client
}

func New(cfg Config) *Client {
	hc := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		hc = &copied
	}
	// A redirect always means a misconfigured base URL. Surface it instead
	// of following.
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		session: cfg.Session,
		http:    hc,
	}
}

// Upload submits one photo through the upload proxy. Missing file, album,
// or caption is rejected locally before any network call or session lookup.
func (c *Client) Upload(ctx context.Context, file *image.File, albumSlug, caption string, meta Metadata) (*UploadedPhoto, error) {
	if file == nil {
		return nil, metadata.ErrMissingFile
	}
	if strings.TrimSpace(albumSlug) == "" {
		return nil, metadata.ErrMissingAlbum
	}
	if strings.TrimSpace(caption) == "" {
		return nil, metadata.ErrMissingCaption
	}

	token, err := c.session.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := createFilePart(form, file)
	if err == nil {
		_, err = part.Write(file.Data)
	}
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	_ = form.WriteField("album_slug", strings.TrimSpace(albumSlug))
	_ = form.WriteField("caption", strings.TrimSpace(caption))
	if location := strings.TrimSpace(meta.Location); location != "" {
		_ = form.WriteField("location", location)
	}
	if takenAt := strings.TrimSpace(meta.TakenAt); takenAt != "" {
		_ = form.WriteField("taken_at", takenAt)
	}

	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+proxy.UploadPhotoPath, &body)
	if err != nil {
		return nil, fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.setAuthHeaders(req, token)

	resp, raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp, raw)
	}

	photo, ok := parseUploadedPhoto(raw)
	if !ok {
		return nil, fmt.Errorf("%w (HTTP %d)", ErrUnexpectedResponse, resp.StatusCode)
	}
	return photo, nil
}

// ListAlbums fetches the normalized album list from the list proxy.
func (c *Client) ListAlbums(ctx context.Context) ([]proxy.AlbumOption, error) {
	token, err := c.session.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+proxy.ListAlbumsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("building list request: %w", err)
	}
	c.setAuthHeaders(req, token)

	resp, raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp, raw)
	}

	var payload struct {
		OK     bool                `json:"ok"`
		Albums []proxy.AlbumOption `json:"albums"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || !payload.OK {
		return nil, fmt.Errorf("%w (HTTP %d)", ErrUnexpectedResponse, resp.StatusCode)
	}

	return payload.Albums, nil
}

// CreateAlbum submits an album definition through the create proxy. The
// upstream body is relayed verbatim by the proxy, so the decoded payload is
// returned as-is.
func (c *Client) CreateAlbum(ctx context.Context, def AlbumDefinition) (any, error) {
	token, err := c.session.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("encoding album definition: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+proxy.CreateAlbumPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req, token)

	resp, raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	payload := decodePayload(resp.Header.Get("Content-Type"), raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp, raw)
	}

	return payload, nil
}

func (c *Client) setAuthHeaders(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
}

// do performs the single attempt and classifies transport-level failures:
// a thrown call is a network error, and any redirect is a configuration
// fault, never followed.
func (c *Client) do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return nil, nil, fmt.Errorf("%w (HTTP %d)", ErrRedirected, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return resp, raw, nil
}

func statusError(resp *http.Response, raw []byte) *StatusError {
	payload := decodePayload(resp.Header.Get("Content-Type"), raw)

	message := fmt.Sprintf("HTTP %d", resp.StatusCode)
	if record, ok := payload.(map[string]any); ok {
		if msg, ok := record["error"].(string); ok {
			message = msg
		}
	}

	return &StatusError{
		Status:  resp.StatusCode,
		Message: message,
		Details: payload,
	}
}

func decodePayload(contentType string, raw []byte) any {
	if strings.Contains(strings.ToLower(contentType), "application/json") {
		var payload any
		if err := json.Unmarshal(raw, &payload); err == nil {
			return payload
		}
		return nil
	}
	return string(raw)
}

// parseUploadedPhoto accepts only the exact success shape
// {ok: true, photo: {id, image_path, public_url}}.
func parseUploadedPhoto(raw []byte) (*UploadedPhoto, bool) {
	var payload struct {
		OK    bool `json:"ok"`
		Photo *struct {
			ID        *string `json:"id"`
			ImagePath *string `json:"image_path"`
			PublicURL *string `json:"public_url"`
		} `json:"photo"`
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	if !payload.OK || payload.Photo == nil {
		return nil, false
	}

	photo := payload.Photo
	if photo.ID == nil || photo.ImagePath == nil || photo.PublicURL == nil {
		return nil, false
	}

	return &UploadedPhoto{
		ID:        *photo.ID,
		ImagePath: *photo.ImagePath,
		PublicURL: *photo.PublicURL,
	}, true
}

func createFilePart(w *multipart.Writer, file *image.File) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, strings.NewReplacer("\\", "\\\\", `"`, `\"`).Replace(file.Name)))
	if file.ContentType != "" {
		h.Set("Content-Type", file.ContentType)
	}
	return w.CreatePart(h)
}
