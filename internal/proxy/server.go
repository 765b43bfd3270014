package proxy

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mvaldes-dev/portfolio-gallery/internal/config"
)

// Endpoint paths served by the proxy. The upload client joins these onto its
// configured base URL, so the two sides must stay in sync.
const (
	UploadPhotoPath = "/proxy-upload-photo"
	ListAlbumsPath  = "/proxy-list-albums"
	CreateAlbumPath = "/proxy-create-album"
)

// Doer abstracts the outbound HTTP call so tests can fake the upstream
// photo service without a network.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Server implements the three stateless proxy endpoints. It holds no request
// state; any number of handlers may run concurrently.
type Server struct {
	cfg      *config.ProxyConfig
	upstream Doer
}

func NewServer(cfg *config.ProxyConfig, upstream Doer) *Server {
	if upstream == nil {
		// No timeout override: the upstream is trusted to answer or fail,
		// matching the platform-default behavior of the handlers' callers.
		upstream = &http.Client{}
	}
	return &Server{
		cfg:      cfg,
		upstream: upstream,
	}
}

// Routes mounts the proxy endpoints. Handlers are registered for all methods
// because each one implements its own OPTIONS/method guard.
func (s *Server) Routes(r chi.Router) {
	r.HandleFunc(UploadPhotoPath, s.UploadPhoto)
	r.HandleFunc(ListAlbumsPath, s.ListAlbums)
	r.HandleFunc(CreateAlbumPath, s.CreateAlbum)
}
