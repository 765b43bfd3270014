package container

import (
	"net/http"

	"github.com/mvaldes-dev/portfolio-gallery/internal/config"
	"github.com/mvaldes-dev/portfolio-gallery/internal/logging"
	"github.com/mvaldes-dev/portfolio-gallery/internal/proxy"
)

type Container struct {
	Config *config.Config
	Server *proxy.Server
}

func New() (*Container, error) {
	cfg := config.Load()

	if err := logging.Init(&cfg.Logging); err != nil {
		return nil, err
	}

	// The proxy keeps no per-request state, so a single shared upstream
	// client serves every endpoint.
	server := proxy.NewServer(&cfg.Proxy, &http.Client{})

	logging.Info("Proxy configured",
		"upload_url_set", cfg.Proxy.UploadURL != "",
		"list_albums_url_set", cfg.Proxy.ListAlbumsURL != "",
		"create_album_url_set", cfg.Proxy.CreateAlbumURL != "")

	return &Container{
		Config: cfg,
		Server: server,
	}, nil
}

func (c *Container) Cleanup() {
	logging.Info("Proxy server resources released")
}
