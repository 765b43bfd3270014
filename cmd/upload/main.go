package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mvaldes-dev/portfolio-gallery/internal/geo"
	"github.com/mvaldes-dev/portfolio-gallery/internal/image"
	"github.com/mvaldes-dev/portfolio-gallery/internal/metadata"
	"github.com/mvaldes-dev/portfolio-gallery/internal/session"
	"github.com/mvaldes-dev/portfolio-gallery/internal/uploadclient"
)

func main() {
	filePath := flag.String("file", "", "Path to the photo to upload")
	album := flag.String("album", "", "Album slug the photo belongs to")
	caption := flag.String("caption", "", "Photo caption")
	takenAt := flag.String("taken-at", "", "Capture date as DD/MM/YYYY (optional)")
	location := flag.String("location", "", "Location label (optional)")
	lat := flag.Float64("lat", 0, "Latitude for location lookup (with -lon and -locate)")
	lon := flag.Float64("lon", 0, "Longitude for location lookup (with -lat and -locate)")
	locate := flag.Bool("locate", false, "Resolve -lat/-lon into a location label via reverse geocoding")
	listAlbums := flag.Bool("list-albums", false, "List available albums and exit")
	createAlbum := flag.Bool("create-album", false, "Create an album and exit (uses -title, -subtitle, -slug, -visible, -cover)")
	title := flag.String("title", "", "Album title (with -create-album)")
	subtitle := flag.String("subtitle", "", "Album subtitle (with -create-album)")
	slug := flag.String("slug", "", "Album slug (with -create-album)")
	visible := flag.Bool("visible", true, "Whether the album is publicly visible (with -create-album)")
	cover := flag.String("cover", "", "Album cover path (with -create-album)")
	user := flag.String("user", "", "Username to remember across runs")
	remember := flag.Bool("remember", false, "Persist the username for future runs")
	flag.Parse()

	_ = godotenv.Load()

	baseURL := strings.TrimSpace(os.Getenv("PORTFOLIO_PROXY_URL"))
	if baseURL == "" {
		fmt.Fprintln(os.Stderr, "PORTFOLIO_PROXY_URL is not set")
		os.Exit(1)
	}

	store := session.NewRememberStore(rememberPath())
	resolveUsername(store, *user, *remember)

	client := uploadclient.New(uploadclient.Config{
		BaseURL: baseURL,
		APIKey:  os.Getenv("PORTFOLIO_API_KEY"),
		Session: session.NewStaticProvider(os.Getenv("PORTFOLIO_TOKEN")),
	})

	ctx := context.Background()

	switch {
	case *listAlbums:
		runListAlbums(ctx, client)
	case *createAlbum:
		runCreateAlbum(ctx, client, uploadclient.AlbumDefinition{
			Title:     *title,
			Subtitle:  *subtitle,
			Slug:      *slug,
			IsVisible: *visible,
			CoverPath: *cover,
		})
	default:
		runUpload(ctx, client, uploadOptions{
			filePath: *filePath,
			album:    *album,
			caption:  *caption,
			takenAt:  *takenAt,
			location: *location,
			lat:      *lat,
			lon:      *lon,
			locate:   *locate,
		})
	}
}

type uploadOptions struct {
	filePath string
	album    string
	caption  string
	takenAt  string
	location string
	lat      float64
	lon      float64
	locate   bool
}

func runUpload(ctx context.Context, client *uploadclient.Client, opts uploadOptions) {
	if opts.filePath == "" {
		fmt.Fprintln(os.Stderr, "Missing -file")
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(opts.filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", opts.filePath, err)
		os.Exit(1)
	}

	file := image.File{
		Name:        filepath.Base(opts.filePath),
		ContentType: contentTypeFor(opts.filePath),
		Data:        data,
	}

	if err := metadata.Validate(opts.caption, opts.album, &file, opts.takenAt); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid upload: %v\n", err)
		os.Exit(1)
	}

	prepared, err := image.NewPreparer().Prepare(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to prepare image: %v\n", err)
		os.Exit(1)
	}
	if prepared.Name != file.Name {
		fmt.Printf("Re-encoded %s as %s\n", file.Name, prepared.Name)
	}

	locationLabel := opts.location
	if opts.locate {
		resolver := geo.NewResolver(
			geo.StaticSource{Position: geo.Position{Latitude: opts.lat, Longitude: opts.lon}},
			geo.NewNominatim(),
		)
		locationLabel, err = resolver.Resolve(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve location: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Resolved location: %s\n", locationLabel)
	}

	photo, err := client.Upload(ctx, &prepared, opts.album, opts.caption, uploadclient.Metadata{
		Location: locationLabel,
		TakenAt:  opts.takenAt,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Upload failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Uploaded %s: %s\n", photo.ID, photo.PublicURL)
}

func runListAlbums(ctx context.Context, client *uploadclient.Client) {
	albums, err := client.ListAlbums(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list albums: %v\n", err)
		os.Exit(1)
	}

	if len(albums) == 0 {
		fmt.Println("No albums found")
		return
	}
	for _, album := range albums {
		title := album.Slug
		if album.Title != nil && strings.TrimSpace(*album.Title) != "" {
			title = *album.Title
		}
		fmt.Printf("%s\t%s\n", album.Slug, title)
	}
}

func runCreateAlbum(ctx context.Context, client *uploadclient.Client, def uploadclient.AlbumDefinition) {
	if _, err := client.CreateAlbum(ctx, def); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create album: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Album created: %s\n", def.Slug)
}

// resolveUsername persists or recalls the username across runs. Passing
// -user without -remember clears any stored value.
func resolveUsername(store *session.RememberStore, user string, remember bool) {
	if user != "" {
		if err := store.Save(session.RememberedLogin{Remember: remember, Username: user}); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to remember username: %v\n", err)
		}
		return
	}

	login, err := store.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load remembered username: %v\n", err)
		return
	}
	if login.Remember && login.Username != "" {
		fmt.Printf("Uploading as %s\n", login.Username)
	}
}

func rememberPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "portfolio-gallery", "session.json")
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
