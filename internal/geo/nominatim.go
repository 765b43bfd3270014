package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim is a Geocoder backed by the OpenStreetMap Nominatim reverse
// endpoint.
type Nominatim struct {
	BaseURL string
	Client  *http.Client
}

func NewNominatim() *Nominatim {
	return &Nominatim{
		BaseURL: defaultNominatimBaseURL,
		Client:  &http.Client{},
	}
}

type nominatimAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Hamlet       string `json:"hamlet"`
	Municipality string `json:"municipality"`
	County       string `json:"county"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

type nominatimResponse struct {
	Address nominatimAddress `json:"address"`
}

func (n *Nominatim) ReverseGeocode(ctx context.Context, pos Position) (Place, error) {
	base := n.BaseURL
	if base == "" {
		base = defaultNominatimBaseURL
	}

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(pos.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(pos.Longitude, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return Place{}, fmt.Errorf("building reverse geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("reverse geocode call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Place{}, fmt.Errorf("reverse geocode returned HTTP %d", resp.StatusCode)
	}

	var payload nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Place{}, fmt.Errorf("decoding reverse geocode response: %w", err)
	}

	return Place{
		City:         payload.Address.City,
		Town:         payload.Address.Town,
		Village:      payload.Address.Village,
		Hamlet:       payload.Address.Hamlet,
		Municipality: payload.Address.Municipality,
		County:       payload.Address.County,
		State:        payload.Address.State,
		Country:      payload.Address.Country,
	}, nil
}
