package testutil

import (
	"context"
	"testing"

	"github.com/mvaldes-dev/portfolio-gallery/internal/geo"
	"github.com/stretchr/testify/mock"
)

// MockSessionProvider is a mock implementation of the session provider interface
type MockSessionProvider struct {
	mock.Mock
}

// NewMockSessionProvider creates a new mock session provider
func NewMockSessionProvider(t *testing.T) *MockSessionProvider {
	mockSession := &MockSessionProvider{}
	mockSession.Test(t)
	return mockSession
}

// AccessToken mocks token retrieval
func (m *MockSessionProvider) AccessToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockPositionSource is a mock implementation of the position source interface
type MockPositionSource struct {
	mock.Mock
}

// NewMockPositionSource creates a new mock position source
func NewMockPositionSource(t *testing.T) *MockPositionSource {
	mockSource := &MockPositionSource{}
	mockSource.Test(t)
	return mockSource
}

// Current mocks position acquisition
func (m *MockPositionSource) Current(ctx context.Context, opts geo.PositionOptions) (geo.Position, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(geo.Position), args.Error(1)
}

// MockGeocoder is a mock implementation of the geocoder interface
type MockGeocoder struct {
	mock.Mock
}

// NewMockGeocoder creates a new mock geocoder
func NewMockGeocoder(t *testing.T) *MockGeocoder {
	mockGeocoder := &MockGeocoder{}
	mockGeocoder.Test(t)
	return mockGeocoder
}

// ReverseGeocode mocks reverse geocoding
func (m *MockGeocoder) ReverseGeocode(ctx context.Context, pos geo.Position) (geo.Place, error) {
	args := m.Called(ctx, pos)
	return args.Get(0).(geo.Place), args.Error(1)
}

// Helper methods for setting up common mock expectations

// ExpectAccessToken sets up expectation for AccessToken
func (m *MockSessionProvider) ExpectAccessToken(token string, err error) *mock.Call {
	return m.On("AccessToken", mock.Anything).Return(token, err)
}

// ExpectCurrent sets up expectation for Current
func (m *MockPositionSource) ExpectCurrent(pos geo.Position, err error) *mock.Call {
	return m.On("Current", mock.Anything, mock.Anything).Return(pos, err)
}

// ExpectReverseGeocode sets up expectation for ReverseGeocode
func (m *MockGeocoder) ExpectReverseGeocode(place geo.Place, err error) *mock.Call {
	return m.On("ReverseGeocode", mock.Anything, mock.Anything).Return(place, err)
}
