package wallpaper

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"
)

// MockOS is a mock implementation of the OS interface.
type MockOS struct {
	mock.Mock
	// unsupported lists destinations supportsDestination rejects.
	unsupported []Destination
}

func (m *MockOS) getDesktopDimension() (int, int, error) {
	args := m.Called()
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockOS) supportsDestination(dest Destination) bool {
	for _, d := range dest.Targets() {
		for _, u := range m.unsupported {
			if d == u {
				return false
			}
		}
	}
	return true
}

func (m *MockOS) setWallpaper(path string, dest Destination) error {
	args := m.Called(path, dest)
	return args.Error(0)
}

// MockPersister is a mock implementation of the Persister interface.
type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) SetIndividualWallpaper(ctx context.Context, asset Asset, rect image.Rectangle, zoom float64, dest Destination) ([]string, error) {
	args := m.Called(ctx, asset, rect, zoom, dest)
	paths, _ := args.Get(0).([]string)
	return paths, args.Error(1)
}

// MockNotifier records events.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyWallpaperSet(ev Event) error {
	args := m.Called(ev)
	return args.Error(0)
}
