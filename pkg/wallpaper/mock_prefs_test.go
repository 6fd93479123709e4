package wallpaper

import (
	"sync"

	"fyne.io/fyne/v2"
)

// memPrefs is an in-memory fyne.Preferences for tests.
type memPrefs struct {
	mu   sync.Mutex
	data map[string]any
}

func newMemPrefs() fyne.Preferences {
	return &memPrefs{data: make(map[string]any)}
}

func getPref[T any](m *memPrefs, key string, fallback T) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key].(T); ok {
		return v
	}
	return fallback
}

func (m *memPrefs) set(key string, v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = v
}

func (m *memPrefs) Bool(key string) bool                          { return getPref(m, key, false) }
func (m *memPrefs) BoolWithFallback(key string, f bool) bool      { return getPref(m, key, f) }
func (m *memPrefs) SetBool(key string, v bool)                    { m.set(key, v) }
func (m *memPrefs) BoolList(key string) []bool                    { return getPref[[]bool](m, key, nil) }
func (m *memPrefs) BoolListWithFallback(key string, f []bool) []bool { return getPref(m, key, f) }
func (m *memPrefs) SetBoolList(key string, v []bool)              { m.set(key, v) }

func (m *memPrefs) Float(key string) float64                              { return getPref(m, key, 0.0) }
func (m *memPrefs) FloatWithFallback(key string, f float64) float64       { return getPref(m, key, f) }
func (m *memPrefs) SetFloat(key string, v float64)                        { m.set(key, v) }
func (m *memPrefs) FloatList(key string) []float64                        { return getPref[[]float64](m, key, nil) }
func (m *memPrefs) FloatListWithFallback(key string, f []float64) []float64 { return getPref(m, key, f) }
func (m *memPrefs) SetFloatList(key string, v []float64)                  { m.set(key, v) }

func (m *memPrefs) Int(key string) int                          { return getPref(m, key, 0) }
func (m *memPrefs) IntWithFallback(key string, f int) int       { return getPref(m, key, f) }
func (m *memPrefs) SetInt(key string, v int)                    { m.set(key, v) }
func (m *memPrefs) IntList(key string) []int                    { return getPref[[]int](m, key, nil) }
func (m *memPrefs) IntListWithFallback(key string, f []int) []int { return getPref(m, key, f) }
func (m *memPrefs) SetIntList(key string, v []int)              { m.set(key, v) }

func (m *memPrefs) String(key string) string                              { return getPref(m, key, "") }
func (m *memPrefs) StringWithFallback(key string, f string) string        { return getPref(m, key, f) }
func (m *memPrefs) SetString(key string, v string)                        { m.set(key, v) }
func (m *memPrefs) StringList(key string) []string                        { return getPref[[]string](m, key, nil) }
func (m *memPrefs) StringListWithFallback(key string, f []string) []string { return getPref(m, key, f) }
func (m *memPrefs) SetStringList(key string, v []string)                  { m.set(key, v) }

func (m *memPrefs) RemoveValue(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

func (m *memPrefs) AddChangeListener(func()) {}

func (m *memPrefs) ChangeListeners() []func() { return nil }
