package config

import "fyne.io/fyne/v2"

// Wallpaper set status values stored under PendingSetStatusKey.
const (
	SetNotPending = 0
	SetPending    = 1
)

// PendingSetStatusKey records whether a wallpaper set was in flight when the app last ran.
const PendingSetStatusKey = "pending_wallpaper_set_status"

// AppConfig holds the application-wide configuration
type AppConfig struct {
	prefs fyne.Preferences
}

// NewAppConfig creates a new AppConfig instance
func NewAppConfig(p fyne.Preferences) *AppConfig {
	return &AppConfig{prefs: p}
}

// GetPendingSetStatus returns SetPending if a wallpaper set has started but not finished.
func (c *AppConfig) GetPendingSetStatus() int {
	return c.prefs.IntWithFallback(PendingSetStatusKey, SetNotPending)
}

// SetPendingSetStatus records the wallpaper set status.
func (c *AppConfig) SetPendingSetStatus(status int) {
	c.prefs.SetInt(PendingSetStatusKey, status)
}

// LastDestinationKey is the key for the destination of the last successful set
const LastDestinationKey = "last_wallpaper_destination"

// GetLastDestination returns the destination name of the last successful set, or "" if none.
func (c *AppConfig) GetLastDestination() string {
	return c.prefs.StringWithFallback(LastDestinationKey, "")
}

// SetLastDestination stores the destination name of the last successful set.
func (c *AppConfig) SetLastDestination(dest string) {
	c.prefs.SetString(LastDestinationKey, dest)
}

// RTLKey is the key for the right-to-left layout preference
const RTLKey = "layout_rtl"

// GetRTL returns whether the preview treats the right edge as the leading edge
func (c *AppConfig) GetRTL() bool {
	return c.prefs.BoolWithFallback(RTLKey, false)
}

// SetRTL sets the layout direction
func (c *AppConfig) SetRTL(rtl bool) {
	c.prefs.SetBool(RTLKey, rtl)
}

// LargeScreenKey is the key for the large screen preference
const LargeScreenKey = "large_screen"

// GetLargeScreen returns whether the display should use the large-screen crop surface
func (c *AppConfig) GetLargeScreen() bool {
	return c.prefs.BoolWithFallback(LargeScreenKey, false)
}

// SetLargeScreen sets whether the display uses the large-screen crop surface
func (c *AppConfig) SetLargeScreen(large bool) {
	c.prefs.SetBool(LargeScreenKey, large)
}

// SmartCenterKey is the key for the smart centering preference
const SmartCenterKey = "smart_center_enabled"

// GetSmartCenter returns whether the initial view is centered on the most interesting region
func (c *AppConfig) GetSmartCenter() bool {
	return c.prefs.BoolWithFallback(SmartCenterKey, false)
}

// SetSmartCenter sets whether smart centering is enabled
func (c *AppConfig) SetSmartCenter(enabled bool) {
	c.prefs.SetBool(SmartCenterKey, enabled)
}
