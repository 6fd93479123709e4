//go:build linux

package wallpaper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	name string
	args []string
}

func recordingOS(fail map[string]error) (*linuxOS, *[]recordedCall) {
	var calls []recordedCall
	return &linuxOS{run: func(name string, args ...string) error {
		calls = append(calls, recordedCall{name, args})
		return fail[strings.Join(append([]string{name}, args...), " ")]
	}}, &calls
}

func TestLinuxOS_GNOME(t *testing.T) {
	t.Setenv("XDG_CURRENT_DESKTOP", "ubuntu:GNOME")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")

	t.Run("Home", func(t *testing.T) {
		l, calls := recordingOS(nil)
		require.NoError(t, l.setWallpaper("/w/home/a.jpg", DestHome))
		require.Len(t, *calls, 2)
		assert.Equal(t, []string{"set", "org.gnome.desktop.background", "picture-uri", "file:///w/home/a.jpg"}, (*calls)[0].args)
		assert.Equal(t, "picture-uri-dark", (*calls)[1].args[2])
	})

	t.Run("DarkVariantFailureIgnored", func(t *testing.T) {
		l, _ := recordingOS(map[string]error{
			"gsettings set org.gnome.desktop.background picture-uri-dark file:///a.jpg": assert.AnError,
		})
		assert.NoError(t, l.setWallpaper("/a.jpg", DestHome))
	})

	t.Run("Lock", func(t *testing.T) {
		l, calls := recordingOS(nil)
		require.NoError(t, l.setWallpaper("/w/lock/a.jpg", DestLock))
		require.Len(t, *calls, 1)
		assert.Equal(t, "org.gnome.desktop.screensaver", (*calls)[0].args[1])
	})
}

func TestLinuxOS_KDE(t *testing.T) {
	t.Setenv("XDG_CURRENT_DESKTOP", "KDE")

	l, calls := recordingOS(nil)
	require.NoError(t, l.setWallpaper("/a.jpg", DestLock))
	require.NoError(t, l.setWallpaper("/b.jpg", DestHome))
	require.Len(t, *calls, 2)
	assert.Equal(t, "kwriteconfig5", (*calls)[0].name)
	assert.Contains(t, (*calls)[0].args, "file:///a.jpg")
	assert.Equal(t, "dbus-send", (*calls)[1].name)
	assert.Contains(t, strings.Join((*calls)[1].args, " "), "file:///b.jpg")
}

func TestLinuxOS_SwayLockUnsupported(t *testing.T) {
	t.Setenv("XDG_CURRENT_DESKTOP", "sway")

	l, calls := recordingOS(nil)
	assert.ErrorIs(t, l.setWallpaper("/a.jpg", DestLock), ErrDestinationUnsupported)
	require.NoError(t, l.setWallpaper("/a.jpg", DestHome))
	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"output", "*", "bg", "/a.jpg", "fill"}, (*calls)[0].args)
}

func TestLinuxOS_UnknownDesktop(t *testing.T) {
	t.Setenv("XDG_CURRENT_DESKTOP", "")
	t.Setenv("DESKTOP_SESSION", "")

	l, _ := recordingOS(nil)
	assert.Error(t, l.setWallpaper("/a.jpg", DestHome))
}

func TestLinuxOS_SupportsDestination(t *testing.T) {
	tests := []struct {
		desktop string
		home    bool
		lock    bool
	}{
		{"GNOME", true, true},
		{"KDE", true, true},
		{"sway", true, false},
		{"XFCE", true, false},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.desktop, func(t *testing.T) {
			t.Setenv("XDG_CURRENT_DESKTOP", tt.desktop)
			t.Setenv("DESKTOP_SESSION", "")
			t.Setenv("WAYLAND_DISPLAY", "")

			l, calls := recordingOS(nil)
			assert.Equal(t, tt.home, l.supportsDestination(DestHome))
			assert.Equal(t, tt.lock, l.supportsDestination(DestLock))
			assert.Equal(t, tt.home && tt.lock, l.supportsDestination(DestBoth))
			assert.Empty(t, *calls)
		})
	}
}
