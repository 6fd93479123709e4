//go:build linux

package wallpaper

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// linuxOS implements the OS interface for Linux.
type linuxOS struct {
	run func(name string, args ...string) error
}

// getOS returns a new instance of the linuxOS struct.
func getOS() OS {
	return &linuxOS{run: func(name string, args ...string) error {
		return exec.Command(name, args...).Run()
	}}
}

// getDesktopDimension returns the desktop dimensions on Linux.
func (l *linuxOS) getDesktopDimension() (int, int, error) {
	return screenSize()
}

// Desktop environments with a wallpaper backend.
const (
	desktopUnknown = iota
	desktopGNOME
	desktopKDE
	desktopSway
	desktopXFCE
)

// desktop identifies the running desktop environment from the session variables.
func (l *linuxOS) desktop() (int, string) {
	desktopEnv := os.Getenv("XDG_CURRENT_DESKTOP")
	if desktopEnv == "" {
		desktopEnv = os.Getenv("DESKTOP_SESSION")
	}
	desktopEnv = strings.ToLower(desktopEnv)
	wayland := os.Getenv("WAYLAND_DISPLAY") != ""

	switch {
	case strings.Contains(desktopEnv, "gnome") || strings.Contains(desktopEnv, "mutter") ||
		(!wayland && (strings.Contains(desktopEnv, "unity") || strings.Contains(desktopEnv, "cinnamon"))):
		return desktopGNOME, desktopEnv
	case strings.Contains(desktopEnv, "kde"):
		return desktopKDE, desktopEnv
	case strings.Contains(desktopEnv, "sway"):
		return desktopSway, desktopEnv
	case !wayland && strings.Contains(desktopEnv, "xfce"):
		return desktopXFCE, desktopEnv
	default:
		return desktopUnknown, desktopEnv
	}
}

// supportsDestination reports whether the desktop can set every slot in dest.
// Only GNOME and KDE have a separate lock screen picture.
func (l *linuxOS) supportsDestination(dest Destination) bool {
	kind, _ := l.desktop()
	for _, d := range dest.Targets() {
		switch {
		case kind == desktopUnknown:
			return false
		case d == DestLock && kind != desktopGNOME && kind != desktopKDE:
			return false
		}
	}
	return true
}

// setWallpaper sets the wallpaper for one destination, supporting X11 and some Wayland compositors.
func (l *linuxOS) setWallpaper(imagePath string, dest Destination) error {
	kind, desktopEnv := l.desktop()
	switch kind {
	case desktopGNOME:
		return l.setWallpaperGNOME(imagePath, dest)
	case desktopKDE:
		return l.setWallpaperKDE(imagePath, dest)
	case desktopSway:
		return l.setWallpaperSway(imagePath, dest)
	case desktopXFCE:
		return l.setWallpaperXFCE(imagePath, dest)
	default:
		return fmt.Errorf("unsupported desktop environment: %q", desktopEnv)
	}
}

// setWallpaperGNOME sets the background, or the screensaver picture for the lock screen.
func (l *linuxOS) setWallpaperGNOME(imagePath string, dest Destination) error {
	uri := "file://" + imagePath
	if dest == DestLock {
		return l.run("gsettings", "set", "org.gnome.desktop.screensaver", "picture-uri", uri)
	}
	if err := l.run("gsettings", "set", "org.gnome.desktop.background", "picture-uri", uri); err != nil {
		return err
	}
	// Older GNOME has no dark variant; ignore failures there.
	_ = l.run("gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", uri)
	return nil
}

// setWallpaperKDE sets the Plasma desktop image, or the lock screen greeter image.
func (l *linuxOS) setWallpaperKDE(imagePath string, dest Destination) error {
	if dest == DestLock {
		return l.run("kwriteconfig5", "--file", "kscreenlockerrc",
			"--group", "Greeter", "--group", "Wallpaper", "--group", "org.kde.image", "--group", "General",
			"--key", "Image", "file://"+imagePath)
	}
	script := fmt.Sprintf(`
var allDesktops = desktops();
for (i=0;i<allDesktops.length;i++) {
    d = allDesktops[i];
    d.wallpaperPlugin = "org.kde.image";
    d.currentConfigGroup = Array("Wallpaper", "org.kde.image", "General");
    d.writeConfig("Image", "file://%s");
}`, imagePath)
	return l.run("dbus-send", "--session", "--dest=org.kde.plasmashell", "--type=method_call",
		"/PlasmaShell", "org.kde.PlasmaShell.evaluateScript", "string:"+script)
}

// setWallpaperXFCE sets the wallpaper for XFCE. The lock screen follows the desktop.
func (l *linuxOS) setWallpaperXFCE(imagePath string, dest Destination) error {
	if dest == DestLock {
		return ErrDestinationUnsupported
	}
	configFile := filepath.Join(os.Getenv("HOME"), ".config", "xfce4", "xfconf", "xfce-perchannel-xml", "xfce4-desktop.xml")
	if _, err := os.Stat(configFile); err != nil {
		return fmt.Errorf("could not find XFCE desktop configuration file")
	}
	return l.run("xfconf-query",
		"--channel", "xfce4-desktop",
		"--property", "/backdrop/screen0/monitor0/workspace0/last-image",
		"--set", imagePath)
}

// setWallpaperSway sets the wallpaper for Sway. swaylock takes its image per invocation.
func (l *linuxOS) setWallpaperSway(imagePath string, dest Destination) error {
	if dest == DestLock {
		return ErrDestinationUnsupported
	}
	return l.run("swaymsg", "output", "*", "bg", imagePath, "fill")
}
