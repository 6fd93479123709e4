// Command wallcrop previews an image against the desktop's crop surface and sets the
// chosen region as the home and/or lock screen wallpaper.
package main

func main() {
	execute()
}
