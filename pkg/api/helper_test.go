package api

import "github.com/dixieflatline76/wallcrop/pkg/crop"

func sz(w, h int) crop.Size {
	return crop.Size{Width: w, Height: h}
}
