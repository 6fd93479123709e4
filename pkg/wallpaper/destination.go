package wallpaper

import (
	"fmt"
	"strings"
)

// Destination selects which wallpaper slot a set applies to.
type Destination int

// Destinations, in the order the set dialog offers them.
const (
	DestHome Destination = iota
	DestLock
	DestBoth
)

var destinationNames = map[Destination]string{
	DestHome: "home",
	DestLock: "lock",
	DestBoth: "both",
}

func (d Destination) String() string {
	if name, ok := destinationNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Destination(%d)", int(d))
}

// Targets expands DestBoth into its individual slots.
func (d Destination) Targets() []Destination {
	if d == DestBoth {
		return []Destination{DestHome, DestLock}
	}
	return []Destination{d}
}

// ParseDestination parses "home", "lock" or "both" (case-insensitive).
func ParseDestination(s string) (Destination, error) {
	for d, name := range destinationNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown destination %q (want home, lock or both)", s)
}
