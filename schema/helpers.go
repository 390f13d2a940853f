package schema

import (
	"fmt"
	"strings"
)

// SplitFullName splits "owner/name" into its owner and name parts.
// A value without a slash is treated as a bare name with no owner.
func SplitFullName(fullName string) (owner, name string) {
	owner, name, found := strings.Cut(fullName, "/")
	if !found {
		return "", fullName
	}
	if name == "" {
		return owner, fullName
	}
	return owner, name
}

// RepoShortName returns the part after the owner prefix, or the input if there is none.
func RepoShortName(fullName string) string {
	_, name := SplitFullName(fullName)
	return name
}

// RepoOwner returns the owner prefix of a full repository name.
func RepoOwner(fullName string) string {
	owner, _, found := strings.Cut(fullName, "/")
	if !found {
		return fullName
	}
	return owner
}

// FormatHour renders an hour of day on a 12-hour clock, e.g. 0 -> "12 AM", 14 -> "2 PM".
func FormatHour(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d %s", h, suffix)
}

// DisplayName returns a human label for the work style.
func (w WorkStyle) DisplayName() string {
	switch w {
	case LoneWolf:
		return "Lone Wolf"
	case TeamPlayer:
		return "Team Player"
	case CommunityBuilder:
		return "Community Builder"
	default:
		return string(w)
	}
}
