package domain

import (
	"regexp"
	"strings"
)

var (
	steamIDPattern   = regexp.MustCompile(`^7656119\d{10}$`)
	classnamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,128}$`)
)

// IsValidSteamID checks for a 17 digit SteamID64 in the individual account range.
func IsValidSteamID(steamID string) bool {
	return steamIDPattern.MatchString(steamID)
}

func IsValidClassname(classname string) bool {
	return classnamePattern.MatchString(strings.TrimSpace(classname))
}
