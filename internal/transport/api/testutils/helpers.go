package testutils

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// GenerateOverBytesUnderRunes returns a string that is count runes long but four times as many bytes.
func GenerateOverBytesUnderRunes(count int) string {
	return strings.Repeat("😁", count)
}

// FakeSteamID returns a random SteamID64 in the individual account range.
func FakeSteamID() string {
	return fmt.Sprintf("7656119%010d", gofakeit.Number(0, 999_999_999))
}

func FakeUsername() string {
	return strings.ToLower(gofakeit.Username())
}

func FakePassword() string {
	return gofakeit.Password(true, true, true, false, false, 12)
}
