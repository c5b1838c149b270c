package immich

import (
	"github.com/dustin/go-humanize"

	"immich-stacker/internal/immich/api"
)

// Config holds configuration values for the immich client.
//
// It is organized to take advantage of TOML parsing, however this package does
// not handle parsing and has no expectation on how it will be initialized.
type Config struct {
	// Remote configuration for connecting to the immich API.
	Remote api.Config `toml:"immich"`

	// In-memory memoization of API responses, so repeated reads within one
	// run (album resolution followed by album iteration) reach the server
	// once.
	Cache CacheConfig `toml:"cache"`
}

// CacheConfig controls the in-memory response memo.
type CacheConfig struct {
	Enabled bool       `toml:"enabled"`
	Size    HumanBytes `toml:"size"`
}

// HumanBytes is a custom type to decode human-readable byte values into an
// integer.
type HumanBytes uint64

// UnmarshalText implements toml.TextUnmarshaler.
func (h *HumanBytes) UnmarshalText(text []byte) error {
	nbytes, err := humanize.ParseBytes(string(text))
	*h = HumanBytes(nbytes)
	return err
}

// String converts the integer back into a human-readable representation.
func (h *HumanBytes) String() string {
	if h == nil {
		return ""
	}
	return humanize.Bytes(uint64(*h))
}
