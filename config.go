package pipewire

import "os"

// Environment variables consulted by ConfigFromEnv and the native loaders.
const (
	EnvLinkPassive = "PIPEWIRE_LINK_PASSIVE"
	EnvLibPath     = "GOPW_LIB_PATH"
	EnvSDKLibPath  = "GOPW_SDK_LIB_PATH"
)

// Config holds the inputs of the adapters that are not handles.
type Config struct {
	// Passive marks created links with link.passive=true.
	Passive bool
}

// ConfigFromEnv builds a Config from an environment lookup. A nil getenv
// uses os.Getenv.
func ConfigFromEnv(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	var cfg Config
	if v := getenv(EnvLinkPassive); v != "" {
		cfg.Passive = ParseBool(v)
	}
	return cfg
}
