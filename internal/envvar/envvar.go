// Package envvar centralizes configuration values coming from environment
// variables, secure values are resolved through a secrets provider.
package envvar

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sanLimbu/taskboard-api/internal"
)

// Provider defines how to retrieve secure configuration values.
type Provider interface {
	Get(key string) (string, error)
}

// Configuration resolves configuration keys, values suffixed with _SECURE
// in the environment are looked up in the Provider instead.
type Configuration struct {
	provider Provider
}

// Load reads the env filename into the process environment, a blank
// filename loads nothing and keeps whatever the environment already has.
func Load(filename string) error {
	if filename == "" {
		return nil
	}

	if err := godotenv.Load(filename); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "godotenv.Load")
	}

	return nil
}

// New instantiates the Configuration using the received secrets provider.
func New(provider Provider) *Configuration {
	return &Configuration{
		provider: provider,
	}
}

// Get returns the value for the key, preferring the secrets provider when a
// <key>_SECURE environment variable names a secret path.
func (c *Configuration) Get(key string) (string, error) {
	res := os.Getenv(key)

	valSecret := os.Getenv(fmt.Sprintf("%s_SECURE", key))
	if valSecret != "" {
		valSecretRes, err := c.provider.Get(valSecret)
		if err != nil {
			return "", internal.WrapErrorf(err, internal.ErrorCodeUnknown, "provider.Get")
		}

		res = valSecretRes
	}

	return res, nil
}
