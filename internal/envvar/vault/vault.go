// Package vault implements the envvar.Provider interface on top of
// HashiCorp Vault's KV secrets engine.
package vault

import (
	"fmt"
	"strings"

	"github.com/hashicorp/vault/api"

	"github.com/sanLimbu/taskboard-api/internal"
)

// Provider reads secrets from Vault, caching each secret path after the
// first read.
type Provider struct {
	client *api.Client
	path   string

	results map[string]map[string]interface{}
}

// New instantiates a Provider for the Vault server at address, reading
// secrets below the received mount path.
func New(token, address, path string) (*Provider, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "api.NewClient")
	}

	client.SetToken(token)

	return &Provider{
		client:  client,
		path:    path,
		results: make(map[string]map[string]interface{}),
	}, nil
}

// Get reads a secret value, the key uses the form <secret path>:<field>.
func (p *Provider) Get(v string) (string, error) {
	split := strings.Split(v, ":")
	if len(split) != 2 {
		return "", internal.NewErrorf(internal.ErrorCodeInvalidArgument, "missing ':' in key %q", v)
	}

	pathSecret, key := split[0], split[1]

	res, ok := p.results[pathSecret]
	if !ok {
		secret, err := p.client.Logical().Read(fmt.Sprintf("%s/data%s", p.path, pathSecret))
		if err != nil {
			return "", internal.WrapErrorf(err, internal.ErrorCodeUnknown, "client.Logical().Read")
		}

		if secret == nil {
			return "", internal.NewErrorf(internal.ErrorCodeNotFound, "secret not found: %s", pathSecret)
		}

		data, ok := secret.Data["data"].(map[string]interface{})
		if !ok {
			return "", internal.NewErrorf(internal.ErrorCodeUnknown, "unexpected secret payload")
		}

		p.results[pathSecret] = data
		res = data
	}

	val, ok := res[key]
	if !ok {
		return "", internal.NewErrorf(internal.ErrorCodeNotFound, "field not found: %s", key)
	}

	str, ok := val.(string)
	if !ok {
		return "", internal.NewErrorf(internal.ErrorCodeUnknown, "field is not a string: %s", key)
	}

	return str, nil
}
