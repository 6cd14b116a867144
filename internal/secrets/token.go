package secrets

import (
	"context"

	"github.com/sqsrelay/sqsrelay/internal/config"
)

// ResolveToken returns the credential to place after "Basic ".
// A token set in configuration always wins. Otherwise the configured parameter is
// read from store. With neither, the token is empty and forwarded as such.
func ResolveToken(ctx context.Context, cfg *config.Config, store Store) (string, error) {
	if !cfg.UsesParameterStore() {
		return cfg.Token, nil
	}

	return store.RetrieveSecret(ctx, cfg.TokenParameter)
}
