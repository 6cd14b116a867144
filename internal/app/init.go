// Package app wires the configured forwarder at cold start.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sqsrelay/sqsrelay/internal/config"
	"github.com/sqsrelay/sqsrelay/internal/constants"
	"github.com/sqsrelay/sqsrelay/internal/forwarder"
	"github.com/sqsrelay/sqsrelay/internal/secrets"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// storeFactory builds the secret store used to resolve the upstream token.
type storeFactory func(ctx context.Context, log *slog.Logger) (secrets.Store, error)

// Initialize resolves the upstream token and returns a Forwarder built from cfg.
// It returns an error if the context is canceled, timed out, or the token
// cannot be retrieved from Parameter Store.
func Initialize(ctx context.Context, cfg *config.Config, log *slog.Logger) (*forwarder.Forwarder, error) {
	return initialize(ctx, cfg, log, newParameterStore)
}

func initialize(
	ctx context.Context,
	cfg *config.Config,
	log *slog.Logger,
	newStore storeFactory,
) (*forwarder.Forwarder, error) {
	log.Debug(fmt.Sprintf("initializing %s forwarder", constants.ProjectName),
		"version", *constants.GetVersion(),
		"init_timeout_seconds", cfg.InitTimeout.Seconds(),
		"token_source", tokenSource(cfg),
	)

	var store secrets.Store
	if cfg.UsesParameterStore() {
		var err error
		store, err = newStore(ctx, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create secret store: %w", err)
		}
	}

	token, err := secrets.ResolveToken(ctx, cfg, store)
	if err != nil {
		return nil, err
	}

	return forwarder.New(forwarder.Options{
		URL:                  cfg.URL,
		Token:                token,
		FailOnUpstreamStatus: cfg.FailOnUpstreamStatus,
	}, forwarder.NewHTTPClient(cfg.Timeout), log), nil
}

func newParameterStore(ctx context.Context, log *slog.Logger) (secrets.Store, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return secrets.NewParameterStore(secrets.NewClientAdapter(ssm.NewFromConfig(awsCfg)), log), nil
}

func tokenSource(cfg *config.Config) string {
	switch {
	case cfg.Token != "":
		return "env"
	case cfg.TokenParameter != "":
		return "parameter_store"
	default:
		return "none"
	}
}
