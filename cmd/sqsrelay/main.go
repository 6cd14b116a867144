// Package main implements the sqsrelay Lambda function.
// It forwards the first record of each SQS event to the configured upstream URL
// and, when SQSRELAY_HTTP_ENABLED is set, serves the same forwarder to Function URL requests.
package main

import (
	"context"
	"os"

	"github.com/sqsrelay/sqsrelay/internal/app"
	"github.com/sqsrelay/sqsrelay/internal/config"
	"github.com/sqsrelay/sqsrelay/internal/constants"
	"github.com/sqsrelay/sqsrelay/internal/logger"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Initialize(cfg.Environment, cfg.GetLogLevel())
	ctx, cancel := context.WithTimeout(context.Background(), cfg.InitTimeout)

	fwd, err := app.Initialize(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error("failed to initialize forwarder", "error", err)
		os.Exit(1)
	}

	log.With("version", *constants.GetVersion()).Debug("starting sqsrelay Lambda handler",
		"http_enabled", cfg.HTTPEnabled)
	lambda.Start(app.NewLambdaHandler(cfg, fwd, log))
}
