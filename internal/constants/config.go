package constants

import "time"

// EnvPrefix is the prefix of every ambient environment variable.
const EnvPrefix = "SQSRELAY"

// URLEnvVar holds the upstream endpoint. It is deliberately unprefixed.
const URLEnvVar = "URL"

// TokenEnvVar holds the credential placed after "Basic ". It is deliberately unprefixed.
//
//nolint:gosec // G101: environment variable name, not a credential
const TokenEnvVar = "TOKEN"

// DefaultUpstreamTimeout bounds the single outbound POST.
const DefaultUpstreamTimeout = 30 * time.Second

// DefaultInitTimeout bounds cold start work such as Parameter Store lookups.
const DefaultInitTimeout = 10 * time.Second

// DefaultLocalPort is the port of the local development server.
const DefaultLocalPort = 8080

// DefaultCLITimeout is the default timeout of a CLI command.
const DefaultCLITimeout = "1m"
