package constants

import "time"

// AuthorizationHeader is the HTTP Authorization header name.
const AuthorizationHeader = "Authorization"

// BasicAuthScheme is the prefix placed before the configured token.
const BasicAuthScheme = "Basic "

// ContentTypeHeader is the HTTP Content-Type header name.
const ContentTypeHeader = "Content-Type"

// UserAgentHeader is the HTTP User-Agent header name.
const UserAgentHeader = "User-Agent"

// ContentTypeJSON is the media type of every envelope and outbound payload.
const ContentTypeJSON = "application/json"

// RequestIDHeader is echoed back by the local server and function URL router.
const RequestIDHeader = "X-Request-ID"

// MaxUpstreamResponseBytes caps how much of the upstream reply is read.
// Lambda rejects synchronous responses above 6 MB anyway.
const MaxUpstreamResponseBytes = 6 << 20

// MaxRequestBodyBytes caps bodies accepted by the HTTP router.
const MaxRequestBodyBytes = 256 << 10

// ServerReadTimeout is the HTTP server read timeout
const ServerReadTimeout = 15 * time.Second

// ServerWriteTimeout is the HTTP server write timeout
const ServerWriteTimeout = 45 * time.Second

// ServerIdleTimeout is the HTTP server idle timeout
const ServerIdleTimeout = 60 * time.Second

// ServerShutdownTimeout is the timeout for graceful server shutdown
const ServerShutdownTimeout = 5 * time.Second

// CORSMaxAge is how long browsers may cache a preflight response, in seconds.
const CORSMaxAge = 3600
