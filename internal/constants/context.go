package constants

// ContextKey is the type for CLI context keys.
type ContextKey string

// ConfigCtxKey is the key used to store the loaded configuration in the command context.
const ConfigCtxKey ContextKey = "config"

// StartTimeCtxKey is the key used to store the command start time in the context.
const StartTimeCtxKey ContextKey = "startTime"
