// Package constants defines global constants used throughout sqsrelay.
package constants

var version = "0.0.0-development" // Updated by CI/CD pipeline at build time

// GetVersion returns the current version of sqsrelay.
func GetVersion() *string {
	return &version
}

// ProjectName is the name of the CLI tool and application
const ProjectName = "sqsrelay"

// UserAgent returns the User-Agent sent with every upstream request.
func UserAgent() string {
	return ProjectName + "/" + version
}
