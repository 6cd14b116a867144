// Package main implements the sqsrelay CLI tool.
// It replays queue messages against an upstream the same way the Lambda function does.
package main

import "github.com/sqsrelay/sqsrelay/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
