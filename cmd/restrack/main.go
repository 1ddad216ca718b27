// Package main provides the restrack server CLI.
package main

import "github.com/brennanma/restrack/internal/cli"

func main() {
	cli.Execute()
}
