//go:build mage

// Package main provides build targets for the restrack project using
// Mage.
//
// Usage:
//
//	mage build    Compile the restrack binary to bin/
//	mage test     Run all tests (unit + integration)
//	mage testUnit Run only unit tests (exclude integration)
//	mage lint     Run golangci-lint
//	mage clean    Remove build artifacts
//	mage install  Install restrack to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "restrack"
	binaryDir  = "bin"
	cmdDir     = "./cmd/restrack"
)

// Build compiles the restrack binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	mg.Deps(Build)
	return sh.RunV("go", "test", "./...")
}

// TestUnit runs only unit tests, excluding the integration suite.
func TestUnit() error {
	return sh.RunV("go", "test", "./internal/...", "./pkg/...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm(binaryDir)
}

// Install installs the restrack binary to GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", cmdDir)
}
