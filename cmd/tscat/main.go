// Package main is the entry point for the tscat CLI tool.
package main

import (
	"github.com/dylan-gluck/cognee-agent/internal/cmd"
)

func main() {
	cmd.Execute()
}
