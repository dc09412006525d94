// main is the entry point for the elimu CLI.
package main

import (
	"github.com/huangsam/elimu/cmd"
	"github.com/huangsam/elimu/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
