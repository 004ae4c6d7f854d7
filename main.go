// main is the entry point for the rankcast CLI.
package main

import (
	"github.com/huangsam/rankcast/cmd"
	"github.com/huangsam/rankcast/internal/contract"
)

func main() {
	defer cmd.Shutdown()
	if err := cmd.Execute(); err != nil {
		cmd.Shutdown()
		contract.LogFatal("Error running rankcast", err)
	}
}
