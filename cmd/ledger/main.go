package main

import (
	"os"

	"stock-ledger/internal/cli"
	"stock-ledger/pkg/logger"
)

func main() {
	err := cli.Execute(os.Stderr)
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
