package main

import (
	"os"

	"github.com/mmynk/walletwise/cmd/walletwise/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
