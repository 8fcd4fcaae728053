package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env is local-dev convenience; CI injects real env vars.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
