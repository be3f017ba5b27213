package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spigell/resume-scorer/cmd"
)

func main() {
	// A local .env may carry API keys; it is optional.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
