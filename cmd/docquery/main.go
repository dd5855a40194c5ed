package main

import (
	"github.com/joho/godotenv"

	"github.com/aryamansethi1503/summarizationWithAI/internal/cli"
)

func main() {
	// Load .env if present so API keys are available before config wiring.
	_ = godotenv.Load()

	cli.Execute()
}
