package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/campuslabs/advisor-cli/internal/adapters/driving/cli"
)

func main() {
	// .env is optional; API keys may also come from the environment proper.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
