package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/padelmixer/padelmixer-admin/internal/cli"
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	os.Exit(cli.Execute())
}
