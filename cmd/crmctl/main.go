package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	config "github.com/maheshrc27/realty-crm/configs"
	"github.com/maheshrc27/realty-crm/internal/commands"
)

func main() {
	// .env is optional for the CLI
	_ = godotenv.Load()

	if err := commands.Execute(config.LoadConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
