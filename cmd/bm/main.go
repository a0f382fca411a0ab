package main

import (
	"errors"
	"log"
	"os"

	"github.com/MrSnakeDoc/bm/internal/app"
	"github.com/MrSnakeDoc/bm/internal/cli"
)

func main() {
	if err := app.New().Run(os.Args[1:]); err != nil {
		// usage text was already printed
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(1)
		}
		log.SetFlags(0)
		log.Fatalf("❌ bm: %v", err)
	}
}
