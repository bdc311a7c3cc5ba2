package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/inkwell/internal/server"
	"github.com/dmitrijs2005/inkwell/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
