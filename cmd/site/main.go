package main

import (
	"context"
	"log"

	"github.com/nextclip/attribution/internal/site"
	"github.com/nextclip/attribution/internal/site/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := site.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
