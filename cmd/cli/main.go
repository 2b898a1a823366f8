package main

import (
	"context"
	"log"
	"os"

	"github.com/trackvers/trackvers/internal/buildinfo"
	"github.com/trackvers/trackvers/internal/client/cli"
	"github.com/trackvers/trackvers/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
