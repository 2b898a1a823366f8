package main

import (
	"context"
	"os"

	"github.com/trackvers/trackvers/internal/buildinfo"
	"github.com/trackvers/trackvers/internal/server"
	"github.com/trackvers/trackvers/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	app.Run(context.Background())
}
