package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cognicore/phrasenet/internal/server"
	"github.com/cognicore/phrasenet/internal/util"
	"github.com/cognicore/phrasenet/pkg/logger"
	"github.com/cognicore/phrasenet/pkg/logger/console"
	"github.com/cognicore/phrasenet/pkg/phrasenet/config"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	loader := config.Loader{
		OptionsPath:  util.GetEnvString("PHRASENET_OPTIONS", ""),
		StoplistPath: util.GetEnvString("PHRASENET_STOPLIST", ""),
	}
	components, err := loader.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "err", err)
	}
	logger.Debug("Configuration loaded",
		"stopwords", components.Stoplist.Len(),
		"relation", components.Options.RelationType,
	)

	srv := server.New(server.Config{
		Addr:          util.GetEnvString("PHRASENET_ADDR", ":8080"),
		BuildTimeout:  util.GetEnvDuration("PHRASENET_BUILD_TIMEOUT", 10*time.Second),
		MaxInputBytes: util.GetEnvInt("PHRASENET_MAX_INPUT_BYTES", 4<<20),
	}, components.Builder, components.Options)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		logger.Fatal("Server stopped", "err", err)
	}
}
