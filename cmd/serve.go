package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careerlens/internal/logger"
	"github.com/spigell/careerlens/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the careerlens HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "address to listen on (default 127.0.0.1, env HOST)")
	serveCmd.Flags().Int("port", 0, "port to listen on (default 8000, env PORT)")
	serveCmd.Flags().String("static-dir", "", "directory with the web pages to serve")

	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.static-dir", serveCmd.Flags().Lookup("static-dir"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the careerlens api", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config.redacted(), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	svc, err := newService(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating the guidance service", zap.Error(err))
	}

	srv := server.New(svc, logger, config.Server)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}

	logger.Info("exiting", zap.String("reason", "shutdown requested"))
}
