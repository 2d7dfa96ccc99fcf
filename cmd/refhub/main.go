package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/refhub/order-management-backend/api/archive"
	"github.com/refhub/order-management-backend/api/authgw"
	"github.com/refhub/order-management-backend/common"
	"github.com/refhub/order-management-backend/httpserver"
	"github.com/refhub/order-management-backend/interfaces"
	"github.com/refhub/order-management-backend/session"
)

var flags []cli.Flag = []cli.Flag{
	&cli.StringFlag{
		Name:  "listen-addr",
		Value: "127.0.0.1:8080",
		Usage: "address to listen on for the web UI",
	},
	&cli.StringFlag{
		Name:  "metrics-addr",
		Value: "127.0.0.1:8090",
		Usage: "address to listen on for Prometheus metrics",
	},
	&cli.StringFlag{
		Name:  "auth-gateway-url",
		Value: "http://127.0.0.1:8000",
		Usage: "base URL of the external authentication gateway",
	},
	&cli.StringFlag{
		Name:  "archive-url",
		Value: "",
		Usage: "base URL of the external order archive; empty uses in-memory sample data",
	},
	&cli.StringFlag{
		Name:    "session-secret",
		Value:   "",
		Usage:   "secret used to sign the session cookie",
		EnvVars: []string{"SESSION_SECRET"},
	},
	&cli.BoolFlag{
		Name:  "secure-cookies",
		Value: false,
		Usage: "set the Secure flag on session cookies (enable in production)",
	},
	&cli.BoolFlag{
		Name:  "log-json",
		Value: false,
		Usage: "log in JSON format",
	},
	&cli.BoolFlag{
		Name:  "log-debug",
		Value: false,
		Usage: "log debug messages",
	},
	&cli.BoolFlag{
		Name:  "log-uid",
		Value: false,
		Usage: "generate a uuid and add to all log messages",
	},
	&cli.StringFlag{
		Name:  "log-service",
		Value: "refhub-order-backend",
		Usage: "add 'service' tag to logs",
	},
	&cli.BoolFlag{
		Name:  "pprof",
		Value: false,
		Usage: "enable pprof debug endpoint",
	},
	&cli.Int64Flag{
		Name:  "drain-seconds",
		Value: 45,
		Usage: "seconds to wait in drain HTTP request",
	},
}

func main() {
	app := &cli.App{
		Name:  "refhub",
		Usage: "Serve the REF HUB order management web UI",
		Flags: flags,
		Action: func(cCtx *cli.Context) error {
			listenAddr := cCtx.String("listen-addr")
			metricsAddr := cCtx.String("metrics-addr")
			authGatewayURL := cCtx.String("auth-gateway-url")
			archiveURL := cCtx.String("archive-url")
			sessionSecret := cCtx.String("session-secret")
			secureCookies := cCtx.Bool("secure-cookies")
			logJSON := cCtx.Bool("log-json")
			logDebug := cCtx.Bool("log-debug")
			logUID := cCtx.Bool("log-uid")
			logService := cCtx.String("log-service")
			enablePprof := cCtx.Bool("pprof")
			drainDuration := time.Duration(cCtx.Int64("drain-seconds")) * time.Second

			logger := common.SetupLogger(&common.LoggingOpts{
				Debug:   logDebug,
				JSON:    logJSON,
				Service: logService,
				Version: common.Version,
			})

			if logUID {
				id := uuid.Must(uuid.NewRandom())
				logger = logger.With("uid", id.String())
			}

			if sessionSecret == "" {
				logger.Error("session-secret is required")
				return errors.New("session-secret is required")
			}

			sessions := session.NewManager([]byte(sessionSecret), secureCookies, "/", logger)
			auth := authgw.NewClient(authGatewayURL)

			var orderArchive interfaces.OrderArchive
			if archiveURL != "" {
				logger.Info("Using order archive", "address", archiveURL)
				orderArchive = archive.NewClient(archiveURL)
			} else {
				logger.Info("No archive configured, using in-memory sample orders")
				orderArchive = archive.NewStatic()
			}

			handler := httpserver.NewHandler(auth, orderArchive, sessions, logger)

			cfg := &httpserver.HTTPServerConfig{
				ListenAddr:               listenAddr,
				MetricsAddr:              metricsAddr,
				Log:                      logger,
				EnablePprof:              enablePprof,
				DrainDuration:            drainDuration,
				GracefulShutdownDuration: 30 * time.Second,
				ReadTimeout:              60 * time.Second,
				WriteTimeout:             30 * time.Second,
			}

			server, err := httpserver.New(cfg, handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit

			logger.Info("Shutting down")
			server.Shutdown()
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
