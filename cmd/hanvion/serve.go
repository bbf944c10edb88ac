package main

import (
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/hanvion/healthcost/internal/api"
	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	envAddr      = "HANVION_ADDR"
	envEnv       = "HANVION_ENV"
	envLogLevel  = "HANVION_LOG_LEVEL"
	envRateLimit = "HANVION_RATE_LIMIT"
	envOrigins   = "HANVION_ALLOWED_ORIGINS"
)

// flagOrEnv returns the flag value when set on the command line, else the
// environment variable when present, else the flag default.
func flagOrEnv(cmd *cobra.Command, flag, env string) string {
	value, _ := cmd.Flags().GetString(flag)
	if cmd.Flags().Changed(flag) {
		return value
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	return value
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve every calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			env := flagOrEnv(cmd, "env", envEnv)
			if !cmd.Flags().Changed("log-level") {
				if lvl := os.Getenv(envLogLevel); lvl != "" {
					_ = cmd.Flags().Set("log-level", lvl)
				}
			}
			log, err := buildLogger(cmd, env)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			rateLimit, err := strconv.Atoi(flagOrEnv(cmd, "rate-limit", envRateLimit))
			if err != nil {
				return errors.New("rate limit must be a whole number of requests per second")
			}
			var origins []string
			if raw := flagOrEnv(cmd, "allowed-origins", envOrigins); raw != "" {
				for _, o := range strings.Split(raw, ",") {
					origins = append(origins, strings.TrimSpace(o))
				}
			}

			tables, err := loadTables(cmd)
			if err != nil {
				return err
			}
			engine := calculation.NewEngineWithTables(tables)
			engine.SetLogger(log.Sugar())

			router := api.NewRouter(engine, log, api.Options{RateLimit: rateLimit, AllowedOrigins: origins})
			addr := flagOrEnv(cmd, "addr", envAddr)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("starting healthcost API", zap.String("env", env), zap.Int("rate_limit", rateLimit))
			return api.NewServer(addr, router, log).Run(ctx)
		},
	}

	cmd.Flags().String("addr", ":8080", "Listen address (env "+envAddr+")")
	cmd.Flags().String("env", "development", "Environment: development logs to the console, anything else logs JSON (env "+envEnv+")")
	cmd.Flags().String("rate-limit", "20", "Requests per second per client IP, 0 to disable (env "+envRateLimit+")")
	cmd.Flags().String("allowed-origins", "", "Comma-separated CORS origins, empty for any (env "+envOrigins+")")
	cmd.Flags().String("env-file", ".env", "Environment file loaded before reading variables")
	return cmd
}
