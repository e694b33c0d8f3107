package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"

	"fintrack/internal/cli"
	"fintrack/internal/config"
	apphttp "fintrack/internal/http"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

var (
	flagConfig   string
	flagHost     string
	flagPort     string
	flagCurrency string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "fintrack",
	Short:         "Enhanced Financial Tracker",
	Long:          "Records income and expense transactions and keeps running totals, served as a local web form.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd)
	},
}

func init() {
	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Optional TOML config file; environment and flags take precedence.")
	rootCmd.Flags().StringVar(&flagHost, "host", "", "Listen host (overrides HOST).")
	rootCmd.Flags().StringVarP(&flagPort, "port", "p", "", "Listen port (overrides PORT).")
	rootCmd.Flags().StringVar(&flagCurrency, "currency", "", "Currency symbol shown before amounts (overrides CURRENCY_SYMBOL).")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL).")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fintrack:", err)
		os.Exit(1)
	}
}

// flagOverrides copies explicitly set flags over the environment config.
func flagOverrides(cmd *cobra.Command) func(*config.Config) {
	return func(c *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("host") {
			c.Host = flagHost
		}
		if flags.Changed("port") {
			c.Port = flagPort
		}
		if flags.Changed("currency") {
			c.CurrencySymbol = flagCurrency
		}
		if flags.Changed("log-level") {
			c.LogLevel = flagLogLevel
		}
	}
}

func serve(cmd *cobra.Command) error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig(flagConfig, flagOverrides(cmd))
	if err != nil {
		return err
	}

	logger, err := cli.SetupLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	session := ledger.NewSession()
	service := services.NewTransactionService(session, logger)
	srv := apphttp.NewServer(apphttp.Options{
		Addr:               cfg.Addr(),
		CurrencySymbol:     cfg.CurrencySymbol,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
	}, service, session)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting fintrack server",
		log.FieldOperation, log.OpStartup,
		"addr", cfg.Addr(),
		"url", "http://"+cfg.Addr()+"/")

	if err := cli.Serve(ctx, logger, srv, srv.ExitRequested(), cfg.ShutdownTimeout); err != nil {
		logger.Error("Server error", log.FieldError, err.Error(), "addr", cfg.Addr())
		return err
	}
	return nil
}
