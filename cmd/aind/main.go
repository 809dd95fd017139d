// Команда aind — работа с каталогом схем метаданных: проверка и запись
// записей, просмотр каталога, DDL для Postgres и HTTP-браузер каталога.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bendichter/aind-data-schema/internal/config"
	"github.com/bendichter/aind-data-schema/internal/device"
	"github.com/bendichter/aind-data-schema/internal/dsl"
	"github.com/bendichter/aind-data-schema/internal/reference"
)

const (
	Version = "0.1.0"
	appName = "aind"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app — общее состояние подкоманд после разбора флагов.
type app struct {
	cfg config.Config
	log *slog.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Metadata schemas for scientific instruments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		catalogCmd(a),
		validateCmd(a),
		writeCmd(a),
		ddlCmd(a),
		serveCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.ApplyFlags(cmd.Flags(), &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := cfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	a.cfg, a.log = cfg, logger
	return nil
}

// loadCatalog — встроенный каталог плюс пользовательские DSL и справочники.
func (a *app) loadCatalog(context.Context) (*reference.Catalog, error) {
	base, err := device.Catalog()
	if err != nil {
		return nil, fmt.Errorf("builtin catalog: %w", err)
	}
	return dsl.Build(base, dsl.Source{
		DSLDir:   a.cfg.DSLDir,
		Pattern:  a.cfg.DSLGlob,
		EnumsDir: a.cfg.EnumsDir,
	})
}
