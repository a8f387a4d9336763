package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/examples/contracts"
	"github.com/reglet-dev/ewasm-sdk/go/host"
	"github.com/reglet-dev/ewasm-sdk/go/hostfuncs"
)

// natives are the Go contracts world files can select with a native tag.
var natives = map[string]hostfuncs.Contract{
	"echo":  contracts.Echo,
	"relay": contracts.Relay,
	"token": contracts.Token,
}

type rootOptions struct {
	logLevel string
	trace    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "ewasm-host",
		Short:        "Run ewasm contracts against an in-memory world",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.trace, "trace", false, "log every host call made by native contracts")

	cmd.AddCommand(
		newRunCommand(opts),
		newDeployCommand(opts),
		newSchemaCommand(),
	)
	return cmd
}

func (o *rootOptions) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// executor loads the world file and builds an executor for it.
func (o *rootOptions) executor(ctx context.Context, cmd *cobra.Command, worldFile string) (*host.Executor, error) {
	logger, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	loader, err := host.NewLoader()
	if err != nil {
		return nil, err
	}
	cfg, err := loader.LoadFile(worldFile)
	if err != nil {
		return nil, err
	}

	return host.NewExecutor(ctx,
		host.WithConfig(cfg),
		host.WithNativeContracts(natives),
		host.WithLogger(logger),
		host.WithTrace(o.trace),
	)
}

func printReceipt(w io.Writer, receipt *entities.Receipt) error {
	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal receipt: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
