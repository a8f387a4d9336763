package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

func newRunCommand(root *rootOptions) *cobra.Command {
	var (
		worldFile string
		from      string
		to        string
		value     string
		input     string
		gas       uint64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a transaction and print its receipt",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := entities.Message{Gas: gas}
			var err error
			if msg.From, err = parseAddress("from", from); err != nil {
				return err
			}
			if msg.To, err = parseAddress("to", to); err != nil {
				return err
			}
			if value != "" {
				if msg.Value, err = entities.ParseU256(value); err != nil {
					return fmt.Errorf("invalid --value: %w", err)
				}
			}
			if input != "" {
				if msg.Input, err = hexutil.Decode(input); err != nil {
					return fmt.Errorf("invalid --input: %w", err)
				}
			}

			ctx := cmd.Context()
			e, err := root.executor(ctx, cmd, worldFile)
			if err != nil {
				return err
			}
			defer func() { _ = e.Close(ctx) }()

			receipt, err := e.Transact(ctx, msg)
			if err != nil {
				return err
			}
			return printReceipt(cmd.OutOrStdout(), receipt)
		},
	}

	cmd.Flags().StringVar(&worldFile, "world", "", "world file (YAML)")
	cmd.Flags().StringVar(&from, "from", "", "sender address")
	cmd.Flags().StringVar(&to, "to", "", "callee address")
	cmd.Flags().StringVar(&value, "value", "", "value to transfer (decimal or 0x-hex)")
	cmd.Flags().StringVar(&input, "input", "", "call input as 0x-hex")
	cmd.Flags().Uint64Var(&gas, "gas", 1_000_000, "gas handed to the callee")
	_ = cmd.MarkFlagRequired("world")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func parseAddress(flag, s string) (entities.Address, error) {
	if !common.IsHexAddress(s) {
		return entities.Address{}, fmt.Errorf("invalid --%s: %q is not an address", flag, s)
	}
	return common.HexToAddress(s), nil
}
