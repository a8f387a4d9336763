package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

func newDeployCommand(root *rootOptions) *cobra.Command {
	var (
		worldFile string
		from      string
		code      string
		endowment string
		salt      string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run constructor code and print the deployment receipt",
		RunE: func(cmd *cobra.Command, args []string) error {
			sender, err := parseAddress("from", from)
			if err != nil {
				return err
			}
			initCode, err := readCode(code)
			if err != nil {
				return err
			}

			var value *entities.U256
			if endowment != "" {
				if value, err = entities.ParseU256(endowment); err != nil {
					return fmt.Errorf("invalid --endowment: %w", err)
				}
			}

			var saltHash *entities.Hash
			if salt != "" {
				b, err := hexutil.Decode(salt)
				if err != nil || len(b) > entities.HashLength {
					return fmt.Errorf("invalid --salt: %q", salt)
				}
				h := entities.Hash{}
				h.SetBytes(b)
				saltHash = &h
			}

			ctx := cmd.Context()
			e, err := root.executor(ctx, cmd, worldFile)
			if err != nil {
				return err
			}
			defer func() { _ = e.Close(ctx) }()

			receipt, err := e.Deploy(ctx, sender, value, initCode, saltHash)
			if err != nil {
				return err
			}
			return printReceipt(cmd.OutOrStdout(), receipt)
		},
	}

	cmd.Flags().StringVar(&worldFile, "world", "", "world file (YAML)")
	cmd.Flags().StringVar(&from, "from", "", "creator address")
	cmd.Flags().StringVar(&code, "code", "", "constructor code: a wasm file or 0x-hex")
	cmd.Flags().StringVar(&endowment, "endowment", "", "value moved to the new account")
	cmd.Flags().StringVar(&salt, "salt", "", "0x-hex salt; derives the address from salt and code hash")
	_ = cmd.MarkFlagRequired("world")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func readCode(arg string) ([]byte, error) {
	if strings.HasPrefix(arg, "0x") {
		code, err := hexutil.Decode(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid --code: %w", err)
		}
		return code, nil
	}
	code, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("failed to read code: %w", err)
	}
	return code, nil
}
