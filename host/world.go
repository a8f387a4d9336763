package host

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
	"github.com/reglet-dev/ewasm-sdk/go/hostfuncs"
)

// BuildWorld creates the initial state described by cfg. cfg is expected to
// have passed validation; malformed values still produce a ConfigError.
func BuildWorld(cfg *entities.WorldConfig) (*hostfuncs.World, error) {
	block, err := buildBlock(cfg.Block)
	if err != nil {
		return nil, err
	}

	world := hostfuncs.NewWorld(block)
	for i, acc := range cfg.Accounts {
		if err := seedAccount(world, acc); err != nil {
			return nil, &errors.ConfigError{Field: fmt.Sprintf("accounts[%d]", i), Err: err}
		}
	}
	world.Finalise()
	return world, nil
}

func buildBlock(cfg entities.BlockConfig) (*hostfuncs.BlockContext, error) {
	difficulty, err := entities.ParseU256(cfg.Difficulty)
	if err != nil {
		return nil, &errors.ConfigError{Field: "block.difficulty", Err: err}
	}
	gasLimit, err := entities.ParseU256(cfg.GasLimit)
	if err != nil {
		return nil, &errors.ConfigError{Field: "block.gas_limit", Err: err}
	}

	hashes := make(map[uint64]entities.Hash, len(cfg.Hashes))
	for n, raw := range cfg.Hashes {
		h, err := parseHash(raw)
		if err != nil {
			return nil, &errors.ConfigError{Field: fmt.Sprintf("block.hashes[%d]", n), Err: err}
		}
		hashes[n] = h
	}

	return &hostfuncs.BlockContext{
		Hashes:     hashes,
		Difficulty: difficulty,
		GasLimit:   gasLimit,
		Coinbase:   common.HexToAddress(cfg.Coinbase),
		Number:     cfg.Number,
		Timestamp:  cfg.Timestamp,
	}, nil
}

func seedAccount(world *hostfuncs.World, cfg entities.AccountConfig) error {
	addr := common.HexToAddress(cfg.Address)

	balance, err := entities.ParseU256(cfg.Balance)
	if err != nil {
		return err
	}
	world.SetBalance(addr, balance)
	world.SetNonce(addr, cfg.Nonce)

	code, err := accountCode(cfg)
	if err != nil {
		return err
	}
	if len(code) > 0 {
		world.SetCode(addr, code)
	}

	for k, v := range cfg.Storage {
		key, err := parseHash(k)
		if err != nil {
			return fmt.Errorf("storage key %q: %w", k, err)
		}
		value, err := parseHash(v)
		if err != nil {
			return fmt.Errorf("storage value %q: %w", v, err)
		}
		world.SetState(addr, key, value)
	}
	return nil
}

func accountCode(cfg entities.AccountConfig) ([]byte, error) {
	switch {
	case cfg.Native != "":
		return hostfuncs.NativeCode(cfg.Native), nil
	case cfg.CodeFile != "":
		code, err := os.ReadFile(cfg.CodeFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read code file: %w", err)
		}
		return code, nil
	case cfg.Code != "":
		return hexutil.Decode(cfg.Code)
	default:
		return nil, nil
	}
}

// parseHash decodes 0x-hex of at most 32 bytes, left-padding shorter values.
func parseHash(s string) (entities.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return entities.Hash{}, err
	}
	if len(b) > entities.HashLength {
		return entities.Hash{}, fmt.Errorf("%d bytes exceed a 32 byte word", len(b))
	}
	return common.BytesToHash(b), nil
}
