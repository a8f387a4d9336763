package wazero

import (
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"

	sdk "github.com/reglet-dev/ewasm-sdk/go"
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
	"github.com/reglet-dev/ewasm-sdk/go/hostfuncs"
	"github.com/reglet-dev/ewasm-sdk/go/internal/testutil"
)

func TestDefaultAdapterConfig(t *testing.T) {
	cfg := defaultAdapterConfig()

	if cfg.ModuleName != "env" {
		t.Errorf("ModuleName = %q, want %q", cfg.ModuleName, "env")
	}
	if cfg.MaxRequestSize != hostfuncs.DefaultMaxRequestSize {
		t.Errorf("MaxRequestSize = %d, want %d", cfg.MaxRequestSize, hostfuncs.DefaultMaxRequestSize)
	}
	if cfg.Capabilities.Create2 || cfg.Capabilities.GasLeft {
		t.Errorf("Capabilities = %+v, want none", cfg.Capabilities)
	}
}

func TestWithModuleName(t *testing.T) {
	cfg := defaultAdapterConfig()
	WithModuleName("custom_module")(&cfg)

	if cfg.ModuleName != "custom_module" {
		t.Errorf("ModuleName = %q, want %q", cfg.ModuleName, "custom_module")
	}
}

func TestWithMaxRequestSize(t *testing.T) {
	cfg := defaultAdapterConfig()
	WithMaxRequestSize(2048)(&cfg)

	if cfg.MaxRequestSize != 2048 {
		t.Errorf("MaxRequestSize = %d, want %d", cfg.MaxRequestSize, 2048)
	}

	WithMaxRequestSize(0)(&cfg)
	if cfg.MaxRequestSize != 2048 {
		t.Errorf("MaxRequestSize = %d after zero, want %d", cfg.MaxRequestSize, 2048)
	}
}

func TestExports(t *testing.T) {
	names := Exports()
	assert.Len(t, names, 23)
	assert.NotContains(t, names, "create2")
	assert.NotContains(t, names, "gasleft")
	for _, name := range []string{"ccall", "dcall", "scall", "ret", "suicide", "fetch_input", "input_length", "storage_read", "storage_write", "elog"} {
		assert.Contains(t, names, name)
	}

	all := Exports(WithCapabilities(entities.CapabilityConfig{Create2: true, GasLeft: true}))
	assert.Len(t, all, 25)
	assert.Contains(t, all, "create2")
	assert.Contains(t, all, "gasleft")

	onlyGas := Exports(WithCapabilities(entities.CapabilityConfig{GasLeft: true}))
	assert.Contains(t, onlyGas, "gasleft")
	assert.NotContains(t, onlyGas, "create2")
}

func TestFrameHostFromContext(t *testing.T) {
	_, ok := FrameHostFromContext(context.Background())
	assert.False(t, ok)

	_, ok = FrameHostFromContext(WithFrameHost(context.Background(), nil))
	assert.False(t, ok)

	defer func() {
		trap, ok := recover().(*errors.HostTrap)
		require.True(t, ok)
		assert.Equal(t, "sender", trap.Operation)
	}()
	frameHost(context.Background(), "sender")
}

func TestWithEntrypoint(t *testing.T) {
	cfg := defaultRunnerConfig()
	WithEntrypoint("")(&cfg)
	assert.Equal(t, DefaultEntrypoint, cfg.entrypoint)

	WithEntrypoint("main")(&cfg)
	assert.Equal(t, "main", cfg.entrypoint)
}

var (
	alice    = entities.Address{0xa1}
	bob      = entities.Address{0xb0}
	contract = entities.Address{0xc0}
	echo     = entities.Address{0xec}
	discard  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

type harness struct {
	world   *hostfuncs.World
	machine *hostfuncs.Machine
	runner  *Runner
}

func newHarness(t *testing.T, opts ...AdapterOption) *harness {
	t.Helper()
	ctx := context.Background()

	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	t.Cleanup(func() { _ = rt.Close(ctx) })
	require.NoError(t, RegisterWithRuntime(ctx, rt, opts...))

	world := hostfuncs.NewWorld(&hostfuncs.BlockContext{Number: 1000, Timestamp: 1_700_000_000})
	world.SetBalance(alice, uint256.NewInt(1000))
	world.SetCode(echo, hostfuncs.NativeCode("echo"))

	runner := NewRunner(rt, WithRunnerLogger(discard))
	native := hostfuncs.NewNativeRunner(map[string]hostfuncs.Contract{
		"echo": func(env *sdk.Env) { env.Ret(env.Input()) },
	}, runner)

	return &harness{
		world:   world,
		runner:  runner,
		machine: hostfuncs.NewMachine(world, native, hostfuncs.WithCapabilities(cfg.Capabilities), hostfuncs.WithLogger(discard)),
	}
}

// transact installs code at the contract address and calls it from alice.
func (h *harness) transact(t *testing.T, code []byte, input []byte) *entities.Receipt {
	t.Helper()
	h.world.SetCode(contract, code)
	receipt, err := h.machine.Transact(context.Background(), entities.Message{
		From:  alice,
		To:    contract,
		Input: input,
		Gas:   100_000,
	})
	require.NoError(t, err)
	return receipt
}

func module(imports []testutil.Import, body func(m *testutil.Module) []byte, data ...testutil.Segment) []byte {
	m := &testutil.Module{Imports: imports, Data: data, MemoryPages: 1}
	m.Funcs = []testutil.Func{{Export: "call", Body: body(m)}}
	return m.Encode()
}

func TestEmptyModuleEncoding(t *testing.T) {
	m := &testutil.Module{Funcs: []testutil.Func{{Export: "call"}}}
	want := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
		0x03, 0x02, 0x01, 0x00,
		0x07, 0x08, 0x01, 0x04, 0x63, 0x61, 0x6c, 0x6c, 0x00, 0x00,
		0x0a, 0x04, 0x01, 0x02, 0x00, 0x0b,
	}
	assert.Equal(t, want, m.Encode())
}

func TestRunner_Stop(t *testing.T) {
	h := newHarness(t)
	m := &testutil.Module{Funcs: []testutil.Func{{Export: "call"}}}

	receipt := h.transact(t, m.Encode(), nil)

	testutil.AssertHalt(t, receipt, entities.HaltStop, nil)
}

func TestRunner_EchoInput(t *testing.T) {
	h := newHarness(t)
	code := module(testutil.EnvImports("input_length", "fetch_input", "ret"), func(m *testutil.Module) []byte {
		return testutil.Seq(
			testutil.I32Const(0), m.Call("fetch_input"),
			testutil.I32Const(0), m.Call("input_length"), m.Call("ret"),
		)
	})

	receipt := h.transact(t, code, []byte("hello contract"))

	testutil.AssertHalt(t, receipt, entities.HaltReturn, []byte("hello contract"))
}

func TestRunner_Storage(t *testing.T) {
	h := newHarness(t)
	key := entities.Hash{31: 1}
	value := entities.Hash{31: 7}
	code := module(testutil.EnvImports("storage_write", "storage_read", "ret"), func(m *testutil.Module) []byte {
		return testutil.Seq(
			testutil.I32Const(0), testutil.I32Const(32), m.Call("storage_write"),
			testutil.I32Const(0), testutil.I32Const(64), m.Call("storage_read"),
			testutil.I32Const(64), testutil.I32Const(32), m.Call("ret"),
		)
	}, testutil.Segment{Offset: 0, Data: key[:]}, testutil.Segment{Offset: 32, Data: value[:]})

	receipt := h.transact(t, code, nil)

	testutil.AssertHalt(t, receipt, entities.HaltReturn, value[:])
	assert.Equal(t, value, h.world.State(contract, key))
}

func TestRunner_InitializeRunsFirst(t *testing.T) {
	h := newHarness(t)
	key := entities.Hash{31: 2}
	value := entities.Hash{31: 9}
	m := &testutil.Module{
		Imports:     testutil.EnvImports("storage_write", "storage_read", "ret"),
		Data:        []testutil.Segment{{Offset: 0, Data: key[:]}, {Offset: 32, Data: value[:]}},
		MemoryPages: 1,
	}
	m.Funcs = []testutil.Func{
		{Export: "_initialize", Body: testutil.Seq(
			testutil.I32Const(0), testutil.I32Const(32), m.Call("storage_write"),
		)},
		{Export: "call", Body: testutil.Seq(
			testutil.I32Const(0), testutil.I32Const(64), m.Call("storage_read"),
			testutil.I32Const(64), testutil.I32Const(32), m.Call("ret"),
		)},
	}

	receipt := h.transact(t, m.Encode(), nil)

	testutil.AssertHalt(t, receipt, entities.HaltReturn, value[:])
}

func TestRunner_Accessors(t *testing.T) {
	h := newHarness(t)

	t.Run("sender", func(t *testing.T) {
		code := module(testutil.EnvImports("sender", "ret"), func(m *testutil.Module) []byte {
			return testutil.Seq(
				testutil.I32Const(0), m.Call("sender"),
				testutil.I32Const(0), testutil.I32Const(20), m.Call("ret"),
			)
		})
		testutil.AssertHalt(t, h.transact(t, code, nil), entities.HaltReturn, alice[:])
	})

	t.Run("timestamp", func(t *testing.T) {
		code := module(testutil.EnvImports("timestamp", "ret"), func(m *testutil.Module) []byte {
			return testutil.Seq(
				testutil.I32Const(0), m.Call("timestamp"), testutil.I64Store(0),
				testutil.I32Const(0), testutil.I32Const(8), m.Call("ret"),
			)
		})
		want := binary.LittleEndian.AppendUint64(nil, 1_700_000_000)
		testutil.AssertHalt(t, h.transact(t, code, nil), entities.HaltReturn, want)
	})

	t.Run("blockhash", func(t *testing.T) {
		code := module(testutil.EnvImports("blockhash", "ret"), func(m *testutil.Module) []byte {
			return testutil.Seq(
				testutil.I64Const(999), testutil.I32Const(0), m.Call("blockhash"),
				testutil.I32Const(0), testutil.I32Const(32), m.Call("ret"),
			)
		})
		want := h.world.Block().BlockHash(999)
		testutil.AssertHalt(t, h.transact(t, code, nil), entities.HaltReturn, want[:])
	})

	t.Run("balance", func(t *testing.T) {
		code := module(testutil.EnvImports("balance", "ret"), func(m *testutil.Module) []byte {
			return testutil.Seq(
				testutil.I32Const(0), testutil.I32Const(32), m.Call("balance"),
				testutil.I32Const(32), testutil.I32Const(32), m.Call("ret"),
			)
		}, testutil.Segment{Offset: 0, Data: alice[:]})
		want := entities.EncodeU256(uint256.NewInt(1000))
		testutil.AssertHalt(t, h.transact(t, code, nil), entities.HaltReturn, want[:])
	})
}

func TestRunner_Log(t *testing.T) {
	h := newHarness(t)
	topic := entities.Hash{0: 0xee}
	code := module(testutil.EnvImports("elog"), func(m *testutil.Module) []byte {
		return testutil.Seq(
			testutil.I32Const(0), testutil.I32Const(1), testutil.I32Const(32), testutil.I32Const(2), m.Call("elog"),
		)
	}, testutil.Segment{Offset: 0, Data: topic[:]}, testutil.Segment{Offset: 32, Data: []byte("hi")})

	receipt := h.transact(t, code, nil)

	testutil.RequireSucceeded(t, receipt)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, contract, receipt.Logs[0].Address)
	assert.Equal(t, []entities.Hash{topic}, receipt.Logs[0].Topics)
	assert.Equal(t, "hi", string(receipt.Logs[0].Data))
}

func TestRunner_TooManyTopicsTraps(t *testing.T) {
	h := newHarness(t)
	code := module(testutil.EnvImports("elog"), func(m *testutil.Module) []byte {
		return testutil.Seq(
			testutil.I32Const(0), testutil.I32Const(5), testutil.I32Const(0), testutil.I32Const(0), m.Call("elog"),
		)
	})

	receipt := h.transact(t, code, nil)

	testutil.RequireFailed(t, receipt)
	assert.Equal(t, "trap", receipt.Error.Type)
	assert.Equal(t, "elog", receipt.Error.Code)
	assert.Empty(t, h.world.Logs(0))
}

func TestRunner_Create(t *testing.T) {
	h := newHarness(t)
	child := (&testutil.Module{Funcs: []testutil.Func{{Export: "call"}}}).Encode()
	code := module(testutil.EnvImports("create", "ret"), func(m *testutil.Module) []byte {
		return testutil.Seq(
			testutil.I32Const(0), testutil.I32Const(256), testutil.I32Const(int32(len(child))), testutil.I32Const(64),
			m.Call("create"), []byte{testutil.OpDrop},
			testutil.I32Const(64), testutil.I32Const(20), m.Call("ret"),
		)
	}, testutil.Segment{Offset: 256, Data: child})

	receipt := h.transact(t, code, nil)

	want := crypto.CreateAddress(contract, 0)
	testutil.AssertHalt(t, receipt, entities.HaltReturn, want[:])
	assert.Equal(t, child, h.world.Code(want))
	assert.Equal(t, uint64(1), h.world.Nonce(contract))
}

func TestRunner_CCallNative(t *testing.T) {
	h := newHarness(t)
	code := module(testutil.EnvImports("ccall", "ret"), func(m *testutil.Module) []byte {
		return testutil.Seq(
			testutil.I32Const(104),
			testutil.I64Const(50_000),
			testutil.I32Const(0), testutil.I32Const(32),
			testutil.I32Const(64), testutil.I32Const(4),
			testutil.I32Const(128), testutil.I32Const(4),
			m.Call("ccall"), testutil.I32Store(0),
			testutil.I32Const(104), testutil.I32Const(28), m.Call("ret"),
		)
	}, testutil.Segment{Offset: 0, Data: echo[:]}, testutil.Segment{Offset: 64, Data: []byte("ping")})

	receipt := h.transact(t, code, nil)

	want := append(make([]byte, 24), "ping"...)
	testutil.AssertHalt(t, receipt, entities.HaltReturn, want)
}

func TestRunner_CallFailureStatus(t *testing.T) {
	h := newHarness(t)
	broke := entities.Address{0xbb}
	h.world.SetCode(broke, []byte("not wasm"))
	code := module(testutil.EnvImports("scall", "ret"), func(m *testutil.Module) []byte {
		return testutil.Seq(
			testutil.I32Const(100),
			testutil.I64Const(50_000),
			testutil.I32Const(0),
			testutil.I32Const(0), testutil.I32Const(0),
			testutil.I32Const(0), testutil.I32Const(0),
			m.Call("scall"), testutil.I32Store(0),
			testutil.I32Const(100), testutil.I32Const(4), m.Call("ret"),
		)
	}, testutil.Segment{Offset: 0, Data: broke[:]})

	receipt := h.transact(t, code, nil)

	testutil.AssertHalt(t, receipt, entities.HaltReturn, []byte{1, 0, 0, 0})
}

func TestRunner_Suicide(t *testing.T) {
	h := newHarness(t)
	h.world.SetBalance(contract, uint256.NewInt(50))
	code := module(testutil.EnvImports("suicide"), func(m *testutil.Module) []byte {
		return testutil.Seq(
			testutil.I32Const(0), m.Call("suicide"),
			[]byte{testutil.OpUnreachable},
		)
	}, testutil.Segment{Offset: 0, Data: bob[:]})

	receipt := h.transact(t, code, nil)

	testutil.RequireSucceeded(t, receipt)
	assert.Equal(t, entities.HaltSuicide, receipt.Halt)
	assert.Equal(t, uint64(50), h.world.Balance(bob).Uint64())
	assert.False(t, h.world.Exists(contract))
}

func TestRunner_UnreachableRevertsState(t *testing.T) {
	h := newHarness(t)
	key := entities.Hash{31: 3}
	value := entities.Hash{31: 4}
	code := module(testutil.EnvImports("storage_write"), func(m *testutil.Module) []byte {
		return testutil.Seq(
			testutil.I32Const(0), testutil.I32Const(32), m.Call("storage_write"),
			[]byte{testutil.OpUnreachable},
		)
	}, testutil.Segment{Offset: 0, Data: key[:]}, testutil.Segment{Offset: 32, Data: value[:]})

	receipt := h.transact(t, code, nil)

	testutil.RequireFailed(t, receipt)
	assert.Equal(t, entities.Hash{}, h.world.State(contract, key))
}

func TestRunner_OutOfBoundsTraps(t *testing.T) {
	h := newHarness(t)
	code := module(testutil.EnvImports("ret"), func(m *testutil.Module) []byte {
		return testutil.Seq(testutil.I32Const(65530), testutil.I32Const(100), m.Call("ret"))
	})

	receipt := h.transact(t, code, nil)

	testutil.RequireFailed(t, receipt)
	assert.Equal(t, "trap", receipt.Error.Type)
	assert.Equal(t, "ret", receipt.Error.Code)
}

func TestRunner_MaxRequestSize(t *testing.T) {
	h := newHarness(t, WithMaxRequestSize(16))
	code := module(testutil.EnvImports("ret"), func(m *testutil.Module) []byte {
		return testutil.Seq(testutil.I32Const(0), testutil.I32Const(32), m.Call("ret"))
	})

	receipt := h.transact(t, code, nil)

	testutil.RequireFailed(t, receipt)
	assert.Contains(t, receipt.Error.Message, "exceeds maximum 16 bytes")
}

func TestRunner_GasLeftCapability(t *testing.T) {
	gasCode := module(testutil.EnvImports("gasleft", "ret"), func(m *testutil.Module) []byte {
		return testutil.Seq(
			testutil.I32Const(0), m.Call("gasleft"), testutil.I64Store(0),
			testutil.I32Const(0), testutil.I32Const(8), m.Call("ret"),
		)
	})

	t.Run("disabled", func(t *testing.T) {
		h := newHarness(t)
		testutil.RequireFailed(t, h.transact(t, gasCode, nil))
	})

	t.Run("enabled", func(t *testing.T) {
		h := newHarness(t, WithCapabilities(entities.CapabilityConfig{GasLeft: true}))
		want := binary.LittleEndian.AppendUint64(nil, 100_000)
		testutil.AssertHalt(t, h.transact(t, gasCode, nil), entities.HaltReturn, want)
	})
}

func TestRunner_Create2(t *testing.T) {
	h := newHarness(t, WithCapabilities(entities.CapabilityConfig{Create2: true}))
	salt := entities.Hash{31: 0x55}
	child := (&testutil.Module{Funcs: []testutil.Func{{Export: "call"}}}).Encode()
	code := module(testutil.EnvImports("create2", "ret"), func(m *testutil.Module) []byte {
		return testutil.Seq(
			testutil.I32Const(0), testutil.I32Const(32),
			testutil.I32Const(256), testutil.I32Const(int32(len(child))), testutil.I32Const(64),
			m.Call("create2"), []byte{testutil.OpDrop},
			testutil.I32Const(64), testutil.I32Const(20), m.Call("ret"),
		)
	}, testutil.Segment{Offset: 32, Data: salt[:]}, testutil.Segment{Offset: 256, Data: child})

	receipt := h.transact(t, code, nil)

	want := crypto.CreateAddress2(contract, salt, crypto.Keccak256(child))
	testutil.AssertHalt(t, receipt, entities.HaltReturn, want[:])
}

func TestRunner_CachesCompiledCode(t *testing.T) {
	h := newHarness(t)
	m := &testutil.Module{Funcs: []testutil.Func{{Export: "call"}}}
	code := m.Encode()

	h.transact(t, code, nil)
	h.transact(t, slices.Clone(code), nil)
	assert.Len(t, h.runner.compiled, 1)

	require.NoError(t, h.runner.Close(context.Background()))
	assert.Empty(t, h.runner.compiled)
}

func TestRunner_MissingEntrypoint(t *testing.T) {
	h := newHarness(t)
	m := &testutil.Module{Funcs: []testutil.Func{{Export: "main"}}}

	receipt := h.transact(t, m.Encode(), nil)

	testutil.RequireFailed(t, receipt)
	assert.Contains(t, receipt.Error.Message, `does not export "call"`)
}
