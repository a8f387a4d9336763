package hostfuncs

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/reglet-dev/ewasm-sdk/go"
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

func increment(h entities.Hash) entities.Hash {
	v := new(uint256.Int).SetBytes(h[:])
	v.AddUint64(v, 1)
	return entities.Hash(entities.EncodeU256(v))
}

var testContracts = map[string]Contract{
	"echo": func(env *sdk.Env) {
		env.Ret(env.Input())
	},
	"recorder": func(env *sdk.Env) {
		env.Write(word(0), entities.Hash(entities.EncodeU256(env.Value())))
		env.Write(word(1), common.BytesToHash(env.Sender().Bytes()))
	},
	// forwarder calls the address in the first 20 input bytes with value 3 and
	// the rest of the input, and returns the first 4 bytes of its output.
	"forwarder": func(env *sdk.Env) {
		in := env.Input()
		result := make([]byte, 4)
		if err := env.Call(1000, common.BytesToAddress(in[:20]), u(3), in[20:], result); err != nil {
			env.Ret([]byte("fail"))
		}
		env.Ret(result)
	},
	"faulty": func(env *sdk.Env) {
		env.Write(keyA, word(9))
		env.Log(make([]entities.Hash, entities.MaxTopics+1), nil)
	},
	"store": func(env *sdk.Env) {
		env.Write(keyA, word(9))
	},
	"static_caller": func(env *sdk.Env) {
		if err := env.StaticCall(1000, common.BytesToAddress(env.Input()), nil, nil); err != nil {
			env.Ret([]byte{0})
		}
		env.Ret([]byte{1})
	},
	"factory": func(env *sdk.Env) {
		addr, err := env.Create(nil, NativeCode("child"))
		if err != nil {
			env.Ret([]byte("fail"))
		}
		env.Ret(addr.Bytes())
	},
	"child": func(*sdk.Env) {},
	"installer": func(env *sdk.Env) {
		env.Ret(NativeCode("echo"))
	},
	"bomb": func(env *sdk.Env) {
		env.Suicide(common.BytesToAddress(env.Input()))
	},
	"recurse": func(env *sdk.Env) {
		env.Write(keyA, increment(env.Read(keyA)))
		_ = env.Call(100, env.Address(), nil, nil, nil)
	},
	"logger": func(env *sdk.Env) {
		env.Log([]entities.Hash{{1}, {2}, {3}, {4}}, []byte("data"))
	},
	"panicky": func(*sdk.Env) {
		panic("bug")
	},
	// frame_info returns the depth and static flag of its own frame.
	"frame_info": func(env *sdk.Env) {
		fh := env.Host().(*FrameHost)
		static := byte(0)
		if fh.Static() {
			static = 1
		}
		env.Ret([]byte{byte(fh.Depth()), static})
	},
}

func newTestMachine(t *testing.T, opts ...MachineOption) *Machine {
	t.Helper()
	w := NewWorld(&BlockContext{Number: 1000, Timestamp: 1_700_000_000, Coinbase: entities.Address{0xcb}})
	w.SetBalance(alice, u(1000))
	w.Finalise()
	opts = append([]MachineOption{WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	return NewMachine(w, NewNativeRunner(testContracts, nil), opts...)
}

func install(m *Machine, addr entities.Address, name string) {
	m.World().SetCode(addr, NativeCode(name))
	m.World().Finalise()
}

func TestTransact_ValueTransfer(t *testing.T) {
	m := newTestMachine(t)
	rec := entities.Address{0x10}
	install(m, rec, "recorder")

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: rec, Value: u(5), Gas: 1000})
	require.NoError(t, err)
	require.True(t, receipt.Succeeded(), "receipt error: %v", receipt.Error)
	assert.Equal(t, entities.HaltStop, receipt.Halt)

	w := m.World()
	assert.Equal(t, uint64(995), w.Balance(alice).Uint64())
	assert.Equal(t, uint64(5), w.Balance(rec).Uint64())
	assert.Equal(t, word(5), w.State(rec, word(0)))
	assert.Equal(t, common.BytesToHash(alice.Bytes()), w.State(rec, word(1)))
	assert.Equal(t, uint64(1), w.Nonce(alice))
}

func TestTransact_PlainTransfer(t *testing.T) {
	m := newTestMachine(t)

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: bob, Value: u(7)})
	require.NoError(t, err)
	assert.True(t, receipt.Succeeded())
	assert.Equal(t, uint64(7), m.World().Balance(bob).Uint64())
}

func TestTransact_InsufficientBalance(t *testing.T) {
	m := newTestMachine(t)

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: bob, Value: u(5000)})
	require.NoError(t, err)
	assert.False(t, receipt.Succeeded())
	require.NotNil(t, receipt.Error)
	assert.Contains(t, receipt.Error.Message, "insufficient balance")
	assert.Equal(t, uint64(1000), m.World().Balance(alice).Uint64())
	assert.Equal(t, uint64(1), m.World().Nonce(alice), "nonce is consumed even when the transaction fails")
}

func TestTransact_ContractToContract(t *testing.T) {
	m := newTestMachine(t)
	fwd := entities.Address{0xf0}
	echo := entities.Address{0xe0}
	install(m, fwd, "forwarder")
	install(m, echo, "echo")

	input := append(echo.Bytes(), []byte("abcdefgh")...)
	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: fwd, Value: u(10), Input: input})
	require.NoError(t, err)
	require.True(t, receipt.Succeeded())

	assert.Equal(t, entities.HaltReturn, receipt.Halt)
	assert.Equal(t, []byte("abcd"), []byte(receipt.Output), "callee output is cut to the result buffer")
	assert.Equal(t, uint64(7), m.World().Balance(fwd).Uint64())
	assert.Equal(t, uint64(3), m.World().Balance(echo).Uint64())
}

func TestTransact_FailingCalleeReverts(t *testing.T) {
	m := newTestMachine(t)
	fwd := entities.Address{0xf0}
	faulty := entities.Address{0xfa}
	install(m, fwd, "forwarder")
	install(m, faulty, "faulty")

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: fwd, Value: u(10), Input: faulty.Bytes()})
	require.NoError(t, err)
	require.True(t, receipt.Succeeded(), "the caller survives a failed callee")

	assert.Equal(t, "fail", string(receipt.Output))
	w := m.World()
	assert.Equal(t, entities.Hash{}, w.State(faulty, keyA), "callee writes are reverted")
	assert.True(t, w.Balance(faulty).IsZero(), "callee value transfer is reverted")
	assert.Equal(t, uint64(10), w.Balance(fwd).Uint64())
}

func TestTransact_StaticCall(t *testing.T) {
	m := newTestMachine(t)
	caller := entities.Address{0x5c}
	store := entities.Address{0x55}
	echo := entities.Address{0xe0}
	install(m, caller, "static_caller")
	install(m, store, "store")
	install(m, echo, "echo")

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: caller, Input: store.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, []byte(receipt.Output), "writing callee fails the static call")
	assert.Equal(t, entities.Hash{}, m.World().State(store, keyA))

	receipt, err = m.Transact(context.Background(), entities.Message{From: alice, To: caller, Input: echo.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, []byte(receipt.Output))
}

func TestTransact_Logs(t *testing.T) {
	m := newTestMachine(t)
	logger := entities.Address{0x1e}
	install(m, logger, "logger")

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: logger})
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 1)

	rec := receipt.Logs[0]
	assert.Equal(t, logger, rec.Address)
	assert.Equal(t, []entities.Hash{{1}, {2}, {3}, {4}}, rec.Topics)
	assert.Equal(t, []byte("data"), []byte(rec.Data))

	receipt, err = m.Transact(context.Background(), entities.Message{From: alice, To: bob})
	require.NoError(t, err)
	assert.Empty(t, receipt.Logs, "receipts only carry their own logs")
}

func TestTransact_Suicide(t *testing.T) {
	m := newTestMachine(t)
	bomb := entities.Address{0xbb}
	install(m, bomb, "bomb")
	m.World().SetBalance(bomb, u(50))
	m.World().Finalise()

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: bomb, Input: bob.Bytes()})
	require.NoError(t, err)
	require.True(t, receipt.Succeeded())

	assert.Equal(t, entities.HaltSuicide, receipt.Halt)
	assert.False(t, m.World().Exists(bomb))
	assert.Equal(t, uint64(50), m.World().Balance(bob).Uint64())
}

func TestTransact_MaxCallDepth(t *testing.T) {
	m := newTestMachine(t, WithMaxCallDepth(2))
	rec := entities.Address{0x7e}
	install(m, rec, "recurse")

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: rec})
	require.NoError(t, err)
	require.True(t, receipt.Succeeded())

	assert.Equal(t, word(3), m.World().State(rec, keyA), "depths 0, 1 and 2 run; depth 3 fails")
}

func TestTransact_UnknownNativeContract(t *testing.T) {
	m := newTestMachine(t)
	addr := entities.Address{0x99}
	install(m, addr, "missing")

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: addr})
	require.NoError(t, err)
	assert.False(t, receipt.Succeeded())
	assert.Contains(t, receipt.Error.Message, `unknown native contract "missing"`)
}

func TestTransact_StrayPanicFailsFrame(t *testing.T) {
	m := newTestMachine(t)
	addr := entities.Address{0x9a}
	install(m, addr, "panicky")

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: addr})
	require.NoError(t, err)
	assert.False(t, receipt.Succeeded())
	assert.Contains(t, receipt.Error.Message, "contract panicked: bug")
}

func TestTransact_ContractViolationFailsFrame(t *testing.T) {
	m := newTestMachine(t)
	addr := entities.Address{0xfa}
	install(m, addr, "faulty")

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: addr})
	require.NoError(t, err)
	assert.False(t, receipt.Succeeded())
	assert.Equal(t, "violation", receipt.Error.Type)
	assert.Equal(t, "elog", receipt.Error.Code)
}

func TestTransact_Cancelled(t *testing.T) {
	m := newTestMachine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	receipt, err := m.Transact(ctx, entities.Message{From: alice, To: bob})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, receipt)
}

func TestCreate_AddressMatchesDerivation(t *testing.T) {
	m := newTestMachine(t)
	factory := entities.Address{0xfc}
	install(m, factory, "factory")

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: factory})
	require.NoError(t, err)
	require.True(t, receipt.Succeeded())

	want := crypto.CreateAddress(factory, 0)
	assert.Equal(t, want.Bytes(), []byte(receipt.Output))

	w := m.World()
	assert.Equal(t, NativeCode("child"), w.Code(want), "a constructor that stops installs its own code")
	assert.Equal(t, uint64(1), w.Nonce(factory))
	assert.Equal(t, uint64(1), w.Nonce(want))
}

func TestDeploy_ConstructorReturnBecomesCode(t *testing.T) {
	m := newTestMachine(t)

	receipt, err := m.Deploy(context.Background(), alice, u(10), NativeCode("installer"), nil)
	require.NoError(t, err)
	require.True(t, receipt.Succeeded())

	want := crypto.CreateAddress(alice, 0)
	require.NotNil(t, receipt.ContractAddress)
	assert.Equal(t, want, *receipt.ContractAddress)

	w := m.World()
	assert.Equal(t, NativeCode("echo"), w.Code(want))
	assert.Equal(t, uint64(10), w.Balance(want).Uint64())
	assert.Equal(t, uint64(1), w.Nonce(alice))

	receipt, err = m.Transact(context.Background(), entities.Message{From: alice, To: want, Input: []byte("hi")})
	require.NoError(t, err)
	assert.Equal(t, "hi", string(receipt.Output))
}

func TestDeploy_Salted(t *testing.T) {
	m := newTestMachine(t)
	salt := entities.Hash{31: 7}
	code := NativeCode("child")

	receipt, err := m.Deploy(context.Background(), alice, nil, code, &salt)
	require.NoError(t, err)
	require.True(t, receipt.Succeeded())

	want := crypto.CreateAddress2(alice, salt, crypto.Keccak256(code))
	assert.Equal(t, want, *receipt.ContractAddress)

	receipt, err = m.Deploy(context.Background(), alice, nil, code, &salt)
	require.NoError(t, err)
	assert.False(t, receipt.Succeeded(), "same salt and code collide")
	assert.Nil(t, receipt.ContractAddress)
}

func TestDeploy_AddressCollision(t *testing.T) {
	m := newTestMachine(t)
	salt := entities.Hash{31: 9}
	code := NativeCode("child")

	first, err := m.Deploy(context.Background(), alice, u(5), code, &salt)
	require.NoError(t, err)
	require.True(t, first.Succeeded())

	second, err := m.Deploy(context.Background(), alice, u(5), code, &salt)
	require.NoError(t, err)
	assert.False(t, second.Succeeded())
	require.NotNil(t, second.Error)
	assert.Equal(t, ErrAddressCollision.Error(), second.Error.Message)
	assert.Equal(t, entities.HaltNone, second.Halt)

	addr := *first.ContractAddress
	assert.Equal(t, uint64(5), m.World().Balance(addr).Uint64(), "existing account is untouched")
	assert.Equal(t, uint64(995), m.World().Balance(alice).Uint64(), "second endowment is not taken")
}

func TestDeploy_FailedConstructorLeavesNoAccount(t *testing.T) {
	m := newTestMachine(t)

	receipt, err := m.Deploy(context.Background(), alice, u(10), NativeCode("faulty"), nil)
	require.NoError(t, err)
	assert.False(t, receipt.Succeeded())

	addr := crypto.CreateAddress(alice, 0)
	assert.False(t, m.World().Exists(addr))
	assert.Equal(t, uint64(1000), m.World().Balance(alice).Uint64())
}

func TestNativeRunner_Fallback(t *testing.T) {
	w := NewWorld(nil)
	wasmCode := []byte("\x00asm")
	var seen []byte
	fallback := RunnerFunc(func(_ context.Context, _ *FrameHost, code []byte) (*entities.Halt, error) {
		seen = code
		return entities.Returned([]byte("wasm")), nil
	})
	m := NewMachine(w, NewNativeRunner(nil, fallback), WithLogger(slog.New(slog.DiscardHandler)))
	w.SetCode(bob, wasmCode)

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: bob})
	require.NoError(t, err)
	assert.Equal(t, "wasm", string(receipt.Output))
	assert.Equal(t, wasmCode, seen)
}

func TestNativeRunner_NoFallback(t *testing.T) {
	w := NewWorld(nil)
	m := NewMachine(w, NewNativeRunner(nil, nil), WithLogger(slog.New(slog.DiscardHandler)))
	w.SetCode(bob, []byte("\x00asm"))

	receipt, err := m.Transact(context.Background(), entities.Message{From: alice, To: bob})
	require.NoError(t, err)
	assert.False(t, receipt.Succeeded())
	assert.Contains(t, receipt.Error.Message, "no runner")
}

func TestNativeRunner_Trace(t *testing.T) {
	var buf bytes.Buffer
	trace := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := newTestMachine(t)
	m.runner.(*NativeRunner).Trace = trace
	echo := entities.Address{0xe0}
	install(m, echo, "echo")

	_, err := m.Transact(context.Background(), entities.Message{From: alice, To: echo, Input: []byte("x")})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "function=input_length")
	assert.Contains(t, buf.String(), "function=fetch_input")
	assert.Contains(t, buf.String(), "function=ret")
}
