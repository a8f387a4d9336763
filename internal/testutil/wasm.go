package testutil

import (
	"bytes"
	"fmt"
)

// Value types.
const (
	I32 byte = 0x7f
	I64 byte = 0x7e
)

// Opcodes without immediates.
const (
	OpUnreachable byte = 0x00
	OpDrop        byte = 0x1a
)

// FuncType is a function signature.
type FuncType struct {
	Params  []byte
	Results []byte
}

// Import is an imported function.
type Import struct {
	Module string
	Name   string
	Type   FuncType
}

// Func is a function defined by the module. Body holds the instructions
// without the final end opcode.
type Func struct {
	Export string
	Type   FuncType
	Body   []byte
}

// Segment is an active data segment in memory 0.
type Segment struct {
	Data   []byte
	Offset int32
}

// Module describes a minimal wasm module: imported and defined functions,
// one exported memory and data segments.
type Module struct {
	Imports     []Import
	Funcs       []Func
	Data        []Segment
	MemoryPages uint32
}

// envSignatures are the signatures of the host module exports.
var envSignatures = map[string]FuncType{
	"ccall":         {Params: []byte{I64, I32, I32, I32, I32, I32, I32}, Results: []byte{I32}},
	"dcall":         {Params: []byte{I64, I32, I32, I32, I32, I32}, Results: []byte{I32}},
	"scall":         {Params: []byte{I64, I32, I32, I32, I32, I32}, Results: []byte{I32}},
	"blockhash":     {Params: []byte{I64, I32}},
	"balance":       {Params: []byte{I32, I32}},
	"coinbase":      {Params: []byte{I32}},
	"sender":        {Params: []byte{I32}},
	"origin":        {Params: []byte{I32}},
	"address":       {Params: []byte{I32}},
	"value":         {Params: []byte{I32}},
	"difficulty":    {Params: []byte{I32}},
	"gaslimit":      {Params: []byte{I32}},
	"timestamp":     {Results: []byte{I64}},
	"blocknumber":   {Results: []byte{I64}},
	"gasleft":       {Results: []byte{I64}},
	"elog":          {Params: []byte{I32, I32, I32, I32}},
	"create":        {Params: []byte{I32, I32, I32, I32}, Results: []byte{I32}},
	"create2":       {Params: []byte{I32, I32, I32, I32, I32}, Results: []byte{I32}},
	"suicide":       {Params: []byte{I32}},
	"ret":           {Params: []byte{I32, I32}},
	"input_length":  {Results: []byte{I32}},
	"fetch_input":   {Params: []byte{I32}},
	"storage_read":  {Params: []byte{I32, I32}},
	"storage_write": {Params: []byte{I32, I32}},
	"debug":         {Params: []byte{I32, I32}},
}

// EnvImports returns imports of the named host functions from module "env".
func EnvImports(names ...string) []Import {
	out := make([]Import, len(names))
	for i, name := range names {
		sig, ok := envSignatures[name]
		if !ok {
			panic(fmt.Sprintf("testutil: unknown host function %q", name))
		}
		out[i] = Import{Module: "env", Name: name, Type: sig}
	}
	return out
}

// Call returns a call instruction to the import named name.
func (m *Module) Call(name string) []byte {
	for i, imp := range m.Imports {
		if imp.Name == name {
			return append([]byte{0x10}, uleb(uint64(i))...)
		}
	}
	panic(fmt.Sprintf("testutil: module does not import %q", name))
}

// Seq concatenates instructions.
func Seq(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// I32Const pushes v.
func I32Const(v int32) []byte {
	return append([]byte{0x41}, sleb(int64(v))...)
}

// I64Const pushes v.
func I64Const(v int64) []byte {
	return append([]byte{0x42}, sleb(v)...)
}

// I32Store pops a value and an address and stores 4 bytes.
func I32Store(offset uint32) []byte {
	return append([]byte{0x36, 0x02}, uleb(uint64(offset))...)
}

// I64Store pops a value and an address and stores 8 bytes.
func I64Store(offset uint32) []byte {
	return append([]byte{0x37, 0x03}, uleb(uint64(offset))...)
}

// Encode returns the binary module.
func (m *Module) Encode() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	var types [][]byte
	for _, imp := range m.Imports {
		types = append(types, funcType(imp.Type))
	}
	for _, fn := range m.Funcs {
		types = append(types, funcType(fn.Type))
	}
	if len(types) > 0 {
		out = append(out, section(1, vec(types))...)
	}

	if len(m.Imports) > 0 {
		entries := make([][]byte, len(m.Imports))
		for i, imp := range m.Imports {
			entries[i] = Seq(name(imp.Module), name(imp.Name), []byte{0x00}, uleb(uint64(i)))
		}
		out = append(out, section(2, vec(entries))...)
	}

	base := uint64(len(m.Imports))
	if len(m.Funcs) > 0 {
		entries := make([][]byte, len(m.Funcs))
		for i := range m.Funcs {
			entries[i] = uleb(base + uint64(i))
		}
		out = append(out, section(3, vec(entries))...)
	}

	if m.MemoryPages > 0 {
		out = append(out, section(5, vec([][]byte{Seq([]byte{0x00}, uleb(uint64(m.MemoryPages)))}))...)
	}

	var exports [][]byte
	for i, fn := range m.Funcs {
		if fn.Export != "" {
			exports = append(exports, Seq(name(fn.Export), []byte{0x00}, uleb(base+uint64(i))))
		}
	}
	if m.MemoryPages > 0 {
		exports = append(exports, Seq(name("memory"), []byte{0x02, 0x00}))
	}
	if len(exports) > 0 {
		out = append(out, section(7, vec(exports))...)
	}

	if len(m.Funcs) > 0 {
		bodies := make([][]byte, len(m.Funcs))
		for i, fn := range m.Funcs {
			body := Seq([]byte{0x00}, fn.Body, []byte{0x0b})
			bodies[i] = Seq(uleb(uint64(len(body))), body)
		}
		out = append(out, section(10, vec(bodies))...)
	}

	if len(m.Data) > 0 {
		segments := make([][]byte, len(m.Data))
		for i, seg := range m.Data {
			segments[i] = Seq([]byte{0x00}, I32Const(seg.Offset), []byte{0x0b}, uleb(uint64(len(seg.Data))), seg.Data)
		}
		out = append(out, section(11, vec(segments))...)
	}

	return out
}

func funcType(t FuncType) []byte {
	return Seq([]byte{0x60}, uleb(uint64(len(t.Params))), t.Params, uleb(uint64(len(t.Results))), t.Results)
}

func section(id byte, payload []byte) []byte {
	return Seq([]byte{id}, uleb(uint64(len(payload))), payload)
}

func vec(items [][]byte) []byte {
	return Seq(uleb(uint64(len(items))), bytes.Join(items, nil))
}

func name(s string) []byte {
	return Seq(uleb(uint64(len(s))), []byte(s))
}

func uleb(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func sleb(v int64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}
