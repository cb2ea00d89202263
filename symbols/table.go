// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package symbols

import (
	"sort"

	"github.com/gogpu/translator/ir"
)

// Level is the index of a scope in a Table.
type Level int

// Reserved levels. Built-in symbols live in the first three, user
// globals in LevelGlobal and nested scopes above it.
const (
	LevelCommon Level = iota
	LevelESSL1
	LevelESSL3
	LevelGlobal

	LastBuiltInLevel = LevelESSL3
)

func (l Level) String() string {
	switch l {
	case LevelCommon:
		return "common"
	case LevelESSL1:
		return "essl1"
	case LevelESSL3:
		return "essl3"
	case LevelGlobal:
		return "global"
	default:
		return "local"
	}
}

type level struct {
	syms map[string]Symbol
}

func newLevel() *level {
	return &level{syms: make(map[string]Symbol)}
}

type precisionFrame map[ir.BasicType]ir.Precision

// Table is a stack of scope levels.
//
// A new table holds the three built-in levels. Push the global level
// before declaring user symbols. A table made by Fork shares the built-in
// levels with its parent and refuses to modify them.
type Table struct {
	levels    []*level
	precision []precisionFrame

	nextID int
	shared bool
}

// NewTable returns a table with empty built-in levels.
func NewTable() *Table {
	t := &Table{}
	for l := LevelCommon; l <= LastBuiltInLevel; l++ {
		t.push()
	}
	return t
}

// Fork returns a table sharing the built-in levels and their default
// precisions with t. Symbol ids continue from t.
func (t *Table) Fork() *Table {
	n := int(LastBuiltInLevel) + 1
	if len(t.levels) < n {
		n = len(t.levels)
	}

	f := &Table{
		levels:    make([]*level, n),
		precision: make([]precisionFrame, n),
		nextID:    t.nextID,
		shared:    true,
	}
	copy(f.levels, t.levels[:n])
	copy(f.precision, t.precision[:n])

	return f
}

// NextUniqueID allocates a fresh symbol id.
func (t *Table) NextUniqueID() int {
	t.nextID++
	return t.nextID
}

// CurrentLevel returns the innermost level.
func (t *Table) CurrentLevel() Level { return Level(len(t.levels) - 1) }

// AtBuiltInLevel reports whether no user level has been pushed.
func (t *Table) AtBuiltInLevel() bool { return t.CurrentLevel() <= LastBuiltInLevel }

// AtGlobalLevel reports whether the innermost level is the global one.
func (t *Table) AtGlobalLevel() bool { return t.CurrentLevel() <= LevelGlobal }

// Push opens a scope together with a default precision frame.
func (t *Table) Push() {
	t.push()
}

func (t *Table) push() {
	t.levels = append(t.levels, newLevel())
	t.precision = append(t.precision, precisionFrame{})
}

// Pop closes the innermost user scope. Built-in levels are never popped.
func (t *Table) Pop() {
	if t.AtBuiltInLevel() {
		return
	}
	t.levels = t.levels[:len(t.levels)-1]
	t.precision = t.precision[:len(t.precision)-1]
}

// Declare inserts sym in the innermost level.
func (t *Table) Declare(sym Symbol) bool {
	return t.Insert(t.CurrentLevel(), sym)
}

// Insert adds sym to level l, assigning it an id if it has none. It
// returns false if the mangled name is already taken at that level.
func (t *Table) Insert(l Level, sym Symbol) bool {
	if !t.writable(l) {
		return false
	}

	lv := t.levels[l]
	key := sym.MangledName()
	if _, ok := lv.syms[key]; ok {
		return false
	}

	if sym.ID() == 0 {
		sym.setID(t.NextUniqueID())
	}
	lv.syms[key] = sym

	return true
}

func (t *Table) writable(l Level) bool {
	if l < 0 || int(l) >= len(t.levels) {
		return false
	}
	return !(t.shared && l <= LastBuiltInLevel)
}

// InsertConstInt registers an int constant such as an implementation
// limit.
func (t *Table) InsertConstInt(l Level, name string, value int) bool {
	v := NewVariable(name, ir.Scalar(ir.Int).WithQualifier(ir.QualConst))
	v.Constant = []ir.ConstantValue{ir.IntValue(int32(value))}
	return t.Insert(l, v)
}

// InsertBuiltIn registers a built-in function. Pseudo types in ret or
// params expand into one overload per concrete type:
//
//   - a gsampler first parameter yields float, int and uint sampler
//     overloads, with a gvec4 return becoming vec4, ivec4 or uvec4;
//   - genType family types yield sizes 1 to 4;
//   - vec family types yield sizes 2 to 4.
//
// It returns false if any resulting signature already exists at l.
func (t *Table) InsertBuiltIn(l Level, ret ir.Type, name string, params ...ir.Type) bool {
	if len(params) > 0 {
		if variants, ok := samplerVariants[params[0].Basic]; ok {
			inserted := true
			for _, v := range variants {
				r := ret
				if ret.Basic == ir.GVec4 {
					r = ir.Vector(v.result, 4)
				}
				ps := append([]ir.Type{ir.Scalar(v.sampler)}, params[1:]...)
				inserted = t.InsertBuiltIn(l, r, name, ps...) && inserted
			}
			return inserted
		}
	}

	if isGenType(ret) || anyOf(params, isGenType) {
		inserted := true
		for size := uint8(1); size <= 4; size++ {
			inserted = t.InsertBuiltIn(l, specificType(ret, size), name, specificTypes(params, size)...) && inserted
		}
		return inserted
	}

	if isVecType(ret) || anyOf(params, isVecType) {
		inserted := true
		for size := uint8(2); size <= 4; size++ {
			inserted = t.InsertBuiltIn(l, vectorType(ret, size), name, vectorTypes(params, size)...) && inserted
		}
		return inserted
	}

	f := NewFunction(name, ret)
	for _, p := range params {
		f.AddParameter(Parameter{Type: p})
	}

	return t.Insert(l, f)
}

type samplerVariant struct {
	sampler ir.BasicType
	result  ir.BasicType
}

var samplerVariants = map[ir.BasicType][]samplerVariant{
	ir.GSampler2D:      {{ir.Sampler2D, ir.Float}, {ir.ISampler2D, ir.Int}, {ir.USampler2D, ir.UInt}},
	ir.GSampler3D:      {{ir.Sampler3D, ir.Float}, {ir.ISampler3D, ir.Int}, {ir.USampler3D, ir.UInt}},
	ir.GSamplerCube:    {{ir.SamplerCube, ir.Float}, {ir.ISamplerCube, ir.Int}, {ir.USamplerCube, ir.UInt}},
	ir.GSampler2DArray: {{ir.Sampler2DArray, ir.Float}, {ir.ISampler2DArray, ir.Int}, {ir.USampler2DArray, ir.UInt}},
}

func isGenType(t ir.Type) bool {
	switch t.Basic {
	case ir.GenType, ir.GenIType, ir.GenUType, ir.GenBType:
		return true
	}
	return false
}

func isVecType(t ir.Type) bool {
	switch t.Basic {
	case ir.Vec, ir.IVec, ir.UVec, ir.BVec:
		return true
	}
	return false
}

func anyOf(ts []ir.Type, f func(ir.Type) bool) bool {
	for _, t := range ts {
		if f(t) {
			return true
		}
	}
	return false
}

func specificType(t ir.Type, size uint8) ir.Type {
	switch t.Basic {
	case ir.GenType:
		return ir.Vector(ir.Float, size)
	case ir.GenIType:
		return ir.Vector(ir.Int, size)
	case ir.GenUType:
		return ir.Vector(ir.UInt, size)
	case ir.GenBType:
		return ir.Vector(ir.Bool, size)
	}
	return t
}

func specificTypes(ts []ir.Type, size uint8) []ir.Type {
	out := make([]ir.Type, len(ts))
	for i, t := range ts {
		out[i] = specificType(t, size)
	}
	return out
}

func vectorType(t ir.Type, size uint8) ir.Type {
	switch t.Basic {
	case ir.Vec:
		return ir.Vector(ir.Float, size)
	case ir.IVec:
		return ir.Vector(ir.Int, size)
	case ir.UVec:
		return ir.Vector(ir.UInt, size)
	case ir.BVec:
		return ir.Vector(ir.Bool, size)
	}
	return t
}

func vectorTypes(ts []ir.Type, size uint8) []ir.Type {
	out := make([]ir.Type, len(ts))
	for i, t := range ts {
		out[i] = vectorType(t, size)
	}
	return out
}

// Find looks name up from the innermost level outwards. Functions are
// found by mangled name. The ESSL1 level is searched only for shader
// version 100 and the ESSL3 level only for version 300.
//
// builtIn reports whether the symbol came from a built-in level and
// sameScope whether it came from the innermost level.
func (t *Table) Find(name string, shaderVersion int) (sym Symbol, builtIn, sameScope bool) {
	l := t.CurrentLevel()
	for ; l >= 0; l-- {
		if !visible(l, shaderVersion) {
			continue
		}
		if s, ok := t.levels[l].syms[name]; ok {
			sym = s
			break
		}
	}

	if sym == nil {
		return nil, false, false
	}

	return sym, l <= LastBuiltInLevel, l == t.CurrentLevel()
}

// FindBuiltIn looks name up in the built-in levels only.
func (t *Table) FindBuiltIn(name string, shaderVersion int) Symbol {
	for l := LastBuiltInLevel; l >= 0; l-- {
		if int(l) >= len(t.levels) || !visible(l, shaderVersion) {
			continue
		}
		if s, ok := t.levels[l].syms[name]; ok {
			return s
		}
	}
	return nil
}

// FindAt looks name up in one level only.
func (t *Table) FindAt(l Level, name string) Symbol {
	if l < 0 || int(l) >= len(t.levels) {
		return nil
	}
	return t.levels[l].syms[name]
}

func visible(l Level, shaderVersion int) bool {
	switch l {
	case LevelESSL3:
		return shaderVersion == 300
	case LevelESSL1:
		return shaderVersion == 100
	default:
		return true
	}
}

// RelateToOperator tags every function overload named name at level l
// with op.
func (t *Table) RelateToOperator(l Level, name string, op ir.Operator) {
	t.eachFunction(l, name, func(f *Function) { f.Op = op })
}

// RelateToExtension records that every overload named name at level l
// requires ext.
func (t *Table) RelateToExtension(l Level, name, ext string) {
	t.eachFunction(l, name, func(f *Function) { f.Extension = ext })
}

func (t *Table) eachFunction(l Level, name string, fn func(*Function)) {
	if !t.writable(l) {
		return
	}
	for _, s := range t.levels[l].syms {
		if f, ok := s.(*Function); ok && f.name == name {
			fn(f)
		}
	}
}

// SetDefaultPrecision sets the default precision of the basic type of
// typ in the innermost precision frame. It fails for types that do not
// take a precision and for structs and arrays.
func (t *Table) SetDefaultPrecision(typ ir.Type, prec ir.Precision) bool {
	if !typ.Basic.SupportsPrecision() {
		return false
	}
	if typ.IsAggregate() {
		return false
	}
	if len(t.precision) == 0 || (t.shared && t.AtBuiltInLevel()) {
		return false
	}

	t.precision[len(t.precision)-1][typ.Basic] = prec

	return true
}

// DefaultPrecision returns the innermost default precision for basic.
// Unsigned integers share the precision of signed ones.
func (t *Table) DefaultPrecision(basic ir.BasicType) ir.Precision {
	if !basic.SupportsPrecision() {
		return ir.PrecisionUndefined
	}
	if basic == ir.UInt {
		basic = ir.Int
	}

	for i := len(t.precision) - 1; i >= 0; i-- {
		if p, ok := t.precision[i][basic]; ok {
			return p
		}
	}

	return ir.PrecisionUndefined
}

// Entry describes one symbol of a table.
type Entry struct {
	Level     Level
	Key       string
	Op        ir.Operator
	Extension string
}

// Entries lists every symbol of every level sorted by level and key.
func (t *Table) Entries() []Entry {
	var es []Entry
	for l, lv := range t.levels {
		for key, s := range lv.syms {
			e := Entry{Level: Level(l), Key: key}
			switch s := s.(type) {
			case *Function:
				e.Op = s.Op
				e.Extension = s.Extension
			case *Variable:
				e.Extension = s.Extension
			}
			es = append(es, e)
		}
	}

	sort.Slice(es, func(i, j int) bool {
		if es[i].Level != es[j].Level {
			return es[i].Level < es[j].Level
		}
		return es[i].Key < es[j].Key
	})

	return es
}
