// Package abi maps the symbolic enumerations used by the compiler onto the
// integer codes of the native LLVM ABI.  Every mapping is an explicit table:
// codes are never derived from Go ordinals since they are not stable across
// LLVM releases.  All tables are pinned to LLVM 18.
package abi

import (
	"fmt"
	"sort"

	"github.com/emerge-lang/compiler/errs"
)

// Entry is a single row of an enum table.
type Entry[T comparable] struct {
	Value T
	Code  int32
	Name  string
}

// Table is a bidirectional mapping between a symbolic enumeration and its
// native integer codes.
type Table[T comparable] struct {
	enum    string
	entries []Entry[T]

	byValue map[T]int
	byCode  map[int32]int
	byName  map[string]int
}

// NewTable creates a new enum table named enum from entries.  It panics if any
// value, code, or name appears more than once.
func NewTable[T comparable](enum string, entries ...Entry[T]) *Table[T] {
	t := &Table[T]{
		enum:    enum,
		entries: entries,
		byValue: make(map[T]int, len(entries)),
		byCode:  make(map[int32]int, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		if _, ok := t.byValue[e.Value]; ok {
			panic(fmt.Sprintf("abi: duplicate %s value %v", enum, e.Value))
		}
		if _, ok := t.byCode[e.Code]; ok {
			panic(fmt.Sprintf("abi: duplicate %s code %d", enum, e.Code))
		}
		if _, ok := t.byName[e.Name]; ok {
			panic(fmt.Sprintf("abi: duplicate %s name %q", enum, e.Name))
		}

		t.byValue[e.Value] = i
		t.byCode[e.Code] = i
		t.byName[e.Name] = i
	}

	return t
}

// Enum returns the name of the enumeration.
func (t *Table[T]) Enum() string {
	return t.enum
}

// Encode returns the native code of v.  Encoding a value which is not a member
// of the table is a programming error.
func (t *Table[T]) Encode(v T) int32 {
	i, ok := t.byValue[v]
	if !ok {
		errs.Fail(errs.InvalidHandle("encode", t.enum))
	}

	return t.entries[i].Code
}

// Decode returns the member whose native code is raw.  It returns an unknown
// enum value error if there is no such member.
func (t *Table[T]) Decode(raw int32) (T, error) {
	i, ok := t.byCode[raw]
	if !ok {
		var zero T
		return zero, &errs.UnknownEnumValueError{Enum: t.enum, Raw: raw}
	}

	return t.entries[i].Value, nil
}

// Parse returns the member whose configuration name is name.
func (t *Table[T]) Parse(name string) (T, error) {
	i, ok := t.byName[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s name: %q", t.enum, name)
	}

	return t.entries[i].Value, nil
}

// NameOf returns the configuration name of v.
func (t *Table[T]) NameOf(v T) (string, bool) {
	i, ok := t.byValue[v]
	if !ok {
		return "", false
	}

	return t.entries[i].Name, true
}

// Names returns all the configuration names of the table in code order.
func (t *Table[T]) Names() []string {
	names := make([]string, 0, len(t.entries))
	for _, e := range t.sorted() {
		names = append(names, e.Name)
	}

	return names
}

// Members returns all the entries of the table in code order.
func (t *Table[T]) Members() []Entry[T] {
	return t.sorted()
}

// MaxCode returns the largest native code in the table.
func (t *Table[T]) MaxCode() int32 {
	var max int32
	for _, e := range t.entries {
		if e.Code > max {
			max = e.Code
		}
	}

	return max
}

func (t *Table[T]) sorted() []Entry[T] {
	entries := make([]Entry[T], len(t.entries))
	copy(entries, t.entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})

	return entries
}
