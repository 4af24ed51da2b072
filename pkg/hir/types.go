// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package hir

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Ty represents the (already checked) type of a value.  This is a closed set
// of types, consisting of primitives, arrays, tuples and arrows.
type Ty interface {
	fmt.Stringer
	isTy()
}

// Prim represents a primitive (i.e. non-composite) type.
type Prim uint8

const (
	// Bool is the type of booleans.
	Bool Prim = iota
	// Int is the type of 64-bit signed integers.
	Int
	// BigInt is the type of arbitrary precision integers.
	BigInt
	// Double is the type of floating point values.
	Double
	// Pauli is the type of single-qubit Pauli operators.
	Pauli
	// Qubit is the type of qubit references.
	Qubit
	// Range is the type of integer ranges.
	Range
	// Result is the type of measurement outcomes.
	Result
	// String is the type of strings.
	String
)

var primNames = [...]string{"Bool", "Int", "BigInt", "Double", "Pauli", "Qubit", "Range", "Result", "String"}

func (Prim) isTy() {}

func (p Prim) String() string {
	return primNames[p]
}

// ArrayTy represents a sequence of values of the same element type.
type ArrayTy struct {
	Elem Ty
}

func (ArrayTy) isTy() {}

func (p ArrayTy) String() string {
	return fmt.Sprintf("%s[]", p.Elem.String())
}

// TupleTy represents a fixed-size sequence of values of (potentially)
// different types.  The empty tuple is the unit type.
type TupleTy struct {
	Items []Ty
}

func (TupleTy) isTy() {}

func (p TupleTy) String() string {
	if len(p.Items) == 0 {
		return "Unit"
	}
	//
	var items = make([]string, len(p.Items))
	//
	for i, item := range p.Items {
		items[i] = item.String()
	}
	//
	return fmt.Sprintf("(%s)", strings.Join(items, ", "))
}

// ArrowTy represents the type of a callable value.
type ArrowTy struct {
	Input       Ty
	Output      Ty
	IsOperation bool
}

func (ArrowTy) isTy() {}

func (p ArrowTy) String() string {
	if p.IsOperation {
		return fmt.Sprintf("(%s => %s)", p.Input.String(), p.Output.String())
	}
	//
	return fmt.Sprintf("(%s -> %s)", p.Input.String(), p.Output.String())
}

// Unit is the type of expressions which produce no (meaningful) value.
var Unit Ty = TupleTy{}

// Array constructs an array type with the given element type.
func Array(elem Ty) Ty {
	return ArrayTy{elem}
}

// Tuple constructs a tuple type from the given items.
func Tuple(items ...Ty) Ty {
	return TupleTy{items}
}

// IsArray determines whether a given type is an array type.
func IsArray(ty Ty) bool {
	_, ok := ty.(ArrayTy)
	return ok
}

// IsUnit determines whether a given type is the unit type.
func IsUnit(ty Ty) bool {
	t, ok := ty.(TupleTy)
	return ok && len(t.Items) == 0
}

// ParseType parses the textual form of a type, such as "Result[]" or
// "(Int, Qubit[])".
func ParseType(text string) (Ty, error) {
	var (
		p      = typeParser{strings.TrimSpace(text), 0}
		ty, ok = p.parse()
	)
	//
	if !ok || p.index != len(p.text) {
		return nil, errors.Errorf("malformed type \"%s\"", text)
	}
	//
	return ty, nil
}

type typeParser struct {
	text  string
	index int
}

func (p *typeParser) parse() (Ty, bool) {
	var (
		ty Ty
		ok bool
	)
	//
	p.skipWhitespace()
	//
	if p.lookahead('(') {
		ty, ok = p.parseTuple()
	} else {
		ty, ok = p.parsePrimitive()
	}
	// Array suffixes
	for ok {
		p.skipWhitespace()
		//
		if !strings.HasPrefix(p.text[p.index:], "[]") {
			break
		}
		//
		p.index += 2
		ty = ArrayTy{ty}
	}
	//
	return ty, ok
}

func (p *typeParser) parseTuple() (Ty, bool) {
	var items []Ty
	// skip '('
	p.index++
	//
	for p.skipWhitespace(); !p.lookahead(')'); p.skipWhitespace() {
		if len(items) > 0 {
			if !p.lookahead(',') {
				return nil, false
			}
			//
			p.index++
		}
		//
		item, ok := p.parse()
		if !ok {
			return nil, false
		}
		//
		items = append(items, item)
	}
	// skip ')'
	p.index++
	//
	return TupleTy{items}, true
}

func (p *typeParser) parsePrimitive() (Ty, bool) {
	var start = p.index
	//
	for p.index < len(p.text) && isIdentifierChar(p.text[p.index]) {
		p.index++
	}
	//
	name := p.text[start:p.index]
	//
	if name == "Unit" {
		return Unit, true
	}
	//
	for i, n := range primNames {
		if n == name {
			return Prim(i), true
		}
	}
	//
	return nil, false
}

func (p *typeParser) lookahead(c byte) bool {
	return p.index < len(p.text) && p.text[p.index] == c
}

func (p *typeParser) skipWhitespace() {
	for p.index < len(p.text) && p.text[p.index] == ' ' {
		p.index++
	}
}

func isIdentifierChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
