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
package rca

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/util"
)

// InvariantError signals that the analysis has been driven inconsistently
// (e.g. a node was classified twice, or a node expected to be classified was
// not).  Such errors indicate a defect in the compiler itself rather than in
// the program being compiled, and compilation cannot proceed.
type InvariantError struct {
	// Callable being analysed (if known)
	Callable string
	// Node at which the violation was detected (if known)
	Node util.Option[hir.NodeId]
	// What was expected
	Expected string
	// What was found instead
	Found string
}

func (e *InvariantError) Error() string {
	var (
		callable = e.Callable
		node     = "?"
	)
	//
	if callable == "" {
		callable = "?"
	}
	//
	if n, ok := e.Node.Get(); ok {
		node = n.String()
	}
	//
	return fmt.Sprintf("internal compiler error (this is a bug): callable %s, node %s: expected %s, found %s",
		callable, node, e.Expected, e.Found)
}

func violation(node hir.NodeId, expected string, found string) *InvariantError {
	return &InvariantError{Node: util.Some(node), Expected: expected, Found: found}
}

func shapeViolation(expected ValueKind, found ValueKind) *InvariantError {
	return &InvariantError{
		Node:     util.None[hir.NodeId](),
		Expected: fmt.Sprintf("%s value kind", shapeOf(expected)),
		Found:    fmt.Sprintf("%s value kind", shapeOf(found)),
	}
}

// AsInvariantError extracts an invariant error from a given error chain (if
// there is one).
func AsInvariantError(err error) (*InvariantError, bool) {
	var ie *InvariantError
	//
	if errors.As(err, &ie) {
		return ie, true
	}
	//
	return nil, false
}

// CatchInvariant converts an invariant violation raised (by panic) during the
// analysis of a given callable into an error.  Any other panic is propagated
// unchanged.  This must be deferred directly, as in:
//
//	defer rca.CatchInvariant(name, &err)
func CatchInvariant(callable string, err *error) {
	if r := recover(); r != nil {
		ie, ok := r.(*InvariantError)
		//
		if !ok {
			panic(r)
		}
		//
		if ie.Callable == "" {
			ie.Callable = callable
		}
		//
		*err = errors.WithStack(ie)
	}
}

// AtNode annotates an invariant violation being raised (by panic) with the
// node at which it occurred, if this was not already known.  This must be
// deferred directly.
func AtNode(node hir.NodeId) {
	if r := recover(); r != nil {
		if ie, ok := r.(*InvariantError); ok && ie.Node.IsEmpty() {
			ie.Node = util.Some(node)
		}
		//
		panic(r)
	}
}
