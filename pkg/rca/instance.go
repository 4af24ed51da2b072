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
	"github.com/pkg/errors"
	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/util"
	"github.com/qcompiler/qrca/pkg/util/collection/set"
	"github.com/qcompiler/qrca/pkg/util/collection/stack"
	"golang.org/x/exp/constraints"
)

// nodeIndex captures the identifier types of blocks, statements and
// expressions.
type nodeIndex interface {
	constraints.Unsigned
}

// nodeTable maps the nodes of one category to their compute kinds.
type nodeTable[Id nodeIndex] struct {
	category hir.NodeCategory
	entries  map[Id]ComputeKind
}

func newNodeTable[Id nodeIndex](category hir.NodeCategory) nodeTable[Id] {
	return nodeTable[Id]{category, make(map[Id]ComputeKind)}
}

func (p *nodeTable[Id]) node(id Id) hir.NodeId {
	return hir.NodeId{Category: p.category, Index: uint32(id)}
}

// Insert a node, which must not already have been inserted.
func (p *nodeTable[Id]) insert(id Id, kind ComputeKind) {
	if _, ok := p.entries[id]; ok {
		panic(violation(p.node(id), "single classification", "duplicate classification"))
	}
	//
	p.entries[id] = kind
}

// Get the compute kind of a node, which must already have been inserted.
func (p *nodeTable[Id]) get(id Id) ComputeKind {
	kind, ok := p.entries[id]
	//
	if !ok {
		panic(violation(p.node(id), "classification", "unclassified node"))
	}
	//
	return kind
}

// Remove and return the compute kind of a node, which must exist.
func (p *nodeTable[Id]) take(id Id) (ComputeKind, error) {
	kind, ok := p.entries[id]
	//
	if !ok {
		return nil, errors.WithStack(violation(p.node(id), "classification", "unclassified node"))
	}
	//
	delete(p.entries, id)
	//
	return kind, nil
}

// Sorted list of node identifiers in this table.
func (p *nodeTable[Id]) ids() []Id {
	return sortedKeys(p.entries)
}

func (p *nodeTable[Id]) len() uint {
	return uint(len(p.entries))
}

// ApplicationInstance is one complete analysis of a callable specialization
// under a fixed hypothesis about which of its inputs are dynamic.  Every node
// of the specialization is classified exactly once, with children classified
// before their parents.
type ApplicationInstance struct {
	locals        LocalsComputeKindMap
	dynamicScopes *stack.Stack[hir.ExprId]
	returnExprs   *set.SortedSet[hir.ExprId]
	returnTy      hir.Ty
	blocks        nodeTable[hir.BlockId]
	stmts         nodeTable[hir.StmtId]
	exprs         nodeTable[hir.ExprId]
	closed        bool
}

// closedInstance is what remains of an application instance once it has been
// closed.
type closedInstance struct {
	blocks nodeTable[hir.BlockId]
	stmts  nodeTable[hir.StmtId]
	exprs  nodeTable[hir.ExprId]
	// Aggregated value kind of all quantum return expressions (if any)
	value util.Option[ValueKind]
}

// NewApplicationInstance constructs an application instance for a callable
// with the given input parameters, control qubits and return type.  If a
// dynamic parameter is given, then that parameter (and only that parameter)
// is assumed to be dynamic; otherwise, all inputs are assumed static.
func NewApplicationInstance(params []hir.InputParam, ctl util.Option[Local], returnTy hir.Ty,
	dynamic util.Option[DynamicParam]) *ApplicationInstance {
	//
	var instance = &ApplicationInstance{
		locals:        NewLocalsComputeKindMap(),
		dynamicScopes: stack.NewStack[hir.ExprId](),
		returnExprs:   set.NewSortedSet[hir.ExprId](),
		returnTy:      returnTy,
		blocks:        newNodeTable[hir.BlockId](hir.BLOCK),
		stmts:         newNodeTable[hir.StmtId](hir.STMT),
		exprs:         newNodeTable[hir.ExprId](hir.EXPR),
	}
	// Control qubits are always quantum, though their dynamism is not modelled.
	if local, ok := ctl.Get(); ok {
		instance.locals.Insert(local, Quantum{NO_FEATURES, Array{STATIC, STATIC}})
	}
	//
	for _, param := range params {
		var kind = CLASSICAL
		// Check whether this parameter is assumed dynamic.  Being dynamic does
		// not, by itself, require any runtime features.
		if d, ok := dynamic.Get(); ok && d.Index == param.Index {
			kind = Quantum{NO_FEATURES, d.Axis.ValueKind()}
		}
		//
		if v, ok := param.Local.Get(); ok {
			instance.locals.Insert(Local{v, param.Ty, InputParamLocal{param.Index}}, kind)
		}
	}
	//
	return instance
}

// Fork returns a scratch copy of this instance, which shares nothing with it.
// The copy starts with the same locals and dynamic scopes, but with no nodes
// classified.  This allows a region (e.g. a loop body) to be walked more than
// once without classifying any node twice.
func (p *ApplicationInstance) Fork() *ApplicationInstance {
	p.checkOpen()
	//
	return &ApplicationInstance{
		locals:        p.locals.Clone(),
		dynamicScopes: p.dynamicScopes.Clone(),
		returnExprs:   set.NewSortedSet[hir.ExprId](),
		returnTy:      p.returnTy,
		blocks:        newNodeTable[hir.BlockId](hir.BLOCK),
		stmts:         newNodeTable[hir.StmtId](hir.STMT),
		exprs:         newNodeTable[hir.ExprId](hir.EXPR),
	}
}

// Locals returns the map of local bindings for this instance.
func (p *ApplicationInstance) Locals() *LocalsComputeKindMap {
	p.checkOpen()
	return &p.locals
}

// ReturnTy returns the return type of the specialization being analysed.
func (p *ApplicationInstance) ReturnTy() hir.Ty {
	return p.returnTy
}

// InsertBlockComputeKind records the classification of a block.
func (p *ApplicationInstance) InsertBlockComputeKind(id hir.BlockId, kind ComputeKind) {
	p.checkOpen()
	p.blocks.insert(id, kind)
}

// InsertStmtComputeKind records the classification of a statement.
func (p *ApplicationInstance) InsertStmtComputeKind(id hir.StmtId, kind ComputeKind) {
	p.checkOpen()
	p.stmts.insert(id, kind)
}

// InsertExprComputeKind records the classification of an expression.
func (p *ApplicationInstance) InsertExprComputeKind(id hir.ExprId, kind ComputeKind) {
	p.checkOpen()
	p.exprs.insert(id, kind)
}

// BlockComputeKind returns the classification of a block already visited.
func (p *ApplicationInstance) BlockComputeKind(id hir.BlockId) ComputeKind {
	return p.blocks.get(id)
}

// StmtComputeKind returns the classification of a statement already visited.
func (p *ApplicationInstance) StmtComputeKind(id hir.StmtId) ComputeKind {
	return p.stmts.get(id)
}

// ExprComputeKind returns the classification of an expression already
// visited.
func (p *ApplicationInstance) ExprComputeKind(id hir.ExprId) ComputeKind {
	return p.exprs.get(id)
}

// PushDynamicScope records entry into a region whose execution is
// conditioned on a dynamic value computed by the given expression.
func (p *ApplicationInstance) PushDynamicScope(id hir.ExprId) {
	p.checkOpen()
	p.dynamicScopes.Push(id)
}

// PopDynamicScope records exit from the innermost dynamic region.
func (p *ApplicationInstance) PopDynamicScope() hir.ExprId {
	if p.dynamicScopes.IsEmpty() {
		panic(&InvariantError{Expected: "enclosing dynamic scope", Found: "none"})
	}
	//
	return p.dynamicScopes.Pop()
}

// IsInDynamicScope determines whether the node currently being visited is
// (transitively) conditioned on a dynamic value.
func (p *ApplicationInstance) IsInDynamicScope() bool {
	return !p.dynamicScopes.IsEmpty()
}

// DynamicScopes returns the expressions of all enclosing dynamic regions,
// outermost first.
func (p *ApplicationInstance) DynamicScopes() []hir.ExprId {
	return p.dynamicScopes.Items()
}

// AddReturnExpr records an expression whose value is returned from the
// specialization.
func (p *ApplicationInstance) AddReturnExpr(id hir.ExprId) {
	p.checkOpen()
	p.returnExprs.Insert(id)
}

// ReturnExprs returns the set of returned expressions recorded so far, in
// ascending order.
func (p *ApplicationInstance) ReturnExprs() []hir.ExprId {
	return p.returnExprs.ToArray()
}

// Close this instance, discarding everything except the classification tables
// and the aggregated value kind of its quantum return expressions.  An
// instance can be closed at most once.
func (p *ApplicationInstance) close() (closed closedInstance, err error) {
	defer CatchInvariant("", &err)
	//
	p.checkOpen()
	p.closed = true
	//
	var value = util.None[ValueKind]()
	// Fold together the value kinds of all quantum return expressions.
	for _, id := range p.returnExprs.ToArray() {
		value = p.joinReturnExpr(value, id)
	}
	//
	closed = closedInstance{p.blocks, p.stmts, p.exprs, value}
	// Drop everything else
	p.locals = LocalsComputeKindMap{}
	p.dynamicScopes = stack.NewStack[hir.ExprId]()
	p.returnExprs = set.NewSortedSet[hir.ExprId]()
	//
	return closed, nil
}

// Join the value kind of a given return expression (if quantum) into an
// accumulated value kind, which is seeded from the return type.
func (p *ApplicationInstance) joinReturnExpr(value util.Option[ValueKind], id hir.ExprId) util.Option[ValueKind] {
	defer AtNode(hir.ExprNode(id))
	//
	if q, ok := p.exprs.get(id).(Quantum); ok {
		var acc = value.UnwrapOr(StaticValueKind(p.returnTy))
		//
		return util.Some(JoinValueKinds(acc, q.Value))
	}
	//
	return value
}

func (p *ApplicationInstance) checkOpen() {
	if p.closed {
		panic(&InvariantError{Expected: "open application instance", Found: "closed instance"})
	}
}
