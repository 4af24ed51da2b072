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
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/qcompiler/qrca/pkg/hir"
)

// PackageComputeProperties holds the generator sets of every node (and every
// callable) in one compilation unit.  The table is created empty, each node is
// inserted exactly once, and the table is then frozen after which it is
// read-only.  Inserts may come from several goroutines, each of which is
// saving the results of an independent callable.
type PackageComputeProperties struct {
	mutex  sync.RWMutex
	frozen bool
	items  map[hir.ItemId]*CallableComputeProperties
	blocks map[hir.BlockId]ApplicationGeneratorSet
	stmts  map[hir.StmtId]ApplicationGeneratorSet
	exprs  map[hir.ExprId]ApplicationGeneratorSet
}

// NewPackageComputeProperties constructs an empty table.
func NewPackageComputeProperties() *PackageComputeProperties {
	return &PackageComputeProperties{
		items:  make(map[hir.ItemId]*CallableComputeProperties),
		blocks: make(map[hir.BlockId]ApplicationGeneratorSet),
		stmts:  make(map[hir.StmtId]ApplicationGeneratorSet),
		exprs:  make(map[hir.ExprId]ApplicationGeneratorSet),
	}
}

// Freeze this table, after which no further inserts are permitted.
func (p *PackageComputeProperties) Freeze() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	p.frozen = true
}

// IsFrozen determines whether this table has been frozen.
func (p *PackageComputeProperties) IsFrozen() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	//
	return p.frozen
}

// Item returns the properties of a given callable (if analysed).
func (p *PackageComputeProperties) Item(id hir.ItemId) (*CallableComputeProperties, bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	//
	props, ok := p.items[id]
	//
	return props, ok
}

// Block returns the generator set of a given block (if analysed).
func (p *PackageComputeProperties) Block(id hir.BlockId) (ApplicationGeneratorSet, bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	//
	gs, ok := p.blocks[id]
	//
	return gs, ok
}

// Stmt returns the generator set of a given statement (if analysed).
func (p *PackageComputeProperties) Stmt(id hir.StmtId) (ApplicationGeneratorSet, bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	//
	gs, ok := p.stmts[id]
	//
	return gs, ok
}

// Expr returns the generator set of a given expression (if analysed).
func (p *PackageComputeProperties) Expr(id hir.ExprId) (ApplicationGeneratorSet, bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	//
	gs, ok := p.exprs[id]
	//
	return gs, ok
}

// ExprIds returns the identifiers of all analysed expressions, in order.
func (p *PackageComputeProperties) ExprIds() []hir.ExprId {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	//
	return sortedKeys(p.exprs)
}

// BlockIds returns the identifiers of all analysed blocks, in order.
func (p *PackageComputeProperties) BlockIds() []hir.BlockId {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	//
	return sortedKeys(p.blocks)
}

// Len returns the total number of nodes in this table.
func (p *PackageComputeProperties) Len() uint {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	//
	return uint(len(p.blocks) + len(p.stmts) + len(p.exprs))
}

// SetItem records the properties of a given callable, which must not already
// have been recorded.
func (p *PackageComputeProperties) SetItem(id hir.ItemId, props *CallableComputeProperties) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if err := p.checkWritable(); err != nil {
		return err
	} else if _, ok := p.items[id]; ok {
		return errors.WithStack(&InvariantError{
			Expected: fmt.Sprintf("item %d to be analysed once", id),
			Found:    "repeated analysis",
		})
	}
	//
	p.items[id] = props
	//
	return nil
}

// generatorSets holds the generator sets produced by closing a single
// builder, prior to their insertion into the shared table.
type generatorSets struct {
	blocks map[hir.BlockId]ApplicationGeneratorSet
	stmts  map[hir.StmtId]ApplicationGeneratorSet
	exprs  map[hir.ExprId]ApplicationGeneratorSet
}

// Insert a batch of generator sets.  This either inserts everything, or
// nothing at all (when some node is already present).
func (p *PackageComputeProperties) insertAll(sets *generatorSets) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	//
	if err := p.checkWritable(); err != nil {
		return err
	} else if err := checkDisjoint(hir.BLOCK, p.blocks, sets.blocks); err != nil {
		return err
	} else if err := checkDisjoint(hir.STMT, p.stmts, sets.stmts); err != nil {
		return err
	} else if err := checkDisjoint(hir.EXPR, p.exprs, sets.exprs); err != nil {
		return err
	}
	//
	copyInto(p.blocks, sets.blocks)
	copyInto(p.stmts, sets.stmts)
	copyInto(p.exprs, sets.exprs)
	//
	return nil
}

func (p *PackageComputeProperties) checkWritable() error {
	if p.frozen {
		return errors.WithStack(&InvariantError{Expected: "writable table", Found: "frozen table"})
	}
	//
	return nil
}

func checkDisjoint[Id nodeIndex](category hir.NodeCategory, existing map[Id]ApplicationGeneratorSet,
	sets map[Id]ApplicationGeneratorSet) error {
	//
	for _, id := range sortedKeys(sets) {
		if _, ok := existing[id]; ok {
			node := hir.NodeId{Category: category, Index: uint32(id)}
			return errors.WithStack(violation(node, "single generator set", "duplicate generator set"))
		}
	}
	//
	return nil
}

func copyInto[Id nodeIndex](dst map[Id]ApplicationGeneratorSet, src map[Id]ApplicationGeneratorSet) {
	for id, gs := range src {
		dst[id] = gs
	}
}

func sortedKeys[Id nodeIndex, V any](m map[Id]V) []Id {
	var ids = make([]Id, 0, len(m))
	//
	for id := range m {
		ids = append(ids, id)
	}
	//
	slices.Sort(ids)
	//
	return ids
}
