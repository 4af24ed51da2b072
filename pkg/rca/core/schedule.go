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
package core

import (
	"github.com/qcompiler/qrca/pkg/hir"
)

// callableJob is the unit of (parallel) work for the analysis, consisting of
// every specialization of a single callable.
type callableJob struct {
	id           hir.ItemId
	dependencies []uint
	run          func(hir.ItemId) error
}

func (p *callableJob) Id() uint {
	return uint(p.id)
}

func (p *callableJob) Dependencies() []uint {
	return p.dependencies
}

func (p *callableJob) Run() error {
	return p.run(p.id)
}

// Schedule determines, for each non-intrinsic callable in a package, which
// callables must be analysed before it.  A callable depends on its callees,
// except where a call closes a cycle in the call graph.  Such calls are
// identified by a depth-first search from each callable in item order, and
// are excluded so that the remaining dependencies are acyclic.  Callees
// reached only through an excluded call are then necessarily unanalysed when
// their caller is analysed.
func Schedule(pkg *hir.Package) map[hir.ItemId][]hir.ItemId {
	var (
		n       = pkg.NumItems()
		deps    = make(map[hir.ItemId][]hir.ItemId)
		visited = make([]bool, n)
		onStack = make([]bool, n)
	)
	//
	var visit func(hir.ItemId)
	//
	visit = func(id hir.ItemId) {
		var decl = pkg.Item(id)
		//
		visited[id] = true
		onStack[id] = true
		deps[id] = nil
		//
		for _, callee := range calleesOf(pkg, decl) {
			if pkg.Item(callee).Intrinsic || onStack[callee] {
				// Intrinsics need no analysis, whilst back edges are cut.
				continue
			} else if !visited[callee] {
				visit(callee)
			}
			//
			deps[id] = append(deps[id], callee)
		}
		//
		onStack[id] = false
	}
	//
	for i := uint(0); i < n; i++ {
		if id := hir.ItemId(i); !visited[id] && !pkg.Item(id).Intrinsic {
			visit(id)
		}
	}
	//
	return deps
}

// Determine the callees of every specialization of a callable, without
// duplicates.
func calleesOf(pkg *hir.Package, decl *hir.CallableDecl) []hir.ItemId {
	var (
		seen    = make(map[hir.ItemId]bool)
		callees []hir.ItemId
	)
	//
	for _, spec := range decl.Specs {
		if s, ok := spec.Get(); ok {
			for _, callee := range pkg.Callees(s.Block) {
				if !seen[callee] {
					seen[callee] = true
					callees = append(callees, callee)
				}
			}
		}
	}
	//
	return callees
}

func scheduleJobs(pkg *hir.Package, run func(hir.ItemId) error) []*callableJob {
	var (
		deps = Schedule(pkg)
		jobs []*callableJob
	)
	//
	for i, end := uint(0), pkg.NumItems(); i < end; i++ {
		id := hir.ItemId(i)
		//
		if callees, ok := deps[id]; ok {
			job := &callableJob{id: id, run: run}
			//
			for _, callee := range callees {
				job.dependencies = append(job.dependencies, uint(callee))
			}
			//
			jobs = append(jobs, job)
		}
	}
	//
	return jobs
}
