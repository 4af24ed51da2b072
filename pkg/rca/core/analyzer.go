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
	"fmt"

	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/rca"
	"github.com/qcompiler/qrca/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Config determines how the analysis is carried out.
type Config struct {
	// Maximum number of callables to analyse concurrently.  Values of zero
	// or one indicate a sequential analysis.
	Workers uint
}

// DEFAULT_CONFIG analyses callables sequentially.
var DEFAULT_CONFIG = Config{Workers: 1}

// Analyze determines the compute properties of every (non-intrinsic) callable
// in a given package.  Callables are analysed callee first and, where
// permitted by the configuration, independent callables are analysed in
// parallel.  The results are returned in a frozen table.  All invariant
// violations encountered are reported together.
func Analyze(pkg *hir.Package, config Config) (*rca.PackageComputeProperties, error) {
	var (
		props = rca.NewPackageComputeProperties()
		stats = util.NewPerfStats()
		jobs  = scheduleJobs(pkg, func(id hir.ItemId) error {
			return analyzeCallable(pkg, id, props)
		})
	)
	//
	log.Debugf("analysing %d callables with %d workers", len(jobs), max(config.Workers, 1))
	//
	if err := util.ParExec(jobs, config.Workers); err != nil {
		return nil, err
	}
	//
	props.Freeze()
	stats.Log("Runtime capabilities analysis")
	//
	return props, nil
}

// Analyse every specialization of a given callable, and record the results.
func analyzeCallable(pkg *hir.Package, id hir.ItemId, props *rca.PackageComputeProperties) error {
	var (
		decl   = pkg.Item(id)
		stats  = util.NewPerfStats()
		result rca.CallableComputeProperties
	)
	//
	for kind, spec := range decl.Specs {
		if s, ok := spec.Get(); ok {
			gs, err := analyzeSpec(pkg, decl, s, props)
			if err != nil {
				return err
			}
			//
			result.Specs[kind] = &gs
		}
	}
	//
	stats.Log(fmt.Sprintf("Analysing %s", decl.Name))
	//
	return props.SetItem(id, &result)
}

// Analyse a single specialization by populating each of its application
// instances in turn, before closing them into generator sets.
func analyzeSpec(pkg *hir.Package, decl *hir.CallableDecl, spec hir.SpecDecl,
	props *rca.PackageComputeProperties) (gs rca.ApplicationGeneratorSet, err error) {
	//
	var (
		params  = hir.InputParams(decl)
		builder = rca.NewGeneratorSetsBuilder(decl.Name, params, rca.NewControlLocal(pkg, spec), decl.Output)
	)
	//
	if err = populate(pkg, decl.Name, spec.Block, builder, props); err != nil {
		return gs, err
	}
	//
	main, err := builder.CloseAndSave(util.Some(spec.Block), props)
	if err != nil {
		return gs, err
	}
	//
	log.Debugf("%s: %s", decl.Name, main.Unwrap().String())
	//
	return main.Unwrap(), nil
}

// Walk the given block once for every application instance of the builder,
// converting any invariant violation encountered into an error.
func populate(pkg *hir.Package, callable string, block hir.BlockId, builder *rca.GeneratorSetsBuilder,
	props *rca.PackageComputeProperties) (err error) {
	//
	defer rca.CatchInvariant(callable, &err)
	//
	for _, instance := range builder.Instances() {
		v := visitor{pkg, props, instance}
		v.visitSpec(block)
	}
	//
	return nil
}
