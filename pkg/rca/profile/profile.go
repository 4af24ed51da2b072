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
package profile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/rca"
)

// Profile describes the runtime capabilities of a particular target.
type Profile struct {
	// Name of this profile
	Name string
	// Runtime features supported by this profile
	Allowed rca.RuntimeFeatureFlags
}

// BASE is the profile of targets which support no runtime capabilities at
// all.  Programs for such targets must be entirely static.
var BASE = Profile{"base", rca.NO_FEATURES}

// ADAPTIVE is the profile of targets which support forward branching on
// measurement results, and simple classical computation over them.
var ADAPTIVE = Profile{"adaptive", rca.USE_OF_DYNAMIC_BOOL |
	rca.USE_OF_DYNAMIC_INT |
	rca.FORWARD_BRANCHING_ON_DYNAMIC_VALUE |
	rca.MEASUREMENT_WITHIN_DYNAMIC_SCOPE}

// UNRESTRICTED is the profile of targets which support every runtime
// capability.
var UNRESTRICTED = Profile{"unrestricted", ^rca.NO_FEATURES}

// PROFILES lists all known profiles.
var PROFILES = []Profile{BASE, ADAPTIVE, UNRESTRICTED}

// Lookup a profile by its name (case insensitive).
func Lookup(name string) (Profile, bool) {
	for _, p := range PROFILES {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	//
	return Profile{}, false
}

// Extend returns a copy of this profile which additionally supports the named
// runtime features.  The name of an extended profile records how many features
// were added, e.g. "adaptive+2".
func (p Profile) Extend(names ...string) (Profile, error) {
	var extra = rca.NO_FEATURES
	//
	for _, name := range names {
		f, ok := rca.ParseFeature(name)
		if !ok {
			return p, errors.Errorf("unknown runtime feature \"%s\"", name)
		}
		//
		extra = extra.Union(f)
	}
	//
	if added := extra.Difference(p.Allowed); !added.IsEmpty() {
		p.Name = fmt.Sprintf("%s+%d", p.Name, added.Count())
		p.Allowed = p.Allowed.Union(added)
	}
	//
	return p, nil
}

// Violation identifies an expression requiring runtime features which are not
// supported by a given profile.
type Violation struct {
	// Callable containing the expression
	Callable string
	// Specialization containing the expression
	Spec hir.SpecKind
	// Expression requiring the features
	Node hir.ExprId
	// Required features not supported by the profile
	Missing rca.RuntimeFeatureFlags
}

func (v Violation) String() string {
	return fmt.Sprintf("%s (%s), %s: requires %s", v.Callable, v.Spec, hir.ExprNode(v.Node), v.Missing)
}

// Check every (non-intrinsic) callable in a package against a given profile.
// Since the dynamism of inputs is not known, this checks the inherent compute
// kinds only.  Features are attributed to the expression which first requires
// them, rather than to every enclosing expression.
func Check(pkg *hir.Package, props *rca.PackageComputeProperties, profile Profile) []Violation {
	var violations []Violation
	//
	for i, end := uint(0), pkg.NumItems(); i < end; i++ {
		var decl = pkg.Item(hir.ItemId(i))
		//
		for kind, spec := range decl.Specs {
			if s, ok := spec.Get(); ok && !decl.Intrinsic {
				violations = checkSpec(pkg, props, profile, decl.Name, hir.SpecKind(kind), s.Block, violations)
			}
		}
	}
	//
	return violations
}

func checkSpec(pkg *hir.Package, props *rca.PackageComputeProperties, profile Profile, callable string,
	spec hir.SpecKind, block hir.BlockId, violations []Violation) []Violation {
	//
	var start = len(violations)
	//
	pkg.WalkBlock(block, func(e *hir.Expr) {
		var (
			features = inherentFeatures(props, e.Id)
			missing  rca.RuntimeFeatureFlags
		)
		// Discount features arising from subexpressions
		for _, child := range pkg.Children(e.Id) {
			features = features.Difference(inherentFeatures(props, child))
		}
		//
		if missing = features.Difference(profile.Allowed); !missing.IsEmpty() {
			violations = append(violations, Violation{callable, spec, e.Id, missing})
		}
	})
	//
	slices.SortFunc(violations[start:], func(l, r Violation) int {
		return int(l.Node) - int(r.Node)
	})
	//
	return violations
}

func inherentFeatures(props *rca.PackageComputeProperties, id hir.ExprId) rca.RuntimeFeatureFlags {
	if gs, ok := props.Expr(id); ok {
		return rca.FeaturesOf(gs.Inherent)
	}
	//
	return rca.NO_FEATURES
}
