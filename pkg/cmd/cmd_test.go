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
package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/rca"
	"github.com/qcompiler/qrca/pkg/rca/core"
	"github.com/qcompiler/qrca/pkg/rca/profile"
	"github.com/qcompiler/qrca/pkg/util/termio"
)

func Test_Analyze_01(t *testing.T) {
	var (
		buf          bytes.Buffer
		pkg, props   = check_Analyze(t, "flip.json")
		output       string
		expectedSpec = []string{"Flip (body): inherent: ", "Main (body): inherent: "}
	)
	//
	printProperties(&buf, pkg, props, false, colourizer{false})
	output = buf.String()
	//
	for _, s := range expectedSpec {
		if !strings.Contains(output, s) {
			t.Errorf("missing \"%s\" in output:\n%s", s, output)
		}
	}
	//
	if strings.Contains(output, "expr#") || strings.Contains(output, "\033") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func Test_Analyze_02(t *testing.T) {
	var (
		buf        bytes.Buffer
		pkg, props = check_Analyze(t, "flip.json")
	)
	//
	printProperties(&buf, pkg, props, true, colourizer{false})
	// One line per callable, plus one per expression
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	//
	if n := strings.Count(buf.String(), "\texpr#"); n != len(props.ExprIds()) {
		t.Errorf("expected %d expressions, found %d", len(props.ExprIds()), n)
	} else if len(lines) < n+2 {
		t.Errorf("expected at least %d lines, found %d", n+2, len(lines))
	}
}

func Test_Check_01(t *testing.T) {
	var (
		buf        bytes.Buffer
		pkg, props = check_Analyze(t, "flip.json")
		violations = profile.Check(pkg, props, profile.ADAPTIVE)
	)
	//
	if !printViolations(&buf, profile.ADAPTIVE, violations, colourizer{false}) {
		t.Errorf("unexpected violations:\n%s", buf.String())
	} else if buf.String() != "ok (adaptive profile)\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func Test_Check_02(t *testing.T) {
	var (
		buf        bytes.Buffer
		pkg, props = check_Analyze(t, "loop.json")
		violations = profile.Check(pkg, props, profile.ADAPTIVE)
		output     string
	)
	//
	if printViolations(&buf, profile.ADAPTIVE, violations, colourizer{false}) {
		t.Fatalf("expected violations")
	}
	//
	output = buf.String()
	//
	if !strings.HasPrefix(output, "error: Repeat (body), expr#") ||
		!strings.Contains(output, "requires {LoopWithDynamicCondition}") ||
		!strings.HasSuffix(output, "1 violation(s) of adaptive profile\n") {
		t.Errorf("unexpected output:\n%s", output)
	}
}

func Test_Check_03(t *testing.T) {
	var (
		buf        bytes.Buffer
		violations = []profile.Violation{{Callable: "Foo", Spec: hir.BODY, Node: 3, Missing: rca.USE_OF_DYNAMIC_QUBIT}}
		expected   = "\033[31merror:\033[0m Foo (body), expr#3: requires {UseOfDynamicQubit}\n" +
			"1 violation(s) of base profile\n"
	)
	//
	printViolations(&buf, profile.BASE, violations, colourizer{true})
	//
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func Test_Check_04(t *testing.T) {
	var (
		buf        bytes.Buffer
		pkg, props = check_Analyze(t, "loop.json")
		target, _  = profile.ADAPTIVE.Extend("LoopWithDynamicCondition")
		violations = profile.Check(pkg, props, target)
	)
	//
	if !printViolations(&buf, target, violations, colourizer{false}) {
		t.Errorf("unexpected violations:\n%s", buf.String())
	} else if buf.String() != "ok (adaptive+1 profile)\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func Test_LoadPackage_01(t *testing.T) {
	if _, err := loadPackage("testdata/missing.json"); err == nil {
		t.Errorf("expected missing file to fail")
	}
}

func Test_Colour_01(t *testing.T) {
	var on, off = colourizer{true}, colourizer{false}
	//
	if s := on.Fg(termio.TERM_GREEN, "ok"); s != "\033[32mok\033[0m" {
		t.Errorf("unexpected colouring %q", s)
	} else if s := on.Bold("Foo"); s != "\033[1mFoo\033[0m" {
		t.Errorf("unexpected bold %q", s)
	} else if s := off.Fg(termio.TERM_BLUE, "ok") + off.Bold("Foo"); s != "okFoo" {
		t.Errorf("unexpected plain text %q", s)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Analyze(t *testing.T, filename string) (*hir.Package, *rca.PackageComputeProperties) {
	pkg, err := loadPackage("testdata/" + filename)
	//
	if err != nil {
		t.Fatalf("unexpected error loading %s: %s", filename, err)
	}
	//
	props, err := core.Analyze(pkg, core.DEFAULT_CONFIG)
	//
	if err != nil {
		t.Fatalf("unexpected error analysing %s: %s", filename, err)
	}
	//
	return pkg, props
}
