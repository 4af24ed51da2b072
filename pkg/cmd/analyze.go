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
	"fmt"
	"io"
	"os"

	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/rca"
	"github.com/qcompiler/qrca/pkg/util/termio"
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] package_file",
	Short: "Print the runtime capabilities required by each callable.",
	Long: `Print the runtime capabilities required by each specialization of
	each callable in a given package, as a function of which inputs are
	dynamic.  Packages are given as JSON files.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		pkg := readPackageFile(args[0])
		props := analyzePackage(cmd, pkg)
		//
		printProperties(os.Stdout, pkg, props, getFlag(cmd, "nodes"), stdoutColourizer())
	},
}

// Print the generator sets of every (non-intrinsic) callable and, optionally,
// of every expression within them.
func printProperties(w io.Writer, pkg *hir.Package, props *rca.PackageComputeProperties, nodes bool,
	colour colourizer) {
	//
	for i, end := uint(0), pkg.NumItems(); i < end; i++ {
		var (
			id      = hir.ItemId(i)
			decl    = pkg.Item(id)
			item, _ = props.Item(id)
		)
		//
		if decl.Intrinsic || item == nil {
			continue
		}
		//
		for kind, spec := range decl.Specs {
			gs, ok := item.Spec(hir.SpecKind(kind))
			if !ok {
				continue
			}
			//
			fmt.Fprintf(w, "%s (%s): %s\n", colour.Bold(decl.Name), hir.SpecKind(kind), gs)
			//
			if nodes {
				printNodes(w, pkg, props, spec.Unwrap().Block, colour)
			}
		}
	}
}

func printNodes(w io.Writer, pkg *hir.Package, props *rca.PackageComputeProperties, block hir.BlockId,
	colour colourizer) {
	//
	pkg.WalkBlock(block, func(e *hir.Expr) {
		if gs, ok := props.Expr(e.Id); ok {
			fmt.Fprintf(w, "\t%s: %s\n", colour.Fg(termio.TERM_BLUE, hir.ExprNode(e.Id).String()), gs)
		}
	})
}

func init() {
	analyzeCmd.Flags().Bool("nodes", false, "print the generator set of every expression")
	rootCmd.AddCommand(analyzeCmd)
}
