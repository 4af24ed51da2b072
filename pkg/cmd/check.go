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
	"strings"

	"github.com/qcompiler/qrca/pkg/rca/profile"
	"github.com/qcompiler/qrca/pkg/util/termio"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] package_file",
	Short: "Check a package can be executed on a given target profile.",
	Long: `Check that every callable in a given package requires only those runtime
	capabilities supported by a given target profile.  Packages are given as
	JSON files.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		name := getString(cmd, "profile")
		target, ok := profile.Lookup(name)
		//
		if !ok {
			fmt.Printf("unknown profile \"%s\" (expected one of %s)\n", name, profileNames())
			os.Exit(2)
		}
		//
		target, err := target.Extend(getStringArray(cmd, "allow")...)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		pkg := readPackageFile(args[0])
		props := analyzePackage(cmd, pkg)
		violations := profile.Check(pkg, props, target)
		//
		if !printViolations(os.Stdout, target, violations, stdoutColourizer()) {
			os.Exit(4)
		}
	},
}

// Print a summary of any profile violations, returning true if there were
// none.
func printViolations(w io.Writer, target profile.Profile, violations []profile.Violation,
	colour colourizer) bool {
	//
	for _, v := range violations {
		fmt.Fprintf(w, "%s %s\n", colour.Fg(termio.TERM_RED, "error:"), v)
	}
	//
	if len(violations) == 0 {
		fmt.Fprintf(w, "%s (%s profile)\n", colour.Fg(termio.TERM_GREEN, "ok"), target.Name)
		return true
	}
	//
	fmt.Fprintf(w, "%d violation(s) of %s profile\n", len(violations), target.Name)
	//
	return false
}

func profileNames() string {
	var names []string
	//
	for _, p := range profile.PROFILES {
		names = append(names, p.Name)
	}
	//
	return strings.Join(names, ", ")
}

func init() {
	checkCmd.Flags().StringP("profile", "p", "adaptive", "target profile (base, adaptive or unrestricted)")
	checkCmd.Flags().StringArray("allow", []string{}, "additional runtime feature supported by the target (e.g. LoopWithDynamicCondition)")
	rootCmd.AddCommand(checkCmd)
}
