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
	"os"

	"github.com/qcompiler/qrca/pkg/hir"
	"github.com/qcompiler/qrca/pkg/rca"
	"github.com/qcompiler/qrca/pkg/rca/core"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned integer flag, or exit if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string flag, or exit if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string array, or exit if an error arises.
func getStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Read and decode a package from a given JSON file, or exit if an error
// arises.
func readPackageFile(filename string) *hir.Package {
	pkg, err := loadPackage(filename)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return pkg
}

func loadPackage(filename string) (*hir.Package, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return hir.Decode(bytes)
}

// Analyse a given package, or exit if an (internal) error arises.
func analyzePackage(cmd *cobra.Command, pkg *hir.Package) *rca.PackageComputeProperties {
	var config = core.Config{Workers: getUint(cmd, "workers")}
	//
	props, err := core.Analyze(pkg, config)
	//
	if err != nil {
		log.Errorf("%+v", err)
		os.Exit(3)
	}
	//
	return props
}
