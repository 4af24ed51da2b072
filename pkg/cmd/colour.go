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
	"os"

	"github.com/qcompiler/qrca/pkg/util/termio"
	"golang.org/x/term"
)

// colourizer wraps text in ANSI escapes, but only when enabled (e.g. because
// output is going to a terminal).
type colourizer struct {
	enabled bool
}

// Construct a colourizer which is enabled only when stdout is a terminal.
func stdoutColourizer() colourizer {
	return colourizer{term.IsTerminal(int(os.Stdout.Fd()))}
}

// Fg wraps some text in a given foreground colour.
func (p colourizer) Fg(colour uint, text string) string {
	if !p.enabled {
		return text
	}
	//
	return termio.NewAnsiEscape().FgColour(colour).Wrap(text)
}

// Bold wraps some text in a bold escape.
func (p colourizer) Bold(text string) string {
	if !p.enabled {
		return text
	}
	//
	return termio.BoldAnsiEscape().Wrap(text)
}
