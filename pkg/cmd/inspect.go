// Copyright FHE Labs Ltd.
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
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] binary_file",
	Short: "inspect a compiled predicate package.",
	Long: `Inspect a compiled predicate package, printing its header, a disassembly
	 listing of the instruction stream, and the constant pool.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		binfile := ReadBinaryFile(args[0])
		separator := strings.Repeat("-", separatorWidth())
		//
		fmt.Printf("package v%d.%d, %d bytes, %d constants\n",
			binfile.Header.MajorVersion, binfile.Header.MinorVersion,
			len(binfile.Program.Code), len(binfile.Program.Constants))
		fmt.Println(separator)
		fmt.Print(binfile.Program.Disassemble())
		fmt.Println(separator)
		//
		for i, c := range binfile.Program.Constants {
			fmt.Printf("const[%d] = %d\n", i, c)
		}
	},
}

// separatorWidth determines how wide separator lines should be, following the
// terminal width when stdout is a terminal.
func separatorWidth() int {
	if term.IsTerminal(1) {
		if width, _, err := term.GetSize(1); err == nil && width > 0 {
			return width
		}
	}
	//
	return 40
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(inspectCmd)
}
