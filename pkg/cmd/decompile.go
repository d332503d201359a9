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
	"os"

	"github.com/fhelabs/go-predicate/pkg/decompiler"
	"github.com/fhelabs/go-predicate/pkg/expr"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var decompileCmd = &cobra.Command{
	Use:   "decompile [flags] [binary_file]",
	Short: "decompile predicate bytecode back into readable form.",
	Long: `Decompile a compiled predicate (either a binary package, or raw hex
	 bytecode plus constants) back into an indented filter rendering, rejecting
	 malformed bytecode with a precise diagnostic.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		var (
			tree expr.Expression
			err  error
		)
		//
		if hexCode := GetString(cmd, "hex"); hexCode != "" {
			var constants []int64
			//
			if constants, err = ParseConstants(GetString(cmd, "constants")); err == nil {
				tree, err = decompiler.DecompileHex(hexCode, constants)
			}
		} else if len(args) == 1 {
			binfile := ReadBinaryFile(args[0])
			tree, err = decompiler.Decompile(&binfile.Program)
		} else {
			err = fmt.Errorf("expected a binary file or --hex bytecode")
		}
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		} else if tree == nil {
			fmt.Println("(no filter)")
		} else {
			fmt.Println(expr.Render(tree))
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(decompileCmd)
	decompileCmd.Flags().String("hex", "", "raw 0x-prefixed bytecode to decompile.")
	decompileCmd.Flags().String("constants", "", "comma-separated constant pool for --hex.")
}
