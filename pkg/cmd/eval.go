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

	"github.com/fhelabs/go-predicate/pkg/interpreter"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] binary_file row",
	Short: "evaluate a compiled predicate against a plaintext row.",
	Long: `Evaluate a compiled predicate package against a single plaintext row
	 (comma-separated field values), printing whether the row is accepted.  This
	 is a reference evaluator for audit purposes; production evaluation happens
	 over encrypted values elsewhere.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		binfile := ReadBinaryFile(args[0])
		//
		row, err := ParseRow(args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		accepted, err := interpreter.Evaluate(&binfile.Program, row)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		fmt.Println(accepted)
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(evalCmd)
}
