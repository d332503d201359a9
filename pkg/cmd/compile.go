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

	"github.com/fhelabs/go-predicate/pkg/bytecode"
	"github.com/fhelabs/go-predicate/pkg/compiler"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] filter_file",
	Short: "compile a filter description into predicate bytecode.",
	Long: `Compile a given filter description (YAML) into a bytecode program plus
	 constant pool, suitable for embedding in a job-submission payload.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		output := GetString(cmd, "output")
		// Parse filter description
		filter := ReadFilterFile(args[0])
		//
		tree, err := filter.Expression()
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		// An empty condition list compiles to the empty-filter sentinel.
		if tree == nil {
			fmt.Println(bytecode.EmptySentinel)
			return
		}
		//
		program := compiler.Compile(tree)
		//
		if GetFlag(cmd, "hex") {
			fmt.Println(bytecode.EncodeHex(program.Code))
			fmt.Printf("constants: %v\n", program.Constants)
		} else {
			WriteBinaryFile(bytecode.NewBinaryFile(program), output)
			log.Infof("wrote %s", output)
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "a.bin", "specify output file.")
	compileCmd.Flags().Bool("hex", false, "print hex bytecode and constants instead of writing a file.")
}
