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
	"strconv"
	"strings"

	"github.com/fhelabs/go-predicate/pkg/bytecode"
	"github.com/fhelabs/go-predicate/pkg/expr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// GetFlag gets an expected flag, or panics if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panics if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected uint flag, or panics if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// FilterFile is the on-disk (YAML) description of a filter: a flat condition
// list plus the connective used to fold it into a tree.
type FilterFile struct {
	// Mode determines how conditions are combined ("and" or "or").
	Mode string `yaml:"mode"`
	// Conditions gives the flat list of filter conditions.
	Conditions []FilterCondition `yaml:"conditions"`
}

// FilterCondition is a single condition within a FilterFile.
type FilterCondition struct {
	Field   uint16 `yaml:"field"`
	Op      string `yaml:"op"`
	Literal int64  `yaml:"literal"`
	Negate  bool   `yaml:"negate"`
}

// Expression folds the conditions of this file into a single expression tree,
// returning nil for an empty condition list ("no filter").
func (p *FilterFile) Expression() (expr.Expression, error) {
	mode := expr.AND
	// An absent mode defaults to conjunction.
	if p.Mode != "" {
		var err error
		//
		if mode, err = expr.ParseLogicalOp(p.Mode); err != nil {
			return nil, err
		}
	}
	//
	conditions := make([]expr.Condition, len(p.Conditions))
	//
	for i, c := range p.Conditions {
		op, err := expr.ParseComparisonOp(c.Op)
		if err != nil {
			return nil, err
		}
		//
		conditions[i] = expr.Condition{Field: c.Field, Op: op, Literal: c.Literal, Negate: c.Negate}
	}
	//
	return expr.FromConditions(conditions, mode), nil
}

// ReadFilterFile parses a YAML filter description from a given file.
func ReadFilterFile(filename string) *FilterFile {
	var filter FilterFile
	//
	data, err := os.ReadFile(filename)
	if err == nil {
		err = yaml.UnmarshalStrict(data, &filter)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return &filter
}

// ReadBinaryFile reads a compiled predicate package from a given file.
func ReadBinaryFile(filename string) *bytecode.BinaryFile {
	var binfile bytecode.BinaryFile
	//
	data, err := os.ReadFile(filename)
	if err == nil {
		err = binfile.UnmarshalBinary(data)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return &binfile
}

// WriteBinaryFile writes a compiled predicate package to a given file.
func WriteBinaryFile(binfile *bytecode.BinaryFile, filename string) {
	data, err := binfile.MarshalBinary()
	if err == nil {
		err = os.WriteFile(filename, data, 0644)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

// ParseConstants parses a comma-separated list of integer constants, as
// supplied alongside raw hex bytecode.
func ParseConstants(input string) ([]int64, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	//
	var constants []int64
	//
	for _, item := range strings.Split(input, ",") {
		c, err := strconv.ParseInt(strings.TrimSpace(item), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed constant %q", item)
		}
		//
		constants = append(constants, c)
	}
	//
	return constants, nil
}

// ParseRow parses a comma-separated list of field values forming a single
// plaintext row.
func ParseRow(input string) ([]int64, error) {
	return ParseConstants(input)
}
