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
package expr

import (
	"fmt"
	"strings"
)

// ParseComparisonOp maps an operator name (or symbol) onto the corresponding
// comparison operator, accepting both the mnemonic form ("gt") and the
// symbolic form (">").
func ParseComparisonOp(input string) (ComparisonOp, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "gt", ">":
		return GT, nil
	case "ge", ">=":
		return GE, nil
	case "lt", "<":
		return LT, nil
	case "le", "<=":
		return LE, nil
	case "eq", "==", "=":
		return EQ, nil
	case "ne", "!=":
		return NE, nil
	}
	//
	return 0, fmt.Errorf("unknown comparison operator %q", input)
}

// ParseLogicalOp maps a connective name onto the corresponding logical
// operator.
func ParseLogicalOp(input string) (LogicalOp, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "and":
		return AND, nil
	case "or":
		return OR, nil
	}
	//
	return 0, fmt.Errorf("unknown logical operator %q", input)
}
