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
package bytecode

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// EmptySentinel is the hex rendering of the empty program, denoting "no
// filter" at the transport boundary.
const EmptySentinel = "0x"

// EncodeHex renders raw bytecode as a 0x-prefixed hex string for transport.
// The empty program encodes as the bare sentinel "0x".
func EncodeHex(code []byte) string {
	return EmptySentinel + hex.EncodeToString(code)
}

// DecodeHex parses a 0x-prefixed hex string back into raw bytecode.  The bare
// sentinel "0x" yields an empty byte sequence, which callers must
// short-circuit rather than hand to the decompiler.
func DecodeHex(input string) ([]byte, error) {
	if !strings.HasPrefix(input, EmptySentinel) {
		return nil, fmt.Errorf("bytecode string missing 0x prefix (%q)", input)
	}
	//
	code, err := hex.DecodeString(input[len(EmptySentinel):])
	if err != nil {
		return nil, fmt.Errorf("malformed bytecode string: %w", err)
	}
	//
	return code, nil
}
