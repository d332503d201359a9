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
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
)

// BINFILE_MAJOR_VERSION gives the major version of the binary file format.
// Files whose major version differs from this are rejected outright.
const BINFILE_MAJOR_VERSION uint16 = 1

// BINFILE_MINOR_VERSION gives the minor version of the binary file format.
const BINFILE_MINOR_VERSION uint16 = 0

// PREDBINARY is used as the file identifier for binary file types.  This just
// helps distinguish predicate packages from arbitrary binary files.
var PREDBINARY [8]byte = [8]byte{'p', 'r', 'e', 'd', 'b', 'i', 'n', 0}

// BinaryFile is a programmatic representation of an underlying binary file,
// packaging a compiled predicate program together with a versioned header.
type BinaryFile struct {
	// Header for the binary file.
	Header Header
	// The compiled program itself.
	Program Program
}

// NewBinaryFile constructs a new binary file around a given program, with the
// default header for the currently supported version.
func NewBinaryFile(program *Program) *BinaryFile {
	return &BinaryFile{
		Header{PREDBINARY, BINFILE_MAJOR_VERSION, BINFILE_MINOR_VERSION},
		*program,
	}
}

// Header provides a structured header for the binary file format, supporting
// versioning of the encoding which follows it.
type Header struct {
	Identifier   [8]byte
	MajorVersion uint16
	MinorVersion uint16
}

// IsCompatible determines whether a decoded header identifies an encoding
// this implementation can read.
func (p *Header) IsCompatible() bool {
	return p.Identifier == PREDBINARY && p.MajorVersion == BINFILE_MAJOR_VERSION
}

// MarshalBinary converts the Header into a sequence of bytes.  Observe that
// we don't use gob encoding here to avoid tying the header to that scheme.
func (p *Header) MarshalBinary() ([]byte, error) {
	var (
		buffer     bytes.Buffer
		majorBytes [2]byte
		minorBytes [2]byte
	)
	// Marshall version numbers
	binary.BigEndian.PutUint16(majorBytes[:], p.MajorVersion)
	binary.BigEndian.PutUint16(minorBytes[:], p.MinorVersion)
	// Write identifier
	buffer.Write(p.Identifier[:])
	// Write major version
	buffer.Write(majorBytes[:])
	// Write minor version
	buffer.Write(minorBytes[:])
	// Done
	return buffer.Bytes(), nil
}

// UnmarshalBinary initialises this Header from a given buffer.  This should
// match exactly the encoding above.
func (p *Header) UnmarshalBinary(buffer *bytes.Buffer) error {
	var (
		majorBytes [2]byte
		minorBytes [2]byte
	)
	// Read identifier
	if n, err := buffer.Read(p.Identifier[:]); err != nil {
		return err
	} else if n != len(p.Identifier) {
		return errors.New("malformed binary file")
	}
	// Read major version
	if n, err := buffer.Read(majorBytes[:]); err != nil {
		return err
	} else if n != len(majorBytes) {
		return errors.New("malformed binary file")
	}
	// Read minor version
	if n, err := buffer.Read(minorBytes[:]); err != nil {
		return err
	} else if n != len(minorBytes) {
		return errors.New("malformed binary file")
	}
	//
	p.MajorVersion = binary.BigEndian.Uint16(majorBytes[:])
	p.MinorVersion = binary.BigEndian.Uint16(minorBytes[:])
	// Done
	return nil
}

// MarshalBinary converts the BinaryFile into a sequence of bytes.
func (p *BinaryFile) MarshalBinary() ([]byte, error) {
	var (
		buffer  bytes.Buffer
		encoder = gob.NewEncoder(&buffer)
	)
	//
	headerBytes, err := p.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	//
	buffer.Write(headerBytes)
	// Gob-encode the program after the header
	if err := encoder.Encode(&p.Program); err != nil {
		return nil, err
	}
	//
	return buffer.Bytes(), nil
}

// UnmarshalBinary initialises this BinaryFile from a given set of data bytes.
func (p *BinaryFile) UnmarshalBinary(data []byte) error {
	buffer := bytes.NewBuffer(data)
	//
	if err := p.Header.UnmarshalBinary(buffer); err != nil {
		return err
	}
	//
	if !p.Header.IsCompatible() {
		return fmt.Errorf("incompatible binary file (v%d.%d)", p.Header.MajorVersion, p.Header.MinorVersion)
	}
	//
	decoder := gob.NewDecoder(buffer)
	//
	return decoder.Decode(&p.Program)
}
