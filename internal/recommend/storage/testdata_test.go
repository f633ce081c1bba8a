// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// encodeNPY builds a version 1.0 .npy file for a rows x dim matrix.
func encodeNPY(dtype string, rows, dim int, values []float64) []byte {
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%d, %d), }", dtype, rows, dim)
	// magic(6) + version(2) + header length(2) + header + '\n' is a multiple of 64
	pad := 64 - (10+len(header)+1)%64
	if pad == 64 {
		pad = 0
	}
	header += strings.Repeat(" ", pad) + "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	for _, v := range values {
		switch dtype {
		case "<f4":
			_ = binary.Write(&buf, binary.LittleEndian, math.Float32bits(float32(v)))
		default:
			_ = binary.Write(&buf, binary.LittleEndian, math.Float64bits(v))
		}
	}
	return buf.Bytes()
}
