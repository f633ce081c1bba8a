// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package storage

import (
	"fmt"
	"io"

	"github.com/sbinet/npyio"
)

// ReadEmbeddings decodes a 2-D float32 or float64 C-order .npy array into a
// row-major float64 slice.
func ReadEmbeddings(r io.Reader) (data []float64, rows, dim int, err error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read npy header: %w", err)
	}

	descr := nr.Header.Descr
	if descr.Fortran {
		return nil, 0, 0, fmt.Errorf("fortran-ordered arrays are not supported")
	}
	if len(descr.Shape) != 2 {
		return nil, 0, 0, fmt.Errorf("embedding matrix must be 2-D, got shape %v", descr.Shape)
	}
	rows, dim = descr.Shape[0], descr.Shape[1]

	switch descr.Type {
	case "<f8":
		var values []float64
		if err := nr.Read(&values); err != nil {
			return nil, 0, 0, fmt.Errorf("read float64 data: %w", err)
		}
		data = values
	case "<f4":
		var values []float32
		if err := nr.Read(&values); err != nil {
			return nil, 0, 0, fmt.Errorf("read float32 data: %w", err)
		}
		data = make([]float64, len(values))
		for i, v := range values {
			data[i] = float64(v)
		}
	default:
		return nil, 0, 0, fmt.Errorf("unsupported dtype %q (want <f4 or <f8)", descr.Type)
	}

	if len(data) != rows*dim {
		return nil, 0, 0, fmt.Errorf("npy data has %d values, shape wants %d", len(data), rows*dim)
	}
	return data, rows, dim, nil
}
