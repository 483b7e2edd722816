// =============================================================================
// PyPSA to H2RES Export Converter - NetCDF Array
// =============================================================================
//
// Array is the in-memory form of one NetCDF data variable: a flat float64
// buffer plus the named dimensions and their sizes. The converters index it
// by coordinate position, reorient it, and slice leading indexes off
// auxiliary dimensions; nothing here streams or mutates.
//
// =============================================================================

package ncdf

import (
	"fmt"
	"reflect"
)

// Array holds a multi-dimensional numeric variable in row-major order.
type Array struct {
	// Data is the flattened values, row-major over Shape.
	Data []float64

	// Dims are the dimension names, outermost first.
	Dims []string

	// Shape are the dimension sizes, aligned with Dims.
	Shape []int

	stride []int
}

// NewArray wraps row-major data in an Array and precomputes strides.
func NewArray(data []float64, dims []string, shape []int) (*Array, error) {
	if len(dims) != len(shape) {
		return nil, fmt.Errorf("dimension names (%d) do not match shape rank (%d)", len(dims), len(shape))
	}
	total := 1
	for _, n := range shape {
		total *= n
	}
	if total != len(data) {
		return nil, fmt.Errorf("shape %v holds %d values, got %d", shape, total, len(data))
	}

	stride := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		stride[i] = acc
		acc *= shape[i]
	}
	return &Array{Data: data, Dims: dims, Shape: shape, stride: stride}, nil
}

// At returns the value at the given per-dimension indexes.
// The number of indexes must equal the array rank.
func (a *Array) At(idx ...int) float64 {
	if len(idx) != len(a.Shape) {
		panic(fmt.Sprintf("ncdf: At called with %d indexes on rank-%d array", len(idx), len(a.Shape)))
	}
	flat := 0
	for i, v := range idx {
		flat += v * a.stride[i]
	}
	return a.Data[flat]
}

// HasDim reports whether the array carries the named dimension.
func (a *Array) HasDim(name string) bool {
	return a.dimIndex(name) >= 0
}

// Len returns the size of the named dimension, or an error if absent.
func (a *Array) Len(name string) (int, error) {
	i := a.dimIndex(name)
	if i < 0 {
		return 0, fmt.Errorf("array has no dimension %q (dims: %v)", name, a.Dims)
	}
	return a.Shape[i], nil
}

func (a *Array) dimIndex(name string) int {
	for i, d := range a.Dims {
		if d == name {
			return i
		}
	}
	return -1
}

// SelectFirst drops the named dimension by fixing it at index zero,
// mirroring an isel(dim=0). Returns the array unchanged if the dimension
// is absent.
func (a *Array) SelectFirst(name string) *Array {
	axis := a.dimIndex(name)
	if axis < 0 {
		return a
	}

	outDims := make([]string, 0, len(a.Dims)-1)
	outShape := make([]int, 0, len(a.Shape)-1)
	for i := range a.Dims {
		if i == axis {
			continue
		}
		outDims = append(outDims, a.Dims[i])
		outShape = append(outShape, a.Shape[i])
	}

	total := 1
	for _, n := range outShape {
		total *= n
	}
	out := make([]float64, total)

	inIdx := make([]int, len(a.Shape))
	outIdx := make([]int, len(outShape))
	for flat := 0; flat < total; flat++ {
		decompose(flat, outShape, outIdx)
		j := 0
		for i := range inIdx {
			if i == axis {
				inIdx[i] = 0
				continue
			}
			inIdx[i] = outIdx[j]
			j++
		}
		out[flat] = a.At(inIdx...)
	}

	res, _ := NewArray(out, outDims, outShape)
	return res
}

// Transpose returns a copy of the array with its dimensions reordered to
// the given names, which must be a permutation of the array's dimensions.
func (a *Array) Transpose(order ...string) (*Array, error) {
	if len(order) != len(a.Dims) {
		return nil, fmt.Errorf("transpose order %v does not match dims %v", order, a.Dims)
	}

	perm := make([]int, len(order))
	outShape := make([]int, len(order))
	for i, name := range order {
		axis := a.dimIndex(name)
		if axis < 0 {
			return nil, fmt.Errorf("transpose order names unknown dimension %q (dims: %v)", name, a.Dims)
		}
		perm[i] = axis
		outShape[i] = a.Shape[axis]
	}

	out := make([]float64, len(a.Data))
	inIdx := make([]int, len(order))
	outIdx := make([]int, len(order))
	for flat := 0; flat < len(out); flat++ {
		decompose(flat, outShape, outIdx)
		for i := range order {
			inIdx[perm[i]] = outIdx[i]
		}
		out[flat] = a.At(inIdx...)
	}

	return NewArray(out, append([]string(nil), order...), outShape)
}

// decompose splits a flat row-major index into per-dimension indexes.
func decompose(flat int, shape, idx []int) {
	for i := len(shape) - 1; i >= 0; i-- {
		idx[i] = flat % shape[i]
		flat /= shape[i]
	}
}

// =============================================================================
// VALUE FLATTENING
// =============================================================================

// flatten converts the nested-slice value returned by the NetCDF reader
// into a flat float64 buffer plus its shape. Any numeric element type is
// accepted.
func flatten(values interface{}) ([]float64, []int, error) {
	v := reflect.ValueOf(values)

	// Determine the shape from the nesting depth.
	var shape []int
	probe := v
	for probe.Kind() == reflect.Slice {
		shape = append(shape, probe.Len())
		if probe.Len() == 0 {
			break
		}
		probe = probe.Index(0)
	}

	total := 1
	for _, n := range shape {
		total *= n
	}
	data := make([]float64, 0, total)

	var walk func(val reflect.Value, depth int) error
	walk = func(val reflect.Value, depth int) error {
		if depth == len(shape) {
			f, err := toFloat(val)
			if err != nil {
				return err
			}
			data = append(data, f)
			return nil
		}
		if val.Kind() != reflect.Slice {
			return fmt.Errorf("ragged array: expected slice at depth %d, got %s", depth, val.Kind())
		}
		if val.Len() != shape[depth] {
			return fmt.Errorf("ragged array: dimension %d has lengths %d and %d", depth, shape[depth], val.Len())
		}
		for i := 0; i < val.Len(); i++ {
			if err := walk(val.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(v, 0); err != nil {
		return nil, nil, err
	}
	return data, shape, nil
}

// toFloat converts a numeric reflect value to float64.
func toFloat(val reflect.Value) (float64, error) {
	if val.Kind() == reflect.Interface {
		val = val.Elem()
	}
	switch val.Kind() {
	case reflect.Float32, reflect.Float64:
		return val.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(val.Uint()), nil
	default:
		return 0, fmt.Errorf("non-numeric value of kind %s", val.Kind())
	}
}
