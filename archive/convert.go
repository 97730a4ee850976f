package archive

import (
	"fmt"
	"math"
)

type number interface {
	~float64 | ~float32 | ~int64 | ~int32 | ~int16 | ~int8 | ~uint64 | ~uint32 | ~uint16 | ~uint8
}

func castSlice[T, S number](src []S) []T {
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = T(v)
	}
	return out
}

func floatsToInts[T ~int64 | ~int32, S ~float64 | ~float32](src []S) ([]T, error) {
	out := make([]T, len(src))
	for i, v := range src {
		f := float64(v)
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("value %v at position %d is not integral", f, i)
		}
		out[i] = T(f)
	}
	return out, nil
}

func boolsTo[T number](src []bool) []T {
	out := make([]T, len(src))
	for i, v := range src {
		if v {
			out[i] = 1
		}
	}
	return out
}

// convert widens (or narrows) a decoded slice to the requested element type.
// Floating point data only converts to an integer type when every value is
// integral.
func convert[T float64 | int32 | int64](raw any) ([]T, error) {
	var zero T
	_, wantFloat := any(zero).(float64)

	switch v := raw.(type) {
	case []float64:
		if wantFloat {
			return castSlice[T](v), nil
		}
		return floatsToIntsAny[T](v)
	case []float32:
		if wantFloat {
			return castSlice[T](v), nil
		}
		return floatsToIntsAny[T](v)
	case []int64:
		return castSlice[T](v), nil
	case []int32:
		return castSlice[T](v), nil
	case []int16:
		return castSlice[T](v), nil
	case []int8:
		return castSlice[T](v), nil
	case []uint64:
		return castSlice[T](v), nil
	case []uint32:
		return castSlice[T](v), nil
	case []uint16:
		return castSlice[T](v), nil
	case []uint8:
		return castSlice[T](v), nil
	case []bool:
		return boolsTo[T](v), nil
	}

	return nil, fmt.Errorf("cannot convert %T", raw)
}

func floatsToIntsAny[T float64 | int32 | int64, S ~float64 | ~float32](src []S) ([]T, error) {
	var zero T
	switch any(zero).(type) {
	case int32:
		out, err := floatsToInts[int32](src)
		if err != nil {
			return nil, err
		}
		return any(out).([]T), nil
	case int64:
		out, err := floatsToInts[int64](src)
		if err != nil {
			return nil, err
		}
		return any(out).([]T), nil
	}

	return castSlice[T](src), nil
}

func lenOf(raw any) int {
	switch v := raw.(type) {
	case []float64:
		return len(v)
	case []float32:
		return len(v)
	case []int64:
		return len(v)
	case []int32:
		return len(v)
	case []int16:
		return len(v)
	case []int8:
		return len(v)
	case []uint64:
		return len(v)
	case []uint32:
		return len(v)
	case []uint16:
		return len(v)
	case []uint8:
		return len(v)
	case []bool:
		return len(v)
	}

	return -1
}

// elements is the number of values implied by shape. A zero-dimensional
// array holds one value.
func elements(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func fortranToC(raw any, shape []int) any {
	switch v := raw.(type) {
	case []float64:
		return reorder(v, shape)
	case []float32:
		return reorder(v, shape)
	case []int64:
		return reorder(v, shape)
	case []int32:
		return reorder(v, shape)
	case []int16:
		return reorder(v, shape)
	case []int8:
		return reorder(v, shape)
	case []uint64:
		return reorder(v, shape)
	case []uint32:
		return reorder(v, shape)
	case []uint16:
		return reorder(v, shape)
	case []uint8:
		return reorder(v, shape)
	case []bool:
		return reorder(v, shape)
	}

	return raw
}

// reorder converts column-major data into row-major order.
func reorder[T any](src []T, shape []int) []T {
	out := make([]T, len(src))

	fStride := make([]int, len(shape))
	s := 1
	for d := range shape {
		fStride[d] = s
		s *= shape[d]
	}

	idx := make([]int, len(shape))
	for c := range out {
		off := 0
		for d := range shape {
			off += idx[d] * fStride[d]
		}
		out[c] = src[off]

		// Advance the row-major multi-index, last axis fastest
		for d := len(shape) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}

	return out
}
