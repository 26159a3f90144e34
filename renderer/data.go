package renderer

import (
	"unsafe"

	"glkit/gl"
)

// Floats is implemented by values that flatten to a float array, such as
// matrices.
type Floats interface {
	Floats() []float32
}

// rawBytes views s as bytes without copying.
func rawBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(zero)))
}

// bufferBytes converts buffer data to bytes. data is a typed slice, or an
// int element count of type ty that allocates zeroed storage.
func bufferBytes(ty gl.Enum, data any) ([]byte, bool) {
	switch d := data.(type) {
	case []byte:
		return d, true
	case []int8:
		return rawBytes(d), true
	case []int16:
		return rawBytes(d), true
	case []uint16:
		return rawBytes(d), true
	case []int32:
		return rawBytes(d), true
	case []uint32:
		return rawBytes(d), true
	case []float32:
		return rawBytes(d), true
	case Floats:
		return rawBytes(d.Floats()), true
	case int:
		size := gl.TypeSize(ty)
		if size == 0 {
			size = 1
		}
		return make([]byte, d*size), true
	}
	return nil, false
}
