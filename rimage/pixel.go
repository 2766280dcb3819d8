package rimage

import (
	"math"
	"reflect"
)

// Pixel is the set of scalar types an Image can hold.
type Pixel interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// MaxValue returns the largest value representable by T.
func MaxValue[T Pixel]() T {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Uint8:
		return fromUint[T](math.MaxUint8)
	case reflect.Uint16:
		return fromUint[T](math.MaxUint16)
	case reflect.Uint32:
		return fromUint[T](math.MaxUint32)
	case reflect.Uint64:
		return fromUint[T](math.MaxUint64)
	case reflect.Int8:
		return fromInt[T](math.MaxInt8)
	case reflect.Int16:
		return fromInt[T](math.MaxInt16)
	case reflect.Int32:
		return fromInt[T](math.MaxInt32)
	case reflect.Int64:
		return fromInt[T](math.MaxInt64)
	case reflect.Float32:
		return fromFloat[T](math.MaxFloat32)
	default:
		return fromFloat[T](math.MaxFloat64)
	}
}

// LowestValue returns the most negative value representable by T: zero for unsigned types and
// the negated maximum for floating point types.
func LowestValue[T Pixel]() T {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int8:
		return fromInt[T](math.MinInt8)
	case reflect.Int16:
		return fromInt[T](math.MinInt16)
	case reflect.Int32:
		return fromInt[T](math.MinInt32)
	case reflect.Int64:
		return fromInt[T](math.MinInt64)
	case reflect.Float32:
		return fromFloat[T](-math.MaxFloat32)
	case reflect.Float64:
		return fromFloat[T](-math.MaxFloat64)
	default:
		return 0
	}
}

// ConvertFloat converts v to T, clamping to the representable range of T.
func ConvertFloat[T Pixel](v float64) T {
	if hi := float64(MaxValue[T]()); v > hi {
		v = hi
	}
	if lo := float64(LowestValue[T]()); v < lo {
		v = lo
	}
	return T(v)
}

func fromUint[T Pixel](v uint64) T {
	return T(v)
}

func fromInt[T Pixel](v int64) T {
	return T(v)
}

func fromFloat[T Pixel](v float64) T {
	return T(v)
}
