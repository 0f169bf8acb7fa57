package edn

import (
	"math"
	"strconv"
)

// numberValue converts a lexically valid numeric literal (suffix already
// removed). Integers outside the int64 range become Float; so do both
// Reader stages, which keeps precision loss the same for the same text.
func numberValue(lit string, isFloat bool) Value {
	if !isFloat {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(i)
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return Float(f)
		}
		return Float(math.NaN())
	}
	return Float(f)
}
