package catmull

import (
	"fmt"

	"github.com/npillmayer/casteljau"
)

// Extend an array/slice of points to make room for index i.
// Will do nothing if the array is already large enough.
func extendC(arr []casteljau.Point, i int, deflt casteljau.Point) []casteljau.Point {
	l := len(arr)
	if i >= l {
		arr = append(arr, make([]casteljau.Point, i-l+1)...)
		for ; i >= l; i-- {
			arr[i] = deflt
		}
	}
	return arr
}

// Get a value from an array/slice if present, default value deflt otherwise.
func getC(arr []casteljau.Point, i int, deflt casteljau.Point) casteljau.Point {
	if i < 0 || i >= len(arr) {
		return deflt
	}
	return arr[i]
}

func ptstring(p casteljau.Point, iscontrol bool) string {
	if IsUnknown(p) {
		return "(<unknown>)"
	}
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f)", round(p.X), round(p.Y))
	}
	return fmt.Sprintf("(%.4g,%.4g)", round(p.X), round(p.Y))
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int64(x*10000.0+0.5)) / 10000.0
	}
	return float64(int64(x*10000.0-0.5)) / 10000.0
}
