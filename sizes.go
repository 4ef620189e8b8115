package setpager

const (
	DefaultSize = 10
	MaxSize     = 100
)

// IsNormalizedSizeMax clamps a requested page size into (0, maxSize] and
// reports whether the input was already within bounds.
func IsNormalizedSizeMax(size int, maxSize int) (int, bool) {
	if size <= 0 {
		return DefaultSize, false
	} else if size > maxSize {
		return maxSize, false
	}

	return size, true
}

func NormalizeSizeMax(size int, maxSize int) int {
	ret, _ := IsNormalizedSizeMax(size, maxSize)
	return ret
}

func NormalizeSize(size int) int {
	return NormalizeSizeMax(size, MaxSize)
}

// sizeFromParams extracts and normalizes ParamSize. Numeric JSON payloads
// may deliver the size as int64 or float64, both are accepted.
func sizeFromParams(p Params) int {
	switch v := p[ParamSize].(type) {
	case int:
		return NormalizeSize(v)
	case int64:
		return NormalizeSize(int(v))
	case float64:
		return NormalizeSize(int(v))
	default:
		return DefaultSize
	}
}
