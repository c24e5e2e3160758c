package pgrepo

import "math"

const defaultListLimit = 50

// pageArgs clamps pagination to int32 and substitutes the default page size for zero.
func pageArgs(limit, offset uint) (int32, int32) {
	if limit == 0 {
		limit = defaultListLimit
	}
	return clampInt32(limit), clampInt32(offset)
}

func clampInt32(val uint) int32 {
	if val > uint(math.MaxInt32) {
		return math.MaxInt32
	}
	return int32(val)
}

func nullIfEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
