package envelope

import "errors"

var (
	errTooShort = errors.New("frame shorter than the minimum fixed-offset length")
	errBadTag   = errors.New("sig_flag byte was neither 0 nor 1")
)
