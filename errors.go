// Copyright 2020 Aleksandr Demakin. All rights reserved.

package genfloat

import "errors"

var (
	// ErrInvalidParameter is returned for exponent or significand widths out of the supported range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNotFinite is returned when an exact conversion is requested for an infinity or a NaN.
	ErrNotFinite = errors.New("value is not finite")
	// ErrTooLarge is returned when an exact representation would not fit in memory limits.
	ErrTooLarge = errors.New("value out of range")
)
