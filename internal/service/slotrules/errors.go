package slotrules

import "errors"

var (
	// ErrInvalidRange возвращается, если начало диапазона не раньше конца
	ErrInvalidRange = errors.New("slotrules: range start must be before end")

	// ErrOverlappingRanges возвращается, если диапазоны пересекаются
	ErrOverlappingRanges = errors.New("slotrules: ranges overlap")

	// ErrInvalidStep возвращается при неположительном шаге сетки
	ErrInvalidStep = errors.New("slotrules: step must be positive")
)
