package slotrules

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

// Range полуоткрытый диапазон [Start, End) времени суток
type Range struct {
	Start types.TimeString
	End   types.TimeString
}

// RuleSet сетка бронируемых стартов внутри дня
// Сетка выровнена относительно полуночи: старт допустим, если minutes % step == 0
type RuleSet struct {
	ranges []Range
	step   int
}

// NewRuleSet проверяет диапазоны и создает набор правил
func NewRuleSet(ranges []Range, stepMinutes int) (*RuleSet, error) {
	if stepMinutes <= 0 {
		return nil, ErrInvalidStep
	}

	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	for _, r := range sorted {
		if err := r.Start.Validate(); err != nil {
			return nil, fmt.Errorf("%w: start %q: %v", ErrInvalidRange, r.Start, err)
		}
		if err := r.End.Validate(); err != nil {
			return nil, fmt.Errorf("%w: end %q: %v", ErrInvalidRange, r.End, err)
		}
		if !r.Start.IsBefore(r.End) {
			return nil, fmt.Errorf("%w: %s-%s", ErrInvalidRange, r.Start, r.End)
		}
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Minutes() < sorted[j].Start.Minutes()
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start.IsBefore(sorted[i-1].End) {
			return nil, fmt.Errorf("%w: %s-%s and %s-%s", ErrOverlappingRanges,
				sorted[i-1].Start, sorted[i-1].End, sorted[i].Start, sorted[i].End)
		}
	}

	return &RuleSet{ranges: sorted, step: stepMinutes}, nil
}

// Step возвращает шаг сетки в минутах
func (r *RuleSet) Step() int {
	return r.step
}

// EnumerateDailySlots возвращает все допустимые старты дня в порядке возрастания
func (r *RuleSet) EnumerateDailySlots() []types.TimeString {
	var slots []types.TimeString
	for _, rng := range r.ranges {
		first := ceilToStep(rng.Start.Minutes(), r.step)
		for m := first; m < rng.End.Minutes(); m += r.step {
			slots = append(slots, types.FromMinutes(m))
		}
	}
	return slots
}

// IsValid возвращает true, если t лежит в одном из диапазонов и попадает на сетку
func (r *RuleSet) IsValid(t types.TimeString) bool {
	minutes := t.Minutes()
	if minutes < 0 || minutes%r.step != 0 {
		return false
	}
	for _, rng := range r.ranges {
		if t.InRange(rng.Start, rng.End) {
			return true
		}
	}
	return false
}

func ceilToStep(minutes, step int) int {
	if rem := minutes % step; rem != 0 {
		return minutes + step - rem
	}
	return minutes
}
