package game

import (
	"github.com/Daniangio/golem/internal/catalog"
	"github.com/Daniangio/golem/internal/models"
)

// CardValueOptions returns the integers a played card may resolve to under the
// active effect set. Precedence:
//  1. prism card while a prism_fixed_zero effect is active -> {0}
//  2. prism card -> the five integers of its declared sub-range
//  3. zero-value card while a zero_jolly effect is active -> the inclusive
//     range between the effect's bounds, in either declared order
//  4. anything else -> the card's fixed value
func CardValueOptions(card models.PulseCard, effects []catalog.Effect) []int {
	if card.IsPrism() {
		if HasEffect(effects, catalog.EffectPrismFixedZero) {
			return []int{0}
		}
		if card.PrismRange == models.PrismRangeHigh {
			return []int{6, 7, 8, 9, 10}
		}
		return []int{1, 2, 3, 4, 5}
	}
	if card.Value == 0 {
		if e := findEffect(effects, catalog.EffectZeroJolly); e != nil {
			lo, hi := e.MinValue, e.MaxValue
			if lo > hi {
				lo, hi = hi, lo
			}
			opts := make([]int, 0, hi-lo+1)
			for v := lo; v <= hi; v++ {
				opts = append(opts, v)
			}
			return opts
		}
	}
	return []int{card.Value}
}

// BestFitTotal exhaustively enumerates every combination of the per-slot value
// options and returns the total that best fits the [min,max] window:
//  1. minimal distance outside the window (0 when inside),
//  2. then minimal absolute distance to the window midpoint,
//  3. then the lowest total, as an explicit deterministic tie-break.
//
// At most 6 slots of at most 5 options each, so the walk stays small.
func BestFitTotal(options [][]int, min, max int) int {
	mid := float64(min+max) / 2
	best := 0
	bestDist := -1
	bestMid := 0.0
	var walk func(slot, sum int)
	walk = func(slot, sum int) {
		if slot == len(options) {
			dist := 0
			if sum < min {
				dist = min - sum
			} else if sum > max {
				dist = sum - max
			}
			midDist := float64(sum) - mid
			if midDist < 0 {
				midDist = -midDist
			}
			if bestDist < 0 ||
				dist < bestDist ||
				(dist == bestDist && midDist < bestMid) ||
				(dist == bestDist && midDist == bestMid && sum < best) {
				best, bestDist, bestMid = sum, dist, midDist
			}
			return
		}
		for _, v := range options[slot] {
			walk(slot+1, sum+v)
		}
	}
	walk(0, 0)
	return best
}

// classify maps a total against a terrain window.
func classify(total, min, max int) models.Result {
	switch {
	case total < min:
		return models.ResultUndershoot
	case total > max:
		return models.ResultOvershoot
	default:
		return models.ResultSuccess
	}
}
