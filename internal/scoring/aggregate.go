package scoring

import (
	"math"
	"sort"

	"github.com/spigell/resume-scorer/internal/checklist"
	"github.com/spigell/resume-scorer/internal/feedback"
	"github.com/spigell/resume-scorer/internal/resume"
)

const (
	MinScore = 1.0
	MaxScore = 10.0

	DefaultRequiredCap = 5.0

	// OptimizedScore is the lowest total an optimized resume may have.
	OptimizedScore = 8.0
)

// SubScore maps the passed share of a section's weight onto 1..10, applies
// the required-item cap and rounds to one decimal. Integer arithmetic keeps
// the rounding exact.
func SubScore(passedWeight, totalWeight int, requiredFailed bool, requiredCap float64) float64 {
	if totalWeight <= 0 {
		return MinScore
	}
	passedWeight = max(0, min(passedWeight, totalWeight))

	// tenths = round(10 * (1 + 9*passed/total)), half up.
	num := 10 * (totalWeight + 9*passedWeight)
	tenths := (2*num + totalWeight) / (2 * totalWeight)
	score := float64(tenths) / 10

	if requiredFailed && score > requiredCap {
		score = round1(requiredCap)
	}
	return score
}

// sectionScore reduces a section's verdicts to its sub-score.
func sectionScore(verdicts []checklist.Verdict, requiredCap float64) float64 {
	var passed, total int
	var requiredFailed bool
	for _, v := range verdicts {
		total += v.Item.Weight
		if v.Result.Passed {
			passed += v.Item.Weight
			continue
		}
		if v.Item.Required {
			requiredFailed = true
		}
	}
	return SubScore(passed, total, requiredFailed, requiredCap)
}

// Total is the weighted mean of the already rounded sub-scores, clamped to
// 1..10 and rounded to one decimal. Sections without a positive weight do not
// contribute; an empty breakdown scores the minimum.
func Total(breakdown map[resume.Section]float64, weights map[resume.Section]float64) float64 {
	keys := make([]string, 0, len(breakdown))
	for k := range breakdown {
		keys = append(keys, string(k))
	}
	// Fixed summation order keeps the float result reproducible.
	sort.Strings(keys)

	var sum, weightSum float64
	for _, k := range keys {
		w := weights[resume.Section(k)]
		if w <= 0 {
			continue
		}
		sum += w * breakdown[resume.Section(k)]
		weightSum += w
	}
	if weightSum == 0 {
		return MinScore
	}
	return clamp(round1(sum / weightSum))
}

func round1(x float64) float64 {
	return math.Round(x*10+1e-9) / 10
}

func clamp(x float64) float64 {
	return math.Max(MinScore, math.Min(MaxScore, x))
}

// completion returns the rounded share of evaluated items that passed and
// whether every required item passed.
func completion(sections []feedback.Section) (int, bool) {
	var passed, total int
	requiredPassed := true
	for _, s := range sections {
		for _, v := range s.Verdicts {
			total++
			if v.Result.Passed {
				passed++
			} else if v.Item.Required {
				requiredPassed = false
			}
		}
	}
	if total == 0 {
		return 0, false
	}
	return (200*passed + total) / (2 * total), requiredPassed
}
