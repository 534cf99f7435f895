package performance

import (
	"sort"

	"adaptive-quiz-service/internal/domain"
)

// Thresholds for the difficulty bands. Both boundaries are inclusive on the
// balanced side: a ratio of exactly 0.50 or exactly 0.80 selects Balanced.
const (
	HardThreshold = 0.80
	EasyThreshold = 0.50
)

// Preset distributions, in percent.
var (
	hardBiased = domain.Distribution{Easy: 0, Medium: 40, Hard: 60}
	balanced   = domain.Distribution{Easy: 34, Medium: 33, Hard: 33}
	easyBiased = domain.Distribution{Easy: 60, Medium: 40, Hard: 0}
)

// SelectDistribution maps a performance ratio to the target difficulty mix for
// the next quiz. Learners with no history get the balanced mix.
func SelectDistribution(r Ratio) domain.Distribution {
	switch {
	case !r.Known:
		return balanced
	case r.Value > HardThreshold:
		return hardBiased
	case r.Value < EasyThreshold:
		return easyBiased
	default:
		return balanced
	}
}

// Counts resolves a Distribution into whole question counts summing exactly to
// total. Rounding leftovers are handed out one per band, largest share first,
// so the bias is preserved and no band is flooded.
func Counts(dist domain.Distribution, total int) domain.QuestionCounts {
	if total <= 0 || dist.Easy+dist.Medium+dist.Hard == 0 {
		return domain.QuestionCounts{}
	}
	counts := domain.QuestionCounts{
		Easy:   total * dist.Easy / 100,
		Medium: total * dist.Medium / 100,
		Hard:   total * dist.Hard / 100,
	}

	type share struct {
		pct   int
		count *int
	}
	shares := []share{
		{dist.Easy, &counts.Easy},
		{dist.Medium, &counts.Medium},
		{dist.Hard, &counts.Hard},
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].pct > shares[j].pct })

	for remainder := total - counts.Total(); remainder > 0; {
		for _, s := range shares {
			if remainder == 0 {
				break
			}
			if s.pct == 0 {
				continue
			}
			*s.count++
			remainder--
		}
	}
	return counts
}
