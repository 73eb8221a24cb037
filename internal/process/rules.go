package process

import (
	"github.com/Recker011/data-visualiser/internal/model"
)

// Payout shares. The subcontractor and a lone fixed-rate employee take
// half the job; two or more fixed-rate employees take a quarter each.
const (
	subcontractorShare  = 0.5
	soloFixedRateShare  = 0.5
	splitFixedRateShare = 0.25
)

// AllocatePayouts applies the payout rule list to a job's employee
// sequence, in order: subcontractor, fixed-rate tier, then every remaining
// employee is credited the full job value. Each rule claims the names it
// handles; later rules skip claimed names. The allocated total can exceed
// the job value when several full-value employees share a job.
func AllocatePayouts(employees []string, value float64) map[string]float64 {
	payouts := make(map[string]float64, len(employees))

	for _, name := range employees {
		if name == model.Subcontractor {
			payouts[name] = value * subcontractorShare
		}
	}

	var fixedPresent []string
	for _, name := range employees {
		if !model.IsFixedRate(name) {
			continue
		}
		if _, seen := payouts[name]; seen {
			continue
		}
		payouts[name] = 0 // claimed; share assigned below
		fixedPresent = append(fixedPresent, name)
	}
	share := soloFixedRateShare
	if len(fixedPresent) >= 2 {
		share = splitFixedRateShare
	}
	for _, name := range fixedPresent {
		payouts[name] = value * share
	}

	for _, name := range employees {
		if _, claimed := payouts[name]; claimed {
			continue
		}
		payouts[name] = value
	}

	return payouts
}
