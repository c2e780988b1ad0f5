// Package plan decides the playback order needed to cover a target duration.
package plan

import (
	"math/rand"
	"time"

	"newsvid/types"
)

// Planner builds clip plans by shuffling the candidate set. The rand
// source is injected so tests can fix the seed.
type Planner struct {
	rng *rand.Rand
}

// New returns a Planner seeded from the current time.
func New() *Planner {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Planner with a fixed seed.
func NewSeeded(seed int64) *Planner {
	return &Planner{rng: rand.New(rand.NewSource(seed))}
}

// Plan appends shuffled copies of the full clip set until the summed
// duration reaches targetDuration, stopping at the first entry that
// crosses the threshold. Each pass gets a fresh permutation, so within
// one pass no clip repeats before every clip has played, but the order
// differs from pass to pass.
//
// An empty clip set or a non-positive target yields an empty plan; the
// caller must treat that as a precondition failure.
func (p *Planner) Plan(clips []types.MediaInfo, targetDuration float64) types.ClipPlan {
	if len(clips) == 0 || targetDuration <= 0 {
		return nil
	}

	// A set with zero total duration can never cover a positive target.
	var setDuration float64
	for _, c := range clips {
		setDuration += c.Duration
	}
	if setDuration <= 0 {
		return nil
	}

	var out types.ClipPlan
	var current float64

	for current < targetDuration {
		shuffled := make([]types.MediaInfo, len(clips))
		copy(shuffled, clips)
		p.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		for _, info := range shuffled {
			out = append(out, info)
			current += info.Duration
			if current >= targetDuration {
				break
			}
		}
	}

	return out
}
