// Package seeds holds the pre-generated random seeds, one per repetition.
package seeds

import (
	"fmt"

	"thop-experiments/internal/domain"
)

var defaultSeeds = []int{
	269070, 99470, 126489, 644764, 547617, 642580, 73456, 462018, 858990, 756112,
	701531, 342080, 613485, 131654, 886148, 909040, 146518, 782904, 3075, 974703,
	170425, 531298, 253045, 488197, 394197, 519912, 606939, 480271, 117561, 900952,
	968235, 345118, 750253, 420440, 761205, 130467, 928803, 768798, 640300, 871462,
	639622, 90614, 187822, 594363, 193911, 846042, 680779, 344008, 759862, 661168,
	223420, 959508, 62985, 349296, 910428, 964420, 422964, 384194, 985214, 57575,
	639619, 90505, 435236, 465842, 102567, 189997, 741017, 611828, 699223, 335142,
	52119, 49256, 324523, 348215, 651525, 517999, 830566, 958538, 880422, 390645,
	148265, 807740, 934464, 524847, 408760, 668587, 257030, 751580, 90477, 594476,
	571216, 306614, 308010, 661191, 890429, 425031, 69108, 435783, 17725, 335928,
}

// Table is an immutable, duplicate-free sequence of seeds indexed by repetition.
// The same repetition reuses the same seed across instances and configurations.
type Table struct {
	seeds []int
}

// New copies values into a table, rejecting duplicates.
func New(values []int) (*Table, error) {
	seen := make(map[int]int, len(values))
	for i, v := range values {
		if j, ok := seen[v]; ok {
			return nil, fmt.Errorf("%w: %d at positions %d and %d", domain.ErrDuplicateSeed, v, j, i)
		}
		seen[v] = i
	}
	seeds := make([]int, len(values))
	copy(seeds, values)
	return &Table{seeds: seeds}, nil
}

// Default returns the table of 100 published seeds.
func Default() *Table {
	t, err := New(defaultSeeds)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of seeds.
func (t *Table) Len() int {
	return len(t.seeds)
}

// SeedFor returns the seed of a repetition.
func (t *Table) SeedFor(repetition int) (int, error) {
	if repetition < 0 || repetition >= len(t.seeds) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", domain.ErrRepetitionOutOfRange, repetition, len(t.seeds))
	}
	return t.seeds[repetition], nil
}

// Validate checks that the table can serve the given number of repetitions.
func (t *Table) Validate(repetitions int) error {
	if repetitions <= 0 {
		return fmt.Errorf("%w: repetitions must be > 0 (got %d)", domain.ErrInvalidConfig, repetitions)
	}
	_, err := t.SeedFor(repetitions - 1)
	return err
}
