package sampling

import (
	"errors"
	"fmt"
)

const (
	PositiveLabel = "True"
	NegativeLabel = "False"
)

// Balance
// Builds an equally distributed dataset with the same number of positive and
// negative records. With limit, that number is nbrInstances; otherwise it is
// the number of positive records. Either way it is capped by what both labels
// have available. The result is shuffled.
func Balance(table *Table, labelsColumn string, limit bool, nbrInstances int,
	rng RandomSource) (*Table, error) {
	if limit && nbrInstances <= 0 {
		return nil, fmt.Errorf("sampling: nbr_instances must be positive, "+
			"got %d", nbrInstances)
	}
	_, groups, err := table.GroupBy(labelsColumn)
	if err != nil {
		return nil, err
	}
	positives := groups[PositiveLabel]
	negatives := groups[NegativeLabel]
	if len(positives) == 0 || len(negatives) == 0 {
		return nil, errors.New("sampling: balancing needs both positive " +
			"and negative records")
	}

	n := len(positives)
	if limit {
		n = nbrInstances
	}
	n = minInt(n, minInt(len(positives), len(negatives)))

	records := make([][]string, 0, 2*n)
	records = append(records, shuffled(positives, rng)[:n]...)
	records = append(records, shuffled(negatives, rng)[:n]...)
	Shuffle(records, rng)
	return table.derive(records), nil
}
