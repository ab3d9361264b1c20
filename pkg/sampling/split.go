package sampling

const (
	TrainFraction = 0.6
	ValFraction   = 0.2
)

// Split holds the train, validation and test partitions of a table.
type Split struct {
	Train *Table
	Val   *Table
	Test  *Table
}

// SplitTable
// Splits a table 60/20/20 into train, validation and test sets, stratified
// on labelsColumn so each set keeps the label proportions of the input.
func SplitTable(table *Table, labelsColumn string,
	rng RandomSource) (*Split, error) {
	order, groups, err := table.GroupBy(labelsColumn)
	if err != nil {
		return nil, err
	}
	var train, val, test [][]string
	for _, label := range order {
		group := shuffled(groups[label], rng)
		numTrain := int(TrainFraction * float64(len(group)))
		numVal := int(ValFraction * float64(len(group)))
		train = append(train, group[:numTrain]...)
		val = append(val, group[numTrain:numTrain+numVal]...)
		test = append(test, group[numTrain+numVal:]...)
	}
	Shuffle(train, rng)
	Shuffle(val, rng)
	Shuffle(test, rng)
	return &Split{
		Train: table.derive(train),
		Val:   table.derive(val),
		Test:  table.derive(test),
	}, nil
}

// Upsample
// Resamples every minority label with replacement until each label has as
// many records as the largest one. Used on training sets only.
func Upsample(table *Table, labelsColumn string,
	rng RandomSource) (*Table, error) {
	order, groups, err := table.GroupBy(labelsColumn)
	if err != nil {
		return nil, err
	}
	largest := 0
	for _, label := range order {
		if len(groups[label]) > largest {
			largest = len(groups[label])
		}
	}
	records := make([][]string, 0, largest*len(order))
	for _, label := range order {
		group := groups[label]
		records = append(records, group...)
		for missing := largest - len(group); missing > 0; missing-- {
			records = append(records, group[rng.Intn(len(group))])
		}
	}
	Shuffle(records, rng)
	return table.derive(records), nil
}
