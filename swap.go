package natural_dyck

import "fmt"

// RandomSource
// The subset of *rand.Rand used to pick swap candidates.
type RandomSource interface {
	Intn(n int) int
}

// SwapIndex
// Positions exchanged to build a negative instance. Peanut held the
// close-peanut sentence and Chocolate the close-chocolate sentence before the
// swap.
type SwapIndex struct {
	Peanut    int
	Chocolate int
}

// String renders the pair the way the dataset stores it, e.g. `(1, 3)`.
func (idx SwapIndex) String() string {
	return fmt.Sprintf("(%d, %d)", idx.Peanut, idx.Chocolate)
}

// FindClosingIndexes
// Scans sentences for exact matches of the two closing sentences. The match
// is on the sentence text, so it is case and whitespace sensitive.
func FindClosingIndexes(sentences []string) (peanut []int, chocolate []int) {
	peanut = make([]int, 0)
	chocolate = make([]int, 0)
	for idx, sentence := range sentences {
		switch sentence {
		case ClosePeanutSentence:
			peanut = append(peanut, idx)
		case CloseChocolateSentence:
			chocolate = append(chocolate, idx)
		}
	}
	return peanut, chocolate
}

// SwapFalseInstance
// Builds a negative instance by exchanging one random close-peanut sentence
// with one random close-chocolate sentence, in both the natural and the
// annotated sequences. The annotated sequence keeps the original symbols so
// the swapped pair stays visible.
//
// When the instance has no close-peanut or no close-chocolate sentence, a
// copy of it is returned with a nil index and a true label. The receiver is
// never modified.
func (instance *NaturalInstance) SwapFalseInstance(rng RandomSource) (
	*NaturalInstance,
	*SwapIndex,
	bool,
) {
	swapped := instance.Copy()
	peanutIdxes, chocolateIdxes := FindClosingIndexes(instance.Sentences)
	if len(peanutIdxes) == 0 || len(chocolateIdxes) == 0 {
		return swapped, nil, true
	}

	index := &SwapIndex{
		Peanut:    peanutIdxes[rng.Intn(len(peanutIdxes))],
		Chocolate: chocolateIdxes[rng.Intn(len(chocolateIdxes))],
	}
	i, j := index.Peanut, index.Chocolate
	swapped.Sentences[i], swapped.Sentences[j] =
		swapped.Sentences[j], swapped.Sentences[i]
	swapped.Annotated[i], swapped.Annotated[j] =
		swapped.Annotated[j], swapped.Annotated[i]
	return swapped, index, false
}
