package settable

// nativeOracle is the default SetOracle: the classic Set-game encoding
// of a card as a fixed number of base-3 features (color, number,
// shading, fill, ...). A triple of cards is legal when, feature by
// feature, the three values are all equal or all different - which is
// exactly the triples whose feature value sums are 0 mod 3.
type nativeOracle struct {
	numFeatures int
}

// NewNativeOracle derives the feature count from deckSize, the
// smallest n such that 3^n >= deckSize (deckSize=81 gives the classic
// four-feature deck).
func NewNativeOracle(deckSize int) SetOracle {
	n := 0
	for p := 1; p < deckSize; p *= 3 {
		n++
	}
	if n == 0 {
		n = 1
	}
	return &nativeOracle{numFeatures: n}
}

func (o *nativeOracle) cardToFeatures(card int) []int {
	features := make([]int, o.numFeatures)
	for i := 0; i < o.numFeatures; i++ {
		features[i] = card % 3
		card /= 3
	}
	return features
}

func (o *nativeOracle) TestSet(cards []int) bool {
	if len(cards) == 0 {
		return false
	}
	for i := 0; i < o.numFeatures; i++ {
		sum := 0
		for _, c := range cards {
			sum += o.cardToFeatures(c)[i]
		}
		if sum%3 != 0 {
			return false
		}
	}
	return true
}

// FindSets enumerates every 3-card combination in deck and returns the
// legal ones, stopping once limit is reached (limit <= 0 means
// unlimited). This is O(n^3) in len(deck). The dealer calls it on the
// table's cards and, in ensureSetOnTable, on the whole table-plus-deck
// pool; both calls pass limit 1, so the scan stops at the first set.
func (o *nativeOracle) FindSets(deck []int, limit int) [][]int {
	var found [][]int
	n := len(deck)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				triple := []int{deck[i], deck[j], deck[k]}
				if o.TestSet(triple) {
					found = append(found, triple)
					if limit > 0 && len(found) >= limit {
						return found
					}
				}
			}
		}
	}
	return found
}

func (o *nativeOracle) CardsToFeatures(cards []int) [][]int {
	out := make([][]int, len(cards))
	for i, c := range cards {
		out[i] = o.cardToFeatures(c)
	}
	return out
}
