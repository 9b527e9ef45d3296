package settable

// SetOracle is the external legal-set collaborator (spec.md §6). It is
// pure and must be safe to call concurrently: the dealer calls TestSet
// and FindSets from its own goroutine, while Player.Hint calls
// CardsToFeatures from whatever goroutine asks for a hint.
type SetOracle interface {
	// TestSet reports whether the given cards (len == FeatureSize) form
	// a legal set.
	TestSet(cards []int) bool

	// FindSets returns up to limit disjoint-or-not legal sets found in
	// deck. limit <= 0 means unlimited.
	FindSets(deck []int, limit int) [][]int

	// CardsToFeatures decodes each card into its feature vector, used
	// only for hint printing.
	CardsToFeatures(cards []int) [][]int
}
