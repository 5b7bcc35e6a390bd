package linking

// Engine is the internal-linking recommender. Construct one instance at
// process start and pass it by reference; it holds only configuration data
// and its methods are pure text transforms.
type Engine struct {
	stopWords map[string]bool
}

// NewEngine creates an Engine with the default stop-word set.
func NewEngine() *Engine {
	return NewEngineWithStopWords(defaultStopWords)
}

// NewEngineWithStopWords creates an Engine with a custom stop-word set.
func NewEngineWithStopWords(stopWords []string) *Engine {
	set := make(map[string]bool, len(stopWords))
	for _, word := range stopWords {
		set[word] = true
	}
	return &Engine{stopWords: set}
}
