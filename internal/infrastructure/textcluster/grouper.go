package textcluster

import (
	"fmt"
)

const (
	defaultClusters    = 10
	defaultMinGram     = 2
	defaultMaxGram     = 5
	defaultMaxFeatures = 1000
	defaultSeed        = 42
	defaultInits       = 10
	defaultMaxIter     = 100
)

// Grouper assigns filenames to clusters of similarly named files. Each Group
// call fits a fresh vectorizer and model on the supplied corpus, so a Grouper
// can be shared across goroutines.
type Grouper struct {
	clusters    int
	minGram     int
	maxGram     int
	maxFeatures int
	seed        int64
}

func NewGrouper() *Grouper {
	return &Grouper{
		clusters:    defaultClusters,
		minGram:     defaultMinGram,
		maxGram:     defaultMaxGram,
		maxFeatures: defaultMaxFeatures,
		seed:        defaultSeed,
	}
}

// Group fits the model on corpus and returns a cluster index for each target.
// Targets need not be part of the corpus; they are mapped to the nearest
// centroid of the fitted model.
func (g *Grouper) Group(corpus, targets []string) ([]int, error) {
	if len(corpus) < g.clusters {
		return nil, fmt.Errorf("group filenames: need at least %d samples, got %d", g.clusters, len(corpus))
	}

	vectorizer := newNgramVectorizer(g.minGram, g.maxGram, g.maxFeatures)
	vectorizer.fit(corpus)

	model := newKMeans(g.clusters, defaultInits, defaultMaxIter, g.seed)
	if err := model.fit(vectorizer.transform(corpus)); err != nil {
		return nil, fmt.Errorf("group filenames: %w", err)
	}
	return model.predict(vectorizer.transform(targets)), nil
}
