package service

import "math"

// ScoreMapper converts a raw index distance into a normalized similarity
// score in [0, 1], with 1.0 meaning maximal similarity. The mapping is
// specific to the index's distance convention; substituting a store with a
// different metric (dot-product, Euclidean) means substituting the mapper,
// not rewriting the retriever.
type ScoreMapper interface {
	Score(distance float64) float64
}

// CosineDistanceMapper maps cosine distance in [0, 2] to a similarity
// score: similarity = 1 - distance/2, rounded to 4 decimal places.
type CosineDistanceMapper struct{}

func (CosineDistanceMapper) Score(distance float64) float64 {
	score := 1.0 - distance/2.0
	score = math.Round(score*10000) / 10000

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
