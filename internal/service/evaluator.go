package service

import (
	"math"

	"github.com/kavanaghpatrick/rent-fair-value/internal/model"
)

// Evaluate runs the tree ensemble over a feature vector and returns the raw
// score in the model's training target space (log1p of monthly rent).
// Pure: the artifact is never mutated and identical inputs give identical
// output. Feature names missing from the vector read as 0; an explicit NaN
// routes through each node's default branch instead.
func Evaluate(artifact *model.ModelArtifact, vector model.FeatureVector) float64 {
	sum := artifact.BaseScore
	for i := range artifact.Trees {
		sum += treeValue(&artifact.Trees[i], artifact.FeatureOrder, vector)
	}
	return sum
}

// treeValue traverses one tree from the root. A node is a leaf iff its left
// child is -1, and the leaf's value sits in SplitCondition at the same node
// id, the identical slot internal nodes use for their threshold. That
// double duty is the artifact's contract, not an accident.
func treeValue(tree *model.Tree, featureOrder []string, vector model.FeatureVector) float64 {
	node := 0
	for tree.LeftChild[node] != -1 {
		value := vector[featureOrder[tree.SplitIndex[node]]]

		if math.IsNaN(value) {
			if tree.DefaultLeft[node] {
				node = tree.LeftChild[node]
			} else {
				node = tree.RightChild[node]
			}
			continue
		}

		if value < tree.SplitCondition[node] {
			node = tree.LeftChild[node]
		} else {
			node = tree.RightChild[node]
		}
	}
	return tree.SplitCondition[node]
}
