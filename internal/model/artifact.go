package model

// Tree is a single regression tree stored as parallel arrays indexed by node
// id, root at 0. A node is a leaf iff LeftChild[node] == -1, and for a leaf
// the predicted value lives in SplitCondition[node], the same slot that
// holds the split threshold on internal nodes. There is no separate
// leaf-value array; this layout comes straight from the XGBoost JSON dump.
type Tree struct {
	LeftChild      []int
	RightChild     []int
	SplitIndex     []int
	SplitCondition []float64
	DefaultLeft    []bool
}

// ModelArtifact is the loaded tree ensemble. Immutable once loaded; safe for
// concurrent reads. FeatureOrder defines the index space every tree's
// SplitIndex refers to.
type ModelArtifact struct {
	BaseScore    float64
	FeatureOrder []string
	Trees        []Tree
}

// FeatureVector maps feature name to value. A name absent from the map reads
// as 0 at evaluation time, indistinguishable from an explicit 0.
type FeatureVector map[string]float64
