package service

import (
	"math"
	"testing"

	"github.com/kavanaghpatrick/rent-fair-value/internal/model"
)

// singleSplitArtifact builds an ensemble with one tree: root splits f0 at
// the given threshold, left leaf -1.0, right leaf 2.0.
func singleSplitArtifact(baseScore, threshold float64, defaultLeft bool) *model.ModelArtifact {
	return &model.ModelArtifact{
		BaseScore:    baseScore,
		FeatureOrder: []string{"f0", "f1"},
		Trees: []model.Tree{
			{
				LeftChild:      []int{1, -1, -1},
				RightChild:     []int{2, -1, -1},
				SplitIndex:     []int{0, 0, 0},
				SplitCondition: []float64{threshold, -1.0, 2.0},
				DefaultLeft:    []bool{defaultLeft, false, false},
			},
		},
	}
}

func TestEvaluate_SingleSplit(t *testing.T) {
	artifact := singleSplitArtifact(10.0, 5.0, true)

	tests := []struct {
		name     string
		f0       float64
		expected float64
	}{
		{"below threshold goes left", 4.0, 10.0 - 1.0},
		{"at threshold goes right", 5.0, 10.0 + 2.0},
		{"above threshold goes right", 6.0, 10.0 + 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(artifact, model.FeatureVector{"f0": tt.f0})
			if got != tt.expected {
				t.Errorf("Evaluate = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestEvaluate_NaNFollowsDefaultBranch(t *testing.T) {
	left := singleSplitArtifact(0, 5.0, true)
	right := singleSplitArtifact(0, 5.0, false)

	if got := Evaluate(left, model.FeatureVector{"f0": math.NaN()}); got != -1.0 {
		t.Errorf("NaN with default_left should reach left leaf, got %v", got)
	}
	if got := Evaluate(right, model.FeatureVector{"f0": math.NaN()}); got != 2.0 {
		t.Errorf("NaN without default_left should reach right leaf, got %v", got)
	}
}

func TestEvaluate_MissingNameReadsAsZero(t *testing.T) {
	artifact := singleSplitArtifact(0, 5.0, true)

	explicit := Evaluate(artifact, model.FeatureVector{"f0": 0})
	missing := Evaluate(artifact, model.FeatureVector{})

	if explicit != missing {
		t.Errorf("Missing name (%v) should equal explicit zero (%v)", missing, explicit)
	}
	// Zero is below the threshold, so both go left
	if missing != -1.0 {
		t.Errorf("Expected left leaf -1.0, got %v", missing)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	artifact := singleSplitArtifact(3.5, 5.0, true)
	vector := model.FeatureVector{"f0": 7.2, "f1": -0.3}

	first := Evaluate(artifact, vector)
	second := Evaluate(artifact, vector)
	if first != second {
		t.Errorf("Evaluate not deterministic: %v vs %v", first, second)
	}
}

// The artifact stores each leaf's value in SplitCondition at the leaf's own
// node id, reusing the slot internal nodes use for thresholds. This test
// pins that contract: a root-only tree must return SplitCondition[0].
func TestEvaluate_LeafValueLivesInSplitCondition(t *testing.T) {
	artifact := &model.ModelArtifact{
		BaseScore:    0,
		FeatureOrder: []string{"f0"},
		Trees: []model.Tree{
			{
				LeftChild:      []int{-1},
				RightChild:     []int{-1},
				SplitIndex:     []int{0},
				SplitCondition: []float64{0.875},
				DefaultLeft:    []bool{false},
			},
		},
	}

	if got := Evaluate(artifact, model.FeatureVector{"f0": 123}); got != 0.875 {
		t.Errorf("Root leaf should return SplitCondition[0]=0.875, got %v", got)
	}
}

func TestEvaluate_SumsAcrossTrees(t *testing.T) {
	leaf := func(value float64) model.Tree {
		return model.Tree{
			LeftChild:      []int{-1},
			RightChild:     []int{-1},
			SplitIndex:     []int{0},
			SplitCondition: []float64{value},
			DefaultLeft:    []bool{false},
		}
	}
	artifact := &model.ModelArtifact{
		BaseScore:    1.0,
		FeatureOrder: []string{"f0"},
		Trees:        []model.Tree{leaf(0.25), leaf(-0.5), leaf(2.0)},
	}

	if got := Evaluate(artifact, model.FeatureVector{}); got != 1.0+0.25-0.5+2.0 {
		t.Errorf("Expected base score plus all leaf values, got %v", got)
	}
}

func TestEvaluate_DoesNotMutateArtifact(t *testing.T) {
	artifact := singleSplitArtifact(1.0, 5.0, true)
	before := make([]float64, len(artifact.Trees[0].SplitCondition))
	copy(before, artifact.Trees[0].SplitCondition)

	Evaluate(artifact, model.FeatureVector{"f0": math.NaN()})
	Evaluate(artifact, model.FeatureVector{"f0": 100})

	for i, v := range artifact.Trees[0].SplitCondition {
		if v != before[i] {
			t.Fatalf("Artifact mutated at node %d: %v -> %v", i, before[i], v)
		}
	}
}
