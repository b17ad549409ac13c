package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/kavanaghpatrick/rent-fair-value/internal/model"
)

// ErrModelLoad wraps every artifact parsing or validation failure.
// Prediction is impossible until a later Load succeeds.
var ErrModelLoad = errors.New("model artifact load failed")

// ArtifactRepository loads the serialized tree ensemble and its
// feature-name ordering. Load is idempotent: once an artifact is held it is
// immutable for the life of the process and later calls are no-ops. A
// failed load leaves no partial state behind.
type ArtifactRepository struct {
	mu       sync.Mutex
	artifact *model.ModelArtifact
}

// NewArtifactRepository creates an empty repository
func NewArtifactRepository() *ArtifactRepository {
	return &ArtifactRepository{}
}

// xgbModelFile mirrors the XGBoost JSON dump layout
type xgbModelFile struct {
	Learner struct {
		LearnerModelParam struct {
			BaseScore json.RawMessage `json:"base_score"`
		} `json:"learner_model_param"`
		GradientBooster struct {
			Model struct {
				Trees []xgbTree `json:"trees"`
			} `json:"model"`
		} `json:"gradient_booster"`
	} `json:"learner"`
}

type xgbTree struct {
	LeftChildren    []int     `json:"left_children"`
	RightChildren   []int     `json:"right_children"`
	SplitIndices    []int     `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	DefaultLeft     []int     `json:"default_left"`
}

// Load parses the model dump and feature-order file and installs the
// artifact. Both payloads must come from the same training run; a mismatch
// is undetectable here and must be prevented by deployment pairing.
func (r *ArtifactRepository) Load(modelBytes, featureOrderBytes []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.artifact != nil {
		return nil
	}

	var featureOrder []string
	if err := json.Unmarshal(featureOrderBytes, &featureOrder); err != nil {
		return fmt.Errorf("%w: feature order: %v", ErrModelLoad, err)
	}
	if len(featureOrder) == 0 {
		return fmt.Errorf("%w: feature order is empty", ErrModelLoad)
	}
	seen := make(map[string]bool, len(featureOrder))
	for _, name := range featureOrder {
		if name == "" || seen[name] {
			return fmt.Errorf("%w: feature order has empty or duplicate name %q", ErrModelLoad, name)
		}
		seen[name] = true
	}

	var file xgbModelFile
	if err := json.Unmarshal(modelBytes, &file); err != nil {
		return fmt.Errorf("%w: model dump: %v", ErrModelLoad, err)
	}

	baseScore, err := parseBaseScore(file.Learner.LearnerModelParam.BaseScore)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	trees := make([]model.Tree, 0, len(file.Learner.GradientBooster.Model.Trees))
	for i, raw := range file.Learner.GradientBooster.Model.Trees {
		tree, err := normalizeTree(raw, len(featureOrder))
		if err != nil {
			return fmt.Errorf("%w: tree %d: %v", ErrModelLoad, i, err)
		}
		trees = append(trees, tree)
	}

	r.artifact = &model.ModelArtifact{
		BaseScore:    baseScore,
		FeatureOrder: featureOrder,
		Trees:        trees,
	}
	return nil
}

// Artifact returns the loaded artifact, or nil before a successful Load
func (r *ArtifactRepository) Artifact() *model.ModelArtifact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.artifact
}

// Loaded reports whether a successful Load has completed
func (r *ArtifactRepository) Loaded() bool {
	return r.Artifact() != nil
}

// parseBaseScore normalizes the three shapes base_score shows up in:
// a plain number, a one-element array, and a bracketed numeric string like
// "[8.399085E0]". All must produce the same float.
func parseBaseScore(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, errors.New("base_score is missing")
	}

	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		s = strings.Trim(s, "[]")
		// Only the first element matters for a single-target model
		if i := strings.IndexByte(s, ','); i >= 0 {
			s = s[:i]
		}
	}
	s = strings.TrimSpace(s)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("base_score %q does not parse: %v", string(raw), err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("base_score %q is not finite", string(raw))
	}
	return value, nil
}

// normalizeTree validates the parallel arrays and converts default_left to
// bools. Every split index must address a feature inside the loaded order.
func normalizeTree(raw xgbTree, featureCount int) (model.Tree, error) {
	n := len(raw.LeftChildren)
	if len(raw.RightChildren) != n || len(raw.SplitIndices) != n ||
		len(raw.SplitConditions) != n || len(raw.DefaultLeft) != n {
		return model.Tree{}, errors.New("parallel node arrays differ in length")
	}
	if n == 0 {
		return model.Tree{}, errors.New("tree has no nodes")
	}

	defaultLeft := make([]bool, n)
	for node := 0; node < n; node++ {
		defaultLeft[node] = raw.DefaultLeft[node] != 0
		if raw.LeftChildren[node] == -1 {
			continue // leaf; split_conditions holds its value
		}
		if raw.SplitIndices[node] < 0 || raw.SplitIndices[node] >= featureCount {
			return model.Tree{}, fmt.Errorf("node %d split index %d out of range (features: %d)",
				node, raw.SplitIndices[node], featureCount)
		}
		if raw.LeftChildren[node] < 0 || raw.LeftChildren[node] >= n ||
			raw.RightChildren[node] < 0 || raw.RightChildren[node] >= n {
			return model.Tree{}, fmt.Errorf("node %d child out of range", node)
		}
	}

	return model.Tree{
		LeftChild:      raw.LeftChildren,
		RightChild:     raw.RightChildren,
		SplitIndex:     raw.SplitIndices,
		SplitCondition: raw.SplitConditions,
		DefaultLeft:    defaultLeft,
	}, nil
}
