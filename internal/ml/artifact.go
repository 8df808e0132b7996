package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"RxPulse/internal/domain/models"
)

// Artifact objectives.
const (
	ObjectiveRegression = "regression"
	ObjectiveBinary     = "binary"
)

// treeNode is one node of a decision tree in flat index-linked form.
// A node with Feature < 0 is a leaf and Value holds its output.
type treeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

type tree struct {
	Nodes []treeNode `json:"nodes"`
}

// ensembleArtifact is the on-disk JSON dump of a gradient-boosted tree model
// exported by the offline training pipeline. The feature_names list is the
// versioned schema contract: it fixes field set and order.
type ensembleArtifact struct {
	SchemaVersion int      `json:"schema_version"`
	ModelType     string   `json:"model_type"`
	Objective     string   `json:"objective"`
	BaseScore     float64  `json:"base_score"`
	FeatureNames  []string `json:"feature_names"`
	Trees         []tree   `json:"trees"`
}

// EnsembleModel implements Model over a loaded tree-ensemble artifact.
type EnsembleModel struct {
	artifact ensembleArtifact
}

// LoadEnsemble reads and validates a tree-ensemble artifact from path.
func LoadEnsemble(path string) (*EnsembleModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var a ensembleArtifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}

	if len(a.FeatureNames) == 0 {
		return nil, fmt.Errorf("artifact %s: feature_names is empty", path)
	}
	if len(a.Trees) == 0 {
		return nil, fmt.Errorf("artifact %s: no trees", path)
	}
	switch a.Objective {
	case ObjectiveRegression, ObjectiveBinary:
	default:
		return nil, fmt.Errorf("artifact %s: unknown objective %q", path, a.Objective)
	}
	for ti, t := range a.Trees {
		for ni, n := range t.Nodes {
			if n.Feature >= len(a.FeatureNames) {
				return nil, fmt.Errorf("artifact %s: tree %d node %d references feature %d", path, ti, ni, n.Feature)
			}
			if n.Feature < 0 {
				continue // leaf
			}
			if n.Left < 0 || n.Right < 0 || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
				return nil, fmt.Errorf("artifact %s: tree %d node %d has dangling child", path, ti, ni)
			}
			// Children must point forward, so every walk terminates.
			if n.Left <= ni || n.Right <= ni {
				return nil, fmt.Errorf("artifact %s: tree %d node %d has non-advancing child", path, ti, ni)
			}
		}
	}

	return &EnsembleModel{artifact: a}, nil
}

// FeatureNames returns the ordered training schema.
func (m *EnsembleModel) FeatureNames() []string {
	return m.artifact.FeatureNames
}

// Objective returns the artifact objective.
func (m *EnsembleModel) Objective() string {
	return m.artifact.Objective
}

// Predict runs the ensemble on the feature vector. For binary objectives the
// returned value is the sigmoid-transformed margin, already in [0, 1].
func (m *EnsembleModel) Predict(fv *models.FeatureVector) (float64, error) {
	if err := m.checkSchema(fv); err != nil {
		return 0, err
	}

	score := m.artifact.BaseScore
	for _, t := range m.artifact.Trees {
		score += evalTree(t, fv.Values)
	}

	if m.artifact.Objective == ObjectiveBinary {
		return sigmoid(score), nil
	}
	return score, nil
}

// PredictProbability returns the positive-class probability. Only valid for
// binary objectives.
func (m *EnsembleModel) PredictProbability(fv *models.FeatureVector) (float64, error) {
	if m.artifact.Objective != ObjectiveBinary {
		return 0, fmt.Errorf("model objective %q has no probability output", m.artifact.Objective)
	}
	return m.Predict(fv)
}

func (m *EnsembleModel) checkSchema(fv *models.FeatureVector) error {
	names := m.artifact.FeatureNames
	if fv.Len() != len(names) {
		return fmt.Errorf("feature schema mismatch: got %d fields, want %d", fv.Len(), len(names))
	}
	for i, n := range names {
		if fv.Names[i] != n {
			return fmt.Errorf("feature schema mismatch at %d: got %q, want %q", i, fv.Names[i], n)
		}
	}
	return nil
}

func evalTree(t tree, values []float64) float64 {
	if len(t.Nodes) == 0 {
		return 0
	}
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature < 0 {
			return n.Value
		}
		if values[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

var _ ProbabilityModel = (*EnsembleModel)(nil)
