package models

// FeatureVector is an ordered sequence of named numeric fields. Field names
// and order are a fixed contract with the training pipeline; the model
// boundary verifies them against the artifact's expected schema.
type FeatureVector struct {
	Names  []string
	Values []float64
}

// NewFeatureVector allocates a vector with room for n fields.
func NewFeatureVector(n int) *FeatureVector {
	return &FeatureVector{
		Names:  make([]string, 0, n),
		Values: make([]float64, 0, n),
	}
}

// Append adds a named field at the end of the vector.
func (fv *FeatureVector) Append(name string, value float64) {
	fv.Names = append(fv.Names, name)
	fv.Values = append(fv.Values, value)
}

// Get returns the value of a field by name.
func (fv *FeatureVector) Get(name string) (float64, bool) {
	for i, n := range fv.Names {
		if n == name {
			return fv.Values[i], true
		}
	}
	return 0, false
}

// Len returns the number of fields.
func (fv *FeatureVector) Len() int {
	return len(fv.Names)
}
