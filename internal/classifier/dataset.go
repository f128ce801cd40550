package classifier

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FeatureNames are the CDC health indicator columns the model reads, in vector order
var FeatureNames = []string{
	"HighBP",
	"HighChol",
	"CholCheck",
	"BMI",
	"Smoker",
	"Stroke",
	"HeartDiseaseorAttack",
	"PhysActivity",
}

// LabelColumn is the binary diabetes outcome column
const LabelColumn = "Diabetes_binary"

// NumFeatures is the length of a feature vector
const NumFeatures = 8

// Features is one patient's indicator vector, ordered as FeatureNames
type Features [NumFeatures]float64

// Sample is a labeled feature vector
type Sample struct {
	X Features
	Y float64
}

// FeaturesFromMap builds a vector from named values. Names match FeatureNames
// case-insensitively; missing names are returned in FeatureNames order.
func FeaturesFromMap(values map[string]float64) (Features, []string) {
	lower := make(map[string]float64, len(values))
	for k, v := range values {
		lower[strings.ToLower(k)] = v
	}

	var x Features
	var missing []string
	for i, name := range FeatureNames {
		v, ok := lower[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		x[i] = v
	}
	return x, missing
}

// Body mass index limits accepted for a patient
const (
	MinBMI = 10.0
	MaxBMI = 100.0
)

// OutOfRange names the indicators outside their survey domain: BMI within
// [MinBMI, MaxBMI], every other indicator a 0/1 flag.
func (x Features) OutOfRange() []string {
	var bad []string
	for i, name := range FeatureNames {
		v := x[i]
		if name == "BMI" {
			if !(v >= MinBMI && v <= MaxBMI) {
				bad = append(bad, name)
			}
			continue
		}
		if v != 0 && v != 1 {
			bad = append(bad, name)
		}
	}
	return bad
}

// Map returns the vector keyed by feature name
func (x Features) Map() map[string]float64 {
	out := make(map[string]float64, NumFeatures)
	for i, name := range FeatureNames {
		out[name] = x[i]
	}
	return out
}

// LoadCSV reads labeled samples from a CSV with a header row. Extra columns are ignored.
func LoadCSV(r io.Reader) ([]Sample, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	columns := make([]int, NumFeatures)
	for i, name := range FeatureNames {
		col, ok := index[name]
		if !ok {
			return nil, errors.Errorf("missing column %s", name)
		}
		columns[i] = col
	}
	labelCol, ok := index[LabelColumn]
	if !ok {
		return nil, errors.Errorf("missing column %s", LabelColumn)
	}

	var samples []Sample
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}

		var s Sample
		for i, col := range columns {
			if s.X[i], err = strconv.ParseFloat(strings.TrimSpace(record[col]), 64); err != nil {
				return nil, errors.Wrapf(err, "line %d column %s", line, FeatureNames[i])
			}
		}
		if s.Y, err = strconv.ParseFloat(strings.TrimSpace(record[labelCol]), 64); err != nil {
			return nil, errors.Wrapf(err, "line %d column %s", line, LabelColumn)
		}
		if s.Y != 0 && s.Y != 1 {
			return nil, errors.Errorf("line %d: %s must be 0 or 1", line, LabelColumn)
		}
		samples = append(samples, s)
	}

	if len(samples) == 0 {
		return nil, errors.New("no samples")
	}
	return samples, nil
}
