// model.go
//
// glucodb, a diabetes education data service with a glucose risk classifier
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of glucodb.
// glucodb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// glucodb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with glucodb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package classifier

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Options control training
type Options struct {
	TestFraction float64
	Seed         uint64
	Iterations   int
	LearningRate float64
	Tolerance    float64
}

// DefaultOptions is a 70/30 split with seed 42 and at most 1000 gradient steps
func DefaultOptions() Options {
	return Options{
		TestFraction: 0.3,
		Seed:         42,
		Iterations:   1000,
		LearningRate: 0.5,
		Tolerance:    1e-7,
	}
}

// Model is a logistic regression over standardized features
type Model struct {
	Mean       Features `json:"mean"`
	Scale      Features `json:"scale"`
	Weights    Features `json:"weights"`
	Bias       float64  `json:"bias"`
	Accuracy   float64  `json:"accuracy"`
	TrainSize  int      `json:"train_size"`
	TestSize   int      `json:"test_size"`
	Iterations int      `json:"iterations"`
}

// Train splits samples with a seeded shuffle, fits on the training part by
// batch gradient descent and scores accuracy on the holdout.
func Train(samples []Sample, opts Options) (*Model, error) {
	if len(samples) < 2 {
		return nil, errors.New("at least two samples are required")
	}
	if opts.TestFraction < 0 || opts.TestFraction >= 1 {
		return nil, errors.Errorf("test fraction %v out of range", opts.TestFraction)
	}

	shuffled := make([]Sample, len(samples))
	copy(shuffled, samples)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	testSize := int(math.Round(float64(len(shuffled)) * opts.TestFraction))
	if testSize >= len(shuffled) {
		testSize = len(shuffled) - 1
	}
	test, train := shuffled[:testSize], shuffled[testSize:]

	m := &Model{TrainSize: len(train), TestSize: len(test)}
	m.standardize(train)
	m.fit(train, opts)

	if len(test) > 0 {
		m.Accuracy = m.score(test)
	} else {
		m.Accuracy = m.score(train)
	}
	return m, nil
}

func (m *Model) standardize(train []Sample) {
	n := float64(len(train))
	for _, s := range train {
		for i := range s.X {
			m.Mean[i] += s.X[i] / n
		}
	}
	for _, s := range train {
		for i := range s.X {
			d := s.X[i] - m.Mean[i]
			m.Scale[i] += d * d / n
		}
	}
	for i := range m.Scale {
		m.Scale[i] = math.Sqrt(m.Scale[i])
		if m.Scale[i] == 0 {
			m.Scale[i] = 1
		}
	}
}

func (m *Model) fit(train []Sample, opts Options) {
	xs := make([]Features, len(train))
	for i, s := range train {
		xs[i] = m.transform(s.X)
	}
	n := float64(len(train))

	for iter := 1; iter <= opts.Iterations; iter++ {
		var grad Features
		var gradBias float64
		for i, x := range xs {
			diff := sigmoid(m.linear(x)) - train[i].Y
			for j := range x {
				grad[j] += diff * x[j] / n
			}
			gradBias += diff / n
		}

		norm := gradBias * gradBias
		for j := range grad {
			m.Weights[j] -= opts.LearningRate * grad[j]
			norm += grad[j] * grad[j]
		}
		m.Bias -= opts.LearningRate * gradBias
		m.Iterations = iter

		if math.Sqrt(norm) < opts.Tolerance {
			break
		}
	}
}

func (m *Model) score(samples []Sample) float64 {
	correct := 0
	for _, s := range samples {
		if float64(m.Predict(s.X)) == s.Y {
			correct++
		}
	}
	return float64(correct) / float64(len(samples))
}

func (m *Model) transform(x Features) Features {
	var z Features
	for i := range x {
		z[i] = (x[i] - m.Mean[i]) / m.Scale[i]
	}
	return z
}

func (m *Model) linear(z Features) float64 {
	sum := m.Bias
	for i := range z {
		sum += m.Weights[i] * z[i]
	}
	return sum
}

// Probability is the predicted probability of diabetes for raw features
func (m *Model) Probability(x Features) float64 {
	return sigmoid(m.linear(m.transform(x)))
}

// Predict returns 1 when the probability is at least one half, else 0
func (m *Model) Predict(x Features) int {
	if m.Probability(x) >= 0.5 {
		return 1
	}
	return 0
}

// FeatureImportance is each feature's share of the summed absolute standardized weights
func (m *Model) FeatureImportance() map[string]float64 {
	var total float64
	for _, w := range m.Weights {
		total += math.Abs(w)
	}

	out := make(map[string]float64, NumFeatures)
	for i, name := range FeatureNames {
		if total == 0 {
			out[name] = 1.0 / NumFeatures
			continue
		}
		out[name] = math.Abs(m.Weights[i]) / total
	}
	return out
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}
