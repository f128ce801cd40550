package classifier

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/localnerve/glucodb/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bmiSamples are separable on BMI alone: diabetic from 30 up
func bmiSamples() []Sample {
	samples := make([]Sample, 0, 100)
	for i := 0; i < 100; i++ {
		var x Features
		x[3] = float64(20 + i%20)
		x[7] = float64(i % 2)
		y := 0.0
		if x[3] >= 30 {
			y = 1
		}
		samples = append(samples, Sample{X: x, Y: y})
	}
	return samples
}

func TestLoadCSVEmbedded(t *testing.T) {
	samples, err := LoadCSV(bytes.NewReader(data.TrainingIndicators))
	require.NoError(t, err)
	assert.Len(t, samples, 240)
	assert.Equal(t, Features{1, 1, 1, 35, 1, 0, 0, 1}, samples[0].X)
	assert.Equal(t, 1.0, samples[0].Y)
}

func TestLoadCSVErrors(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("HighBP,BMI\n1,30\n"))
	assert.ErrorContains(t, err, "missing column HighChol")

	header := strings.Join(FeatureNames, ",") + "," + LabelColumn + "\n"

	_, err = LoadCSV(strings.NewReader(header + "1,1,1,abc,0,0,0,1,0\n"))
	assert.ErrorContains(t, err, "column BMI")

	_, err = LoadCSV(strings.NewReader(header + "1,1,1,30,0,0,0,1,2\n"))
	assert.ErrorContains(t, err, "must be 0 or 1")

	_, err = LoadCSV(strings.NewReader(header))
	assert.ErrorContains(t, err, "no samples")
}

func TestFeaturesFromMap(t *testing.T) {
	x, missing := FeaturesFromMap(map[string]float64{
		"highbp": 1, "HighChol": 0, "CHOLCHECK": 1, "BMI": 31, "Smoker": 0, "Stroke": 0,
	})
	assert.Equal(t, []string{"HeartDiseaseorAttack", "PhysActivity"}, missing)
	assert.Equal(t, 31.0, x[3])
	assert.Equal(t, 1.0, x.Map()["HighBP"])
}

func TestTrainSeparable(t *testing.T) {
	m, err := Train(bmiSamples(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 70, m.TrainSize)
	assert.Equal(t, 30, m.TestSize)
	assert.GreaterOrEqual(t, m.Accuracy, 0.9)

	var high, low Features
	high[3], low[3] = 45, 18
	assert.Equal(t, 1, m.Predict(high))
	assert.Equal(t, 0, m.Predict(low))
	assert.Greater(t, m.Probability(high), m.Probability(low))
}

func TestTrainDeterministic(t *testing.T) {
	samples, err := LoadCSV(bytes.NewReader(data.TrainingIndicators))
	require.NoError(t, err)

	a, err := Train(samples, DefaultOptions())
	require.NoError(t, err)
	b, err := Train(samples, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, a.Weights, b.Weights)
	assert.Equal(t, a.Accuracy, b.Accuracy)
	assert.Equal(t, 72, a.TestSize)
	assert.LessOrEqual(t, a.Iterations, 1000)

	p := a.Probability(samples[0].X)
	assert.True(t, p > 0 && p < 1)
}

func TestTrainRejectsBadInput(t *testing.T) {
	_, err := Train(bmiSamples()[:1], DefaultOptions())
	assert.Error(t, err)

	opts := DefaultOptions()
	opts.TestFraction = 1
	_, err = Train(bmiSamples(), opts)
	assert.Error(t, err)
}

func TestFeatureImportanceSumsToOne(t *testing.T) {
	m, err := Train(bmiSamples(), DefaultOptions())
	require.NoError(t, err)

	importance := m.FeatureImportance()
	require.Len(t, importance, NumFeatures)

	var total float64
	for _, v := range importance {
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	for name, v := range importance {
		if name != "BMI" {
			assert.Greater(t, importance["BMI"], v, name)
		}
	}

	flat := (&Model{}).FeatureImportance()
	assert.InDelta(t, 1.0/NumFeatures, flat["Smoker"], 1e-12)
}

func TestServiceReadiness(t *testing.T) {
	svc := NewService(DefaultOptions())
	assert.False(t, svc.Ready())

	_, err := svc.Model()
	assert.ErrorIs(t, err, ErrNotReady)

	m, err := svc.Bootstrap("", data.TrainingIndicators)
	require.NoError(t, err)
	assert.True(t, svc.Ready())

	got, err := svc.Model()
	require.NoError(t, err)
	assert.Same(t, m, got)

	replacement := &Model{}
	svc.Replace(replacement)
	got, _ = svc.Model()
	assert.Same(t, replacement, got)
}

func TestServiceBootstrapMissingFile(t *testing.T) {
	svc := NewService(DefaultOptions())
	_, err := svc.Bootstrap("/nonexistent/training.csv", nil)
	assert.Error(t, err)
	assert.False(t, svc.Ready())
}

func TestFeaturesOutOfRange(t *testing.T) {
	x := Features{1, 0, 1, 27.5, 0, 0, 1, 1}
	assert.Empty(t, x.OutOfRange())

	x[0] = 2
	x[3] = -5
	assert.Equal(t, []string{"HighBP", "BMI"}, x.OutOfRange())

	x = Features{1, 0, 1, math.NaN(), 0, 0, 1, 0.5}
	assert.Equal(t, []string{"BMI", "PhysActivity"}, x.OutOfRange())
}
