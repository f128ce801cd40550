package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurveyAuthor(t *testing.T) {
	name := "Dana"
	assert.Equal(t, `"Keep moving" - Dana`, Survey{Message: "Keep moving", Name: &name}.Author())
	assert.Equal(t, `"Keep moving" - Anonymous`, Survey{Message: "Keep moving"}.Author())

	empty := ""
	assert.Equal(t, `"Hi" - Anonymous`, Survey{Message: "Hi", Name: &empty}.Author())
}

func TestJSONRoundTrip(t *testing.T) {
	col, err := NewJSON(map[string]float64{"BMI": 31})
	require.NoError(t, err)

	var out map[string]float64
	require.NoError(t, col.Decode(&out))
	assert.Equal(t, 31.0, out["BMI"])

	raw, err := json.Marshal(Prediction{Inputs: col})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"inputs":{"BMI":31}`)
}

func TestJSONDecodeEmpty(t *testing.T) {
	out := map[string]int{"kept": 1}
	require.NoError(t, JSON{}.Decode(&out))
	assert.Equal(t, 1, out["kept"])
}

func TestAllListsEveryModel(t *testing.T) {
	assert.Len(t, All(), 11)
}
