package services

import (
	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/types"
)

// Risk thresholds on the predicted probability
const (
	RiskMediumFrom = 0.4
	RiskHighFrom   = 0.7
)

// RiskLevel labels a diabetes probability
func RiskLevel(p float64) string {
	switch {
	case p < RiskMediumFrom:
		return models.RiskLow
	case p < RiskHighFrom:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// PredictionInput is the create and update payload for a stored prediction.
// The risk level is always derived from the probability.
type PredictionInput struct {
	Probability *types.FlexFloat64     `json:"probability"`
	Inputs      map[string]interface{} `json:"inputs"`
}

func checkProbability(v *types.ValidationError, p *types.FlexFloat64) {
	if p != nil && !(p.Float64() >= 0 && p.Float64() <= 1) {
		v.Add("probability", "Probability must be between 0 and 1")
	}
}

// PredictionSchema is the resource schema for predictions; records are private to their owner
func PredictionSchema() Schema[models.Prediction, PredictionInput, PredictionInput] {
	return Schema[models.Prediction, PredictionInput, PredictionInput]{
		Name:        "Prediction",
		OwnerColumn: "user_id",
		ScopeReads:  true,
		Order:       "timestamp desc, id desc",
		SetOwner:    func(rec *models.Prediction, owner string) { rec.UserID = owner },

		Build: func(in PredictionInput) (models.Prediction, error) {
			v := &types.ValidationError{}
			if in.Probability == nil {
				v.Missing("probability")
			}
			checkProbability(v, in.Probability)

			var inputs models.JSON
			if in.Inputs != nil {
				var err error
				if inputs, err = models.NewJSON(in.Inputs); err != nil {
					v.Add("inputs", "Inputs must be a JSON object")
				}
			}
			if err := v.Err(); err != nil {
				return models.Prediction{}, err
			}

			p := in.Probability.Float64()
			return models.Prediction{Probability: p, RiskLevel: RiskLevel(p), Inputs: inputs}, nil
		},

		Check: func(in PredictionInput) error {
			v := &types.ValidationError{}
			checkProbability(v, in.Probability)
			if in.Inputs != nil {
				if _, err := models.NewJSON(in.Inputs); err != nil {
					v.Add("inputs", "Inputs must be a JSON object")
				}
			}
			return v.Err()
		},

		Apply: func(rec *models.Prediction, in PredictionInput) {
			if in.Probability != nil {
				rec.Probability = in.Probability.Float64()
				rec.RiskLevel = RiskLevel(rec.Probability)
			}
			if in.Inputs != nil {
				rec.Inputs, _ = models.NewJSON(in.Inputs)
			}
		},
	}
}
