package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/classifier"
	"github.com/localnerve/glucodb/internal/middleware"
	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/localnerve/glucodb/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// PatientInput maps CDC indicator names to values; names are matched case-insensitively
type PatientInput map[string]types.FlexFloat64

// ProbabilityResult splits the predicted probability between the two outcomes
type ProbabilityResult struct {
	NoDiabetes float64 `json:"no_diabetes"`
	Diabetes   float64 `json:"diabetes"`
}

// DiabetesHandler serves the classifier routes
type DiabetesHandler struct {
	Model       *classifier.Service
	Log         zerolog.Logger
	Predictions *services.Resource[models.Prediction, services.PredictionInput, services.PredictionInput]
}

// NewPredictionResource builds the CRUD handler for stored predictions; records belong to the caller
func NewPredictionResource(db *gorm.DB, log zerolog.Logger) *ResourceHandler[models.Prediction, services.PredictionInput, services.PredictionInput] {
	return &ResourceHandler[models.Prediction, services.PredictionInput, services.PredictionInput]{
		Resource: services.NewResource(db, services.PredictionSchema()),
		Log:      log,
		Noun:     "predictions",
		Owned:    true,
		Saved: func(rec *models.Prediction) {
			services.PredictionsMade.WithLabelValues(rec.RiskLevel).Inc()
		},
	}
}

// patient decodes the body into a feature vector, naming every missing or out-of-range indicator
func (h *DiabetesHandler) patient(c *fiber.Ctx) (classifier.Features, error) {
	var in PatientInput
	if err := decodeBody(c, &in); err != nil {
		return classifier.Features{}, err
	}

	values := make(map[string]float64, len(in))
	for k, v := range in {
		values[k] = v.Float64()
	}

	x, missing := classifier.FeaturesFromMap(values)
	v := &types.ValidationError{}
	for _, name := range missing {
		v.Missing(name)
	}
	if len(missing) == 0 {
		for _, name := range x.OutOfRange() {
			if name == "BMI" {
				v.Add(name, "BMI must be between 10 and 100")
			} else {
				v.Add(name, "must be 0 or 1")
			}
		}
	}
	return x, v.Err()
}

// Predict handles POST /api/diabetes/predict
// @Summary Predict diabetes
// @Description Returns 1 when the model predicts diabetes, else 0
// @Tags Diabetes
// @Accept json
// @Produce json
// @Param payload body object true "HighBP, HighChol, CholCheck, BMI, Smoker, Stroke, HeartDiseaseorAttack, PhysActivity"
// @Success 200 {object} map[string]int
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /diabetes/predict [post]
func (h *DiabetesHandler) Predict(c *fiber.Ctx) error {
	model, err := h.Model.Model()
	if err != nil {
		return respondError(c, h.Log, err, "diabetes.predict")
	}
	x, err := h.patient(c)
	if err != nil {
		return respondError(c, h.Log, err, "diabetes.predict")
	}
	return utils.SuccessResponse(c, fiber.Map{"prediction": model.Predict(x)}, fiber.StatusOK)
}

// Probability handles POST /api/diabetes/probability
// @Summary Diabetes probability
// @Tags Diabetes
// @Accept json
// @Produce json
// @Param payload body object true "HighBP, HighChol, CholCheck, BMI, Smoker, Stroke, HeartDiseaseorAttack, PhysActivity"
// @Success 200 {object} map[string]handlers.ProbabilityResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /diabetes/probability [post]
func (h *DiabetesHandler) Probability(c *fiber.Ctx) error {
	model, err := h.Model.Model()
	if err != nil {
		return respondError(c, h.Log, err, "diabetes.probability")
	}
	x, err := h.patient(c)
	if err != nil {
		return respondError(c, h.Log, err, "diabetes.probability")
	}

	p := model.Probability(x)
	return utils.SuccessResponse(c, fiber.Map{
		"probability": ProbabilityResult{NoDiabetes: 1 - p, Diabetes: p},
	}, fiber.StatusOK)
}

// FeatureImportance handles GET /api/diabetes/feature-importance
// @Summary Feature importance
// @Description Each indicator's share of the model's standardized weight
// @Tags Diabetes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /diabetes/feature-importance [get]
func (h *DiabetesHandler) FeatureImportance(c *fiber.Ctx) error {
	model, err := h.Model.Model()
	if err != nil {
		return respondError(c, h.Log, err, "diabetes.importance")
	}

	importance := model.FeatureImportance()
	ranked := make([]string, 0, len(importance))
	for name := range importance {
		ranked = append(ranked, name)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if importance[ranked[i]] != importance[ranked[j]] {
			return importance[ranked[i]] > importance[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	return utils.SuccessResponse(c, fiber.Map{
		"feature_importance": importance,
		"ranked":             ranked,
		"accuracy":           model.Accuracy,
	}, fiber.StatusOK)
}

// Assess handles POST /api/diabetes/assess
// @Summary Assess and record diabetes risk
// @Description Computes the caller's probability and stores it as a prediction
// @Tags Diabetes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body object true "HighBP, HighChol, CholCheck, BMI, Smoker, Stroke, HeartDiseaseorAttack, PhysActivity"
// @Success 201 {object} models.Prediction
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /diabetes/assess [post]
func (h *DiabetesHandler) Assess(c *fiber.Ctx) error {
	model, err := h.Model.Model()
	if err != nil {
		return respondError(c, h.Log, err, "diabetes.assess")
	}
	x, err := h.patient(c)
	if err != nil {
		return respondError(c, h.Log, err, "diabetes.assess")
	}

	p := types.FlexFloat64(model.Probability(x))
	inputs := make(map[string]interface{}, classifier.NumFeatures)
	for name, v := range x.Map() {
		inputs[name] = v
	}

	userID, _ := middleware.UserID(c)
	rec, err := h.Predictions.Create(c.UserContext(), userID, services.PredictionInput{Probability: &p, Inputs: inputs})
	if err != nil {
		return respondError(c, h.Log, err, "diabetes.assess")
	}
	services.PredictionsMade.WithLabelValues(rec.RiskLevel).Inc()

	return utils.SuccessResponse(c, rec, fiber.StatusCreated)
}
