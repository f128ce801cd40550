package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/glucodb/internal/models"
	"github.com/localnerve/glucodb/internal/services"
	"github.com/localnerve/glucodb/internal/types"
	"github.com/localnerve/glucodb/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ReferenceHandler serves the game routes over the seeded reference data
type ReferenceHandler struct {
	DB         *gorm.DB
	Log        zerolog.Logger
	Flashcards *services.Resource[models.Flashcard, services.FlashcardInput, services.FlashcardInput]
	Trivia     *services.Resource[models.TriviaQuestion, services.TriviaInput, services.TriviaPatch]
}

// NewFlashcardResource builds the CRUD handler for flashcards
func NewFlashcardResource(db *gorm.DB, log zerolog.Logger) *ResourceHandler[models.Flashcard, services.FlashcardInput, services.FlashcardInput] {
	return &ResourceHandler[models.Flashcard, services.FlashcardInput, services.FlashcardInput]{
		Resource: services.NewResource(db, services.FlashcardSchema()),
		Log:      log,
		Noun:     "flashcards",
	}
}

// NewTriviaResource builds the CRUD handler for trivia questions
func NewTriviaResource(db *gorm.DB, log zerolog.Logger) *ResourceHandler[models.TriviaQuestion, services.TriviaInput, services.TriviaPatch] {
	return &ResourceHandler[models.TriviaQuestion, services.TriviaInput, services.TriviaPatch]{
		Resource: services.NewResource(db, services.TriviaSchema()),
		Log:      log,
		Noun:     "trivia",
	}
}

// NewFoodResource builds the CRUD handler for foods; ?number= narrows the list to one group
func NewFoodResource(db *gorm.DB, log zerolog.Logger) *ResourceHandler[models.Food, services.FoodInput, services.FoodInput] {
	return &ResourceHandler[models.Food, services.FoodInput, services.FoodInput]{
		Resource: services.NewResource(db, services.FoodSchema()),
		Log:      log,
		Noun:     "food",
		Filters: func(c *fiber.Ctx) (map[string]interface{}, error) {
			raw := c.Query("number")
			if raw == "" {
				return nil, nil
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, types.Invalid("number", "Number must be an integer")
			}
			return map[string]interface{}{"number": n}, nil
		},
	}
}

// GradeFlashcard handles POST /api/flashcards/:id/grade
// @Summary Grade a flashcard answer
// @Description Fuzzy-matches the answer against the card's term
// @Tags Flashcards
// @Accept json
// @Produce json
// @Param id path int true "Flashcard ID"
// @Param payload body services.GradeInput true "Answer"
// @Success 200 {object} services.GradeResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /flashcards/{id}/grade [post]
func (h *ReferenceHandler) GradeFlashcard(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err, "flashcards.grade")
	}

	var in services.GradeInput
	if err := decodeBody(c, &in); err != nil {
		return respondError(c, h.Log, err, "flashcards.grade")
	}
	if in.Answer == nil {
		return respondError(c, h.Log, types.Invalid("answer", "is required"), "flashcards.grade")
	}

	card, err := h.Flashcards.Get(c.UserContext(), "", id)
	if err != nil {
		return respondError(c, h.Log, err, "flashcards.grade")
	}

	return utils.SuccessResponse(c, services.Grade(*in.Answer, card.Term), fiber.StatusOK)
}

// CheckTrivia handles POST /api/trivia/:id/check
// @Summary Check a trivia answer
// @Tags Trivia
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param payload body services.CheckInput true "Answer key, a to d"
// @Success 200 {object} services.CheckResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /trivia/{id}/check [post]
func (h *ReferenceHandler) CheckTrivia(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err, "trivia.check")
	}

	var in services.CheckInput
	if err := decodeBody(c, &in); err != nil {
		return respondError(c, h.Log, err, "trivia.check")
	}
	if in.Answer == nil {
		return respondError(c, h.Log, types.Invalid("answer", "is required"), "trivia.check")
	}

	q, err := h.Trivia.Get(c.UserContext(), "", id)
	if err != nil {
		return respondError(c, h.Log, err, "trivia.check")
	}

	return utils.SuccessResponse(c, services.CheckAnswer(q, *in.Answer), fiber.StatusOK)
}

// FoodPairs handles GET /api/food/pairs
// @Summary Food comparison pairs
// @Description Foods grouped by their pair number
// @Tags Food
// @Produce json
// @Success 200 {array} services.FoodPair
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /food/pairs [get]
func (h *ReferenceHandler) FoodPairs(c *fiber.Ctx) error {
	pairs, err := services.FoodPairs(c.UserContext(), h.DB)
	if err != nil {
		return respondError(c, h.Log, err, "food.pairs")
	}
	return utils.SuccessResponse(c, pairs, fiber.StatusOK)
}
