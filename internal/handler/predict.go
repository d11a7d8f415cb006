package handler

import (
	"context"
	"net/http"

	"housing-prediction-api/internal/features"
	"housing-prediction-api/internal/models"
	"housing-prediction-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PredictHandler handles prediction requests
type PredictHandler struct {
	service PredictionService
}

// PredictionService interface for dependency injection
type PredictionService interface {
	Predict(ctx context.Context, endpoint string, in features.Input) (*service.Prediction, error)
}

// NewPredictHandler creates a new prediction handler
func NewPredictHandler(svc PredictionService) *PredictHandler {
	return &PredictHandler{service: svc}
}

// Predict handles POST /predict requests
//
//	@Summary		Predict from a full record
//	@Description	Enriches the record with zipcode demographics (request values win) and returns the model prediction.
//	@Tags			prediction
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.PredictRequest	true	"Full input record"
//	@Success		200		{object}	service.Prediction
//	@Failure		422		{object}	models.ValidationErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/predict [post]
func (h *PredictHandler) Predict(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	h.predict(c, service.EndpointPredict, features.Input{
		Age:       *req.Age,
		Income:    *req.Income,
		Zipcode:   req.Zipcode.String(),
		Gender:    req.Gender,
		Education: req.Education,
	})
}

// PredictMinimal handles POST /predict-minimal requests
//
//	@Summary		Predict from age, income and zipcode
//	@Description	Gender and education are taken from the zipcode's demographics, or "unknown" when the zipcode is not in the table.
//	@Tags			prediction
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.MinimalPredictRequest	true	"Minimal input record"
//	@Success		200		{object}	service.Prediction
//	@Failure		422		{object}	models.ValidationErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/predict-minimal [post]
func (h *PredictHandler) PredictMinimal(c *gin.Context) {
	var req models.MinimalPredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	h.predict(c, service.EndpointPredictMinimal, features.Input{
		Age:     *req.Age,
		Income:  *req.Income,
		Zipcode: req.Zipcode.String(),
	})
}

func (h *PredictHandler) predict(c *gin.Context, endpoint string, in features.Input) {
	result, err := h.service.Predict(c.Request.Context(), endpoint, in)
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("prediction failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}
