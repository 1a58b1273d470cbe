package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
	"github.com/virilis/backend/internal/service"
)

type RecommendationHandler struct {
	Handler
	recommendations *service.RecommendationService
}

func NewRecommendationHandler(s *server.Server, recommendations *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{Handler: NewHandler(s), recommendations: recommendations}
}

type CompleteRecommendationRequest struct {
	UserID           int64 `param:"userId" json:"-"`
	RecommendationID int64 `param:"recommendationId" json:"-"`
}

func (r *CompleteRecommendationRequest) Validate() error {
	return nil
}

func (h *RecommendationHandler) ListRecommendations(c echo.Context, req *UserPathRequest) ([]model.Recommendation, error) {
	return h.recommendations.List(c.Request().Context(), req.UserID)
}

func (h *RecommendationHandler) CompleteRecommendation(c echo.Context, req *CompleteRecommendationRequest) (*model.Recommendation, error) {
	return h.recommendations.Complete(c.Request().Context(), req.UserID, req.RecommendationID)
}
