package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kivly/backend/internal/service"
	"github.com/kivly/backend/internal/types"
)

// GenerateHandler handles recipe generation requests.
type GenerateHandler struct {
	recipes service.IRecipeService
	logger  *zap.Logger
}

// NewGenerateHandler creates a new GenerateHandler instance.
func NewGenerateHandler(recipes service.IRecipeService, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		recipes: recipes,
		logger:  logger,
	}
}

// RegisterRoutes registers the generation routes.
func (h *GenerateHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/generate-recipes", h.Generate)
}

// Generate handles POST /generate-recipes. On success the body is a JSON
// array holding exactly one recipe, matching what clients already consume.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req types.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("generating recipe",
		zap.String("diet", req.Profile.DietType),
		zap.String("skill", req.Profile.SkillLevel),
		zap.String("time", req.Filters.Time),
		zap.String("calories", req.Filters.Calories),
		zap.String("balance", req.Filters.Balance),
	)

	recipe, err := h.recipes.Generate(c.Request.Context(), req)
	if err != nil {
		status, message := mapGenerationError(err)
		h.logger.Error("recipe generation failed",
			zap.Error(err),
			zap.Int("status", status),
		)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, []types.Recipe{*recipe})
}

// mapGenerationError translates the relay failure taxonomy into the HTTP
// contract: 429 rate limited, 401 upstream credential, 500 everything else.
func mapGenerationError(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrRateLimited):
		return http.StatusTooManyRequests, "Request limit reached on the generation service. Try again later."
	case errors.Is(err, types.ErrUnauthenticated):
		return http.StatusUnauthorized, "Authentication with the generation service failed. Check the API key."
	default:
		// Malformed output, allergen violations and transport failures
		// all surface as the same retry-friendly generic failure.
		return http.StatusInternalServerError, "The chef ran into a technical problem. Try again."
	}
}
