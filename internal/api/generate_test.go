package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kivly/backend/internal/types"
)

// mockRecipeService scripts the relay result for handler tests.
type mockRecipeService struct {
	recipe  *types.Recipe
	err     error
	lastReq types.GenerationRequest
}

func (m *mockRecipeService) Generate(ctx context.Context, req types.GenerationRequest) (*types.Recipe, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.recipe, nil
}

func setupGenerateRouter(svc *mockRecipeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewGenerateHandler(svc, zap.NewNop()).RegisterRoutes(router)
	return router
}

func validBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(types.GenerationRequest{
		Profile: types.ProfilePayload{
			DietType:         types.DietVegan,
			KitchenTools:     []string{"Stove"},
			PantryEssentials: []string{"rice", "lentils"},
			Allergies:        []string{"peanut"},
			SkillLevel:       types.SkillIntermediate,
		},
		Filters: types.Filters{
			Time:     types.Time30,
			Calories: types.CaloriesMedium,
			Balance:  types.BalanceBalanced,
		},
	})
	require.NoError(t, err)
	return body
}

func postGenerate(router *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate-recipes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateHandler_Generate(t *testing.T) {
	t.Run("returns a one-element array on success", func(t *testing.T) {
		svc := &mockRecipeService{recipe: &types.Recipe{
			ID:          "abc123",
			Title:       "Coconut Lentil Curry",
			Time:        types.Time30,
			Ingredients: []string{"150g red lentils"},
			Steps:       []string{"Simmer."},
		}}
		router := setupGenerateRouter(svc)

		w := postGenerate(router, validBody(t))

		assert.Equal(t, http.StatusOK, w.Code)

		var recipes []types.Recipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
		require.Len(t, recipes, 1)
		assert.Equal(t, "Coconut Lentil Curry", recipes[0].Title)
		assert.Equal(t, types.DietVegan, svc.lastReq.Profile.DietType)
	})

	t.Run("returns 400 on an unparsable body", func(t *testing.T) {
		router := setupGenerateRouter(&mockRecipeService{})

		w := postGenerate(router, []byte(`{"profile": `))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps ErrRateLimited to 429", func(t *testing.T) {
		router := setupGenerateRouter(&mockRecipeService{err: types.ErrRateLimited})

		w := postGenerate(router, validBody(t))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		var resp types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "Try again later")
	})

	t.Run("maps ErrUnauthenticated to 401", func(t *testing.T) {
		router := setupGenerateRouter(&mockRecipeService{err: types.ErrUnauthenticated})

		w := postGenerate(router, validBody(t))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "API key")
	})

	t.Run("maps everything else to a generic 500", func(t *testing.T) {
		for _, err := range []error{
			types.ErrMalformedOutput,
			types.ErrUpstreamUnavailable,
			types.ErrAllergenViolation,
		} {
			router := setupGenerateRouter(&mockRecipeService{err: err})

			w := postGenerate(router, validBody(t))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			var resp types.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, "Try again")
		}
	})
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHealthHandler("test").RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
