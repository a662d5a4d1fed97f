package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kivly/backend/config"
	"github.com/kivly/backend/internal/types"
)

// Staples the prompt assumes every kitchen has, on top of the user's pantry.
const pantryStaples = "Water, Salt, Pepper, Oil, Vinegar, Milk, Sugar, Flour, Eggs, Garlic, Onion"

// LLMService handles interactions with the Groq chat-completions API.
type LLMService struct {
	apiKey     string
	apiURL     string
	model      string
	maxTokens  int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewLLMService creates a new LLMService instance from validated config.
func NewLLMService(cfg *config.Config, logger *zap.Logger) (*LLMService, error) {
	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY or GROQ_API_KEY_FILE must be set")
	}

	return &LLMService{
		apiKey:    cfg.GroqAPIKey,
		apiURL:    cfg.GroqAPIURL,
		model:     cfg.GroqModel,
		maxTokens: cfg.GroqMaxTokens,
		httpClient: &http.Client{
			Timeout: cfg.GroqTimeout,
		},
		logger: logger,
	}, nil
}

// Message represents a message in the chat.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the Groq API.
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens"`
}

// BuildPrompt renders the generation request into the instruction the
// upstream model receives. It is deterministic: identical requests yield
// byte-identical prompts. The contract constraints that cannot be checked
// locally (tool-aware techniques, unbiased ingredient choice) are encoded
// here as hard rules.
func BuildPrompt(req types.GenerationRequest) string {
	profile := req.Profile
	filters := req.Filters

	return fmt.Sprintf(`ROLE: You are a world-class executive chef, expert at adapting recipes to limited inventories without sacrificing quality.

GOAL:
Create ONE detailed, delicious and realistic recipe based on the user's available ingredients and their strict preferences.

USER DATA (ALWAYS TAKE INTO ACCOUNT FOR EVERY RECIPE):
1. AVAILABLE INVENTORY: [%s].
2. ASSUMED STAPLES (always available): [%s].
3. TOOLS: [%s].
4. ALLERGIES (CRITICAL - AVOID AT ALL COSTS): [%s].
5. COOKING SKILL LEVEL: %s.
6. DIET (ALWAYS RESPECT): %s.

MANDATORY FILTERS (DO NOT IGNORE):
- MAX TIME: %s. (The recipe must be doable in this real time.)
- CALORIE TARGET: %s. (Adjust portions and ingredients to get close.)
- DISH TYPE / BALANCE: %s. (E.g. if it is a cheat day, make something rich; if healthy, favor vegetables and lean protein.)

GOLDEN RULES:
1. REALISM: Do not invent absurd dishes. Base your answer on real culinary recipes (Italian, Mexican, Asian, Creole, etc.).
2. INGREDIENTS: You must MAINLY use what is in the INVENTORY.
   - You may freely use the STAPLES.
   - If ONE key ingredient is missing for the recipe to be excellent (e.g. grated cheese for pasta), you may suggest it as "Optional", but prioritize what is there.
3. STEPS WITH LIFE: No robotic instructions. Explain HOW and WHY.
   - Bad: "Cook the meat."
   - Good: "Sear the meat over high heat for 3 minutes per side until browned; this keeps the juices in."
4. ADAPTATION: If the user has "Meat" with no cut specified, assume a common versatile cut. If a specific tool is missing, suggest the alternative (pan instead of wok).
5. TOOLS: A cooking action is valid ONLY if the required tool is in the list.
   - E.g. "Bake" requires "Oven". "Boil" requires "Stove". "Blend" requires "Blender".
   - IF THE MAIN TOOL IS MISSING: adapt the technique (e.g. pizza with no oven becomes pan pizza; no pan, use the microwave).
6. VISUAL FORMAT (CLEANLINESS):
   - STEPS: Return ONLY the action text. Do NOT write "Step 1:", "1.", or anything similar at the start. The client already numbers them. You may wrap key phrases in **double asterisks** for emphasis.
   - INGREDIENTS: Clean list with approximate quantities for 1 serving.
7. PURE RANDOMNESS RULE (CRITICAL):
   - RANDOM SIMULATION: Before starting, simulate a completely random pick among all available main ingredients.
   - NO FAVORITISM: Ignore which ingredient is more "popular" or "easy". If you have [Chicken, Pork, Lentils], give each exactly the same probability (33%% each). Do not pick chicken just because it is common.
   - DIRECT INSTRUCTION: Pick one at random and build the recipe around it, even if it is the hardest to cook.

OUTPUT FORMAT, JSON (SINGLE-ELEMENT ARRAY):
[
  {
    "title": "Attractive, real dish name",
    "description": "An appetizing two-line description.",
    "time": "%s",
    "calories": IntegerEstimate,
    "nutrition": { "protein": "XXg", "carbs": "XXg", "fat": "XXg", "sugar": "XXg" },
    "ingredients_list": ["Full ingredient list with approximate quantities for 1 person"],
    "steps": [
       "Detailed step...",
       "Detailed step...",
       "Final plating step."
    ]
  }
]

NOTE: Return ONLY the raw JSON, no code fences and no extra text.`,
		joinOrNone(profile.PantryEssentials),
		pantryStaples,
		joinOrNone(profile.KitchenTools),
		joinOrNone(profile.Allergies),
		profile.SkillLevel,
		profile.DietType,
		filters.Time,
		filters.Calories,
		filters.Balance,
		filters.Time,
	)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// GenerateRecipe sends the generation request upstream and returns the raw
// completion content. Normalization into a Recipe happens in the relay, not
// here.
func (s *LLMService) GenerateRecipe(ctx context.Context, genReq types.GenerationRequest) (string, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "user",
				Content: BuildPrompt(genReq),
			},
		},
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		// Controlled creativity so the model follows the rules.
		Temperature: 0.6,
		MaxTokens:   s.maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", types.ErrUpstreamUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: %s", types.ErrRateLimited, strings.TrimSpace(string(body)))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: %s", types.ErrUnauthenticated, strings.TrimSpace(string(body)))
	case resp.StatusCode != http.StatusOK:
		s.logger.Error("upstream request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", strings.TrimSpace(string(body))),
		)
		return "", fmt.Errorf("%w: upstream returned status %d", types.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", types.ErrMalformedOutput, err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", types.ErrMalformedOutput)
	}

	return result.Choices[0].Message.Content, nil
}
