package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kivly/backend/internal/types"
)

// PlaceholderOrigin is the value shipped in example configuration. Running
// against it would silently target nothing, so it is rejected like an
// unset origin.
const PlaceholderOrigin = "https://your-backend.example.com"

// ErrOriginNotConfigured means the backend origin is unset or still the
// placeholder. Callers should surface a clear configuration message
// instead of attempting any network call.
var ErrOriginNotConfigured = errors.New("backend origin is not configured: set KIVLY_API_URL to your deployed backend URL")

// Client is the typed caller for the generation relay.
type Client struct {
	http *resty.Client
}

// New validates the target origin and builds a client around it.
func New(origin string) (*Client, error) {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" || origin == PlaceholderOrigin {
		return nil, ErrOriginNotConfigured
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid backend origin %q", origin)
	}

	httpClient := resty.New().
		SetBaseURL(origin).
		SetHeader("Content-Type", "application/json").
		SetTimeout(90 * time.Second)

	return &Client{http: httpClient}, nil
}

// GenerateRecipe posts the request to /generate-recipes and maps the HTTP
// statuses back onto the relay's failure taxonomy.
func (c *Client) GenerateRecipe(ctx context.Context, req types.GenerationRequest) (*types.Recipe, error) {
	var recipes []types.Recipe
	var apiErr types.ErrorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&recipes).
		SetError(&apiErr).
		Post("/generate-recipes")
	if err != nil {
		return nil, fmt.Errorf("%w: could not reach service: %v", types.ErrUpstreamUnavailable, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		if len(recipes) == 0 {
			return nil, fmt.Errorf("%w: empty response", types.ErrMalformedOutput)
		}
		recipe := recipes[0]
		if recipe.ID == "" {
			recipe.ID = recipe.ContentID()
		}
		return &recipe, nil
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", types.ErrRateLimited, apiErr.Error)
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", types.ErrUnauthenticated, apiErr.Error)
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrMalformedOutput, apiErr.Error)
	}
}
