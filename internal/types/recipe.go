package types

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Nutrition holds the approximate macro breakdown of a recipe. The generator
// guarantees protein, carbs, fat and sugar; fiber and sodium may be absent,
// so treat this as a partial mapping.
type Nutrition struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fat     string `json:"fat"`
	Sugar   string `json:"sugar"`
	Fiber   string `json:"fiber,omitempty"`
	Sodium  string `json:"sodium,omitempty"`
}

// CalorieCount tolerates the number/string drift LLMs produce for the
// calories field. It always marshals back as a plain integer.
type CalorieCount int

func (c *CalorieCount) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*c = CalorieCount(int(num))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		str = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(str), "kcal"))
		n, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("invalid calories value %q", str)
		}
		*c = CalorieCount(n)
		return nil
	}

	return fmt.Errorf("invalid calories format")
}

func (c CalorieCount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(c))), nil
}

// Recipe is the relay's output value object. Once returned it is never
// mutated; clients either render it transiently or keep it in their saved
// collection.
type Recipe struct {
	ID          string       `json:"id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Time        string       `json:"time"`
	Calories    CalorieCount `json:"calories"`
	Nutrition   Nutrition    `json:"nutrition"`
	Ingredients []string     `json:"ingredients_list"`
	Steps       []string     `json:"steps"`
}

// ContentID derives a stable synthetic identifier from the recipe content.
// Title alone is a fragile identity key (two distinct recipes can share a
// title), so the relay stamps every normalized recipe with this hash.
func (r *Recipe) ContentID() string {
	h := sha256.New()
	h.Write([]byte(r.Title))
	for _, ing := range r.Ingredients {
		h.Write([]byte{0})
		h.Write([]byte(ing))
	}
	for _, step := range r.Steps {
		h.Write([]byte{1})
		h.Write([]byte(step))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ContainsAllergen reports whether any ingredient matches one of the given
// allergies, using case-insensitive containment as the minimum guard.
func (r *Recipe) ContainsAllergen(allergies []string) (string, bool) {
	for _, allergy := range allergies {
		needle := strings.ToLower(strings.TrimSpace(allergy))
		if needle == "" {
			continue
		}
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing), needle) {
				return allergy, true
			}
		}
	}
	return "", false
}
