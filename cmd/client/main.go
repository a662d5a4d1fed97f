package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/kivly/backend/internal/client"
	"github.com/kivly/backend/internal/logging"
	"github.com/kivly/backend/internal/types"
)

// A terminal session against a deployed relay: loads the locally stored
// profile, requests one recipe with the given filters and optionally
// saves it.
func main() {
	timeFilter := flag.String("time", types.Time30, "max preparation time (15 min, 30 min, 45 min, +60 min)")
	calories := flag.String("calories", types.CaloriesMedium, "calorie band (Light (<400), Medium (600), Hearty (+800))")
	balance := flag.String("balance", types.BalanceBalanced, "balance mode (Cheat Day, Balanced, 100% Healthy)")
	save := flag.Bool("save", false, "save the generated recipe to the local collection")
	dbPath := flag.String("db", "kivly.db", "path to the local profile database")
	flag.Parse()

	_ = godotenv.Load()

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	logger, err := logging.New(level)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	session, err := client.NewSession(os.Getenv("KIVLY_API_URL"), *dbPath, logger)
	if err != nil {
		log.Fatalf("failed to open session: %v", err)
	}

	ctx := context.Background()
	recipe, err := session.GenerateRecipe(ctx, types.Filters{
		Time:     *timeFilter,
		Calories: *calories,
		Balance:  *balance,
	})
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	printRecipe(recipe)

	if *save {
		// Toggle semantics: saving a title that is already in the
		// collection would remove it instead.
		if session.IsSaved(ctx, *recipe) {
			fmt.Printf("\nAlready saved; collection unchanged.\n")
			return
		}
		profile, err := session.ToggleSave(ctx, *recipe)
		if err != nil {
			log.Fatalf("failed to save recipe: %v", err)
		}
		fmt.Printf("\nSaved. Collection now holds %d recipe(s).\n", len(profile.SavedRecipes))
	}
}

func printRecipe(r *types.Recipe) {
	fmt.Printf("%s\n%s\n\n", r.Title, r.Description)
	fmt.Printf("Time: %s  Calories: %d\n", r.Time, int(r.Calories))
	fmt.Printf("Macros: protein %s, carbs %s, fat %s, sugar %s\n\n",
		r.Nutrition.Protein, r.Nutrition.Carbs, r.Nutrition.Fat, r.Nutrition.Sugar)

	fmt.Println("Ingredients:")
	for _, ing := range r.Ingredients {
		fmt.Printf("  - %s\n", ing)
	}

	fmt.Println("\nSteps:")
	for i, step := range r.Steps {
		var b strings.Builder
		for _, span := range client.SplitEmphasis(step) {
			if span.Bold {
				b.WriteString(strings.ToUpper(span.Text))
			} else {
				b.WriteString(span.Text)
			}
		}
		fmt.Printf("  %d. %s\n", i+1, b.String())
	}
}
