package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-discovery/internal/infrastructure/config"
	"recipe-discovery/internal/pkg/common"
)

type stubSources struct {
	sources []common.RecipeSource
	err     error
}

func (s stubSources) ActiveSources(ctx context.Context) ([]common.RecipeSource, error) {
	return s.sources, s.err
}

func testCrawlerConfig() *config.Config {
	return &config.Config{
		Crawler: config.CrawlerConfig{
			MaxConcurrent:       5,
			FetchTimeout:        5 * time.Second,
			MaxRecipes:          10,
			CandidateMultiplier: 2,
			MaxSearchURLs:       5,
			MaxURLsPerPage:      20,
			UserAgent:           "test-agent",
		},
	}
}

func recipePage(name string) string {
	return fmt.Sprintf(`<html><head><script type="application/ld+json">
	{
		"@type": "Recipe",
		"name": %q,
		"recipeIngredient": ["2 cups flour", "3 eggs"],
		"recipeInstructions": ["Mix everything together.", "Bake for 30 minutes."],
		"recipeYield": "4 servings"
	}
	</script></head><body></body></html>`, name)
}

func TestDiscoverRecipesEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
		<a href="/recipe/pancakes">Pancakes</a>
		<a href="/recipe/broken">Broken</a>
		<a href="/recipe/empty">Empty</a>
		<a href="/category/breakfast">Category</a>
		</body></html>`)
	})
	mux.HandleFunc("/recipe/pancakes", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, recipePage("Fluffy Pancakes"))
	})
	mux.HandleFunc("/recipe/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/recipe/empty", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div>no recipe content</div></body></html>`)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testCrawlerConfig()
	crawler := NewCrawler(cfg, NewFetcher(cfg), stubSources{
		sources: []common.RecipeSource{
			{SiteName: "Test", URLTemplate: server.URL + "/search?q={query}", Active: true},
		},
	})

	recipes := crawler.DiscoverRecipes(context.Background(), "pancakes", nil, 5)

	// 壞頁與空頁被跳過，不影響成功的那筆
	require.Len(t, recipes, 1)
	assert.Equal(t, "Fluffy Pancakes", recipes[0].Title)
	assert.Equal(t, server.URL+"/recipe/pancakes", recipes[0].SourceURL)
	require.Len(t, recipes[0].Ingredients, 2)
	require.NotNil(t, recipes[0].Servings)
	assert.Equal(t, 4, *recipes[0].Servings)
}

func TestDiscoverRecipesNoSources(t *testing.T) {
	cfg := testCrawlerConfig()
	crawler := NewCrawler(cfg, NewFetcher(cfg), stubSources{})

	recipes := crawler.DiscoverRecipes(context.Background(), "anything", nil, 5)
	assert.Empty(t, recipes)
}

func TestDiscoverRecipesSearchPageFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testCrawlerConfig()
	crawler := NewCrawler(cfg, NewFetcher(cfg), stubSources{
		sources: []common.RecipeSource{
			{SiteName: "Down", URLTemplate: server.URL + "/search?q={query}", Active: true},
		},
	})

	recipes := crawler.DiscoverRecipes(context.Background(), "anything", nil, 5)
	assert.Empty(t, recipes)
}

func TestScrapeOneErrorCategories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/recipe/good", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, recipePage("Good"))
	})
	mux.HandleFunc("/recipe/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/recipe/empty", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div>no recipe content</div></body></html>`)
	})
	mux.HandleFunc("/recipe/title-only", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><script type="application/ld+json">
		{"@type": "Recipe", "name": "Title Only"}
		</script></head><body></body></html>`)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testCrawlerConfig()
	crawler := NewCrawler(cfg, NewFetcher(cfg), nil)
	stats := &crawlStats{}

	recipe, err := crawler.scrapeOne(context.Background(), server.URL+"/recipe/good", stats)
	require.NoError(t, err)
	assert.Equal(t, "Good", recipe.Title)

	_, err = crawler.scrapeOne(context.Background(), server.URL+"/recipe/broken", stats)
	assert.True(t, errors.Is(err, common.ErrFetch))

	_, err = crawler.scrapeOne(context.Background(), server.URL+"/recipe/empty", stats)
	assert.True(t, errors.Is(err, common.ErrNoRecipeData))

	// 有標題但食材與步驟都空：標準化拒收，一樣歸類為沒有食譜資料
	_, err = crawler.scrapeOne(context.Background(), server.URL+"/recipe/title-only", stats)
	assert.True(t, errors.Is(err, common.ErrNoRecipeData))
}

func TestDiscoverRecipesClampsMaxRecipes(t *testing.T) {
	var recipeHits atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
		<a href="/recipe/one">1</a>
		<a href="/recipe/two">2</a>
		<a href="/recipe/three">3</a>
		<a href="/recipe/four">4</a>
		</body></html>`)
	})
	mux.HandleFunc("/recipe/", func(w http.ResponseWriter, r *http.Request) {
		recipeHits.Add(1)
		fmt.Fprint(w, recipePage("Recipe "+r.URL.Path))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := testCrawlerConfig()
	cfg.Crawler.MaxRecipes = 1

	crawler := NewCrawler(cfg, NewFetcher(cfg), stubSources{
		sources: []common.RecipeSource{
			{SiteName: "Test", URLTemplate: server.URL + "/search?q={query}", Active: true},
		},
	})

	// 呼叫端要求的量遠超過設定上限：候選預算要以設定值為準
	recipes := crawler.DiscoverRecipes(context.Background(), "anything", nil, 500)

	assert.LessOrEqual(t, len(recipes), 1)
	assert.LessOrEqual(t, recipeHits.Load(),
		int64(cfg.Crawler.MaxRecipes*cfg.Crawler.CandidateMultiplier))
}

func acceptInput(site, title string, ingredients ...string) *common.Recipe {
	recipe := &common.Recipe{
		Title:        title,
		SiteName:     site,
		SourceURL:    "https://" + site + ".com/recipe/" + title,
		Instructions: []string{"Cook it."},
	}
	for _, item := range ingredients {
		recipe.Ingredients = append(recipe.Ingredients, common.Ingredient{Item: item})
	}
	return recipe
}

func TestAcceptCapsAndDeduplicatesSites(t *testing.T) {
	crawler := NewCrawler(testCrawlerConfig(), nil, nil)

	results := []*common.Recipe{
		nil, // 抓取失敗的位置
		acceptInput("alpha", "First", "rice"),
		acceptInput("Alpha", "Duplicate site", "beans"), // 同站只收第一筆（不分大小寫）
		acceptInput("beta", "Second", "beef"),
		acceptInput("gamma", "Third", "corn"),
	}

	accepted := crawler.accept(results, nil, 2)
	require.Len(t, accepted, 2)
	assert.Equal(t, "First", accepted[0].Title)
	assert.Equal(t, "Second", accepted[1].Title)
}

func TestAcceptRequiresIngredientsAndInstructions(t *testing.T) {
	crawler := NewCrawler(testCrawlerConfig(), nil, nil)

	noIngredients := acceptInput("alpha", "No ingredients")
	noInstructions := acceptInput("beta", "No instructions", "rice")
	noInstructions.Instructions = nil
	complete := acceptInput("gamma", "Complete", "rice")

	accepted := crawler.accept([]*common.Recipe{noIngredients, noInstructions, complete}, nil, 10)
	require.Len(t, accepted, 1)
	assert.Equal(t, "Complete", accepted[0].Title)
}

func TestAcceptSkipsDislikedIngredients(t *testing.T) {
	crawler := NewCrawler(testCrawlerConfig(), nil, nil)

	results := []*common.Recipe{
		acceptInput("alpha", "With peanuts", "Roasted Peanuts"),
		acceptInput("beta", "Clean", "rice"),
	}

	accepted := crawler.accept(results, []string{"peanut"}, 10)
	require.Len(t, accepted, 1)
	assert.Equal(t, "Clean", accepted[0].Title)
}
