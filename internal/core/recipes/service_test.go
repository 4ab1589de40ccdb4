package recipes

import (
	"context"
	"errors"
	"testing"

	"fridgechef/internal/core/ai/provider"
	aiservice "fridgechef/internal/core/ai/service"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	common.Logger = zap.NewNop()
}

type stubProvider struct {
	response string
	err      error
	lastReq  *provider.Request
}

func (s *stubProvider) Generate(ctx context.Context, req *provider.Request) (string, error) {
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testConfig() *config.Config {
	return &config.Config{
		OpenRouter: config.OpenRouterConfig{
			APIKey:    "test-key",
			TextModel: "test/text-model",
		},
		Recipes: config.RecipesConfig{
			DefaultCount: 3,
			MaxCount:     10,
		},
	}
}

func newTestService(p provider.Provider) *Service {
	cfg := testConfig()
	return NewService(cfg, aiservice.NewServiceWithProvider(cfg, nil, p))
}

func TestGenerateRanksAndFilters(t *testing.T) {
	stub := &stubProvider{
		response: `{"recipes":[` +
			`{"title":"Scrambled Eggs","ingredients":["eggs","salt","pepper"]},` +
			`{"title":"Sweet Bread","ingredients":["eggs","milk","flour","sugar","yeast"]}]}`,
	}
	svc := newTestService(stub)

	ranked, err := svc.Generate(context.Background(), []string{"eggs", "milk", "bread", "butter"}, Preferences{}, 2)

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Scrambled Eggs", ranked[0].Title)
	assert.Equal(t, 2, ranked[0].MissingCount)
}

func TestGeneratePromptCarriesPreferences(t *testing.T) {
	stub := &stubProvider{response: `{"recipes":[]}`}
	svc := newTestService(stub)

	_, err := svc.Generate(context.Background(), []string{"tofu", "rice"}, Preferences{
		DietaryRestrictions: "vegan",
		FoodGenres:          []string{"Thai", "Japanese"},
		ServingSize:         2,
	}, 0)

	require.NoError(t, err)
	require.NotNil(t, stub.lastReq)
	assert.Equal(t, "test/text-model", stub.lastReq.Model)
	assert.Contains(t, stub.lastReq.Prompt, "tofu, rice")
	assert.Contains(t, stub.lastReq.Prompt, "vegan")
	assert.Contains(t, stub.lastReq.Prompt, "Thai, Japanese")
}

func TestGenerateMalformedResponse(t *testing.T) {
	stub := &stubProvider{response: "I have no recipes for you today."}
	svc := newTestService(stub)

	_, err := svc.Generate(context.Background(), []string{"eggs"}, Preferences{}, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGenerateProviderError(t *testing.T) {
	stub := &stubProvider{err: errors.New("upstream down")}
	svc := newTestService(stub)

	_, err := svc.Generate(context.Background(), []string{"eggs"}, Preferences{}, 1)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
}

func TestGenerateRequiresIngredients(t *testing.T) {
	svc := newTestService(&stubProvider{})

	_, err := svc.Generate(context.Background(), nil, Preferences{}, 1)

	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestRankSavedFallback(t *testing.T) {
	svc := newTestService(&stubProvider{})

	saved := []Recipe{
		{Title: "Pancakes", Ingredients: []string{"eggs", "milk", "flour"}},
		{Title: "Toast", Ingredients: []string{"bread", "butter"}},
	}

	ranked := svc.RankSaved(saved, []string{"eggs", "milk", "bread", "butter"})

	require.Len(t, ranked, 2)
	assert.Equal(t, "Toast", ranked[0].Title)
	assert.Equal(t, 0, ranked[0].MissingCount)
	assert.Equal(t, "Pancakes", ranked[1].Title)
	assert.Equal(t, 1, ranked[1].MissingCount)
}
