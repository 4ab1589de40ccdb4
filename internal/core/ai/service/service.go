package service

import (
	"context"
	"strings"
	"time"

	"fridgechef/internal/core/ai/cache"
	"fridgechef/internal/core/ai/openrouter"
	"fridgechef/internal/core/ai/provider"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"
)

// Response wraps a raw model completion.
type Response struct {
	Content  string
	CacheHit bool
}

// Service fronts the AI provider with response caching. All model
// traffic in the application goes through ProcessRequest.
type Service struct {
	config       *config.Config
	provider     provider.Provider
	cacheManager *cache.Manager
}

// NewService creates the AI service with the default OpenRouter
// provider.
func NewService(cfg *config.Config, cacheManager *cache.Manager) (*Service, error) {
	return &Service{
		config:       cfg,
		provider:     openrouter.NewClient(cfg),
		cacheManager: cacheManager,
	}, nil
}

// NewServiceWithProvider creates the AI service with a custom provider.
// Used by tests to stub model calls.
func NewServiceWithProvider(cfg *config.Config, cacheManager *cache.Manager, p provider.Provider) *Service {
	return &Service{
		config:       cfg,
		provider:     p,
		cacheManager: cacheManager,
	}
}

// ProcessRequest runs one model call, consulting the cache first. The
// prompt is whitespace-normalized so equivalent prompts share a cache
// key.
func (s *Service) ProcessRequest(ctx context.Context, req *provider.Request) (*Response, error) {
	req.Prompt = strings.Join(strings.Fields(strings.TrimSpace(req.Prompt)), " ")

	cacheKey := req.Model + ":" + req.Prompt
	if val, err := s.cacheManager.Get(ctx, cacheKey, req.ImageURL); err == nil && val != "" {
		return &Response{Content: val, CacheHit: true}, nil
	}

	start := time.Now()
	content, err := s.provider.Generate(ctx, req)
	common.LogAICall(time.Since(start), err, "")
	if err != nil {
		return nil, err
	}

	_ = s.cacheManager.Set(ctx, cacheKey, req.ImageURL, content)

	return &Response{Content: content}, nil
}
