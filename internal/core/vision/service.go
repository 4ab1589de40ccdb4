package vision

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"fridgechef/internal/core/ai/provider"
	aiservice "fridgechef/internal/core/ai/service"
	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"go.uber.org/zap"
)

// AnalysisResult is the aggregated outcome of one analysis batch.
type AnalysisResult struct {
	Ingredients     []string `json:"ingredients"`
	Items           []Item   `json:"items"`
	ImagesProcessed int      `json:"images_processed"`
	ImagesFailed    int      `json:"images_failed"`
}

// Service runs fridge/pantry photos through the vision model and
// reduces the responses to one canonical ingredient list.
type Service struct {
	config    *config.Config
	aiService *aiservice.Service
}

// NewService creates the analysis service.
func NewService(cfg *config.Config, aiService *aiservice.Service) *Service {
	return &Service{
		config:    cfg,
		aiService: aiService,
	}
}

const visionPrompt = `Look at this photo of a refrigerator or pantry and list every edible ingredient you can identify.
Respond with compact JSON in exactly this shape:
{"high_confidence":[{"name":"ingredient","evidence":"where it is visible"}],"medium_confidence":[{"name":"ingredient","evidence":"why it is likely"}]}
Rules:
1. Only list items actually visible in the photo
2. Use specific food names, never category words like "vegetables" or "condiments"
3. Do not list containers, packaging or non-food items
4. Use double quotes for all fields`

// AnalyzeImages calls the vision model once per image (capped at the
// configured batch limit), merges the per-image results and returns the
// deduplicated, alphabetically sorted ingredient list. A single image
// failing is logged and skipped; the batch only errors when the caller
// supplied no usable images at all.
func (s *Service) AnalyzeImages(ctx context.Context, imageURLs []string, dietaryRestrictions string) (*AnalysisResult, error) {
	if len(imageURLs) == 0 {
		return nil, common.NewValidationError("at least one image URL is required")
	}
	if len(imageURLs) > s.config.Vision.MaxImages {
		common.LogWarn("image batch truncated",
			zap.Int("submitted", len(imageURLs)),
			zap.Int("max", s.config.Vision.MaxImages),
		)
		imageURLs = imageURLs[:s.config.Vision.MaxImages]
	}

	// Images are independent; fan out and reassemble in input order so
	// the aggregate is identical to sequential processing.
	perImage := make([][]Item, len(imageURLs))
	failed := make([]bool, len(imageURLs))

	var wg sync.WaitGroup
	for i, url := range imageURLs {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, s.config.Vision.CallTimeout)
			defer cancel()

			items, err := s.analyzeOne(callCtx, url, dietaryRestrictions)
			if err != nil {
				// One bad image never aborts the batch.
				common.LogWarn("image analysis failed, skipping",
					zap.Int("index", i),
					zap.String("image_kind", imageKind(url)),
					zap.Error(err),
				)
				failed[i] = true
				return
			}
			perImage[i] = items
		}(i, url)
	}
	wg.Wait()

	result := &AnalysisResult{}
	best := make(map[string]Tier)
	order := make([]string, 0)

	for i := range perImage {
		if failed[i] {
			result.ImagesFailed++
			continue
		}
		result.ImagesProcessed++
		for _, item := range perImage[i] {
			if item.Tier.Confidence() < s.config.Vision.MinConfidence {
				continue
			}
			prev, exists := best[item.Name]
			if !exists {
				best[item.Name] = item.Tier
				order = append(order, item.Name)
			} else if item.Tier.Confidence() > prev.Confidence() {
				best[item.Name] = item.Tier
			}
		}
	}

	deduped := ingredient.Dedupe(order)
	sort.Strings(deduped)

	result.Ingredients = deduped
	result.Items = make([]Item, 0, len(deduped))
	for _, name := range deduped {
		result.Items = append(result.Items, Item{Name: name, Tier: best[name]})
	}

	common.LogInfo("image analysis completed",
		zap.Int("images_processed", result.ImagesProcessed),
		zap.Int("images_failed", result.ImagesFailed),
		zap.Int("ingredient_count", len(result.Ingredients)),
	)

	return result, nil
}

func (s *Service) analyzeOne(ctx context.Context, imageURL string, dietaryRestrictions string) ([]Item, error) {
	resp, err := s.aiService.ProcessRequest(ctx, &provider.Request{
		Model:    s.config.OpenRouter.VisionModel,
		Prompt:   visionPrompt,
		ImageURL: imageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("vision call failed: %w", err)
	}

	return ParseResponse(resp.Content, dietaryRestrictions), nil
}

// imageKind classifies an image reference for logging without ever
// logging the payload itself.
func imageKind(image string) string {
	switch {
	case image == "":
		return "empty"
	case strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://"):
		return "url"
	case strings.HasPrefix(image, "data:image/"):
		return "data_uri"
	default:
		return "unknown_format"
	}
}
