package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aifashion/wardrobe-backend/apperrors"
	"github.com/aifashion/wardrobe-backend/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const taggingModel = "gemini-1.5-flash"

// AIService wraps the Gemini client for image tagging and outfit
// recommendation. The client is created once at startup.
type AIService struct {
	client *genai.Client
	model  string
}

// NewAIService creates a Gemini client with the given API key.
func NewAIService(ctx context.Context, apiKey string) (*AIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	return &AIService{client: client, model: taggingModel}, nil
}

// Close releases the underlying client.
func (s *AIService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// BatchAutoTag labels a batch of clothing images in one multimodal
// call. It returns exactly one tag set per image or an error; there is
// no partial tag result to act on, so any shortfall aborts the batch.
func (s *AIService) BatchAutoTag(ctx context.Context, images [][]byte) ([]models.ClothingTags, error) {
	if len(images) == 0 {
		return nil, apperrors.E(apperrors.InvalidInput, "no images to tag")
	}

	prompt := fmt.Sprintf(`You are labelling clothing photos for a wardrobe app.
You will receive %d images. Respond with ONLY a JSON array of exactly %d objects,
one per image, in the same order. Each object has these keys:
  "name": short descriptive name, e.g. "navy wool coat"
  "category": one of "top", "bottom", "outerwear", "dress", "shoes", "accessory"
  "color": dominant color
  "style": one of "casual", "formal", "sporty", "elegant", "street"
  "warmth": integer 1 (lightest) to 5 (warmest)
No markdown, no commentary, only the JSON array.`, len(images), len(images))

	parts := make([]genai.Part, 0, len(images)+1)
	parts = append(parts, genai.Text(prompt))
	for _, img := range images {
		parts = append(parts, genai.ImageData("jpeg", img))
	}

	model := s.client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Unexpected, "AI tagging failed", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, apperrors.E(apperrors.Unexpected, "AI tagging returned no content")
	}

	var tags []models.ClothingTags
	if err := json.Unmarshal([]byte(extractJSON(text)), &tags); err != nil {
		return nil, apperrors.Wrap(apperrors.Unexpected, "AI tagging returned unparseable result", err)
	}
	if len(tags) != len(images) {
		return nil, apperrors.E(apperrors.Unexpected,
			fmt.Sprintf("AI tagging returned %d results for %d images", len(tags), len(images)))
	}

	return tags, nil
}

// GenerateOutfitRecommendation asks the model to compose an outfit from
// the stored wardrobe for the given weather, style and occasion.
func (s *AIService) GenerateOutfitRecommendation(ctx context.Context, wardrobe []models.ClothingItem, weather *models.WeatherData, style, occasion string) (string, error) {
	var sb strings.Builder
	for _, item := range wardrobe {
		fmt.Fprintf(&sb, "- %s (%s, %s, %s, warmth %d/5)\n",
			item.Name, item.Category, item.Color, item.Style, item.Warmth)
	}

	prompt := fmt.Sprintf(`You are a personal stylist. Pick an outfit from the wardrobe below.

Wardrobe:
%s
Current weather in %s: %.1f°C (feels like %.1f°C), %s, humidity %d%%, wind %.1f km/h.
Preferred style: %s
Occasion: %s

Recommend one complete outfit using only items from the wardrobe.
Refer to each chosen item by its exact name from the list.
Explain briefly why the outfit suits the weather and the occasion.`,
		sb.String(), weather.City, weather.Temperature, weather.FeelsLike,
		weather.Condition, weather.Humidity, weather.WindKph, style, occasion)

	model := s.client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", apperrors.Wrap(apperrors.Unexpected, "AI recommendation failed", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", apperrors.E(apperrors.Unexpected, "AI recommendation returned no content")
	}
	return text, nil
}

// ParseRecommendedItems returns the wardrobe subset whose names appear
// verbatim in the recommendation prose.
func (s *AIService) ParseRecommendedItems(recommendation string, wardrobe []models.ClothingItem) []models.ClothingItem {
	matched := []models.ClothingItem{}
	seen := map[string]bool{}
	for _, item := range wardrobe {
		if item.Name == "" || seen[item.ID.Hex()] {
			continue
		}
		if strings.Contains(recommendation, item.Name) {
			matched = append(matched, item)
			seen[item.ID.Hex()] = true
		}
	}
	return matched
}

// responseText concatenates the text parts of a generation response.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}

// extractJSON strips markdown code fences the model sometimes wraps
// around JSON output and trims to the outermost array brackets.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
