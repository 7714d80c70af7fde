package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rms_backend/internal/models"
	"rms_backend/pkg/utils"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"
)

var (
	ErrNoStockForSpecials = errors.New("no items in stock to generate specials from")
	ErrSpecialsDisabled   = errors.New("chef specials are disabled: no API key configured")
	ErrSpecialsUpstream   = errors.New("failed to generate specials from AI")
)

// TextGenerator sends a prompt to a generative model and returns its raw
// text answer, constrained to JSON matching schema.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// SpecialsService suggests chef's specials from what is in stock.
type SpecialsService interface {
	GenerateSpecials(ctx context.Context) ([]models.SpecialDish, error)
}

type specialsService struct {
	store     StateReader
	generator TextGenerator
}

// NewSpecialsService creates a SpecialsService. A nil generator disables generation.
func NewSpecialsService(store StateReader, generator TextGenerator) SpecialsService {
	if g, ok := generator.(*GeminiClient); ok && g == nil {
		generator = nil
	}
	return &specialsService{store: store, generator: generator}
}

var specialsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        {Type: genai.TypeString, Description: "The creative name of the special dish."},
			"description": {Type: genai.TypeString, Description: "A brief, appealing description of the dish."},
			"price":       {Type: genai.TypeNumber, Description: "The suggested price for the dish."},
			"ingredients": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "List of key ingredients used.",
			},
		},
		Required: []string{"name", "description", "price", "ingredients"},
	},
}

func (s *specialsService) GenerateSpecials(ctx context.Context) ([]models.SpecialDish, error) {
	inStock := lo.Filter(s.store.Snapshot().Menu, func(m models.MenuItem, _ int) bool { return m.Stock > 0 })
	if len(inStock) == 0 {
		return nil, ErrNoStockForSpecials
	}
	if s.generator == nil {
		return nil, ErrSpecialsDisabled
	}

	text, err := s.generator.Generate(ctx, SpecialsPrompt(inStock), specialsSchema)
	if err != nil {
		utils.LogError(err, "Error generating chef specials")
		return nil, fmt.Errorf("%w: %v", ErrSpecialsUpstream, err)
	}
	specials, err := ParseSpecials(text)
	if err != nil {
		utils.LogError(err, "Error parsing chef specials", map[string]interface{}{"response_length": len(text)})
		return nil, fmt.Errorf("%w: %v", ErrSpecialsUpstream, err)
	}

	utils.LogInfo("Chef specials generated", map[string]interface{}{"count": len(specials), "in_stock_items": len(inStock)})
	return specials, nil
}

// SpecialsPrompt asks for three specials built from the given inventory.
func SpecialsPrompt(inStock []models.MenuItem) string {
	inventory := strings.Join(lo.Map(inStock, func(m models.MenuItem, _ int) string {
		return fmt.Sprintf("%s (Category: %s, Stock: %d)", m.Name, m.Category, m.Stock)
	}), ", ")

	return `You are an expert executive chef for a modern restaurant. Your task is to create three exciting "Chef's Specials" for today's menu.

Analyze the following list of currently available inventory items:
` + inventory + `

Based on this inventory, generate three unique and appealing special dishes. For each dish, provide:
1. A creative and enticing name.
2. A brief, mouth-watering description (20-30 words).
3. A suggested price in Indian Rupees (INR) (as a number).
4. A list of key ingredients used from the inventory.

Your response must be a valid JSON array, adhering to the provided schema. Do not include any text or markdown formatting outside of the JSON structure.`
}

// ParseSpecials checks that text is a non-empty JSON array of complete
// special dishes and decodes it.
func ParseSpecials(text string) ([]models.SpecialDish, error) {
	text = strings.TrimSpace(text)
	if !gjson.Valid(text) {
		return nil, errors.New("response is not valid JSON")
	}
	doc := gjson.Parse(text)
	if !doc.IsArray() || len(doc.Array()) == 0 {
		return nil, errors.New("response is not a non-empty JSON array")
	}
	for i, dish := range doc.Array() {
		switch {
		case dish.Get("name").Type != gjson.String:
			return nil, fmt.Errorf("special %d: missing name", i)
		case dish.Get("description").Type != gjson.String:
			return nil, fmt.Errorf("special %d: missing description", i)
		case dish.Get("price").Type != gjson.Number:
			return nil, fmt.Errorf("special %d: price must be a number", i)
		case !dish.Get("ingredients").IsArray():
			return nil, fmt.Errorf("special %d: ingredients must be a list", i)
		}
	}

	var specials []models.SpecialDish
	if err := json.Unmarshal([]byte(text), &specials); err != nil {
		return nil, fmt.Errorf("decode specials: %w", err)
	}
	return specials, nil
}
