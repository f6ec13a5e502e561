// Package gemini classifies recipe ingredients with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/ricette"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Classifier implements ricette.IngredientClassifier at compile time.
var _ ricette.IngredientClassifier = (*Classifier)(nil)

// NewClient creates a Gemini API client authenticated with apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, ricette.Errorf(ricette.EINVALID, "gemini API key required")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// Classifier implements ricette.IngredientClassifier using Google Gemini.
type Classifier struct {
	client *genai.Client
	model  string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithModel sets the Gemini model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(c *Classifier) {
		if model != "" {
			c.model = model
		}
	}
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client, opts ...Option) *Classifier {
	c := &Classifier{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify assigns one of ricette.IngredientCategories to each name.
func (c *Classifier) Classify(ctx context.Context, names []string) ([]ricette.ClassifiedIngredient, error) {
	prompt := BuildUserPrompt(names)
	if prompt == "" {
		return nil, ricette.Errorf(ricette.EINVALID, "at least one ingredient name required")
	}
	if c.client == nil {
		return nil, ricette.Errorf(ricette.EINTERNAL, "gemini client not configured")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ricette.Errorf(ricette.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text())
}

// systemPrompt instructs the model; the category list and example match
// the JSON shape ParseResponse expects.
var systemPrompt = fmt.Sprintf(`You are an Italian ingredients expert designed to output JSON. You must classify each provided ingredient in exactly one of these categories:
%s

Example:
Input user: Olio extra vergine d'oliva, fettine di tacchino
Response: {"ingredients": [{"name": "Olio extra vergine d'oliva", "category": "Burri, salse e olii"}, {"name": "fettine di tacchino", "category": "Carni"}]}`,
	"- "+strings.Join(ricette.IngredientCategories, "\n- "))

// BuildConfig returns the GenerateContentConfig for classification calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"ingredients": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":     {Type: genai.TypeString},
							"category": {Type: genai.TypeString, Enum: ricette.IngredientCategories},
						},
						Required: []string{"name", "category"},
					},
				},
			},
			Required: []string{"ingredients"},
		},
	}
}

// BuildUserPrompt joins the non-empty, trimmed names with commas.
func BuildUserPrompt(names []string) string {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	return strings.Join(cleaned, ", ")
}

// ParseResponse decodes a {"ingredients": [...]} response and checks every
// category against ricette.IngredientCategories.
func ParseResponse(text string) ([]ricette.ClassifiedIngredient, error) {
	var resp struct {
		Ingredients []ricette.ClassifiedIngredient `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, ricette.Errorf(ricette.EINTERNAL, "invalid classifier response: %v", err)
	}

	for _, ing := range resp.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return nil, ricette.Errorf(ricette.EINTERNAL, "classifier returned an ingredient without a name")
		}
		if !ricette.IsIngredientCategory(ing.Category) {
			return nil, ricette.Errorf(ricette.EINTERNAL, "classifier returned unknown category %q for %q", ing.Category, ing.Name)
		}
	}
	if resp.Ingredients == nil {
		resp.Ingredients = []ricette.ClassifiedIngredient{}
	}
	return resp.Ingredients, nil
}
