package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"fridgeagent/internal/domain/models"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 1024
)

// Client defines the AI collaborator operations used by the application. All
// structured output is treated as untrusted: malformed responses degrade to
// empty results or an error the caller can absorb.
type Client interface {
	Chat(ctx context.Context, history []Message, input, inventory string) (ChatResult, error)
	ParseImage(ctx context.Context, imageBase64, mimeType string) ([]models.ItemDraft, error)
	SuggestRecipes(ctx context.Context, inventory string) ([]models.Recipe, error)
	EnrichAlert(ctx context.Context, alert models.Alert, inventory string) (models.AlertEnrichment, error)
}

// Message is one turn of an Anthropic conversation.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ChatResult is the typed outcome of one assistant turn: the reply text plus
// an optional consume directive when the user reported using an item.
type ChatResult struct {
	Reply   string
	Consume *models.ConsumeDirective
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

const chatSystemPrompt = `You are FridgeAgent, a proactive AI fridge sidekick.
You have access to the user's current fridge inventory:
%s

Your goals:
1. Help users track what they have.
2. Suggest recipes based on what's expiring soon.
3. Answer questions about inventory ("Do I have milk?").
4. Detect consumption statements ("I used 2 eggs").

Your output must be ONLY a JSON object with this structure:
{
  "reply": "Text to show the user",
  "consume": {"item": "eggs", "quantity": 2} or null
}
Set "consume" only when the user reports having used or finished an item.
Escape newlines inside the "reply" string. Be helpful, encouraging, and
focused on reducing food waste.`

// Chat runs one assistant turn over the conversation history. The reply and
// the optional consume directive come back as typed data rather than free
// text the caller would have to scan.
func (c *anthropicClient) Chat(ctx context.Context, history []Message, input, inventory string) (ChatResult, error) {
	messages := append(append([]Message{}, history...), Message{Role: "user", Content: input})

	text, err := c.complete(ctx, fmt.Sprintf(chatSystemPrompt, inventory), messages, "{")
	if err != nil {
		return ChatResult{}, err
	}

	var parsed struct {
		Reply   string                   `json:"reply"`
		Consume *models.ConsumeDirective `json:"consume"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return ChatResult{}, fmt.Errorf("failed to unmarshal chat response: %w", err)
	}
	if parsed.Consume != nil && (parsed.Consume.Item == "" || parsed.Consume.Quantity <= 0) {
		// Untrusted output: drop half-formed directives, keep the reply.
		parsed.Consume = nil
	}

	return ChatResult{Reply: parsed.Reply, Consume: parsed.Consume}, nil
}

const visionParserPrompt = `You are a fridge inventory expert. Analyze the provided image of a fridge or pantry.
Identify all food items visible. For each item, estimate:
1. Name of the item.
2. Quantity (number or amount).
3. Unit (e.g., pieces, liters, grams, cartons).
4. Estimated expiry date (YYYY-MM-DD) based on typical shelf life if not visible.

Return the result as a JSON array of objects:
[{"name": "Milk", "quantity": 1, "unit": "carton", "expiry_date": "2024-03-01", "notes": "Half full"}]
Only return the JSON array.`

// ParseImage asks the vision model to catalogue a fridge photo. Entries with
// unusable fields are dropped rather than failing the whole scan.
func (c *anthropicClient) ParseImage(ctx context.Context, imageBase64, mimeType string) ([]models.ItemDraft, error) {
	messages := []Message{{
		Role: "user",
		Content: []contentBlock{
			{Type: "text", Text: visionParserPrompt},
			{Type: "image", Source: &imageSource{Type: "base64", MediaType: mimeType, Data: imageBase64}},
		},
	}}

	text, err := c.complete(ctx, "", messages, "[")
	if err != nil {
		return nil, err
	}

	var entries []struct {
		Name       string   `json:"name"`
		Quantity   *float64 `json:"quantity"`
		Unit       string   `json:"unit"`
		ExpiryDate string   `json:"expiry_date"`
		Notes      string   `json:"notes"`
	}
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vision response: %w", err)
	}

	drafts := []models.ItemDraft{}
	for _, entry := range entries {
		draft := models.ItemDraft{
			Name:     entry.Name,
			Quantity: entry.Quantity,
			Unit:     entry.Unit,
			Notes:    entry.Notes,
		}
		if expiry, err := time.Parse("2006-01-02", entry.ExpiryDate); err == nil {
			draft.ExpiryDate = &expiry
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

const recipePrompt = `Based on the following fridge inventory:
%s

Suggest 3 recipes that use items expiring soon.
Return ONLY a JSON array of objects:
[{"name": "...", "cook_time_minutes": 20, "ingredients": [{"name": "...", "amount_used": 1, "unit": "..."}], "instructions": ["..."]}]
Ingredient names must match inventory item names where possible.`

// SuggestRecipes asks for recipe ideas grounded in the current pantry.
func (c *anthropicClient) SuggestRecipes(ctx context.Context, inventory string) ([]models.Recipe, error) {
	messages := []Message{{Role: "user", Content: fmt.Sprintf(recipePrompt, inventory)}}

	text, err := c.complete(ctx, "", messages, "[")
	if err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := json.Unmarshal([]byte(text), &recipes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipes response: %w", err)
	}
	return recipes, nil
}

const enrichPrompt = `You are a kitchen assistant helping reduce food waste.
Current inventory: %s

Rewrite the following alert in one short friendly sentence and suggest up to
three concrete actions (recipes, storage tips, shopping reminders).
Alert: %s

Output ONLY a JSON object: {"message": "...", "suggestions": ["..."]}`

// EnrichAlert produces an AI-written message and suggestion list for a
// deterministic alert. Callers must treat failures as non-fatal.
func (c *anthropicClient) EnrichAlert(ctx context.Context, alert models.Alert, inventory string) (models.AlertEnrichment, error) {
	messages := []Message{{Role: "user", Content: fmt.Sprintf(enrichPrompt, inventory, alert.Message)}}

	text, err := c.complete(ctx, "", messages, "{")
	if err != nil {
		return models.AlertEnrichment{}, err
	}

	var enrichment models.AlertEnrichment
	if err := json.Unmarshal([]byte(text), &enrichment); err != nil {
		return models.AlertEnrichment{}, fmt.Errorf("failed to unmarshal enrichment response: %w", err)
	}
	return enrichment, nil
}

// complete posts a messages request with the assistant response prefilled to
// force JSON output, then reconstructs and cleans the returned text.
func (c *anthropicClient) complete(ctx context.Context, system string, messages []Message, prefill string) (string, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  append(messages, Message{Role: "assistant", Content: prefill}),
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	// Reconstruct the full JSON since we prefilled the opening token
	responseText := prefill + respBody.Content[0].Text

	// Clean up potential markdown code blocks if Claude wraps the JSON
	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
	}

	return strings.TrimSpace(responseText), nil
}
