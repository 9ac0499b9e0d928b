// internal/services/assistant_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/greeniecart/greeniecart-backend/internal/config"
	"github.com/greeniecart/greeniecart-backend/internal/models"
	"github.com/greeniecart/greeniecart-backend/internal/utils"
)

// AssistantService answers shopping questions through the Gemini REST API.
// Errors from the upstream API degrade to a fixed apology so the chat widget
// never surfaces a raw failure.
type AssistantService struct {
	config *config.Config
	client *http.Client
}

type AssistantRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type AssistantReply struct {
	Reply string `json:"reply"`
}

// FallbackReply is returned whenever the upstream model is unreachable or
// misconfigured.
const FallbackReply = "Sorry, I couldn't process that. Please try again."

const systemPrompt = "You are the GreenieCart shopping assistant. GreenieCart is an online marketplace " +
	"for eco-friendly and plant-based products in the Philippines. Help shoppers find products, explain " +
	"how carts, checkout, delivery and payment (cash on delivery, GCash, card) work, and answer questions " +
	"about orders. Keep answers short and friendly. If a question is unrelated to shopping on GreenieCart, " +
	"politely steer the conversation back."

func NewAssistantService(config *config.Config) *AssistantService {
	return &AssistantService{
		config: config,
		client: &http.Client{
			Timeout: time.Duration(config.Assistant.Timeout) * time.Second,
		},
	}
}

// Gemini generateContent request/response wire types, limited to the fields
// this service reads and writes.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Ask sends the user's message to the model and returns its reply. The
// fallback reply is returned on any upstream failure, never an error the
// handler would turn into a 5xx.
func (s *AssistantService) Ask(ctx context.Context, req *AssistantRequest) (*AssistantReply, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrValidationFailed, err)
	}

	if s.config.Assistant.APIKey == "" {
		return &AssistantReply{Reply: FallbackReply}, nil
	}

	reply, err := s.generate(ctx, req.Message)
	if err != nil {
		logrus.WithError(err).Warn("assistant request failed")
		return &AssistantReply{Reply: FallbackReply}, nil
	}

	return &AssistantReply{Reply: reply}, nil
}

func (s *AssistantService) generate(ctx context.Context, message string) (string, error) {
	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: message}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(s.config.Assistant.BaseURL, "/"), s.config.Assistant.Model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", s.config.Assistant.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("assistant API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant API returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("assistant API returned no candidates")
	}

	reply := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if reply == "" {
		return "", fmt.Errorf("assistant API returned an empty reply")
	}

	return reply, nil
}
