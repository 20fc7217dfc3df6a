package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

	listModelsTimeout = 5 * time.Second
	generateTimeout   = 30 * time.Second
)

// ChatService answers visitor questions. The deterministic knowledge-base
// responder is tried first by the handler; this service covers the
// generative fallback against the Gemini API, walking a chain of
// model/version pairs when the configured model is unavailable.
type ChatService struct {
	APIKey     string
	Model      string
	APIVersion string
	BaseURL    string
	HTTPClient *http.Client
}

func NewChatService(apiKey, model, apiVersion string) *ChatService {
	return &ChatService{
		APIKey:     apiKey,
		Model:      model,
		APIVersion: apiVersion,
		BaseURL:    defaultGeminiBaseURL,
		HTTPClient: &http.Client{},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
			Role  string       `json:"role"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiModelInfo struct {
	Name                       string   `json:"name"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

type geminiModelList struct {
	Models []geminiModelInfo `json:"models"`
}

// resolveModelAndVersion maps known model ids to the API version they live
// under. Unknown ids default to v1.
func resolveModelAndVersion(modelID string) (model, apiVersion string) {
	switch modelID {
	case "gemini-pro":
		return "gemini-1.0-pro", "v1beta"
	case "gemini-1.0-pro":
		return "gemini-1.0-pro", "v1beta"
	case "gemini-2.0-flash":
		return "gemini-2.0-flash", "v1"
	case "gemini-1.5-flash":
		return "gemini-1.5-flash", "v1"
	}
	return modelID, "v1"
}

// BuildPrompt wraps the visitor question with the studio context and the
// answering guidelines the model must follow.
func BuildPrompt(kb *KnowledgeBase, message string) string {
	kbJSON, _ := json.MarshalIndent(kb, "", "  ")
	return fmt.Sprintf(`You are a helpful AI assistant for %s. Provide accurate, friendly and professional information about the studio's services.

STUDIO CONTEXT:
%s

USER QUESTION: %q

GUIDELINES:
1. Answer only from the studio context above: services, add-ons, artist, contact details, booking.
2. Be warm and concise; use bullet points for lists and emojis sparingly.
3. If the answer is not in the context, say so politely and suggest calling the studio.
4. Never invent services, prices or availability.
`, kb.StudioName, string(kbJSON), message)
}

// Generate calls the Gemini API for the given prompt and returns the reply
// text plus the model that actually answered. It tries the configured model
// first, then a hand-picked fallback chain, then whatever the model-listing
// endpoint offers.
func (s *ChatService) Generate(ctx context.Context, prompt string) (reply, usedModel string, err error) {
	if s.APIKey == "" {
		return "", "", errors.New("gemini api key not configured")
	}

	model, version := s.Model, s.APIVersion
	if version == "" {
		model, version = resolveModelAndVersion(s.Model)
	}

	reply, status, err := s.generateContent(ctx, model, version, prompt)
	if err == nil {
		return reply, model, nil
	}
	if status != http.StatusNotFound {
		return "", "", err
	}

	log.Printf("chat: model %s not found on %s, trying fallbacks", model, version)
	otherVersion := "v1beta"
	if version == "v1beta" {
		otherVersion = "v1"
	}
	fallbacks := []struct{ model, version string }{
		{model + "-latest", version},
		{model, otherVersion},
		{"gemini-1.5-flash-latest", "v1"},
		{"gemini-1.0-pro-latest", "v1beta"},
	}
	for _, fb := range fallbacks {
		reply, _, err = s.generateContent(ctx, fb.model, fb.version, prompt)
		if err == nil {
			log.Printf("chat: fallback succeeded with %s on %s", fb.model, fb.version)
			return reply, fb.model, nil
		}
	}

	// Last resort: ask the API which models exist and pick one that can
	// generate content.
	for _, ver := range []string{version, otherVersion} {
		models, listErr := s.listModels(ctx, ver)
		if listErr != nil || len(models) == 0 {
			continue
		}
		picked := pickSupportedModel(models, model)
		if picked == "" {
			picked = pickSupportedModel(models, "gemini-1.5-flash")
		}
		if picked == "" {
			continue
		}
		reply, _, err = s.generateContent(ctx, picked, ver, prompt)
		if err == nil {
			return reply, picked, nil
		}
	}

	return "", "", fmt.Errorf("all gemini models failed: %w", err)
}

func (s *ChatService) generateContent(ctx context.Context, model, version, prompt string) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1024,
		},
	})
	if err != nil {
		return "", 0, err
	}

	endpoint := fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s",
		s.BaseURL, version, url.PathEscape(model), url.QueryEscape(s.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", resp.StatusCode, fmt.Errorf("parse gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", resp.StatusCode, errors.New("gemini returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, resp.StatusCode, nil
}

func (s *ChatService) listModels(ctx context.Context, version string) ([]geminiModelInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, listModelsTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/%s/models?key=%s", s.BaseURL, version, url.QueryEscape(s.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list gemini models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list gemini models: status %d", resp.StatusCode)
	}
	var list geminiModelList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("parse gemini model list: %w", err)
	}
	return list.Models, nil
}

// pickSupportedModel chooses the closest model to the desired id among those
// supporting generateContent: exact match, then -latest, then the same
// family, then anything that works.
func pickSupportedModel(models []geminiModelInfo, desired string) string {
	base := strings.TrimSuffix(desired, "-latest")
	supported := func(m geminiModelInfo) bool {
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				return true
			}
		}
		return false
	}
	id := func(m geminiModelInfo) string {
		if idx := strings.LastIndex(m.Name, "models/"); idx >= 0 {
			return m.Name[idx+len("models/"):]
		}
		return m.Name
	}

	for _, m := range models {
		if id(m) == desired && supported(m) {
			return desired
		}
	}
	for _, m := range models {
		if id(m) == base+"-latest" && supported(m) {
			return base + "-latest"
		}
	}
	segments := strings.Split(base, "-")
	if len(segments) > 3 {
		segments = segments[:3]
	}
	family := strings.Join(segments, "-")
	for _, m := range models {
		if strings.HasPrefix(id(m), family) && supported(m) {
			return id(m)
		}
	}
	for _, m := range models {
		if supported(m) {
			return id(m)
		}
	}
	return ""
}
