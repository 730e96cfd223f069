// Package openai habla con un endpoint chat/completions compatible con OpenAI.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"health-records-portal/internal/domain/users"
	"health-records-portal/internal/platform/httpclient"
	"health-records-portal/internal/platform/logger"
)

const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = "gpt-4o-mini"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxTokens   = 512
	DefaultTemperature = 0.2

	completionsPath = "/chat/completions"
)

const (
	OutcomeOK           = "ok"
	OutcomeError        = "error"
	OutcomeUnconfigured = "unconfigured"
)

var errEmptyChoices = errors.New("empty choices in response")

const (
	doctorPrompt = "You are a medical assistant supporting a licensed physician. " +
		"Answer concisely and professionally. Your answer is general information only; " +
		"remind the doctor to rely on their own clinical judgement."
	patientPrompt = "You are a friendly health assistant talking to a patient. " +
		"Explain things simply and kindly. Always make clear that your answer is not a " +
		"substitute for advice from their own physician, and encourage them to contact their doctor."
)

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// Observer recibe el resultado de cada llamada (metrics).
type Observer interface {
	FallbackCompleted(outcome string)
}

type Client struct {
	http        *httpclient.Client
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	log         logger.Logger
	observer    Observer
}

func NewClient(cfg Config, log logger.Logger, observer Observer) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	// DefaultTimeout también es el techo: la llamada bloquea el request.
	timeout := cfg.Timeout
	if timeout <= 0 || timeout > DefaultTimeout {
		timeout = DefaultTimeout
	}
	hc, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 || maxTokens > DefaultMaxTokens {
		maxTokens = DefaultMaxTokens
	}
	// 0 es el zero value de Config: se toma como "no configurada".
	temperature := cfg.Temperature
	if temperature <= 0 || temperature > 2 {
		temperature = DefaultTemperature
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		http:        hc,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		log:         log,
		observer:    observer,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Complete nunca devuelve error: cualquier falla vuelve como "[LLM error: ...]".
func (c *Client) Complete(ctx context.Context, query string, role users.Role) string {
	if !c.IsConfigured() {
		c.observe(OutcomeUnconfigured)
		return "[LLM error: API key not set]"
	}

	answer, err := c.complete(ctx, query, role)
	if err != nil {
		c.observe(OutcomeError)
		c.log.Warn("llm fallback failed", map[string]any{
			"role":  string(role),
			"model": c.model,
			"error": err.Error(),
		})
		return fmt.Sprintf("[LLM error: %s]", reason(err))
	}

	c.observe(OutcomeOK)
	return answer
}

func (c *Client) complete(ctx context.Context, query string, role users.Role) (string, error) {
	var out completionResponse
	err := c.http.DoJSON(ctx, httpclient.Request{
		Method:      http.MethodPost,
		Path:        completionsPath,
		BearerToken: c.apiKey,
		Body: completionRequest{
			Model: c.model,
			Messages: []message{
				{Role: "system", Content: systemPrompt(role)},
				{Role: "user", Content: query},
			},
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
		},
	}, &out)
	if err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errEmptyChoices
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// reason traduce los status que el usuario puede accionar.
func reason(err error) string {
	code, ok := httpclient.StatusCode(err)
	if !ok {
		return err.Error()
	}
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Sprintf("API key rejected (status %d)", code)
	case http.StatusTooManyRequests:
		return "rate limited (status 429)"
	default:
		return err.Error()
	}
}

func systemPrompt(role users.Role) string {
	if role == users.RoleDoctor {
		return doctorPrompt
	}
	return patientPrompt
}

func (c *Client) observe(outcome string) {
	if c.observer != nil {
		c.observer.FallbackCompleted(outcome)
	}
}
