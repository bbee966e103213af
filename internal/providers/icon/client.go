package icon

import (
	"context"
	"errors"
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/providers/http/client"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	errNoCandidates = errors.New("response has no candidates")
	errNoImage      = errors.New("response has no inline image data")
)

// Service is the icon assist surface used by the API
type Service interface {
	GenerateIcon(ctx context.Context, prompt string) (string, bool)
	EditImage(ctx context.Context, source, prompt string) (string, bool)
}

// Client calls a Gemini style generateContent endpoint. Every failure is
// logged and reported as ("", false).
type Client struct {
	http    *client.Client
	apiKey  string
	model   string
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// New creates an image service client. metrics may be nil.
func New(cfg config.IconConfig, logger *logging.Logger, metrics *monitoring.Metrics) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		http: client.New(client.Options{
			Name:             "icon",
			BaseURL:          cfg.Endpoint,
			Timeout:          cfg.Timeout,
			Retries:          cfg.Retries,
			RPS:              cfg.RPS,
			FailureThreshold: 5,
			BreakerTimeout:   30 * time.Second,
		}, logger, metrics),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		logger:  logger.Component("icon"),
		metrics: metrics,
	}
}

// IconPrompt wraps a subject in the icon styling instructions
func IconPrompt(subject string) string {
	return "Generate a high-quality, professional mobile app icon. Subject: " + subject +
		". Style: minimalist, modern 3D or flat design, vibrant but professional colors."
}

// GenerateIcon asks for a square icon of the described subject
func (c *Client) GenerateIcon(ctx context.Context, prompt string) (string, bool) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: IconPrompt(prompt)}}}},
		GenerationConfig: &generationConfig{
			ImageConfig: &imageConfig{AspectRatio: "1:1"},
		},
	}
	return c.call(ctx, "generate", req)
}

// EditImage applies prompt to source, which may be raw base64 or a data URL
func (c *Client) EditImage(ctx context.Context, source, prompt string) (string, bool) {
	data, mimeType := ParseDataURL(source)
	req := generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{Data: data, MimeType: mimeType}},
			{Text: prompt},
		}}},
	}
	return c.call(ctx, "edit", req)
}

func (c *Client) call(ctx context.Context, operation string, body generateRequest) (string, bool) {
	var timer *monitoring.Timer
	if c.metrics != nil {
		timer = monitoring.NewTimer(c.metrics, operation)
	}

	image, err := c.generate(ctx, body)
	if err != nil {
		timer.Stop("failure")
		c.logger.Warn("Image service call failed",
			zap.String("operation", operation),
			zap.String("model", c.model),
			zap.Error(err),
		)
		return "", false
	}

	timer.Stop("success")
	return image, true
}

func (c *Client) generate(ctx context.Context, body generateRequest) (string, error) {
	payload, err := sonic.Marshal(body)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Execute(ctx, func(r *resty.Request) (*resty.Response, error) {
		r.SetHeader("Content-Type", "application/json").
			SetPathParam("model", c.model).
			SetBody(payload)
		if c.apiKey != "" {
			r.SetHeader("x-goog-api-key", c.apiKey)
		}
		return r.Post("/models/{model}:generateContent")
	})
	if err != nil {
		return "", err
	}

	var out generateResponse
	if err := sonic.Unmarshal(resp.Body(), &out); err != nil {
		return "", err
	}
	return out.image()
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ImageConfig *imageConfig `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// image returns the first inline data part of the first candidate
func (r generateResponse) image() (string, error) {
	if len(r.Candidates) == 0 {
		return "", errNoCandidates
	}
	for _, p := range r.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			return DataURL(p.InlineData.MimeType, p.InlineData.Data), nil
		}
	}
	return "", errNoImage
}
