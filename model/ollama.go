package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"finqa/types"

	"go.uber.org/zap"
)

const noResponse = "No response from model"

// Generator produces an answer for a fully composed prompt. It never returns
// an error: every failure is described by the Answer itself.
type Generator interface {
	Generate(ctx context.Context, prompt string) Answer
}

type GenerateOptions struct {
	NumCtx int `json:"num_ctx"`
}

type GenerateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options GenerateOptions `json:"options"`
}

type GenerateResponse struct {
	Model    string `json:"model"`
	Response *string `json:"response"`
	Done     bool   `json:"done"`
}

// OllamaClient talks to an Ollama compatible /api/generate endpoint.
type OllamaClient struct {
	cfg    types.LLMConfig
	client *http.Client
	logger *zap.Logger
}

func NewOllamaClient(cfg types.LLMConfig, logger *zap.Logger) *OllamaClient {
	return &OllamaClient{
		cfg:    cfg,
		client: &http.Client{},
		logger: logger,
	}
}

func (o *OllamaClient) Config() types.LLMConfig {
	return o.cfg
}

func (o *OllamaClient) Generate(ctx context.Context, prompt string) Answer {
	if o.cfg.Model == "" {
		o.logger.Warn("[LLM] no model configured")
		return Answer{Outcome: OutcomeConfigError}
	}

	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	ans := o.generate(ctx, prompt)
	ans.Timeout = o.cfg.Timeout
	ans.Elapsed = time.Since(start)

	o.logger.Info("[LLM] generation finished",
		zap.String("model", o.cfg.Model),
		zap.String("outcome", string(ans.Outcome)),
		zap.Duration("took", ans.Elapsed),
	)
	return ans
}

func (o *OllamaClient) generate(ctx context.Context, prompt string) Answer {
	body, err := json.Marshal(GenerateRequest{
		Model:   o.cfg.Model,
		Prompt:  prompt,
		Stream:  false,
		Options: GenerateOptions{NumCtx: o.cfg.NumCtx},
	})
	if err != nil {
		return Answer{Outcome: OutcomeNetworkError, Cause: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.Url, bytes.NewReader(body))
	if err != nil {
		return Answer{Outcome: OutcomeNetworkError, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return failure(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err)
	}

	if resp.StatusCode != http.StatusOK {
		return Answer{
			Outcome:    OutcomeHTTPError,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(data, &genResp); err != nil {
		return Answer{Outcome: OutcomeNetworkError, Cause: fmt.Errorf("failed to decode response: %w", err)}
	}

	if genResp.Response == nil {
		return Answer{Outcome: OutcomeSuccess, Text: noResponse}
	}
	return Answer{Outcome: OutcomeSuccess, Text: *genResp.Response}
}

func failure(err error) Answer {
	if isTimeout(err) {
		return Answer{Outcome: OutcomeTimeout, Cause: err}
	}
	return Answer{Outcome: OutcomeNetworkError, Cause: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func formatSeconds(d time.Duration) string {
	if d%time.Second == 0 {
		return strconv.FormatInt(int64(d/time.Second), 10)
	}
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
