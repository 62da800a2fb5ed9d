package agent

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"finqa/model"
	"finqa/store"
	"finqa/types"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const promptTemplate = `Context from financial document:
%s

User question: %s
Answer based only on the context, focusing on revenue, expenses, profits, or other metrics. Be concise.`

// BuildPrompt grounds the question in the (already truncated) context.
func BuildPrompt(docContext, question string) string {
	return fmt.Sprintf(promptTemplate, docContext, question)
}

type Agent struct {
	generator   model.Generator
	maxContext  int
	countTokens bool
	logger      *zap.Logger
}

func NewAgent(generator model.Generator, maxContext int, countTokens bool, logger *zap.Logger) *Agent {
	return &Agent{
		generator:   generator,
		maxContext:  maxContext,
		countTokens: countTokens,
		logger:      logger,
	}
}

// Ask answers one question against the session's document and records both
// sides of the exchange in the transcript. It fails only when the session has
// no document yet.
func (a *Agent) Ask(ctx context.Context, s *store.Session, question string) (model.Answer, error) {
	docContext, err := s.Truncated(a.maxContext)
	if err != nil {
		return model.Answer{}, err
	}

	s.Append(types.RoleUser, question)

	prompt := BuildPrompt(docContext, question)
	fields := []zap.Field{
		zap.String("session", s.ID),
		zap.Int("prompt_chars", utf8.RuneCountInString(prompt)),
	}
	if a.countTokens {
		if n, err := CountTokens(prompt); err == nil {
			fields = append(fields, zap.Int("prompt_tokens", n))
		} else {
			a.logger.Debug("[AGENT] token count unavailable", zap.Error(err))
		}
	}
	a.logger.Info("[AGENT] sending prompt", fields...)

	ans := a.generator.Generate(ctx, prompt)
	s.Append(types.RoleAssistant, ans.Message())

	return ans, nil
}

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
	encErr  error
)

// CountTokens approximates the prompt size with the cl100k encoding.
func CountTokens(text string) (int, error) {
	encOnce.Do(func() {
		enc, encErr = tiktoken.EncodingForModel("gpt-3.5-turbo")
	})
	if encErr != nil {
		return 0, encErr
	}
	return len(enc.Encode(text, nil, nil)), nil
}
