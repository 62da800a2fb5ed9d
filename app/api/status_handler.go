package api

import (
	"finqa/app/middleware"
	"finqa/types"

	"github.com/gofiber/fiber/v2"
)

type StatusHandler struct {
	llm types.LLMConfig
}

func NewStatusHandler(llm types.LLMConfig) *StatusHandler {
	return &StatusHandler{
		llm: llm,
	}
}

func (h *StatusHandler) HandleStatus(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	if sess == nil {
		return ErrNoSession()
	}

	resp := types.StatusResponse{
		Model:    h.llm.Model,
		URL:      h.llm.Url,
		Messages: len(sess.Messages()),
		Ready:    sess.HasContext(),
	}
	if doc, ok := sess.Context(); ok {
		resp.Document = doc.Filename
	}
	return c.JSON(resp)
}
