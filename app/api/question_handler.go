package api

import (
	"context"
	"errors"

	"finqa/app/middleware"
	"finqa/model"
	"finqa/store"
	"finqa/types"

	"github.com/gofiber/fiber/v2"
)

type Asker interface {
	Ask(ctx context.Context, s *store.Session, question string) (model.Answer, error)
}

type QuestionHandler struct {
	asker Asker
}

func NewQuestionHandler(asker Asker) *QuestionHandler {
	return &QuestionHandler{
		asker: asker,
	}
}

func (h *QuestionHandler) HandleQuestion(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	if sess == nil {
		return ErrNoSession()
	}

	var params types.QueryParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if verrs := types.Validate(&params); len(verrs) > 0 {
		return NewValidationError(verrs)
	}

	ans, err := h.asker.Ask(c.UserContext(), sess, params.Prompt)
	if errors.Is(err, store.ErrNoContext) {
		return ErrNoDocument()
	}
	if err != nil {
		return err
	}

	return c.JSON(types.AnswerResponse{
		Answer:   ans.Message(),
		Outcome:  string(ans.Outcome),
		Messages: sess.Messages(),
	})
}

func (h *QuestionHandler) HandleMessages(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	if sess == nil {
		return ErrNoSession()
	}
	return c.JSON(sess.Messages())
}
