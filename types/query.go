package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Validater interface {
	Validate() map[string]string
}

type QueryParams struct {
	Prompt string `json:"prompt" validate:"required,max=4000"`
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

func (params *QueryParams) Validate() map[string]string {
	if err := validate.Struct(params); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return map[string]string{"request": err.Error()}
		}
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}

type DocumentResponse struct {
	Filename string       `json:"filename"`
	Kind     DocumentKind `json:"kind"`
	Preview  string       `json:"preview"`
	Length   int          `json:"length"`
	Failures []Failure    `json:"failures,omitempty"`
}

type AnswerResponse struct {
	Answer   string    `json:"answer"`
	Outcome  string    `json:"outcome"`
	Messages []Message `json:"messages"`
}

type StatusResponse struct {
	Document string `json:"document,omitempty"`
	Ready    bool   `json:"ready"`
	Model    string `json:"model"`
	URL      string `json:"url"`
	Messages int    `json:"messages"`
}
