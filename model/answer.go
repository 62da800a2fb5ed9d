package model

import (
	"fmt"
	"time"
)

type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeHTTPError    Outcome = "http_error"
	OutcomeTimeout      Outcome = "timeout"
	OutcomeNetworkError Outcome = "network_error"
	OutcomeConfigError  Outcome = "config_error"
)

// Answer is the single result of a generation call.
type Answer struct {
	Outcome    Outcome
	Text       string
	StatusCode int
	Body       string
	Cause      error
	Timeout    time.Duration
	Elapsed    time.Duration
}

func (a Answer) OK() bool {
	return a.Outcome == OutcomeSuccess
}

// Message renders the answer as the text shown to the user.
func (a Answer) Message() string {
	switch a.Outcome {
	case OutcomeSuccess:
		return a.Text
	case OutcomeHTTPError:
		return fmt.Sprintf("Error: Could not query the model. Status: %d - %s", a.StatusCode, a.Body)
	case OutcomeTimeout:
		return fmt.Sprintf("Error: Ollama server timed out after %s seconds. Try restarting the server, reducing context size, or using a lighter model like qwen:0.5b.", formatSeconds(a.Timeout))
	case OutcomeNetworkError:
		return fmt.Sprintf("Error connecting to Ollama: %v", a.Cause)
	case OutcomeConfigError:
		return "Error: No model specified."
	}
	return a.Text
}
