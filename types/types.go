package types

import (
	"time"
)

type DocumentKind string

const (
	KindPDF         DocumentKind = "pdf"
	KindSpreadsheet DocumentKind = "spreadsheet"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Failure is an extraction problem that did not stop processing. Its Message
// is also written inline into the extracted content.
type Failure struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Extraction is the text derived from one uploaded document.
type Extraction struct {
	Filename    string       `json:"filename"`
	Kind        DocumentKind `json:"kind"`
	Content     string       `json:"-"`
	Failures    []Failure    `json:"failures,omitempty"`
	ExtractedAt time.Time    `json:"extracted_at"`
}

func (e Extraction) Preview(n int) string {
	r := []rune(e.Content)
	if n < 0 || len(r) <= n {
		return e.Content
	}
	return string(r[:n])
}

type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type LLMConfig struct {
	Url     string        `json:"llm_url"`
	Model   string        `json:"llm_model"`
	NumCtx  int           `json:"num_ctx"`
	Timeout time.Duration `json:"-"`
}
