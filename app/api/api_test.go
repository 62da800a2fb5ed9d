package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finqa/app/middleware"
	"finqa/loader"
	"finqa/model"
	"finqa/store"
	"finqa/types"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeExtractor struct {
	calls int
}

func (f *fakeExtractor) Extract(filename string, data []byte) (types.Extraction, error) {
	f.calls++
	if !loader.IsSupported(filename) {
		return types.Extraction{}, loader.ErrUnsupportedFileType
	}
	return types.Extraction{
		Filename: filename,
		Kind:     types.KindPDF,
		Content:  string(data),
	}, nil
}

type fakeAsker struct{}

func (fakeAsker) Ask(ctx context.Context, s *store.Session, question string) (model.Answer, error) {
	if !s.HasContext() {
		return model.Answer{}, store.ErrNoContext
	}
	s.Append(types.RoleUser, question)
	ans := model.Answer{Outcome: model.OutcomeSuccess, Text: "Revenue was $5M"}
	s.Append(types.RoleAssistant, ans.Message())
	return ans, nil
}

type testClient struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func newTestClient(t *testing.T, extractor Extractor) *testClient {
	logger := zap.NewNop()
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(logger)})

	apiv1 := app.Group("/api/v1", middleware.Sessions(store.NewMemoryStore()))
	apiv1.Post("/document", NewDocumentHandler(extractor, 10, logger).HandleUpload)
	apiv1.Post("/question", NewQuestionHandler(fakeAsker{}).HandleQuestion)
	apiv1.Get("/messages", NewQuestionHandler(fakeAsker{}).HandleMessages)
	apiv1.Get("/status", NewStatusHandler(types.LLMConfig{Url: "http://ollama", Model: "tinyllama"}).HandleStatus)
	app.Get("/check/healthy", NewCheckHandler().HandleHealthy)
	app.Get("/", NewUIHandler().HandleIndex)

	return &testClient{t: t, app: app}
}

func (c *testClient) do(req *http.Request) (int, []byte) {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookie {
			c.cookie = &http.Cookie{Name: ck.Name, Value: ck.Value}
		}
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, body
}

func (c *testClient) upload(filename, content string) (int, []byte) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(c.t, err)
	_, err = part.Write([]byte(content))
	require.NoError(c.t, err)
	require.NoError(c.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/document", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

func (c *testClient) ask(body string) (int, []byte) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/question", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *testClient) get(path string) (int, []byte) {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func TestUpload_ReturnsPreview(t *testing.T) {
	c := newTestClient(t, &fakeExtractor{})

	code, body := c.upload("report.pdf", "Revenue grew strongly this year")
	require.Equal(t, http.StatusOK, code, string(body))

	var resp types.DocumentResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "report.pdf", resp.Filename)
	assert.Equal(t, "Revenue gr", resp.Preview)
	assert.Equal(t, 31, resp.Length)
}

func TestUpload_UnsupportedKeepsPreviousContext(t *testing.T) {
	ext := &fakeExtractor{}
	c := newTestClient(t, ext)

	code, _ := c.upload("report.pdf", "Revenue 5M")
	require.Equal(t, http.StatusOK, code)

	code, body := c.upload("notes.docx", "ignored")
	assert.Equal(t, http.StatusUnsupportedMediaType, code)

	var apiErr Error
	require.NoError(t, json.Unmarshal(body, &apiErr))
	assert.Equal(t, http.StatusUnsupportedMediaType, apiErr.Code)
	assert.Contains(t, apiErr.Message, "notes.docx")
	assert.Equal(t, 1, ext.calls)

	code, body = c.get("/api/v1/status")
	require.Equal(t, http.StatusOK, code)
	var status types.StatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "report.pdf", status.Document)
	assert.True(t, status.Ready)
}

func TestUpload_MissingFile(t *testing.T) {
	c := newTestClient(t, &fakeExtractor{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/document", nil)
	code, _ := c.do(req)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestQuestion_BeforeUpload(t *testing.T) {
	c := newTestClient(t, &fakeExtractor{})

	code, body := c.ask(`{"prompt":"What is the revenue?"}`)
	assert.Equal(t, http.StatusConflict, code)

	var apiErr Error
	require.NoError(t, json.Unmarshal(body, &apiErr))
	assert.Equal(t, "Please upload a document to start.", apiErr.Message)
}

func TestQuestion_Validation(t *testing.T) {
	c := newTestClient(t, &fakeExtractor{})

	code, body := c.ask(`{"prompt":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	var verr ValidationError
	require.NoError(t, json.Unmarshal(body, &verr))
	assert.Equal(t, "failed on 'required' tag", verr.Errors["Prompt"])

	code, _ = c.ask(`{"prompt":`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestQuestion_AnswersAndRecordsTranscript(t *testing.T) {
	c := newTestClient(t, &fakeExtractor{})

	code, _ := c.upload("report.pdf", "Revenue 5M")
	require.Equal(t, http.StatusOK, code)

	code, body := c.ask(`{"prompt":"What is the revenue?"}`)
	require.Equal(t, http.StatusOK, code, string(body))

	var resp types.AnswerResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "Revenue was $5M", resp.Answer)
	assert.Equal(t, "success", resp.Outcome)
	require.Len(t, resp.Messages, 2)

	code, body = c.get("/api/v1/messages")
	require.Equal(t, http.StatusOK, code)
	var msgs []types.Message
	require.NoError(t, json.Unmarshal(body, &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, types.RoleUser, msgs[0].Role)
	assert.Equal(t, types.RoleAssistant, msgs[1].Role)
}

func TestSessionsAreIsolated(t *testing.T) {
	c := newTestClient(t, &fakeExtractor{})

	code, _ := c.upload("report.pdf", "Revenue 5M")
	require.Equal(t, http.StatusOK, code)

	c.cookie = nil
	code, _ = c.ask(`{"prompt":"What is the revenue?"}`)
	assert.Equal(t, http.StatusConflict, code)
}

func TestStatus_NoDocument(t *testing.T) {
	c := newTestClient(t, &fakeExtractor{})

	code, body := c.get("/api/v1/status")
	require.Equal(t, http.StatusOK, code)

	var status types.StatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Empty(t, status.Document)
	assert.False(t, status.Ready)
	assert.Equal(t, "tinyllama", status.Model)
	assert.Equal(t, "http://ollama", status.URL)
}

func TestCheckAndIndex(t *testing.T) {
	c := newTestClient(t, &fakeExtractor{})

	code, body := c.get("/check/healthy")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"result":"ok"}`, string(body))

	code, body = c.get("/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "Financial Document Q&amp;A Assistant")
}

func TestErrorHandler_PlainError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(zap.NewNop())})
	app.Get("/", func(c *fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
