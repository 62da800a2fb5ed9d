package api

import (
	"errors"
	"io"
	"unicode/utf8"

	"finqa/app/middleware"
	"finqa/loader"
	"finqa/types"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Extractor interface {
	Extract(filename string, data []byte) (types.Extraction, error)
}

type DocumentHandler struct {
	extractor    Extractor
	previewChars int
	logger       *zap.Logger
}

func NewDocumentHandler(extractor Extractor, previewChars int, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		extractor:    extractor,
		previewChars: previewChars,
		logger:       logger,
	}
}

// HandleUpload extracts the uploaded file and makes it the session's active
// context. A rejected file leaves the previous context in place.
func (h *DocumentHandler) HandleUpload(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	if sess == nil {
		return ErrNoSession()
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return ErrMissingFile()
	}
	if !loader.IsSupported(fileHeader.Filename) {
		return ErrUnsupportedFile(fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	extraction, err := h.extractor.Extract(fileHeader.Filename, data)
	if errors.Is(err, loader.ErrUnsupportedFileType) {
		return ErrUnsupportedFile(fileHeader.Filename)
	}
	if err != nil {
		return err
	}

	sess.SetContext(extraction)
	h.logger.Info("[UPLOAD] context replaced",
		zap.String("session", sess.ID),
		zap.String("filename", extraction.Filename),
		zap.Int("bytes", len(data)),
	)

	return c.JSON(types.DocumentResponse{
		Filename: extraction.Filename,
		Kind:     extraction.Kind,
		Preview:  extraction.Preview(h.previewChars),
		Length:   utf8.RuneCountInString(extraction.Content),
		Failures: extraction.Failures,
	})
}
