package loader

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"finqa/types"

	"go.uber.org/zap"
)

var ErrUnsupportedFileType = errors.New("unsupported file type")

var SupportedExtensions = []string{".pdf", ".xlsx", ".xls"}

// Loader turns an uploaded document into an Extraction. Parsing problems end
// up as readable text inside the content; only an unknown extension is
// reported as an error.
type Loader struct {
	logger *zap.Logger
	tables TableExtractor
}

func NewLoader(logger *zap.Logger, tables TableExtractor) *Loader {
	if tables == nil {
		tables = NewLayoutTableExtractor()
	}
	return &Loader{
		logger: logger,
		tables: tables,
	}
}

func (l *Loader) Extract(filename string, data []byte) (types.Extraction, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		content  string
		failures []types.Failure
		kind     types.DocumentKind
	)

	switch ext {
	case ".pdf":
		kind = types.KindPDF
		content, failures = l.extractPDF(data)
	case ".xlsx", ".xls":
		kind = types.KindSpreadsheet
		content, failures = l.extractSpreadsheet(data)
	default:
		l.logger.Info("[UPLOAD] unsupported file rejected", zap.String("filename", filename))
		return types.Extraction{}, ErrUnsupportedFileType
	}

	l.logger.Info("[UPLOAD] document extracted",
		zap.String("filename", filename),
		zap.String("kind", string(kind)),
		zap.Int("chars", len([]rune(content))),
		zap.Int("failures", len(failures)),
	)

	return types.Extraction{
		Filename:    filepath.Base(filename),
		Kind:        kind,
		Content:     content,
		Failures:    failures,
		ExtractedAt: time.Now(),
	}, nil
}

func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range SupportedExtensions {
		if s == ext {
			return true
		}
	}
	return false
}
