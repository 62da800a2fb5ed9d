package loader

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"finqa/types"

	"go.uber.org/zap"
)

// extractPDF runs the text pass page by page and then the table pass over
// the same reader. A failed table pass only adds a warning line.
func (l *Loader) extractPDF(data []byte) (string, []types.Failure) {
	var sb strings.Builder
	var failures []types.Failure

	fail := func(stage, line string) {
		sb.WriteString(line)
		sb.WriteString("\n")
		failures = append(failures, types.Failure{Stage: stage, Message: line})
	}

	rs, pages, err := l.readDocument(data)
	if err != nil {
		fail("pdf", fmt.Sprintf("Error extracting PDF: %v", err))
		return sb.String(), failures
	}

	for _, p := range pages {
		if p.err != nil {
			l.logger.Warn("[PDF] page text extraction failed", zap.Int("page", p.num), zap.Error(p.err))
			fail("text", fmt.Sprintf("Warning: Text extraction failed on page %d: %v", p.num, p.err))
			continue
		}
		if strings.TrimSpace(p.text) == "" {
			continue
		}
		sb.WriteString(p.text)
		sb.WriteString("\n")
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		fail("tables", fmt.Sprintf("Warning: Table extraction failed: %v", err))
		return sb.String(), failures
	}

	tables, err := l.tables.ExtractTables(rs)
	if err != nil {
		l.logger.Warn("[PDF] table extraction failed", zap.Error(err))
		fail("tables", fmt.Sprintf("Warning: Table extraction failed: %v", err))
		return sb.String(), failures
	}

	l.logger.Debug("[PDF] tables detected", zap.Int("count", len(tables)))
	for _, t := range tables {
		sb.WriteString(renderTable(t))
		sb.WriteString("\n")
	}

	return sb.String(), failures
}

type pageContent struct {
	num  int
	text string
	err  error
}

// readDocument runs the text pass. When the original bytes cannot be opened
// it retries once on a copy rewritten by pdfcpu; the returned reader holds
// whichever bytes were read.
func (l *Loader) readDocument(data []byte) (*bytes.Reader, []pageContent, error) {
	rs := bytes.NewReader(data)
	pages, err := readPages(rs)
	if err == nil {
		return rs, pages, nil
	}

	repaired, rerr := normalizePDF(bytes.NewReader(data))
	if rerr != nil {
		l.logger.Debug("[PDF] pdfcpu rewrite failed", zap.Error(rerr))
		return nil, nil, err
	}
	rs = bytes.NewReader(repaired)
	pages, rerr = readPages(rs)
	if rerr != nil {
		return nil, nil, err
	}

	l.logger.Info("[PDF] read after pdfcpu rewrite", zap.NamedError("original", err))
	return rs, pages, nil
}

func readPages(rs io.ReadSeeker) (pages []pageContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := openReader(rs)
	if err != nil {
		return nil, err
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		lines, err := pageLines(page)
		pages = append(pages, pageContent{num: i, text: pageText(lines), err: err})
	}
	return pages, nil
}
