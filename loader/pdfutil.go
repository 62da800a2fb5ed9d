package loader

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// TableExtractor runs the table pass over a PDF.
type TableExtractor interface {
	ExtractTables(rs io.ReadSeeker) ([]Table, error)
}

// LayoutTableExtractor detects tables from the positions of decoded glyphs.
type LayoutTableExtractor struct{}

func NewLayoutTableExtractor() *LayoutTableExtractor {
	return &LayoutTableExtractor{}
}

func (e *LayoutTableExtractor) ExtractTables(rs io.ReadSeeker) (tables []Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			tables = nil
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
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		tables = append(tables, detectTables(i, lines)...)
	}

	return tables, nil
}

func openReader(rs io.ReadSeeker) (*pdf.Reader, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	if ra, ok := rs.(io.ReaderAt); ok {
		return pdf.NewReader(ra, size)
	}
	data, err := io.ReadAll(rs)
	if err != nil {
		return nil, err
	}
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// normalizePDF rewrites a document with pdfcpu using a plain xref table and
// no object streams. pdfcpu rebuilds broken cross references while reading.
func normalizePDF(rs io.ReadSeeker) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("pdfcpu: %v", r)
		}
	}()

	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false

	var buf bytes.Buffer
	if err := api.Optimize(rs, &buf, conf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
