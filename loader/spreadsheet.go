package loader

import (
	"bytes"
	"fmt"
	"strings"

	"finqa/types"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// extractSpreadsheet renders the first sheet with its first row as header.
// Any loading problem becomes the content itself.
func (l *Loader) extractSpreadsheet(data []byte) (string, []types.Failure) {
	text, err := readFirstSheet(data)
	if err != nil {
		l.logger.Warn("[XLS] spreadsheet extraction failed", zap.Error(err))
		msg := fmt.Sprintf("Error extracting Excel: %v", err)
		return msg, []types.Failure{{Stage: "spreadsheet", Message: msg}}
	}
	return text, nil
}

func readFirstSheet(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var body [][]string
	for _, r := range rows {
		if blankRow(r) {
			continue
		}
		body = append(body, r)
	}
	if len(body) == 0 {
		return renderFrame(nil, nil), nil
	}

	return renderFrame(body[0], body[1:]), nil
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
