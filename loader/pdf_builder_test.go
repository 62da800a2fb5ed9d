package loader

import (
	"bytes"
	"fmt"
	"strings"
)

// buildPDF assembles a minimal PDF with one page per content stream. Every
// page can use /F1, a WinAnsi Helvetica with widths, and /F2, an Identity-H
// composite font whose ToUnicode map sends glyph id N to the character
// N+0x20 (see glyphHex).
func buildPDF(contents ...string) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}
	stream := func(data string) string {
		return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(data), data)
	}

	buf.WriteString("%PDF-1.4\n")

	const firstPage = 7
	kids := make([]string, len(contents))
	for i := range contents {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+i*2)
	}

	widths := "278" + strings.Repeat(" 500", 126-32)

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(contents)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [" + widths + "] >>")
	obj("<< /Type /Font /Subtype /Type0 /BaseFont /AAAAAA+Calibri /Encoding /Identity-H /DescendantFonts [5 0 R] /ToUnicode 6 0 R >>")
	obj("<< /Type /Font /Subtype /CIDFontType2 /BaseFont /AAAAAA+Calibri /CIDSystemInfo << /Registry (Adobe) /Ordering (Identity) /Supplement 0 >> /DW 500 >>")
	obj(stream("begincmap\n1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n1 beginbfrange\n<0001> <005E> <0021>\nendbfrange\nendcmap"))

	for i, c := range contents {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>", firstPage+i*2+1))
		obj(stream(c))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

func textPage(lines ...string) string {
	var sb strings.Builder
	y := 700
	for _, l := range lines {
		fmt.Fprintf(&sb, "BT /F1 12 Tf 72 %d Td (%s) Tj ET\n", y, l)
		y -= 20
	}
	return sb.String()
}

// glyphHex encodes printable ASCII as two-byte glyph ids for /F2.
func glyphHex(s string) string {
	var sb strings.Builder
	sb.WriteByte('<')
	for i := 0; i < len(s); i++ {
		fmt.Fprintf(&sb, "%04X", s[i]-0x20)
	}
	sb.WriteByte('>')
	return sb.String()
}
