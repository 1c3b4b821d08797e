package ansihtml

import (
	"fmt"
	"html/template"
	"io"
)

// SpanWriter is a Handler that writes each style run as a <span style="..."> element.
// Text with the empty style is written without an element, and a span is only
// opened once its style has some text.
//
// Write errors are sticky, once a write fails the later writes are skipped
// and the error is returned by Err and Close.
type SpanWriter struct {
	w     io.Writer
	style Style
	open  bool
	err   error
}

// NewSpanWriter returns a SpanWriter that writes to w.
// A nil w discards the output.
func NewSpanWriter(w io.Writer) *SpanWriter {
	if w == nil {
		w = io.Discard
	}
	return &SpanWriter{w: w}
}

func (sw *SpanWriter) write(s string) {
	if sw.err != nil {
		return
	}
	if _, err := io.WriteString(sw.w, s); err != nil {
		sw.err = fmt.Errorf("span writer: %w", err)
	}
}

// Text writes the escaped text, opening a span for the current style when needed.
func (sw *SpanWriter) Text(s string) {
	if s == "" {
		return
	}
	if !sw.open && !sw.style.IsEmpty() {
		sw.write(`<span style="` + sw.style.CSS() + `">`)
		sw.open = true
	}
	sw.write(s)
}

// StyleChanged closes any open span, the next text uses the new style.
func (sw *SpanWriter) StyleChanged(s Style) {
	if sw.open {
		sw.write("</span>")
		sw.open = false
	}
	sw.style = s
}

// Close closes any open span and returns the first write error.
func (sw *SpanWriter) Close() error {
	if sw.open {
		sw.write("</span>")
		sw.open = false
	}
	sw.style = Style{}
	return sw.err
}

// Err returns the first write error.
func (sw *SpanWriter) Err() error {
	return sw.err
}

// Writer converts the ANSI encoded text written to it into HTML written to the underlying writer.
// Writer must be closed to flush partial sequences and to close the last span.
type Writer struct {
	p  *Parser
	sw *SpanWriter
}

// NewWriter returns a Writer that writes HTML to w.
// The Charset option is ignored, the written bytes should be UTF-8.
func NewWriter(w io.Writer, opt Options) *Writer {
	sw := NewSpanWriter(w)
	return &Writer{p: NewParser(sw, opt), sw: sw}
}

// Write parses p and writes the HTML of every complete text run and sequence.
// The return int is always len(p), as p is consumed even when the underlying
// writer fails. A write error is final, the later writes return it again.
func (w *Writer) Write(p []byte) (int, error) {
	w.p.Feed(string(p))
	return len(p), w.sw.Err()
}

// Close flushes any partial sequence as text and closes the last span.
func (w *Writer) Close() error {
	w.p.Finalize()
	return w.sw.Close()
}

// page is a standalone document for a converted fragment.
var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
</head>
<body>
<pre style="{{ .Style }}">{{ .Body }}</pre>
</body>
</html>
`))

// Page writes to w a HTML document with the fragment inside a <pre> element,
// using the white on black colors of the palette as the default colors.
// The fragment must be the output of this package, it is not escaped.
func Page(w io.Writer, title string, fragment string, pal Palette) error {
	if w == nil {
		w = io.Discard
	}
	const black, white = 0, 7
	def := Style{FG: pal.Color(white, false), BG: pal.Color(black, false)}
	data := struct {
		Title string
		Style template.CSS
		Body  template.HTML
	}{
		Title: title,
		Style: template.CSS(def.CSS()), //nolint:gosec
		Body:  template.HTML(fragment), //nolint:gosec
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("page template execute: %w", err)
	}
	return nil
}
