package ansihtml_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/bengarrett/ansihtml"
	"github.com/nalgeon/be"
)

func TestSpanWriter(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	sw := ansihtml.NewSpanWriter(&sb)
	sw.Text("a")
	sw.StyleChanged(ansihtml.Style{Italic: true})
	sw.StyleChanged(ansihtml.Style{Underline: true})
	sw.Text("b")
	sw.Text("c")
	sw.StyleChanged(ansihtml.Style{})
	sw.Text("d")
	sw.StyleChanged(ansihtml.Style{FG: "#fff"})
	sw.Text("e")
	be.Err(t, sw.Close(), nil)
	be.Equal(t, sb.String(), `a<span style="text-decoration:underline;">bc</span>d<span style="color:#fff;">e</span>`)
}

var errFull = errors.New("disk is full")

type fullWriter struct{ n int }

func (w *fullWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errFull
}

func TestSpanWriterError(t *testing.T) {
	t.Parallel()
	fw := &fullWriter{}
	sw := ansihtml.NewSpanWriter(fw)
	sw.Text("a")
	sw.Text("b")
	be.Equal(t, fw.n, 1)
	be.True(t, errors.Is(sw.Err(), errFull))
	be.True(t, errors.Is(sw.Close(), errFull))

	// the bytes are consumed even though the write failed
	w := ansihtml.NewWriter(&fullWriter{}, ansihtml.Options{})
	n, err := w.Write([]byte("text\x1b["))
	be.Equal(t, n, len("text\x1b["))
	be.True(t, errors.Is(err, errFull))
	n, err = w.Write([]byte("1mmore"))
	be.Equal(t, n, len("1mmore"))
	be.True(t, errors.Is(err, errFull))
	be.True(t, errors.Is(w.Close(), errFull))
}

func TestWriter(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	w := ansihtml.NewWriter(&sb, ansihtml.Options{Warn: func(error) {}})
	for _, chunk := range []string{"x\x1b", "[3", "2mgreen", "\x1b[0m & \x1b[1", "mbold\x1b["} {
		n, err := w.Write([]byte(chunk))
		be.Err(t, err, nil)
		be.Equal(t, n, len(chunk))
	}
	be.Err(t, w.Close(), nil)
	be.Equal(t, sb.String(), `x<span style="color:#13a10e;">green</span> &amp; `+
		`<span style="font-weight:bolder;">bold`+"\x1b[</span>")
}

func TestPage(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	frag := ansihtml.Convert("\x1b[1mhi\x1b[0m", ansihtml.Options{})
	err := ansihtml.Page(&sb, "<log>", frag, ansihtml.CampbellPalette())
	be.Err(t, err, nil)
	s := sb.String()
	be.True(t, strings.HasPrefix(s, "<!DOCTYPE html>"))
	be.True(t, strings.Contains(s, "<title>&lt;log&gt;</title>"))
	be.True(t, strings.Contains(s, `<pre style="color:#cccccc;background-color:#0c0c0c;">`))
	be.True(t, strings.Contains(s, `<span style="font-weight:bolder;">hi</span></pre>`))
}
