package ansihtml

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Convert returns the HTML of the ANSI encoded text.
// It is meant for small inputs, use a [Writer] for streams.
func Convert(text string, opt Options) string {
	var sb strings.Builder
	sw := NewSpanWriter(&sb)
	p := NewParser(sw, opt)
	p.Feed(text)
	p.Finalize()
	_ = sw.Close() // a strings.Builder never fails
	return sb.String()
}

// Buffer creates a new Buffer containing the HTML elements of the ANSI encoded text
// found in the Reader.
//
// The Reader is decoded with the Charset option, and when the Strict option is set,
// any malformed sequence is returned as an error.
func Buffer(r io.Reader, opt Options) (*bytes.Buffer, error) {
	if r == nil {
		return nil, ErrReader
	}
	var b bytes.Buffer
	if err := convert(r, &b, opt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Bytes returns the HTML elements of the ANSI encoded text found in the Reader.
func Bytes(r io.Reader, opt Options) ([]byte, error) {
	buf, err := Buffer(r, opt)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String returns the HTML elements of the ANSI encoded text found in the Reader.
func String(r io.Reader, opt Options) (string, error) {
	buf, err := Buffer(r, opt)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteTo writes to w the HTML elements of the ANSI encoded text found in the Reader.
// Unlike [Buffer], the HTML is written while the Reader is read.
//
// The return int64 is the number of bytes written.
func WriteTo(r io.Reader, w io.Writer, opt Options) (int64, error) {
	if r == nil {
		return 0, ErrReader
	}
	if w == nil {
		w = io.Discard
	}
	out := bufio.NewWriter(w)
	cw := &countWriter{w: out}
	if err := convert(r, cw, opt); err != nil {
		return cw.n, err
	}
	if err := out.Flush(); err != nil {
		return cw.n, fmt.Errorf("write to flush: %w", err)
	}
	return cw.n, nil
}

// convert streams the decoded Reader through a Writer.
func convert(r io.Reader, w io.Writer, opt Options) error {
	var warnings []error
	if opt.Strict {
		warn := opt.warn()
		opt.Warn = func(err error) {
			warnings = append(warnings, err)
			warn(err)
		}
	}
	if opt.Charset != nil {
		r = transform.NewReader(r, opt.Charset.NewDecoder())
	}
	cw := NewWriter(w, opt)
	if _, err := io.Copy(cw, r); err != nil {
		return fmt.Errorf("convert copy: %w", err)
	}
	if err := cw.Close(); err != nil {
		return err
	}
	return errors.Join(warnings...)
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err //nolint:wrapcheck
}

// Charset returns the character set encoding for a name such as
// "cp437", "latin1" or an IANA name like "IBM437" or "ISO-8859-1".
// The names "utf8" and "utf-8" return a nil encoding, as the text needs no decoding.
func Charset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf8", "utf-8":
		return nil, nil //nolint:nilnil
	case "cp437", "437", "dos", "ansi":
		return charmap.CodePage437, nil
	case "latin1", "amiga":
		return charmap.ISO8859_1, nil
	case "cp1252", "windows":
		return charmap.Windows1252, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrCharset, name)
	}
	return enc, nil
}
