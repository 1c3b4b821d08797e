// Package ansihtml converts text containing ANSI SGR escape sequences, such as colors,
// bold and underline, into HTML with equivalent inline styles.
//
// A [Parser] consumes the text in chunks of any size and reports text runs and style
// changes to a [Handler]. [SpanWriter] and [NodeBuilder] are handlers that render
// <span> markup to an io.Writer or element nodes to a HTML tree.
// Other CSI sequences, such as cursor movements, are passed through unmodified.
package ansihtml

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/text/encoding"
)

var (
	ErrReader     = errors.New("reader is nil")
	ErrOverflow   = errors.New("csi parameters exceed the length limit")
	ErrParams     = errors.New("csi parameters are not digits and semicolons")
	ErrColorspace = errors.New("malformed extended color")
	ErrColor      = errors.New("palette color is not a hex color")
	ErrCharset    = errors.New("unknown character set")
)

const (
	ESC = 0x1b // ESC is the escape control character code
	CSI = '['  // CSI is the byte following ESC that introduces a control sequence
	SGR = 'm'  // SGR is the final byte of a select graphic rendition sequence

	// MaxParams is the length limit of the parameter bytes of a control sequence.
	MaxParams = 64
)

// Handler receives the output of a [Parser].
//
// Text is already HTML escaped and can be written to a document as is.
// StyleChanged is called with the style of the text that follows,
// only when it differs from the previous style.
type Handler interface {
	Text(s string)
	StyleChanged(s Style)
}

// Funcs is a Handler that calls its functions, either of which can be nil.
type Funcs struct {
	OnText  func(s string)
	OnStyle func(s Style)
}

func (f Funcs) Text(s string) {
	if f.OnText != nil {
		f.OnText(s)
	}
}

func (f Funcs) StyleChanged(s Style) {
	if f.OnStyle != nil {
		f.OnStyle(s)
	}
}

// Options configures a Parser and the conversion functions.
// The zero value uses the Campbell palette and logs warnings with the standard logger.
type Options struct {
	// Scheme is the built-in palette the Palette overrides are merged over.
	Scheme Scheme
	// Palette overrides individual colors of the Scheme.
	// Colors that are not hex colors are dropped with a warning.
	Palette Palette
	// EscapeControls replaces control characters, other than backspace,
	// tab, newline, vertical tab, form feed and carriage return, with control pictures.
	EscapeControls bool
	// Warn receives non-fatal diagnostics about malformed sequences.
	// When nil the warnings are written to the standard logger.
	Warn func(err error)
	// Strict returns the warnings as an error from [Buffer], [String] and the other
	// whole input functions. It is a debug mode for finding malformed sequences.
	Strict bool
	// Charset decodes the input to UTF-8 in the functions that read an io.Reader.
	// Generally the charset of ANSI art is [charmap.CodePage437].
	// A nil value reads UTF-8 text.
	//
	// [charmap.CodePage437]: https://pkg.go.dev/golang.org/x/text/encoding/charmap#CodePage437
	Charset encoding.Encoding
}

// palette returns the merged palette and a warning for any rejected override.
func (o Options) palette() (Palette, error) {
	err := o.Palette.Validate()
	return Resolve(o.Palette.Valid(), o.Scheme.Palette()), err
}

func (o Options) warn() func(error) {
	if o.Warn != nil {
		return o.Warn
	}
	return func(err error) {
		log.Printf("ansihtml: %v", err)
	}
}

// state of the Parser.
type state uint8

const (
	text   state = iota // text is plain text
	escape              // escape follows an ESC
	csi                 // csi follows an ESC [ and collects parameter bytes
)

// Parser is the streaming state machine that splits ANSI encoded text into
// text runs and style changes.
//
// The output is identical no matter how the text is split into chunks,
// as sequences that span two chunks are kept until they complete.
// A Parser must not be used concurrently, use a Parser for each stream.
type Parser struct {
	h        Handler
	palette  Palette
	controls bool
	warn     func(error)
	state    state
	params   []byte
	style    Style
}

// NewParser creates a Parser that reports to h.
// Invalid palette overrides in opt are reported as warnings and ignored.
func NewParser(h Handler, opt Options) *Parser {
	p := &Parser{
		h:        h,
		controls: opt.EscapeControls,
		warn:     opt.warn(),
		params:   make([]byte, 0, MaxParams),
	}
	pal, err := opt.palette()
	if err != nil {
		p.warn(err)
	}
	p.palette = pal
	return p
}

// Style returns the current style.
func (p *Parser) Style() Style {
	return p.style
}

// Feed parses the chunk and calls the Handler for every complete text run and style change.
// Partial sequences at the end of the chunk are kept for the next call to Feed or Finalize.
func (p *Parser) Feed(chunk string) {
	for len(chunk) > 0 {
		switch p.state {
		case text:
			i := strings.IndexByte(chunk, ESC)
			if i < 0 {
				p.text(chunk)
				return
			}
			p.text(chunk[:i])
			chunk = chunk[i+1:]
			p.state = escape
		case escape:
			if chunk[0] == CSI {
				chunk = chunk[1:]
				p.state = csi
				continue
			}
			// not a control sequence, so the ESC is text and the byte is read again
			p.text("\x1b")
			p.state = text
		case csi:
			n := paramBytes(chunk)
			if room := MaxParams - len(p.params); n > room {
				p.params = append(p.params, chunk[:room]...)
				chunk = chunk[room:]
				p.warn(fmt.Errorf("%w: %d bytes", ErrOverflow, MaxParams))
				p.dump("")
				continue
			}
			p.params = append(p.params, chunk[:n]...)
			chunk = chunk[n:]
			if len(chunk) == 0 {
				return
			}
			final := chunk[0]
			chunk = chunk[1:]
			if final != SGR {
				p.dump(string(final))
				continue
			}
			p.sgr()
		}
	}
}

// Finalize ends the stream. A trailing ESC or an unterminated control sequence
// is passed to the Handler as text.
//
// A style run that is still open is ended with a StyleChanged call for the empty
// style, so the Parser and its Handler can be fed a new stream.
func (p *Parser) Finalize() {
	switch p.state {
	case escape:
		p.text("\x1b")
	case csi:
		p.text("\x1b[" + string(p.params))
	}
	p.reset()
	if !p.style.IsEmpty() {
		p.style = Style{}
		p.h.StyleChanged(p.style)
	}
}

// paramBytes returns the number of leading parameter bytes, digits and semicolons.
func paramBytes(s string) int {
	for i := range len(s) {
		if !isParam(s[i]) {
			return i
		}
	}
	return len(s)
}

func isParam(b byte) bool {
	return (b >= '0' && b <= '9') || b == ';'
}

func (p *Parser) text(s string) {
	if s == "" {
		return
	}
	p.h.Text(Escape(s, p.controls))
}

func (p *Parser) reset() {
	p.params = p.params[:0]
	p.state = text
}

// dump passes the collected sequence and the final byte through as text.
func (p *Parser) dump(final string) {
	p.text("\x1b[" + string(p.params) + final)
	p.reset()
}

// sgr applies the collected parameters to the current style.
func (p *Parser) sgr() {
	s := string(p.params)
	if paramBytes(s) != len(s) {
		p.warn(fmt.Errorf("%w: %q", ErrParams, s))
		p.dump("m")
		return
	}
	p.reset()
	next, err := ApplySGR(ParseParams(s), p.style, p.palette)
	if err != nil {
		p.warn(fmt.Errorf("%w: %q", err, s))
	}
	if next == p.style {
		return
	}
	p.style = next
	p.h.StyleChanged(next)
}
