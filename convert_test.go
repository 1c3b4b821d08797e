package ansihtml_test

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bengarrett/ansihtml"
	"github.com/nalgeon/be"
	"golang.org/x/text/encoding/charmap"
)

func ExampleConvert() {
	s := ansihtml.Convert("hello, \x1b[1mworld\x1b[0m!", ansihtml.Options{})
	fmt.Println(s)
	// Output: hello, <span style="font-weight:bolder;">world</span>!
}

func ExampleBuffer() {
	const ansi = "\x1b[0m\x1b[5;33;42mHI\x1b[0m"

	// use cga palette
	r := strings.NewReader(ansi)
	buf, _ := ansihtml.Buffer(r, ansihtml.Options{Scheme: ansihtml.CGA16})
	fmt.Printf("%q\n", buf.String())

	// use xterm palette
	r = strings.NewReader(ansi)
	buf, _ = ansihtml.Buffer(r, ansihtml.Options{Scheme: ansihtml.Xterm16})
	fmt.Printf("%q\n", buf.String())
	// Output: "<span style=\"color:#a50;background-color:#0a0;\">HI</span>"
	// "<span style=\"color:#808000;background-color:#008000;\">HI</span>"
}

func ExampleBuffer_codepage() {
	const ansi = "\x1b[0;34;47m\xae\xaf\x1b[0m"
	// using Code Page 437
	r := strings.NewReader(ansi)
	opt := ansihtml.Options{Scheme: ansihtml.CGA16, Charset: charmap.CodePage437}
	buf, _ := ansihtml.Buffer(r, opt)
	fmt.Printf("%q\n", buf.String())

	// using Latin 1 (ISO-8859-1)
	r = strings.NewReader(ansi)
	opt.Charset = charmap.ISO8859_1
	buf, _ = ansihtml.Buffer(r, opt)
	fmt.Printf("%q\n", buf.String())
	// Output: "<span style=\"color:#00a;background-color:#aaa;\">«»</span>"
	// "<span style=\"color:#00a;background-color:#aaa;\">®¯</span>"
}

func ExampleString_xterm256() {
	const ansi = "\x1b[0m\x1b[38;5;93mPurple\x1b[0m \x1b[38;5;94mOrange4\x1b[0m"
	r := strings.NewReader(ansi)
	s, _ := ansihtml.String(r, ansihtml.Options{})
	fmt.Printf("%q", s)
	// Output: "<span style=\"color:rgb(102,0,255);\">Purple</span> <span style=\"color:rgb(102,51,0);\">Orange4</span>"
}

func ExampleString_rgb() {
	const ansi = "\x1b[0m\x1b[38;2;135;0;255;48;2;135;95;0mPurple on Orange4\x1b[0m"
	r := strings.NewReader(ansi)
	s, _ := ansihtml.String(r, ansihtml.Options{})
	fmt.Printf("%q", s)
	// Output: "<span style=\"color:rgb(135,0,255);background-color:rgb(135,95,0);\">Purple on Orange4</span>"
}

func ExampleWriteTo() {
	const ansi = "\x1b[0m\x1b[5;30;42mHI\x1b[0m"
	input := strings.NewReader(ansi)
	var b bytes.Buffer
	output := bufio.NewWriter(&b)
	cnt, _ := ansihtml.WriteTo(input, output, ansihtml.Options{})
	output.Flush()
	fmt.Printf("%d bytes written\n%q", cnt, b.String())
	// Output: 63 bytes written
	// "<span style=\"color:#0c0c0c;background-color:#13a10e;\">HI</span>"
}

func TestNilReader(t *testing.T) {
	t.Parallel()
	_, err := ansihtml.Buffer(nil, ansihtml.Options{})
	be.Err(t, err, ansihtml.ErrReader)
	_, err = ansihtml.WriteTo(nil, nil, ansihtml.Options{})
	be.Err(t, err, ansihtml.ErrReader)
}

func TestStrict(t *testing.T) {
	t.Parallel()
	quiet := func(error) {}
	opt := ansihtml.Options{Strict: true, Warn: quiet}
	s, err := ansihtml.String(strings.NewReader("\x1b[38mhello"), opt)
	be.True(t, errors.Is(err, ansihtml.ErrColorspace))
	be.Equal(t, s, "")

	s, err = ansihtml.String(strings.NewReader("\x1b[1mhello"), opt)
	be.Err(t, err, nil)
	be.Equal(t, s, `<span style="font-weight:bolder;">hello</span>`)

	// without strict the malformed sequence is only a warning
	opt.Strict = false
	s, err = ansihtml.String(strings.NewReader("\x1b[38mhello"), opt)
	be.Err(t, err, nil)
	be.Equal(t, s, "hello")
}

func TestBytes(t *testing.T) {
	t.Parallel()
	p, err := ansihtml.Bytes(strings.NewReader("a\x1b[4mb"), ansihtml.Options{})
	be.Err(t, err, nil)
	be.Equal(t, string(p), `a<span style="text-decoration:underline;">b</span>`)
}

func TestCharset(t *testing.T) {
	t.Parallel()
	enc, err := ansihtml.Charset("cp437")
	be.Err(t, err, nil)
	be.True(t, enc == charmap.CodePage437)
	enc, err = ansihtml.Charset("Latin1")
	be.Err(t, err, nil)
	be.True(t, enc == charmap.ISO8859_1)
	enc, err = ansihtml.Charset("utf-8")
	be.Err(t, err, nil)
	be.True(t, enc == nil)
	enc, err = ansihtml.Charset("IBM437")
	be.Err(t, err, nil)
	be.True(t, enc != nil)
	_, err = ansihtml.Charset("klingon")
	be.Err(t, err, ansihtml.ErrCharset)
}
