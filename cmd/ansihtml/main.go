// Command ansihtml converts text with ANSI color and style sequences to HTML.
//
// Usage:
//
//	ansihtml [flags] [file]
//
// With no file, the text is read from standard input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/bengarrett/ansihtml"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/term"
)

var errTerminal = errors.New("no input file and standard input is a terminal")

// config holds the command line flags.
type config struct {
	output   string
	charset  string
	scheme   string
	title    string
	controls bool
	strict   bool
	page     bool
	watch    bool
	quiet    bool
	debug    bool
	input    string
}

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Printf("ansihtml: %v", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var c config
	fs := flag.NewFlagSet("ansihtml", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.output, "o", "", "write the HTML to this file instead of standard output")
	fs.StringVar(&c.charset, "charset", "utf8", "character set of the input, such as utf8, cp437 or latin1")
	fs.StringVar(&c.scheme, "scheme", "campbell", "color palette: campbell, cga or xterm")
	fs.StringVar(&c.title, "title", "", "document title used with -page")
	fs.BoolVar(&c.controls, "controls", false, "show control characters as control pictures")
	fs.BoolVar(&c.strict, "strict", false, "exit with an error on malformed sequences")
	fs.BoolVar(&c.page, "page", false, "write a complete HTML document")
	fs.BoolVar(&c.watch, "watch", false, "convert the input file again whenever it changes, requires -o")
	fs.BoolVar(&c.quiet, "quiet", false, "do not print warnings")
	fs.BoolVar(&c.debug, "debug", false, "prefix warnings with DEBUG")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: ansihtml [flags] [file]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return c, err //nolint:wrapcheck
	}
	if fs.NArg() > 1 {
		return c, fmt.Errorf("expected at most 1 file, got %d", fs.NArg())
	}
	c.input = fs.Arg(0)
	if c.watch && (c.input == "" || c.output == "") {
		return c, errors.New("-watch requires an input file and -o")
	}
	return c, nil
}

func scheme(name string) (ansihtml.Scheme, error) {
	for _, s := range []ansihtml.Scheme{ansihtml.Campbell, ansihtml.CGA16, ansihtml.Xterm16} {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown scheme %q", name)
}

func (c config) options() (ansihtml.Options, error) {
	sch, err := scheme(c.scheme)
	if err != nil {
		return ansihtml.Options{}, err
	}
	cs, err := ansihtml.Charset(c.charset)
	if err != nil {
		return ansihtml.Options{}, err //nolint:wrapcheck
	}
	opt := ansihtml.Options{
		Scheme:         sch,
		EscapeControls: c.controls,
		Strict:         c.strict,
		Charset:        cs,
	}
	switch {
	case c.quiet:
		opt.Warn = func(error) {}
	case c.debug:
		opt.Warn = func(err error) { log.Printf("DEBUG: %v", err) }
	}
	return opt, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	c, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	opt, err := c.options()
	if err != nil {
		return err
	}
	if c.input == "" {
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return errTerminal
		}
	}
	if err := render(c, opt, stdin, stdout); err != nil {
		return err
	}
	if c.watch {
		return watch(ctx, c.input, func() error {
			return render(c, opt, stdin, stdout)
		})
	}
	return nil
}

// render converts the input to the output once.
func render(c config, opt ansihtml.Options, stdin io.Reader, stdout io.Writer) error {
	r := stdin
	if c.input != "" {
		f, err := os.Open(c.input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	w := stdout
	if c.output != "" {
		f, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if !c.page {
		_, err := ansihtml.WriteTo(r, w, opt)
		return err //nolint:wrapcheck
	}
	s, err := ansihtml.String(r, opt)
	if err != nil {
		return err //nolint:wrapcheck
	}
	title := c.title
	if title == "" && c.input != "" {
		title = filepath.Base(c.input)
	}
	return ansihtml.Page(w, title, s, opt.Scheme.Palette()) //nolint:wrapcheck
}

// watch calls fn whenever the named file is written, until the context is done.
// The directory is watched, so editors that replace the file are seen.
func watch(ctx context.Context, name string, fn func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	abs, err := filepath.Abs(name)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch add: %w", err)
	}
	log.Printf("watching %s", name)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := fn(); err != nil {
				log.Printf("ansihtml: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}
