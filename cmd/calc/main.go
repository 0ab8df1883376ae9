package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/calc"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, prompt, colors string
		with                         [][2]string
		exact                        uint
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.StringVar(&prompt, "prompt", "> ", "prompt printed before each statement")
	flag.StringVar(&colors, "color", "auto", "color error messages: auto, always, or never")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.UintVar(&exact, "exact", 0, "compute pi and e to this many bits instead of using 10-digit values")
	flag.Parse()

	var opts []calc.ContextOption
	if exact > 0 {
		opts = append(opts, calc.ExactConstants(exact))
	}
	ctx := calc.NewContext(opts...)
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		r, err := calc.EvalString(vl, opts...)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		ctx.Set(nm, r)
	}

	in, err := infile(inname)
	if err != nil {
		log.Fatal(err)
	}
	repl := calc.REPL{
		Session: calc.NewSession(in, ctx),
		Out:     os.Stdout,
		Diag:    os.Stderr,
		Prompt:  prompt,
		Format:  verb,
		Color:   calc.DiagColor(),
	}
	c, err := diagColor(repl.Color, colors, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	repl.Color = c
	os.Exit(run(repl.Run))
}

// diagColor applies a -color mode to c for diagnostics written to f. In auto
// mode, color is used only if f is a terminal and NO_COLOR is unset.
func diagColor(c *color.Color, mode string, f *os.File) (*color.Color, error) {
	switch mode {
	case "auto":
		if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
			c.DisableColor()
			return c, nil
		}
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	case "always":
		c.EnableColor()
	case "never":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown -color mode %q", mode)
	}
	return c, nil
}

// run runs a session loop and returns the exit status: 0 after quit or the
// end of the input, 1 if the input failed, and 2 if evaluation hit an
// internal error.
func run(loop func() error) (code int) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if err, ok := r.(error); ok && errors.Is(err, calc.ErrPutbackOverflow) {
			log.Println(err)
			code = 2
			return
		}
		panic(r)
	}()
	if err := loop(); err != nil {
		log.Println(err)
		return 1
	}
	return 0
}

func infile(inname string) (io.RuneScanner, error) {
	if inname == "" || inname == "-" {
		return bufio.NewReader(os.Stdin), nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, err
	}
	return bufio.NewReader(f), nil
}
