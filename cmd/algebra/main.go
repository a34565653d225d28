package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/nylund/algebra"
	"github.com/nylund/algebra/typst"
)

func main() {
	log.SetFlags(0)
	var echo, img bool
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&img, "img", false, "render the simplified expression with typst and display it with imgcat")
	flag.Parse()

	imgcat := ""
	if img {
		p, err := typst.FindImgcat()
		if err != nil {
			log.Fatalf("-img needs imgcat: %v", err)
		}
		imgcat = p
	}

	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			if err := run(arg, echo, imgcat); err != nil {
				log.Fatal(err)
			}
		}
		return
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		repl(echo, imgcat)
		return
	}
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := run(line, echo, imgcat); err != nil {
			log.Fatal(err)
		}
	}
	if err := sc.Err(); err != nil {
		log.Fatal(err)
	}
}

func repl(echo bool, imgcat string) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			log.Fatal(err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if err := run(line, echo, imgcat); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// run parses one expression, prints its original and simplified markup,
// and optionally renders the simplified form to the terminal.
func run(src string, echo bool, imgcat string) error {
	e, err := algebra.ParseString(src)
	if err != nil {
		return err
	}
	s := e.Simplify()
	if echo {
		fmt.Printf("%v : %v\n", e, s)
	}
	fmt.Printf("%s  =>  %s\n", e.Typst(), s.Typst())
	if imgcat == "" {
		return nil
	}
	dir, err := os.MkdirTemp("", "algebra")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	ctx := context.Background()
	path, err := typst.Render(ctx, s.Typst(), dir)
	if err != nil {
		return err
	}
	return typst.Display(ctx, imgcat, path)
}
