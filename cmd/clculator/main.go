// Command clculator is an interactive calculator over arbitrary-precision
// complex numbers, with user-defined recursive functions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/advskel/clculator"
)

const historyFile = ".clculator_history"

func main() {
	log.SetFlags(0)
	var (
		prec  int64
		auto  bool
		depth int
	)
	flag.Int64Var(&prec, "p", clculator.DefaultPrecision, "output precision in decimal digits")
	flag.BoolVar(&auto, "auto", false, "shortest-exact output precision (overrides -p)")
	flag.IntVar(&depth, "depth", clculator.DefaultMaxDepth, "maximum function recursion depth")
	flag.Parse()
	if !auto && prec < 1 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	ctx := clculator.NewContext()
	if auto {
		ctx.SetPrecision(clculator.AutoPrecision)
	} else {
		ctx.SetPrecision(prec)
	}
	ctx.SetMaxDepth(depth)

	fmt.Println("clculator: complex-number calculator")
	fmt.Println(`type "help" for commands, "exit" to quit`)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println("\nGoodbye!")
			return
		}
		if err != nil {
			log.Printf("read: %v", err)
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.TrimSpace(line) == "exit" {
			fmt.Println("Goodbye!")
			return
		}

		out, err := ctx.Execute(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}
