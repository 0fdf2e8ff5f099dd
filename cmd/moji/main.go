package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	moji "github.com/ArtFaz/Moji"
)

const (
	appName     = "moji"
	historyFile = ".moji_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("Moji %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", moji.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(moji.Version)
	case "-h", "--help", "help":
		usage()
	default:
		os.Exit(cmdRun(os.Args[1]))
	}
}

func usage() {
	fmt.Printf(`Moji %s

Usage:
  %s <file.moji>    Run a program.
  %s repl           Start the REPL.
  %s version        Print the version.

`, moji.Version, appName, appName, appName)
}

func cmdRun(file string) int {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ip := moji.NewInterpreter()
	if err := ip.RunSource(string(src)); err != nil {
		// Language-level failures are the program's outcome, not the
		// interpreter's: report the diagnostic and exit cleanly.
		fmt.Fprintln(os.Stderr, red(moji.WrapErrorWithSource(err, string(src)).Error()))
		return 0
	}
	return 0
}

func cmdRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := moji.NewInterpreter()

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		if err := ip.RunSnippet(code); err != nil {
			fmt.Fprintln(os.Stderr, red(moji.WrapErrorWithSource(err, code).Error()))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe accumulates lines until the buffer parses as a complete
// snippet (or fails with a definite, non-EOF syntax error, which the run will
// then report properly).
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		toks, lerr := moji.Tokenize(src)
		if lerr != nil {
			return src, true
		}
		_, perr := moji.NewParser(toks).Snippet()
		if perr == nil {
			return src, true
		}
		if moji.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
