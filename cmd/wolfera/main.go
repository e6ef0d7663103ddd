// Command wolfera runs Wolfera scripts and hosts the interactive REPL.
//
// Usage:
//
//	wolfera                      start the REPL
//	wolfera script.wf            run a script
//	wolfera script.wf -- a b c   run with arguments (script sees argv)
//	wolfera --tokens script.wf   dump the token stream and exit
//	wolfera --ast script.wf      dump the parse tree and exit
//
// A script's final value sets the process exit code when it is an integer.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	wolfera "github.com/ChasoniCK/Wolfera"
)

func main() {
	app := &cli.App{
		Name:      "wolfera",
		Usage:     "run Wolfera scripts or start an interactive session",
		Version:   wolfera.Version,
		ArgsUsage: "[script.wf] [-- args...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "tokens", Usage: "print the token stream instead of running"},
			&cli.BoolFlag{Name: "ast", Usage: "print the parse tree instead of running"},
			&cli.StringSliceFlag{Name: "path", Usage: "extra module search directory (repeatable)"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	script, scriptArgs := splitArgs(c.Args().Slice())

	ucfg := wolfera.LoadUserConfig()
	cfg := wolfera.Config{
		SearchPath:     append(c.StringSlice("path"), ucfg.SearchPath...),
		RecursionLimit: ucfg.RecursionLimit,
		Args:           scriptArgs,
	}

	if script == "" {
		if c.Bool("tokens") || c.Bool("ast") {
			return cli.Exit("--tokens and --ast require a script argument", 2)
		}
		return repl(cfg)
	}

	src, err := os.ReadFile(script)
	if err != nil {
		return cli.Exit("wolfera: "+err.Error(), 1)
	}

	if c.Bool("tokens") {
		return dumpTokens(script, string(src))
	}
	if c.Bool("ast") {
		return dumpAST(script, string(src))
	}

	ip := wolfera.New(cfg)
	val, rerr := ip.Run(script, string(src))
	if rerr != nil {
		fmt.Fprint(os.Stderr, renderError(rerr, os.Stderr))
		os.Exit(1)
	}
	if val.Tag == wolfera.VTInt {
		os.Exit(int(val.Data.(int64)))
	}
	return nil
}

// splitArgs separates the script path from everything after the first
// "--", which becomes the script's argv.
func splitArgs(args []string) (script string, rest []string) {
	for i, a := range args {
		if a == "--" {
			rest = args[i+1:]
			break
		}
		if script == "" {
			script = a
		}
	}
	return script, rest
}

func dumpTokens(file, src string) error {
	toks, err := wolfera.NewLexer(file, src).Scan()
	if err != nil {
		return cli.Exit(renderError(err, os.Stderr), 1)
	}
	fmt.Print(wolfera.FormatTokens(toks))
	return nil
}

func dumpAST(file, src string) error {
	prog, err := wolfera.Parse(file, src)
	if err != nil {
		return cli.Exit(renderError(err, os.Stderr), 1)
	}
	fmt.Print(wolfera.FormatAST(prog))
	return nil
}

func renderError(err *wolfera.Error, out *os.File) string {
	if isatty.IsTerminal(out.Fd()) {
		return err.RenderColor()
	}
	return err.Render()
}

// repl runs the interactive loop. Incomplete input (an error at end of
// input) switches to a continuation prompt instead of reporting, so
// multi-line constructs can be typed naturally. The last non-null value is
// rebound to '_' after every evaluation.
func repl(cfg wolfera.Config) error {
	banner := "Wolfera " + wolfera.Version
	if isatty.IsTerminal(os.Stdout.Fd()) {
		banner = color.New(color.FgCyan, color.Bold).Sprint(banner)
	}
	fmt.Printf("%s (interactive). Ctrl-D to exit.\n", banner)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				line.WriteHistory(f)
				f.Close()
			}
		}()
	}

	ip := wolfera.New(cfg)
	var pending string
	for {
		prompt := ">>> "
		if pending != "" {
			prompt = "... "
		}
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			pending = ""
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		src := input
		if pending != "" {
			src = pending + "\n" + input
		}
		if strings.TrimSpace(src) == "" {
			continue
		}

		val, rerr := ip.EvalSource(src)
		if rerr != nil {
			if rerr.Incomplete {
				pending = src
				continue
			}
			pending = ""
			fmt.Fprint(os.Stderr, renderError(rerr, os.Stderr))
			line.AppendHistory(src)
			continue
		}
		pending = ""
		line.AppendHistory(src)
		if val.Tag != wolfera.VTNull {
			ip.Globals.Define("_", val)
			fmt.Println(wolfera.Repr(val))
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".wolfera")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}
