// icook runs iCook programs and shows the intermediate stages of the
// interpreter.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/jonathanjma/iCook/internal/config"
	"github.com/jonathanjma/iCook/internal/driver"
	"github.com/jonathanjma/iCook/internal/evaluator"
	"github.com/jonathanjma/iCook/internal/lexer"
	"github.com/jonathanjma/iCook/internal/printer"
)

type tokenOut struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Pos   string `json:"pos"`
}

func exprFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "expr",
		Aliases: []string{"e"},
		Usage:   "evaluate `SOURCE` instead of reading a file",
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "icook",
		Usage:     "Run iCook recipes.",
		UsageText: "icook [global options] [command] [file]",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML settings `FILE`",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "nesting limit before StackOverflow (0 disables it)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable coloured output",
			},
			&cli.IntFlag{
				Name:  "v",
				Usage: "glog verbosity",
			},
			exprFlag(),
		},
		Before: func(c *cli.Context) error {
			if c.IsSet("v") {
				return flag.Set("v", fmt.Sprint(c.Int("v")))
			}
			return nil
		},
		Action: runProgram,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Evaluate a program and print the value of its last form.",
				ArgsUsage: "[file]",
				Flags:     []cli.Flag{exprFlag()},
				Action:    runProgram,
			},
			{
				Name:      "tokens",
				Usage:     "Print the token stream, one JSON object per line.",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					exprFlag(),
					&cli.BoolFlag{Name: "table", Usage: "print an aligned table instead of JSON"},
				},
				Action: printTokens,
			},
			{
				Name:      "ast",
				Usage:     "Print the syntax tree of a program.",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					exprFlag(),
					&cli.BoolFlag{Name: "raw", Usage: "dump the Go values instead of the outline"},
				},
				Action: printAST,
			},
			{
				Name:      "fmt",
				Usage:     "Print the program in canonical, fully parenthesized form.",
				ArgsUsage: "[file]",
				Flags:     []cli.Flag{exprFlag()},
				Action:    formatProgram,
			},
		},
	}
}

// loadConfig reads --config, then applies the command line overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	if c.IsSet("max-depth") {
		cfg.MaxDepth = c.Int("max-depth")
	}
	if c.Bool("no-color") {
		cfg.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	color.NoColor = color.NoColor || !cfg.Color
	return cfg, nil
}

// exprValue finds --expr on the command or on any enclosing context, so that
// both `icook -e src run` and `icook run -e src` work.
func exprValue(c *cli.Context) string {
	for _, ctx := range c.Lineage() {
		if v := ctx.String("expr"); v != "" {
			return v
		}
	}
	return ""
}

// source returns the program text from --expr, a file argument or stdin.
func source(c *cli.Context) (string, string, error) {
	if expr := exprValue(c); expr != "" {
		return "<expr>", expr, nil
	}
	switch c.NArg() {
	case 0:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "read stdin")
		}
		return "<stdin>", string(data), nil
	case 1:
		path := c.Args().First()
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", errors.Wrapf(err, "read %s", path)
		}
		return path, string(data), nil
	}
	return "", "", errors.Errorf("expected at most one file, got %d", c.NArg())
}

func runProgram(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	name, src, err := source(c)
	if err != nil {
		return err
	}
	s := driver.NewSession(cfg)
	if err := s.LoadPrelude(); err != nil {
		return err
	}
	v, err := s.Run(name, src)
	if err != nil {
		glog.V(1).Infof("%s failed in %s stage", name, driver.Stage(err))
		return errors.New(s.Explain(err))
	}
	_, err = color.New(color.FgGreen).Fprintln(c.App.Writer, evaluator.Format(v))
	return err
}

func printTokens(c *cli.Context) error {
	if _, err := loadConfig(c); err != nil {
		return err
	}
	name, src, err := source(c)
	if err != nil {
		return err
	}
	toks, err := driver.Tokens(name, src)
	if err != nil {
		return err
	}
	if c.Bool("table") {
		tokenTable(c.App.Writer, toks)
		return nil
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetEscapeHTML(false)
	for _, t := range toks {
		if err := enc.Encode(tokenOut{Type: t.Kind.String(), Value: t.Lexeme, Pos: t.Pos.String()}); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func tokenTable(w io.Writer, toks []lexer.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pos", "Kind", "Lexeme"})
	for _, t := range toks {
		table.Append([]string{t.Pos.String(), t.Kind.String(), t.Lexeme})
	}
	table.Render()
}

func printAST(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	name, src, err := source(c)
	if err != nil {
		return err
	}
	prog, err := driver.Parse(name, src)
	if err != nil {
		return err
	}
	if c.Bool("raw") {
		dump := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		dump.Fdump(c.App.Writer, prog)
		return nil
	}
	_, err = io.WriteString(c.App.Writer, printer.New(cfg.Indent).Program(prog))
	return err
}

func formatProgram(c *cli.Context) error {
	if _, err := loadConfig(c); err != nil {
		return err
	}
	name, src, err := source(c)
	if err != nil {
		return err
	}
	prog, err := driver.Parse(name, src)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, printer.SourceProgram(prog))
	return err
}

func main() {
	// glog registers on the standard flag set; urfave/cli owns os.Args.
	_ = flag.CommandLine.Parse(nil)
	_ = flag.Set("logtostderr", "true")
	defer glog.Flush()

	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "[Error]", err)
		glog.Flush()
		os.Exit(1)
	}
}
