package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	stderrors "errors"

	"github.com/alecthomas/kong"

	"github.com/faneaatiku/cosmos-json/internal/analyzer"
	"github.com/faneaatiku/cosmos-json/internal/coin"
	"github.com/faneaatiku/cosmos-json/internal/config"
	"github.com/faneaatiku/cosmos-json/internal/diff"
	"github.com/faneaatiku/cosmos-json/internal/errors"
	"github.com/faneaatiku/cosmos-json/internal/formatter"
	"github.com/faneaatiku/cosmos-json/internal/logging"
	"github.com/faneaatiku/cosmos-json/internal/models"
	"github.com/faneaatiku/cosmos-json/internal/parser"
	"github.com/faneaatiku/cosmos-json/internal/report"
	"github.com/faneaatiku/cosmos-json/internal/transform"
)

// Version information
const (
	Version = "0.1.0"
)

// Globals are flags shared by every command
type Globals struct {
	Config       string   `help:"Path to a YAML config file. Defaults to .cosmosjson.yml found from the working directory upward." short:"c" type:"path"`
	Debug        bool     `help:"Enable debug logging." short:"d"`
	Verbose      int      `help:"Increase log verbosity. Repeatable." short:"v" type:"counter"`
	ParseCoins   bool     `help:"Detect coin strings, coin objects and stringified coins." xor:"coins"`
	NoParseCoins bool     `help:"Do not detect coins." xor:"coins"`
	SortKeys     bool     `help:"Sort object keys before analyzing or comparing." short:"s"`
	Label        []string `help:"Label a string value. Repeatable." placeholder:"VALUE=LABEL" sep:"none"`
	Denom        []string `help:"Configure a coin denom. Repeatable." placeholder:"DENOM:DECIMALS[:DISPLAY]" sep:"none"`
	NoColor      bool     `help:"Disable coloured output."`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Analyze AnalyzeCmd `cmd:"" help:"Find coins and labelled values in a JSON document."`
	Diff    DiffCmd    `cmd:"" help:"Compare two JSON documents."`
	Coin    CoinCmd    `cmd:"" help:"Parse coin strings or stringified JSON holding coins."`
	Sort    SortCmd    `cmd:"" help:"Print a JSON document with object keys sorted."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Context holds the runtime context shared by all commands
type Context struct {
	Config *config.Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("cosmosjson"),
		kong.Description("Inspect and compare Cosmos SDK JSON: coins, labels and structural diffs"),
		kong.UsageOnError(),
	)

	ctx, err := newContext(&cli.Globals, os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		err = kctx.Run(ctx)
	}
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		fmt.Fprintf(os.Stderr, "\nFor help, run: cosmosjson --help\n")

		os.Exit(1)
	}
}

// newContext loads the settings bundle, merges the global flags over it and
// builds the logger.
func newContext(g *Globals, stdin io.Reader, stdout, stderr io.Writer) (*Context, error) {
	configPath := g.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg := config.NewConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides, err := g.overrides()
	if err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(overrides)

	logger := logging.NewLogger(stderr, logging.LevelFromVerbosity(cfg.Dev.Verbose, cfg.Dev.Debug))
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath)
	} else {
		logger.Debug("no config file found, using defaults")
	}

	return &Context{Config: cfg, Logger: logger, Stdin: stdin, Stdout: stdout, Stderr: stderr}, nil
}

func (g *Globals) overrides() (config.Overrides, error) {
	o := config.Overrides{Debug: g.Debug, Verbose: g.Verbose}

	switch {
	case g.ParseCoins:
		o.ParseCoins = boolPtr(true)
	case g.NoParseCoins:
		o.ParseCoins = boolPtr(false)
	}
	if g.SortKeys {
		o.SortKeys = boolPtr(true)
	}
	if g.NoColor {
		o.Color = boolPtr(false)
	}

	for _, raw := range g.Label {
		label, err := config.ParseLabel(raw)
		if err != nil {
			return o, err
		}
		o.Labels = append(o.Labels, label)
	}
	for _, raw := range g.Denom {
		denom, err := config.ParseDenom(raw)
		if err != nil {
			return o, err
		}
		o.CoinDenoms = append(o.CoinDenoms, denom)
	}
	return o, nil
}

func boolPtr(b bool) *bool {
	return &b
}

// readDocument parses the named file, or stdin for "" and "-", and sorts its
// keys when configured.
func (c *Context) readDocument(name string) (models.Value, error) {
	var (
		doc models.Value
		err error
	)
	if name == "" || name == "-" {
		name = "stdin"
		doc, err = c.readStdin()
	} else {
		doc, err = parser.ParseFile(name)
	}
	if err != nil {
		return nil, nameInput(name, err)
	}

	c.Logger.Debug("parsed input", "input", name, "lines", analyzer.CountLines(doc))
	return transform.Apply(doc, c.Config.SortKeys), nil
}

func (c *Context) readStdin() (models.Value, error) {
	if f, ok := c.Stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return nil, errors.NewInputError("failed to access stdin", err)
		}
		if info.Mode()&os.ModeCharDevice != 0 {
			return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	data, err := io.ReadAll(c.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return parser.ParseString(string(data))
}

// nameInput prefixes parsing errors with the input they came from.
func nameInput(name string, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Type == errors.ErrorTypeParsing {
		return errors.NewParsingError(fmt.Sprintf("%s: %s", name, appErr.Message), appErr.Err)
	}
	return err
}

func writeOutput(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return errors.NewOutputError("failed to write output", err)
	}
	return nil
}

func outputError(err error) error {
	if err == nil {
		return nil
	}
	return errors.NewOutputError("failed to write output", err)
}

// AnalyzeCmd reports where coins and labelled values sit in a document
type AnalyzeCmd struct {
	File   string `arg:"" optional:"" help:"JSON file to analyze. Reads stdin when omitted."`
	Select string `help:"JSONPath expression selecting the node to analyze." placeholder:"JSONPATH"`
	Output string `help:"Output format (table, json)." short:"o" enum:"table,json" default:"table"`
}

// Run executes the analyze command
func (a *AnalyzeCmd) Run(ctx *Context) error {
	doc, err := ctx.readDocument(a.File)
	if err != nil {
		return err
	}

	if a.Select != "" {
		doc, err = parser.Select(doc, a.Select)
		if err != nil {
			return err
		}
		ctx.Logger.Debug("selected node", "expr", a.Select, "lines", analyzer.CountLines(doc))
	}

	start := time.Now()
	result := analyzer.Analyze(doc, ctx.Config.AnalyzerOptions())
	ctx.Logger.Debug("analysis finished",
		"markers", len(result.Markers),
		"max_depth", result.MaxDepth,
		"duration", time.Since(start))

	if a.Output == "json" {
		return outputError(report.AnalysisJSON(ctx.Stdout, result))
	}
	return outputError(report.NewReporter().AnalysisTable(ctx.Stdout, result))
}

// DiffCmd compares two documents
type DiffCmd struct {
	Left               string   `arg:"" help:"Original JSON file, or - for stdin."`
	Right              string   `arg:"" help:"Changed JSON file, or - for stdin."`
	Output             string   `help:"Output format (text, html, json, summary)." short:"o" enum:"text,html,json,summary" default:"text"`
	IdentityKey        []string `help:"Object member identifying array elements. Repeatable, tried in order." sep:"none"`
	NoDetectMove       bool     `help:"Report reordered array elements as removals and insertions."`
	IncludeValueOnMove bool     `help:"Include moved values in JSON output."`
}

// Run executes the diff command
func (d *DiffCmd) Run(ctx *Context) error {
	if isStdin(d.Left) && isStdin(d.Right) {
		return errors.NewDiffError("only one side of a diff can be read from stdin", errors.ErrInvalidFilePath)
	}
	if err := config.ValidateIdentityKeys(d.IdentityKey); err != nil {
		return err
	}

	overrides := config.Overrides{IdentityKeys: d.IdentityKey}
	if d.NoDetectMove {
		overrides.DetectMove = boolPtr(false)
	}
	if d.IncludeValueOnMove {
		overrides.IncludeValueOnMove = boolPtr(true)
	}
	ctx.Config.ApplyOverrides(overrides)

	left, err := ctx.readDocument(d.Left)
	if err != nil {
		return err
	}
	right, err := ctx.readDocument(d.Right)
	if err != nil {
		return err
	}

	start := time.Now()
	delta := diff.Diff(left, right, ctx.Config.DiffConfig())
	changes := diff.Changes(delta)
	ctx.Logger.Debug("diff finished", "changes", len(changes), "duration", time.Since(start))

	reporter := report.NewReporter()
	switch d.Output {
	case "html":
		return writeOutput(ctx.Stdout, diff.FormatHTML(left, delta)+"\n")
	case "json":
		return outputError(report.ChangesJSON(ctx.Stdout, changes))
	case "summary":
		return outputError(reporter.ChangesTable(ctx.Stdout, changes))
	default:
		if delta == nil {
			return writeOutput(ctx.Stdout, "identical\n")
		}
		styles := diff.PlainStyles()
		if ctx.Config.Output.Color {
			styles = diff.DefaultStyles()
		}
		if err := writeOutput(ctx.Stdout, diff.FormatText(left, delta, styles)); err != nil {
			return err
		}
		return outputError(reporter.Summary(ctx.Stdout, diff.Count(changes)))
	}
}

func isStdin(name string) bool {
	return name == "" || name == "-"
}

// CoinCmd parses coin strings given on the command line
type CoinCmd struct {
	Values []string `arg:"" help:"Coin strings such as 1500000ubze, or stringified JSON holding coin objects."`
}

// Run executes the coin command
func (c *CoinCmd) Run(ctx *Context) error {
	registry := ctx.Config.CoinRegistry()

	rows := make([]report.CoinRow, 0, len(c.Values))
	for _, v := range c.Values {
		row := report.CoinRow{Input: v}
		if parsed, ok := coin.ParseCoinString(v, registry); ok {
			row.Coins = []models.ParsedCoin{parsed}
		} else {
			row.Coins = coin.ParseStringifiedCoins(v, registry)
		}
		ctx.Logger.Debug("parsed coin input", "input", v, "coins", len(row.Coins))
		rows = append(rows, row)
	}

	return outputError(report.NewReporter().CoinTable(ctx.Stdout, rows))
}

// SortCmd prints a document with sorted keys
type SortCmd struct {
	File   string `arg:"" optional:"" help:"JSON file to sort. Reads stdin when omitted."`
	Indent int    `help:"Spaces per indent level, 0 for compact output. Defaults to output.indent from the config." default:"-1"`
}

// Run executes the sort command
func (s *SortCmd) Run(ctx *Context) error {
	if s.Indent >= 0 {
		ctx.Config.ApplyOverrides(config.Overrides{Indent: &s.Indent})
	}

	doc, err := ctx.readDocument(s.File)
	if err != nil {
		return err
	}

	f := &formatter.Formatter{Indent: strings.Repeat(" ", ctx.Config.Output.Indent)}
	return writeOutput(ctx.Stdout, f.Format(transform.SortKeys(doc))+"\n")
}

// VersionCmd prints the version
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(ctx *Context) error {
	return writeOutput(ctx.Stdout, fmt.Sprintf("cosmosjson version %s\n", Version))
}
