package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cognicore/phrasenet/pkg/logger"
	"github.com/cognicore/phrasenet/pkg/logger/console"
	"github.com/cognicore/phrasenet/pkg/phrasenet"
	"github.com/cognicore/phrasenet/pkg/phrasenet/config"
	"github.com/cognicore/phrasenet/pkg/phrasenet/export"
	"github.com/cognicore/phrasenet/pkg/phrasenet/export/sqlite"
	"github.com/cognicore/phrasenet/pkg/phrasenet/ingest"
	"github.com/cognicore/phrasenet/pkg/phrasenet/internalerr"
	"github.com/cognicore/phrasenet/pkg/phrasenet/loader"
)

func main() {
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{}))

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logger.Fatal("phrasenet failed", "err", err)
	}
}

type cliFlags struct {
	input        string
	format       string
	optionsPath  string
	stoplistPath string
	out          string
	snapshot     bool
	topList      int
	node         string
	debug        bool

	relation  string
	window    int
	phrase    string
	stopwords bool
	minWeight int
	topN      int
}

func parseFlags(args []string) (*cliFlags, map[string]bool, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("phrasenet", flag.ContinueOnError)

	fs.StringVar(&f.input, "input", "", "Input file, or - for stdin (required)")
	fs.StringVar(&f.format, "format", "", "Input format: text, html, jsonl (default: from extension)")
	fs.StringVar(&f.optionsPath, "options", "", "Options YAML file (optional)")
	fs.StringVar(&f.stoplistPath, "stoplist", "", "Stoplist YAML file (optional)")
	fs.StringVar(&f.out, "out", "", "Output file: .json or .db/.sqlite (default: JSON on stdout)")
	fs.BoolVar(&f.snapshot, "snapshot", false, "Wrap JSON output with id, options and stats")
	fs.IntVar(&f.topList, "top-list", 0, "Print the N most frequent nodes instead of the graph")
	fs.StringVar(&f.node, "node", "", "Print frequency and neighborhood of a node instead of the graph")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")

	fs.StringVar(&f.relation, "relation", "", "Relation type: window, sentence, relation-phrase")
	fs.IntVar(&f.window, "window", 0, "Window size (window mode)")
	fs.StringVar(&f.phrase, "phrase", "", "Relation phrase (relation-phrase mode)")
	fs.BoolVar(&f.stopwords, "stopwords", true, "Remove stopwords")
	fs.IntVar(&f.minWeight, "min-weight", 0, "Minimum edge weight")
	fs.IntVar(&f.topN, "top", 0, "Keep only the N most frequent nodes (0 = no cap)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if f.input == "" {
		return nil, nil, errors.New("--input required")
	}
	return f, set, nil
}

// applyOverrides applies only the flags given on the command line, so
// values from the options file are not clobbered by flag defaults.
func applyOverrides(opts phrasenet.Options, f *cliFlags, set map[string]bool) phrasenet.Options {
	if set["relation"] {
		opts.RelationType = phrasenet.RelationType(f.relation)
	}
	if set["window"] {
		opts.WindowSize = f.window
	}
	if set["phrase"] {
		opts.RelationPhrase = f.phrase
	}
	if set["stopwords"] {
		opts.UseStopwords = f.stopwords
	}
	if set["min-weight"] {
		opts.MinEdgeWeight = f.minWeight
	}
	if set["top"] {
		opts.TopN = f.topN
	}
	return opts
}

func readInput(f *cliFlags, stdin io.Reader) (string, error) {
	if f.input == "-" {
		format, err := loader.ParseFormat(f.format)
		if err != nil {
			return "", err
		}
		return loader.Read(stdin, format)
	}
	if f.format == "" {
		return loader.Load(f.input)
	}

	format, err := loader.ParseFormat(f.format)
	if err != nil {
		return "", err
	}
	file, err := os.Open(f.input)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.input, err)
	}
	defer file.Close()
	return loader.Read(file, format)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	f, set, err := parseFlags(args)
	if err != nil {
		return err
	}

	if f.debug {
		logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{Debug: true}))
	}

	cfgLoader := config.Loader{
		OptionsPath:  f.optionsPath,
		StoplistPath: f.stoplistPath,
	}
	components, err := cfgLoader.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	opts := applyOverrides(components.Options, f, set)
	if err := config.Validate(opts); err != nil {
		return err
	}

	text, err := readInput(f, stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return internalerr.ErrNoInput
	}

	start := time.Now()
	res := components.Builder.Run(text, opts)
	logger.Info("Graph built",
		"relation", res.Options.RelationType,
		"sentences", res.Stats.Sentences,
		"tokens", res.Stats.Tokens,
		"nodes", res.Stats.Nodes,
		"edges", res.Stats.Edges,
		"duration", time.Since(start),
	)

	switch {
	case f.node != "":
		return printNode(stdout, res.Graph, f.node)
	case f.topList > 0:
		return printTopList(stdout, res.Graph, f.topList)
	}

	return writeOutput(ctx, f, res, stdout)
}

func writeOutput(ctx context.Context, f *cliFlags, res phrasenet.Result, stdout io.Writer) error {
	snap := export.NewSnapshot(res)

	switch strings.ToLower(filepath.Ext(f.out)) {
	case "":
		if f.out != "" {
			return fmt.Errorf("%w: output %s has no extension", internalerr.ErrUnsupportedFormat, f.out)
		}
		if f.snapshot {
			return export.WriteSnapshotJSON(stdout, snap)
		}
		return export.WriteJSON(stdout, res.Graph)
	case ".json":
		file, err := os.Create(f.out)
		if err != nil {
			return err
		}
		defer file.Close()
		if f.snapshot {
			err = export.WriteSnapshotJSON(file, snap)
		} else {
			err = export.WriteJSON(file, res.Graph)
		}
		if err != nil {
			return err
		}
		logger.Info("Graph written", "path", f.out)
		return file.Close()
	case ".db", ".sqlite", ".sqlite3":
		if err := sqlite.Write(ctx, f.out, snap); err != nil {
			return err
		}
		logger.Info("Snapshot written", "path", f.out, "id", snap.ID)
		return nil
	}
	return fmt.Errorf("%w: output %s", internalerr.ErrUnsupportedFormat, f.out)
}

func printTopList(w io.Writer, g phrasenet.Graph, k int) error {
	for _, n := range g.TopNodes(k) {
		if _, err := fmt.Fprintf(w, "%s — %d\n", n.ID, n.Count); err != nil {
			return err
		}
	}
	return nil
}

func printNode(w io.Writer, g phrasenet.Graph, id string) error {
	n, ok := g.Node(ingest.Normalize(id))
	if !ok {
		return fmt.Errorf("node %q: %w", id, internalerr.ErrNotFound)
	}
	neighbors := g.Neighbors(n.ID, phrasenet.DefaultNeighborLimit)
	_, err := fmt.Fprintf(w, "%s\nfrequency: %d\nneighbors: %s\n", n.ID, n.Count, strings.Join(neighbors, ", "))
	return err
}
