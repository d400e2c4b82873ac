package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/ngc/internal/htmltext"
	"github.com/cognicore/ngc/internal/logger"
	"github.com/cognicore/ngc/pkg/ngc"
	"github.com/cognicore/ngc/pkg/ngc/config"
	"github.com/cognicore/ngc/pkg/ngc/exclude"
	"github.com/cognicore/ngc/pkg/ngc/query"
	"github.com/cognicore/ngc/pkg/ngc/report"
	"github.com/cognicore/ngc/pkg/ngc/store"
	"github.com/cognicore/ngc/pkg/ngc/store/sqlite"
)

func main() {
	var (
		input       = flag.String("f", "", "Input file (default: stdin)")
		excludePath = flag.String("exclude", "", "Exclude-term file, one literal term per line")
		configPath  = flag.String("config", "", "YAML defaults file")
		htmlInput   = flag.Bool("html", false, "Strip HTML markup before tokenizing (automatic for .html/.htm)")
		savePath    = flag.String("save", "", "Archive the run into this SQLite database")
		history     = flag.Int("history", 0, "List the N most recent archived runs and exit (requires -save)")
		verbose     = flag.Bool("v", false, "Verbose diagnostics")
	)
	flag.Parse()

	log := logger.New("ngc")
	if *verbose {
		log = logger.NewVerbose("ngc")
	}

	ctx := context.Background()

	if *history > 0 {
		if *savePath == "" {
			log.Fatal("-history requires -save")
		}
		if err := listHistory(ctx, *savePath, *history); err != nil {
			log.Fatal("list history", "err", err)
		}
		return
	}

	var cfg *config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal("load config", "err", err)
		}
	}

	args := flag.Args()
	if len(args) == 0 && cfg != nil {
		args = cfg.Query
		log.Debug("using query defaults from config", "tokens", strings.Join(args, " "))
	}

	spec, err := query.Parse(args)
	if err != nil {
		log.Fatal("parse query", "err", err)
	}

	excl := exclude.NewManager(nil)
	if cfg != nil {
		for _, term := range cfg.Exclude {
			excl.Add(term)
		}
	}
	if *excludePath != "" {
		terms, err := config.LoadExcludeFile(*excludePath)
		if err != nil {
			log.Fatal("load exclude file", "err", err)
		}
		for _, term := range terms {
			excl.Add(term)
		}
	}
	spec.Filters.Text = append(spec.Filters.Text, excl.Filters()...)

	text, name, err := readInput(*input)
	if err != nil {
		log.Fatal("read input", "err", err)
	}
	if *htmlInput || isHTMLPath(*input) {
		log.Debug("stripping html markup")
		text = htmltext.Strip(text)
	}

	log.Debug("analyzing", "input", name, "sizes", fmt.Sprint(spec.Sizes), "excludes", len(excl.Terms()))
	rep := ngc.Analyze(text, spec)

	fmt.Print(report.Render(rep, spec.View))

	if *savePath != "" {
		id, err := archive(ctx, *savePath, rep, name, strings.Join(args, " "))
		if err != nil {
			log.Fatal("archive run", "err", err)
		}
		log.Info("run archived", "id", id, "db", *savePath)
	}
}

func readInput(path string) (text, name string, err error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "stdin", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

func isHTMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func archive(ctx context.Context, dbPath string, rep ngc.Report, input, queryStr string) (string, error) {
	st, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	run := store.Run{
		ID:    store.NewRunID(),
		Input: input,
		Query: queryStr,
		Chars: rep.Text.Chars,
		Lines: rep.Text.Lines,
		Words: rep.Text.Words,
	}
	for _, res := range rep.Sizes {
		for _, e := range res.Entries {
			run.Rows = append(run.Rows, store.Row{
				Size: res.Size, Text: e.Text, Count: e.Count, PPM: e.PPM, Z: e.Z,
			})
		}
	}
	if rep.Merged != nil {
		for _, e := range rep.Merged.Entries {
			run.Rows = append(run.Rows, store.Row{
				Text: e.Text, Count: e.Count, PPM: e.PPM, Z: e.Z,
			})
		}
	}

	if err := st.SaveRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}

func listHistory(ctx context.Context, dbPath string, limit int) error {
	st, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  %-20s  %q  (%d words)\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Input, r.Query, r.Words)
	}
	return nil
}
