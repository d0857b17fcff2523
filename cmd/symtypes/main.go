package main

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/symtypes/internal/config"
	"github.com/standardbeagle/symtypes/internal/suggest"
	"github.com/standardbeagle/symtypes/internal/symtypes"
	"github.com/standardbeagle/symtypes/internal/symvers"
	"github.com/standardbeagle/symtypes/internal/tracelog"
	"github.com/standardbeagle/symtypes/internal/version"
	"github.com/standardbeagle/symtypes/internal/wildcard"
)

// loadConfig reads the config file named by -config (falling back to
// config.DefaultPath) and folds in the global -v flag, mirroring the
// teacher's own loadConfigWithOverrides: config first, flags override it.
func loadConfig(c *cli.Context) (config.Config, error) {
	path := c.String("config")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.Verbose = cfg.Verbose || c.Bool("v")
	return cfg, nil
}

func resolveWorkers(c *cli.Context, cfg config.Config) int {
	if c.IsSet("j") {
		return c.Int("j")
	}
	return cfg.WorkerCount
}

func resolveContext(c *cli.Context, cfg config.Config) int {
	if c.IsSet("c") {
		return c.Int("c")
	}
	return cfg.DiffContext
}

func main() {
	app := &cli.App{
		Name:    "symtypes",
		Usage:   "consolidate and compare kernel ABI symtypes snapshots",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "v",
				Aliases: []string{"verbose"},
				Usage:   "log stage timing to stderr",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file path",
				Value: config.DefaultPath,
			},
		},
		Commands: []*cli.Command{
			consolidateCommand(),
			compareCommand(),
			symversCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func consolidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "consolidate",
		Usage:     "merge a directory of .symtypes files into one consolidated file",
		ArgsUsage: "PATH",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "j", Usage: "worker count (default: one per CPU, or config worker_count)"},
			&cli.StringFlag{Name: "o", Usage: "output file, or - for stdout", Value: "-"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("consolidate: expected exactly one PATH argument", 2)
			}
			path := c.Args().Get(0)

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			workers := resolveWorkers(c, cfg)
			logger := &tracelog.Logger{Verbose: cfg.Verbose}

			var corpus *symtypes.Corpus
			if err := logger.Stage("load", func() error {
				var loadErr error
				corpus, loadErr = symtypes.Load(path, workers)
				return loadErr
			}); err != nil {
				return err
			}

			out := os.Stdout
			if dest := c.String("o"); dest != "" && dest != "-" {
				f, err := os.Create(dest)
				if err != nil {
					return err
				}
				defer f.Close()
				return logger.Stage("consolidate", func() error {
					return symtypes.Consolidate(f, corpus)
				})
			}
			return logger.Stage("consolidate", func() error {
				return symtypes.Consolidate(out, corpus)
			})
		},
	}
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "report the structural ABI differences between two symtypes snapshots",
		ArgsUsage: "PATH PATH2",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "j", Usage: "worker count (default: one per CPU, or config worker_count)"},
			&cli.StringFlag{Name: "f", Usage: "filter file: one shell-glob export pattern per line"},
			&cli.IntFlag{Name: "c", Usage: "unified diff context line count (default: 3, or config diff_context)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("compare: expected exactly two PATH arguments", 2)
			}
			pathL, pathR := c.Args().Get(0), c.Args().Get(1)

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			workers := resolveWorkers(c, cfg)
			diffContext := resolveContext(c, cfg)
			logger := &tracelog.Logger{Verbose: cfg.Verbose}

			filter := wildcard.None
			if filterPath := c.String("f"); filterPath != "" {
				f, err := os.Open(filterPath)
				if err != nil {
					return err
				}
				filter, err = wildcard.Load(f)
				f.Close()
				if err != nil {
					return err
				}
			}

			var l, r *symtypes.Corpus
			if err := logger.Stage("load", func() error {
				var g errgroup.Group
				g.Go(func() error {
					var loadErr error
					l, loadErr = symtypes.Load(pathL, workers)
					return loadErr
				})
				g.Go(func() error {
					var loadErr error
					r, loadErr = symtypes.Load(pathR, workers)
					return loadErr
				})
				return g.Wait()
			}); err != nil {
				return err
			}

			warnUnmatchedLiteralPatterns(filter, l, r)

			var report *symtypes.Report
			if err := logger.Stage("compare", func() error {
				var compareErr error
				report, compareErr = symtypes.Compare(l, r, filter, workers)
				return compareErr
			}); err != nil {
				return err
			}

			fmt.Print(symtypes.Render(report, diffContext))
			if !report.Empty() {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// warnUnmatchedLiteralPatterns prints a "did you mean" hint for every -f
// pattern that names no wildcard metacharacter and matches zero exports in
// either corpus (spec.md SPEC_FULL §4.Q). Non-fatal: compare proceeds with
// whatever the filter did accept.
func warnUnmatchedLiteralPatterns(filter *wildcard.Matcher, l, r *symtypes.Corpus) {
	patterns := filter.Patterns()
	if len(patterns) == 0 {
		return
	}

	candidates := append(append([]string{}, l.Exports.Names()...), r.Exports.Names()...)

	for _, pattern := range patterns {
		if !wildcard.IsLiteral(pattern) {
			continue
		}
		if _, ok := l.Exports.FileOf(pattern); ok {
			continue
		}
		if _, ok := r.Exports.FileOf(pattern); ok {
			continue
		}
		if nearest, ok := suggest.Nearest(pattern, candidates); ok {
			fmt.Fprintf(os.Stderr, "no export matching %q; did you mean %q?\n", pattern, nearest)
		}
	}
}

func symversCommand() *cli.Command {
	return &cli.Command{
		Name:      "symvers",
		Usage:     "print a kernel Module.symvers file, optionally cross-checked against a symtypes corpus",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "x", Usage: "cross-check against this symtypes corpus (file or directory)"},
			&cli.IntFlag{Name: "j", Usage: "worker count for -x corpus load"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("symvers: expected exactly one FILE argument", 2)
			}
			path := c.Args().Get(0)

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			records, err := symvers.Parse(path, f)
			if err != nil {
				return err
			}
			for _, rec := range records {
				fmt.Printf("0x%08x\t%s\t%s\t%s\t%s\n", rec.CRC, rec.Export, rec.Module, rec.License, rec.Namespace)
			}

			corpusPath := c.String("x")
			if corpusPath == "" {
				return nil
			}

			corpus, err := symtypes.Load(corpusPath, resolveWorkersRaw(c))
			if err != nil {
				return err
			}

			inCorpus := make(map[string]bool, len(records))
			for _, rec := range records {
				inCorpus[rec.Export] = true
				if _, ok := corpus.Exports.FileOf(rec.Export); !ok {
					fmt.Printf("symvers export %q not found in corpus\n", rec.Export)
				}
			}
			for _, name := range corpus.Exports.Names() {
				if !inCorpus[name] {
					fmt.Printf("corpus export %q not found in symvers\n", name)
				}
			}
			return nil
		},
	}
}

func resolveWorkersRaw(c *cli.Context) int {
	if c.IsSet("j") {
		return c.Int("j")
	}
	return 0 // workerpool.Run treats <= 0 as 1
}
