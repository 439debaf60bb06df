package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gobayes/adapters/excel"
	"gobayes/adapters/genelist"
	"gobayes/adapters/report"
	"gobayes/domain/annotation"
	"gobayes/domain/ontology"
	"gobayes/internal"
	"gobayes/internal/config"
	"gobayes/internal/container"
	"gobayes/internal/errors"
	"gobayes/internal/simulation"
	"gobayes/ports"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error [%s]: %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
}

// cli carries the state shared by all subcommands
type cli struct {
	out    io.Writer
	cfg    *config.Config
	logger *internal.Logger

	configPath  string
	logLevel    string
	annotations string
	ontology    string
	format      string
	workers     int
	noTrace     bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out, logger: internal.DefaultLogger}

	rootCmd := &cobra.Command{
		Use:           "gobayes",
		Short:         "Gene Ontology overrepresentation analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "YAML configuration file (overrides GOBAYES_CONFIG)")
	flags.StringVar(&c.logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE")
	flags.StringVar(&c.annotations, "annotations", "", "annotation table (GAF-style, tab-separated)")
	flags.StringVar(&c.ontology, "ontology", "", "ontology file")
	flags.StringVar(&c.format, "format", "", "ontology format: obo or pairs")
	flags.IntVar(&c.workers, "workers", 0, "concurrent workers")
	flags.BoolVar(&c.noTrace, "no-trace", false, "do not propagate annotations to ancestor terms")

	rootCmd.AddCommand(
		c.newEnrichCmd(),
		c.newSimulateCmd(),
		c.newClosureCmd(),
	)
	return rootCmd
}

// setup loads .env, then configuration, then applies flag overrides
func (c *cli) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil {
		c.logger.Debug("no .env file found, using system environment variables")
	}
	if c.configPath != "" {
		if err := os.Setenv("GOBAYES_CONFIG", c.configPath); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.annotations != "" {
		cfg.Annotation.File = c.annotations
	}
	if c.ontology != "" {
		cfg.Ontology.File = c.ontology
	}
	if c.format != "" {
		cfg.Ontology.Format = c.format
	}
	if cmd.Flags().Changed("workers") {
		cfg.Analysis.Workers = c.workers
	}
	if c.noTrace {
		cfg.Ontology.Trace = false
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid flags")
	}

	level, ok := internal.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return errors.ConfigInvalid(fmt.Sprintf("unknown log level %q", cfg.LogLevel))
	}
	c.logger.SetLevel(level)
	c.cfg = cfg
	return nil
}

func (c *cli) container() (*container.Container, error) {
	ctr, err := container.New(c.cfg, c.logger)
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}
	return ctr, nil
}

func (c *cli) loadIndex(ctx context.Context, ctr *container.Container) (*annotation.Index, error) {
	if err := c.cfg.RequireFiles(true, c.cfg.Ontology.Trace); err != nil {
		return nil, err
	}
	idx, err := ctr.Enrichment.LoadIndex(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load annotations")
	}
	return idx, nil
}

func (c *cli) newEnrichCmd() *cobra.Command {
	var outPath string
	var mode string

	cmd := &cobra.Command{
		Use:   "enrich [module files...]",
		Short: "Test gene modules for overrepresented ontology terms",
		Long: `Test each module file (one gene per line, or an .xlsx workbook with one
module per sheet) against the annotation index and write one report per module.

Example: gobayes enrich cluster1.txt cluster2.txt --ontology go.obo --annotations goa_human.gaf --out report.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != "" {
				c.cfg.Analysis.Mode = mode
			}
			return c.runEnrich(cmd.Context(), args, outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "report file (.tsv or .xlsx); stdout TSV when empty")
	cmd.Flags().StringVar(&mode, "mode", "", "standard or conditional")
	return cmd
}

func (c *cli) runEnrich(ctx context.Context, paths []string, outPath string) error {
	modules, err := readModules(paths)
	if err != nil {
		return err
	}

	ctr, err := c.container()
	if err != nil {
		return err
	}
	idx, err := c.loadIndex(ctx, ctr)
	if err != nil {
		return err
	}
	reports, err := ctr.Enrichment.TestModules(ctx, idx, modules, ctr.Mode())
	if err != nil {
		return errors.Wrap(err, "enrichment failed")
	}
	for _, r := range reports {
		c.logger.Info("module %s: %d terms, %d at alpha %g", r.Module, len(r.Rows), len(r.Significant(c.cfg.Analysis.Alpha)), c.cfg.Analysis.Alpha)
	}

	var sink ports.ReportWriter = report.ForPath(outPath)
	if outPath == "" {
		return sink.WriteReports(c.out, reports)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", outPath)
	}
	if err := sink.WriteReports(f, reports); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write %s", outPath)
	}
	return f.Close()
}

// readModules reads gene list files, one module each, and XLSX workbooks,
// one module per sheet
func readModules(paths []string) (map[string]annotation.GeneSet, error) {
	modules := make(map[string]annotation.GeneSet, len(paths))
	add := func(name string, genes annotation.GeneSet) error {
		if _, dup := modules[name]; dup {
			return errors.InvalidInput(fmt.Sprintf("two modules are named %s", name))
		}
		modules[name] = genes
		return nil
	}

	for _, path := range paths {
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			sheets, err := excel.ReadModulesFile(path)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read workbook %s", path)
			}
			for name, genes := range sheets {
				if err := add(name, genes); err != nil {
					return nil, err
				}
			}
			continue
		}
		name, genes, err := genelist.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read module %s", path)
		}
		if err := add(name, genes); err != nil {
			return nil, err
		}
	}
	return modules, nil
}

func (c *cli) newSimulateCmd() *cobra.Command {
	var cfg simulation.SweepConfig
	var term string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Measure p-values of a planted term over random modules",
		Long: `Draw random modules in which genes annotated with --term are --bias times
more likely to be chosen, test each in both modes and summarise the term's
p-values.

Example: gobayes simulate --term GO:0006915 --size 50 --bias 5 --runs 200 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Term = ontology.Term(term)
			if !cmd.Flags().Changed("alpha") {
				cfg.Alpha = c.cfg.Analysis.Alpha
			}
			cfg.Workers = c.cfg.Analysis.Workers

			ctr, err := c.container()
			if err != nil {
				return err
			}
			idx, err := c.loadIndex(cmd.Context(), ctr)
			if err != nil {
				return err
			}
			summary, err := simulation.Sweep(cmd.Context(), idx, cfg, c.logger)
			if err != nil {
				return errors.Wrap(err, "simulation failed")
			}
			enc := json.NewEncoder(c.out)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}

	cmd.Flags().StringVar(&term, "term", "", "term whose genes are favoured")
	cmd.Flags().IntVar(&cfg.Size, "size", 20, "genes per module")
	cmd.Flags().Float64Var(&cfg.Bias, "bias", 1, "sampling weight of genes annotated with --term")
	cmd.Flags().IntVar(&cfg.Runs, "runs", 100, "number of modules")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", 42, "random seed")
	cmd.Flags().Float64Var(&cfg.Alpha, "alpha", 0.05, "significance level")
	_ = cmd.MarkFlagRequired("term")
	return cmd
}

func (c *cli) newClosureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "closure",
		Short: "Print every term followed by its ancestors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.cfg.RequireFiles(false, true); err != nil {
				return err
			}
			ctr, err := c.container()
			if err != nil {
				return err
			}
			closure, _, err := ctr.Enrichment.LoadClosure(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "failed to trace ontology")
			}
			for _, t := range closure.Terms() {
				line := []string{string(t)}
				for _, a := range closure.Of(t).Sorted() {
					line = append(line, string(a))
				}
				if _, err := fmt.Fprintln(c.out, strings.Join(line, "\t")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
