package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/bettersjdm/sre-report/internal"
	"github.com/joho/godotenv"
)

type Params struct {
	Quarter string `descr:"Quarter to report (q1, q2, ... or all)" optional:"true"`
	Data    string `descr:"Dataset file, optionally prefixed with its format (yaml:, json:, xlsx:). Defaults to the embedded FY 2025 dataset" optional:"true"`
	Source  string `descr:"Dataset format, overrides prefix and extension detection" optional:"true"`
	Output  string `descr:"Output format" alts:"table,json,xlsx,site" strict:"true" default:"table"`
	Out     string `descr:"Destination for xlsx (file) and site (directory) output" optional:"true"`
	Config  string `descr:"Config file path (default: ~/.sre-report/config.yaml)" optional:"true"`
	Strict  bool   `descr:"Fail when a total does not match its line items" optional:"true"`
	Verbose bool   `descr:"Debug logging" optional:"true"`
}

const allQuarters = "all"

func main() {
	loadDotEnv(internal.WithComponent(internal.NewLogger(os.Stderr, false), internal.ComponentConfig))

	boa.NewCmdT[Params]("sre-report").
		WithShort("Quarterly Statement of Receipts and Expenditures report").
		WithLong("Formats a municipality's quarterly receipts and expenditures into peso amounts, shares and chart data, and renders them as tables, JSON, an Excel workbook or static site data files.").
		WithRunFunc(func(params *Params) {
			if err := run(params, os.Stdout, os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params, stdout, stderr io.Writer) error {
	logger := internal.NewLogger(stderr, params.Verbose)
	log := internal.WithComponent(logger, internal.ComponentApp)

	cfg, err := loadConfig(params.Config, internal.WithComponent(logger, internal.ComponentConfig))
	if err != nil {
		return err
	}

	dataset, err := loadDataset(params, internal.WithComponent(logger, internal.ComponentDataset))
	if err != nil {
		return err
	}

	tolerance := cfg.GetTolerance()
	discrepancies := dataset.Check(tolerance)
	internal.LogDiscrepancies(internal.WithComponent(logger, internal.ComponentCheck), discrepancies)
	if params.Strict && len(discrepancies) > 0 {
		return fmt.Errorf("%d totals do not match their line items (tolerance %v)", len(discrepancies), tolerance)
	}

	quarters := selectQuarters(params.Quarter, cfg, dataset)

	renderer, err := newRenderer(params, stdout)
	if err != nil {
		return err
	}
	if err := renderQuarters(renderer, cfg, dataset, quarters, internal.WithComponent(logger, internal.ComponentRender)); err != nil {
		return err
	}
	if params.Out != "" {
		log.Info("output written", "output", params.Output, "path", params.Out, "quarters", len(quarters))
	}
	return nil
}

// renderQuarters selects each quarter in turn and closes the renderer. A
// buffering renderer is aborted when any step fails, so no partial output
// is written and its resources are released.
func renderQuarters(renderer internal.Renderer, cfg *internal.Config, d *internal.Dataset, quarters []internal.QuarterKey, log *slog.Logger) (err error) {
	defer func() {
		if err == nil {
			return
		}
		if aborter, ok := renderer.(internal.Aborter); ok {
			if abortErr := aborter.Abort(); abortErr != nil {
				log.Warn("releasing output failed", "error", abortErr)
			}
		}
	}()

	applied := internal.RendererFunc(func(p internal.Projection) error {
		return renderer.Render(cfg.Apply(p))
	})
	selector := internal.NewSelector(d, applied, cfg.SelectorOptions()...)
	for _, q := range quarters {
		if _, err := selector.Select(q); err != nil {
			return fmt.Errorf("rendering %s: %w", selector.Current(), err)
		}
		log.Debug("rendered quarter", "requested", q, "quarter", selector.Current())
	}

	if closer, ok := renderer.(internal.Closer); ok {
		return closer.Close()
	}
	return nil
}

// loadDotEnv loads .env files into the environment. Missing files are
// skipped; unreadable or malformed ones are logged and skipped.
func loadDotEnv(log *slog.Logger, files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn("ignoring .env file", "path", f, "error", err)
		}
	}
}

func loadConfig(path string, log *slog.Logger) (*internal.Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv("SRE_CONFIG")
	}
	if path == "" {
		explicit = false
		path = internal.DefaultConfigPath()
	}
	if path == "" {
		return internal.NewDefaultConfig(), nil
	}

	cfg, err := internal.LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			log.Debug("no config file, using defaults", "path", path)
			return internal.NewDefaultConfig(), nil
		}
		return nil, err
	}
	log.Debug("loaded config", "path", path)
	return cfg, nil
}

func loadDataset(params *Params, log *slog.Logger) (*internal.Dataset, error) {
	arg := params.Data
	if arg == "" {
		arg = os.Getenv("SRE_DATA")
	}
	if arg == "" {
		d := internal.DefaultDataset()
		log.Debug("using embedded dataset", "quarters", d.Len())
		return d, nil
	}
	d, err := internal.LoadDataset(arg, params.Source)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	log.Debug("loaded dataset", "file", arg, "quarters", d.Len())
	return d, nil
}

// selectQuarters returns the quarters to render in order. Unknown keys are
// passed through, the selector falls back to the default quarter for them.
func selectQuarters(flag string, cfg *internal.Config, d *internal.Dataset) []internal.QuarterKey {
	key := strings.TrimSpace(flag)
	if key == "" {
		key = strings.TrimSpace(cfg.DefaultQuarter)
	}
	if key == "" {
		return []internal.QuarterKey{d.DefaultKey()}
	}
	if strings.EqualFold(key, allQuarters) {
		return d.Keys()
	}
	return []internal.QuarterKey{internal.QuarterKey(key)}
}

func newRenderer(params *Params, stdout io.Writer) (internal.Renderer, error) {
	switch params.Output {
	case "", "table":
		return internal.NewTableRenderer(stdout), nil
	case "json":
		return internal.NewJSONRenderer(stdout), nil
	case "xlsx":
		if params.Out == "" {
			return nil, fmt.Errorf("--out is required for xlsx output")
		}
		return internal.NewXLSXRenderer(params.Out)
	case "site":
		if params.Out == "" {
			return nil, fmt.Errorf("--out is required for site output")
		}
		return internal.NewSiteRenderer(params.Out)
	default:
		return nil, fmt.Errorf("unknown output format: %s", params.Output)
	}
}
