package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/DanielEliad/powerworld/config"
	"github.com/DanielEliad/powerworld/core/analysis"
	"github.com/DanielEliad/powerworld/core/busconfig"
	"github.com/DanielEliad/powerworld/core/loads"
	"github.com/DanielEliad/powerworld/infra/logger"
	"github.com/DanielEliad/powerworld/pkg/export"
)

var (
	linesPath      string
	generatorsPath string
	busesPath      string
	loadsMWPath    string
	loadsMVarPath  string
	outFormat      string
	outPath        string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot analysis over exported paste files",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&linesPath, "lines", "", "branch loading export file")
	analyzeCmd.Flags().StringVar(&generatorsPath, "generators", "", "generator output export file")
	analyzeCmd.Flags().StringVar(&busesPath, "buses", "", "bus voltage export file")
	analyzeCmd.Flags().StringVar(&loadsMWPath, "loads-mw", "", "active load export file")
	analyzeCmd.Flags().StringVar(&loadsMVarPath, "loads-mvar", "", "reactive load export file")
	analyzeCmd.Flags().StringVar(&outFormat, "format", "json", "output format: json or csv")
	analyzeCmd.Flags().StringVar(&outPath, "out", "", "output file, stdout when empty")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var req analysis.Request
	inputs := []struct {
		path string
		dst  *string
	}{
		{linesPath, &req.LinesData},
		{generatorsPath, &req.GeneratorsData},
		{busesPath, &req.BusesData},
		{loadsMWPath, &req.LoadsMWData},
		{loadsMVarPath, &req.LoadsMVarData},
	}
	provided := false
	for _, in := range inputs {
		if in.path == "" {
			continue
		}
		data, err := os.ReadFile(in.path)
		if err != nil {
			return err
		}
		*in.dst = string(data)
		provided = true
	}
	if !provided {
		return errors.New("no input files given")
	}

	registry := busconfig.NewRegistry(cfg.Buses.Buses)
	registry.EnsureSeeded()
	analyzer := analysis.New(registry, cfg.Batteries, cfg.Budget, cfg.Analysis, loads.NewStore(), nil, logger.New("analyze-command"))

	res, err := analyzer.All(req)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.New("analyze-command").Errorf("close output: %v", err)
			}
		}()
		out = f
	}
	switch outFormat {
	case "json":
		return export.WriteJSON(out, res)
	case "csv":
		return export.WriteCSV(out, res)
	default:
		return fmt.Errorf("unknown format %q", outFormat)
	}
}
