package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/replaylab/internal/config"
	"github.com/san-kum/replaylab/internal/models"
	"github.com/san-kum/replaylab/internal/replay"
	"github.com/san-kum/replaylab/internal/storage"
	"github.com/san-kum/replaylab/internal/table"
	"github.com/san-kum/replaylab/internal/tui"
)

var (
	dataDir      string
	statesFile   string
	controlsFile string
	discreteFile string
	patterns     []string
	valueType    string
	workers      int
	outFile      string
	configFile   string
	plotColumn   string
)

// main is the entry point for the replaylab CLI; it registers commands and
// flags and executes the root command, exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "replaylab",
		Short: "state-trajectory replay and output reporting",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [model]",
		Short: "replay a recorded trajectory and report outputs",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVar(&statesFile, "states", "", "states table (csv)")
	analyzeCmd.Flags().StringVar(&controlsFile, "controls", "", "controls table (csv)")
	analyzeCmd.Flags().StringVar(&discreteFile, "discrete", "", "discrete-variables table (csv)")
	analyzeCmd.Flags().StringArrayVar(&patterns, "pattern", nil, "output path pattern (repeatable)")
	analyzeCmd.Flags().StringVar(&valueType, "type", config.DefaultType, "output value type (double|vec3|mat3)")
	analyzeCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "parallel replay workers")
	analyzeCmd.Flags().StringVar(&outFile, "out", "", "also write the report to this csv path")
	analyzeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot report columns",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotColumn, "column", "", "plot only this column")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "interactive report viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list built-in models",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range models.NewRegistry().List() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(analyzeCmd, listCmd, plotCmd, exportCmd, viewCmd, modelsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override config values.
	if len(args) > 0 {
		cfg.Model = args[0]
	}
	if cmd.Flags().Changed("states") {
		cfg.States = statesFile
	}
	if cmd.Flags().Changed("controls") {
		cfg.Controls = controlsFile
	}
	if cmd.Flags().Changed("discrete") {
		cfg.Discrete = discreteFile
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Patterns = patterns
	}
	if cmd.Flags().Changed("type") {
		cfg.Type = valueType
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}

	if cfg.States == "" || cfg.Controls == "" {
		return fmt.Errorf("both --states and --controls are required")
	}
	if len(cfg.Patterns) == 0 {
		return fmt.Errorf("at least one --pattern is required")
	}

	want, err := cfg.ValueType()
	if err != nil {
		return err
	}

	m, err := models.NewRegistry().Get(cfg.Model)
	if err != nil {
		return err
	}

	states, err := table.ReadCSV(cfg.States)
	if err != nil {
		return err
	}
	controls, err := table.ReadCSV(cfg.Controls)
	if err != nil {
		return err
	}
	opts := &replay.Options{Workers: cfg.Workers}
	if cfg.Discrete != "" {
		opts.Discrete, err = table.ReadCSV(cfg.Discrete)
		if err != nil {
			return err
		}
	}

	fmt.Printf("replaying %d rows through %s...\n", states.NumRows(), cfg.Model)
	start := time.Now()

	rep, err := replay.Analyze(m, states, controls, cfg.Patterns, want, opts)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Model, cfg.Patterns, cfg.Type, cfg.Workers, rep)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("rows: %d\n", rep.NumRows())
	fmt.Println("\ncolumns:")
	for _, lbl := range rep.Labels() {
		fmt.Printf("  %s\n", lbl)
	}

	if outFile != "" {
		flat, err := rep.Table()
		if err != nil {
			return err
		}
		if err := flat.WriteCSV(outFile); err != nil {
			return err
		}
		fmt.Printf("\nreport written to %s\n", outFile)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tROWS\tCOLS\tTYPE\tWORKERS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows,
			len(run.Columns),
			run.Type,
			run.Workers,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.LoadMetadata(runID)
	if err != nil {
		return err
	}
	report, err := st.LoadReport(runID)
	if err != nil {
		return err
	}
	if report.NumRows() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("rows: %d\n\n", report.NumRows())

	labels := report.Labels()
	if plotColumn != "" {
		labels = []string{plotColumn}
	} else if len(labels) > 6 {
		labels = labels[:6]
	}

	for _, lbl := range labels {
		data, err := report.Column(lbl)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(lbl),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMetadata(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func viewRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMetadata(args[0])
	if err != nil {
		return err
	}
	report, err := st.LoadReport(args[0])
	if err != nil {
		return err
	}
	return tui.RunViewer(meta, report)
}
