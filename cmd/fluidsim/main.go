package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fluidsim/internal/codec"
	"github.com/san-kum/fluidsim/internal/config"
	"github.com/san-kum/fluidsim/internal/fluid"
	"github.com/san-kum/fluidsim/internal/frame"
	"github.com/san-kum/fluidsim/internal/metrics"
	"github.com/san-kum/fluidsim/internal/storage"
	"github.com/san-kum/fluidsim/internal/viz"
)

var (
	dataDir string
	verbose bool

	configFile string
	preset     string

	width         int
	height        int
	viscosity     float64
	forceStrength float64
	palette       []string
	frames        int
	fps           int
	compression   string
	pathKind      string
	noTokens      bool

	column    string
	plotCols  int
	plotRows  int
	outFile   string
	gifDir    string
	batchName string
	withToken bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fluidsim",
		Short: "grid fluid simulation streamed as base64 png frames",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fluidsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run a headless simulation and store its frames",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&noTokens, "no-tokens", false, "store telemetry only, not per-frame tokens")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "stir the fluid with the mouse in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&gifDir, "gif-dir", ".", "directory for recorded gifs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a telemetry column of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "kinetic_energy", "column to plot ("+strings.Join(metrics.Columns, ", ")+")")

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "draw the last stored frame of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&plotCols, "cols", 64, "terminal columns")
	showCmd.Flags().IntVar(&plotRows, "rows", 32, "terminal rows")

	encodeCmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "base64-encode a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  encodeInput,
	}

	decodeCmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "decode base64 text from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  decodeInput,
	}
	decodeCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tVISC\tFORCE\tPATH\tPALETTE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%.3g\t%.3g\t%s\t%s\n",
					name, p.Width, p.Height, p.Viscosity, p.ForceStrength,
					p.Pointer.Path, strings.Join(p.Palette, ","))
			}
			return w.Flush()
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [preset...]",
		Short: "run several presets concurrently",
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&frames, "frames", 0, "frames per member (0 uses each preset's)")
	batchCmd.Flags().StringVar(&batchName, "name", "batch", "run name prefix")
	batchCmd.Flags().BoolVar(&noTokens, "no-tokens", false, "store telemetry only")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and telemetry as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&withToken, "token", false, "include the last frame token")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, showCmd, exportCmd, encodeCmd, decodeCmd, presetsCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&width, "width", def.Width, "grid width")
	cmd.Flags().IntVar(&height, "height", def.Height, "grid height")
	cmd.Flags().Float64Var(&viscosity, "viscosity", def.Viscosity, "velocity smoothing per step")
	cmd.Flags().Float64Var(&forceStrength, "force", def.ForceStrength, "pointer force strength")
	cmd.Flags().StringSliceVar(&palette, "palette", def.Palette, "three hex colours")
	cmd.Flags().IntVar(&frames, "frames", def.Frames, "frames to simulate")
	cmd.Flags().IntVar(&fps, "fps", def.FPS, "frame rate")
	cmd.Flags().StringVar(&compression, "compression", def.Compression, "png compression (default, none, speed, best)")
	cmd.Flags().StringVar(&pathKind, "path", def.Pointer.Path, "pointer path (fixed, off, circle, lissajous, line)")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("width") || flags.Changed("height") {
		cfg.Pointer.CX = float64(cfg.Width) / 2
		cfg.Pointer.CY = float64(cfg.Height) / 2
	}
	if flags.Changed("viscosity") {
		cfg.Viscosity = viscosity
	}
	if flags.Changed("force") {
		cfg.ForceStrength = forceStrength
	}
	if flags.Changed("palette") {
		cfg.Palette = palette
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("compression") {
		cfg.Compression = compression
	}
	if flags.Changed("path") {
		cfg.Pointer.Path = pathKind
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	name := "run"
	if preset != "" {
		name = preset
	}
	if len(args) > 0 {
		name = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := storage.New(dataDir)
	sim, err := fluid.New(cfg.GetParams())
	if err != nil {
		return err
	}
	path, _ := cfg.GetPath()
	pal, _ := cfg.GetPalette()

	m := &fluid.Member{Name: name, Sim: sim, Path: path, Palette: pal}
	slog.Info("running simulation", "name", name, "width", cfg.Width, "height", cfg.Height, "frames", cfg.Frames)

	start := time.Now()
	rw, series, err := runMembers(ctx, st, []*fluid.Member{m}, []*config.Config{cfg})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", rw[0].ID())
	fmt.Printf("frames: %d\n", len(series[0].Frames))
	printSummary(series[0].Summary())
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	var members []*fluid.Member
	var cfgs []*config.Config
	for _, name := range names {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		if cmd.Flags().Changed("frames") {
			cfg.Frames = frames
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		sim, err := fluid.New(cfg.GetParams(), fluid.WithLogger(slog.Default().With("member", name)))
		if err != nil {
			return err
		}
		path, _ := cfg.GetPath()
		pal, _ := cfg.GetPalette()
		members = append(members, &fluid.Member{Name: batchName + "-" + name, Sim: sim, Path: path, Palette: pal})
		cfgs = append(cfgs, cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	rws, series, err := runMembers(ctx, storage.New(dataDir), members, cfgs)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d runs in %v\n\n", len(members), time.Since(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFRAMES\tPEAK_KE\tPEAK_SPEED\tMEAN_TOKEN")
	for i, rw := range rws {
		s := series[i].Summary()
		fmt.Fprintf(w, "%s\t%d\t%.4g\t%.4g\t%.0f\n", rw.ID(), len(series[i].Frames),
			s["peak_kinetic_energy"], s["peak_speed"], s["token_bytes"])
	}
	return w.Flush()
}

// runMembers drives members as one ensemble, storing each to its own run.
// Member i runs for cfgs[i].Frames steps; the ensemble runs for the longest
// and idle members stop recording once their own count is reached.
func runMembers(ctx context.Context, st *storage.Store, members []*fluid.Member, cfgs []*config.Config) ([]*storage.RunWriter, []*metrics.Series, error) {
	n := len(members)
	writers := make([]*storage.RunWriter, n)
	exporters := make([]*frame.Exporter, n)
	samplers := make([]*metrics.Sampler, n)
	series := make([]*metrics.Series, n)

	longest := 0
	for i, m := range members {
		cfg := cfgs[i]
		level, _ := cfg.GetCompression()
		rw, err := st.Create(storage.RunMetadata{
			Name:          m.Name,
			Width:         cfg.Width,
			Height:        cfg.Height,
			Viscosity:     cfg.Viscosity,
			ForceStrength: cfg.ForceStrength,
			Palette:       cfg.Palette,
			Path:          cfg.Pointer.Path,
		})
		if err != nil {
			for _, w := range writers[:i] {
				w.Close(0, nil)
			}
			return nil, nil, err
		}
		writers[i] = rw
		exporters[i] = frame.NewExporter(frame.WithCompression(level))
		samplers[i] = metrics.NewSampler()
		series[i] = &metrics.Series{}
		longest = max(longest, cfg.Frames)
	}

	// members that are done keep stepping but are not recorded
	observe := func(idx int, m *fluid.Member) error {
		if m.Sim.Frame() > cfgs[idx].Frames {
			return nil
		}
		token, err := exporters[idx].Token(m.Sim.Canvas())
		if err != nil {
			return err
		}
		fs := samplers[idx].Sample(m.Sim.State())
		fs.Frame = m.Sim.Frame()
		fs.PointerX, fs.PointerY = m.Path.At(m.Sim.Frame() - 1)
		fs.TokenBytes = len(token)
		series[idx].Observe(fs)
		slog.Debug("frame", "member", m.Name, "stats", fs)

		if noTokens {
			token = ""
		}
		return writers[idx].WriteFrame(fs, token)
	}

	runErr := fluid.NewEnsemble(members...).Run(ctx, longest, observe)

	var closeErr error
	for i, m := range members {
		if png, err := exporters[i].Export(m.Sim.Canvas()); err == nil {
			if err := writers[i].WriteImage(png); err != nil {
				slog.Warn("writing final image", "run", writers[i].ID(), "err", err)
			}
		}
		if err := writers[i].Close(len(series[i].Frames), series[i].Summary()); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	if runErr != nil {
		return writers, series, runErr
	}
	return writers, series, closeErr
}

func printSummary(summary map[string]float64) {
	fmt.Println("\nmetrics:")
	for _, k := range metrics.SummaryKeys(summary) {
		fmt.Printf("  %s: %.6f\n", k, summary[k])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	pal, _ := cfg.GetPalette()
	path, _ := cfg.GetPath()
	level, _ := cfg.GetCompression()

	// the alt screen owns the terminal; keep logs out of it
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return viz.Live(viz.LiveOptions{
		Params:   cfg.GetParams(),
		Palette:  pal,
		FPS:      cfg.FPS,
		Autopath: path,
		Exporter: frame.NewExporter(frame.WithCompression(level)),
		GIFDir:   gifDir,
		Logger:   logger,
	})
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
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tVISC\tFORCE\tPATH\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%.3g\t%.3g\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Viscosity,
			run.ForceStrength,
			run.Path,
			run.Frames,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	stats, err := st.LoadStats(runID)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return fmt.Errorf("no data to plot")
	}

	series := metrics.Series{Frames: stats}
	data, err := series.Column(column)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", len(stats))

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(column+" vs frame"),
	)
	fmt.Println(graph)
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	token, err := st.LastToken(args[0])
	if err != nil {
		return err
	}
	img, err := frame.DecodeToken(token)
	if err != nil {
		return err
	}
	fmt.Println(viz.HalfBlock(img, plotCols, plotRows))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outFile != "" {
		return st.ExportFile(outFile, args[0], withToken)
	}
	return st.Export(os.Stdout, args[0], withToken)
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func encodeInput(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	_, err = fmt.Println(codec.Encode(data))
	return err
}

func decodeInput(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	data, err := codec.DecodeString(string(text))
	if err != nil {
		return err
	}
	if outFile != "" {
		return os.WriteFile(outFile, data, 0644)
	}
	_, err = os.Stdout.Write(data)
	return err
}
