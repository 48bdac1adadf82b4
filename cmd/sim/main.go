package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"justicemango/internal/config"
	"justicemango/internal/reaction"
	"justicemango/internal/serverapp"
	"justicemango/internal/session"
	"justicemango/internal/telemetry"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = cmdRun(os.Args[2:], os.Stdout, os.Stderr)
	case "presets":
		err = cmdPresets(os.Args[2:], os.Stdout, os.Stderr)
	case "check":
		err = cmdCheck(os.Args[2:], os.Stdout, os.Stderr)
	default:
		printUsage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

type commonFlags struct {
	config  string
	envFile string
	verbose bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "game config (YAML); built-in defaults when empty")
	fs.StringVar(&c.envFile, "env-file", ".env", "optional dotenv file")
	fs.BoolVar(&c.verbose, "v", false, "log game events to stderr")
}

func (c *commonFlags) load(stderr io.Writer) (*config.Config, *log.Logger, error) {
	logger := log.New(io.Discard, "", 0)
	if c.verbose {
		logger = log.New(stderr, "", log.Lmicroseconds)
	}
	if err := serverapp.LoadEnvFile(c.envFile, logger); err != nil {
		return nil, nil, err
	}
	cfg, err := serverapp.LoadConfig(c.config, false, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

type runReport struct {
	Seed       int64           `json:"seed"`
	Difficulty string          `json:"difficulty"`
	Strategy   string          `json:"strategy"`
	GameTime   float64         `json:"game_time"`
	Stats      session.Stats   `json:"stats"`
	Telemetry  telemetry.Stats `json:"telemetry"`
}

func cmdRun(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	seed := fs.Int64("seed", 0, "random seed; overrides the config when non-zero")
	duration := fs.Float64("duration", 0, "round length in seconds; overrides the config when positive")
	dt := fs.Float64("dt", 0.05, "simulation step in seconds")
	strategy := fs.String("strategy", string(StrategyCareful), "bot strategy: careful or reckless")
	asJSON := fs.Bool("json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", *dt)
	}
	strat, err := ParseStrategy(*strategy)
	if err != nil {
		return err
	}

	cfg, logger, err := common.load(stderr)
	if err != nil {
		return err
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *duration > 0 {
		cfg.Session.DurationSeconds = *duration
	}

	game, err := serverapp.NewGame(cfg, logger)
	if err != nil {
		return err
	}
	if err := game.Session.StartGame(); err != nil {
		return err
	}
	NewBot(strat).Play(game.Session, *dt)

	events, err := game.Events.GetEvents(0, nil)
	if err != nil {
		return err
	}
	summary, err := telemetry.CalculateStats(events)
	if err != nil {
		return err
	}
	report := runReport{
		Seed:       game.Seed,
		Difficulty: cfg.Difficulty,
		Strategy:   string(strat),
		GameTime:   game.Session.WorldTime(),
		Stats:      game.Session.Stats(),
		Telemetry:  summary,
	}
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(stdout, report)
	return nil
}

func printReport(w io.Writer, r runReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "seed\t%d\n", r.Seed)
	fmt.Fprintf(tw, "difficulty\t%s\n", r.Difficulty)
	fmt.Fprintf(tw, "strategy\t%s\n", r.Strategy)
	fmt.Fprintf(tw, "game time\t%.1fs\n", r.GameTime)
	fmt.Fprintf(tw, "score\t%d\n", r.Stats.Score)
	fmt.Fprintf(tw, "followers\t%d\n", r.Stats.Followers)
	fmt.Fprintf(tw, "flame\t%.0f\n", r.Stats.FlameGauge)
	fmt.Fprintf(tw, "photos\t%d\n", r.Stats.PhotosTaken)
	fmt.Fprintf(tw, "reports\t%d\n", r.Stats.SuccessfulReports)
	fmt.Fprintf(tw, "false reports\t%d\n", r.Stats.FalseReports)
	fmt.Fprintf(tw, "backlashes\t%d\n", r.Stats.Backlashes)
	fmt.Fprintf(tw, "npcs spawned\t%d\n", r.Telemetry.NPCsSpawned)
	fmt.Fprintf(tw, "accuracy\t%.0f%%\n", r.Telemetry.Accuracy*100)
	if r.Telemetry.LastGameOver != "" {
		fmt.Fprintf(tw, "ended\t%s\n", r.Telemetry.LastGameOver)
	}
	_ = tw.Flush()
}

func cmdPresets(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("presets", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, _, err := common.load(stderr)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(cfg.Presets))
	for name := range cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRESET\tNPC\tVIOLATION\tMOVEMENT\tSPEED\tINTERVAL\tAUTO")
	for _, name := range names {
		p := cfg.Presets[name]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\t%.0f-%.0fs\t%t\n",
			name, p.NPCID, p.ViolationType, p.Movement, p.MoveSpeed,
			p.ViolationMinInterval, p.ViolationMaxInterval, p.AutoViolation)
	}
	return tw.Flush()
}

func cmdCheck(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	reactionsPath := fs.String("reactions", "", "NPC reaction data to validate; defaults to the config's reactions_path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if err := serverapp.LoadEnvFile(common.envFile, logger); err != nil {
		return err
	}
	cfg, err := config.Load(common.config)
	if err != nil {
		return err
	}
	notes := cfg.Sanitize()
	for _, n := range notes {
		fmt.Fprintf(stdout, "config: %s\n", n)
	}

	path := *reactionsPath
	if path == "" {
		path = cfg.ReactionsPath
	}
	table := reaction.Builtin()
	if path != "" {
		if table, err = reaction.Load(path); err != nil {
			return err
		}
	}
	for _, w := range table.Warnings() {
		fmt.Fprintf(stdout, "reactions: %s\n", w)
	}

	opts := cfg.SessionOptions(table.Global())
	fmt.Fprintf(stdout, "ok: difficulty=%s duration=%.0fs presets=%d reactions=%d\n",
		cfg.Difficulty, opts.Duration, len(cfg.Presets), table.Len())
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  jmg-sim run     --config configs/game.yml --seed 7 --strategy careful [--json]")
	fmt.Fprintln(w, "  jmg-sim presets --config configs/game.yml")
	fmt.Fprintln(w, "  jmg-sim check   --config configs/game.yml --reactions configs/npc_reactions.yml")
}
