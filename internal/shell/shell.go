package shell

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/tekknoschtev/astral-surveyor/internal/config"
	"github.com/tekknoschtev/astral-surveyor/internal/discovery"
	"github.com/tekknoschtev/astral-surveyor/internal/logbook"
	"github.com/tekknoschtev/astral-surveyor/internal/saveload"
	"github.com/tekknoschtev/astral-surveyor/internal/types"
	"github.com/tekknoschtev/astral-surveyor/internal/world"
)

// Canvas dimensions used for the star screen-visibility check. The shell
// has no real viewport, so it surveys as if driving a fixed-size canvas.
const (
	canvasWidth  = 1024
	canvasHeight = 768
)

// surveyRadius is how far around the ship a survey pass scans. Wide enough
// to cover every per-type discovery threshold plus star visibility at the
// canvas edge.
const surveyRadius = 1500.0

// Shell is the interactive exploration loop: move the ship, survey the
// surrounding chunks for discoveries, browse the logbook and manage saves.
type Shell struct {
	ship       *Ship
	seeds      *world.SeedRegistry
	chunks     *world.ChunkManager
	classifier *discovery.Classifier
	discovery  *discovery.Service
	logbook    *logbook.Logbook
	saves      *saveload.Service
	settings   *config.Service
	logger     *slog.Logger

	rl       *readline.Instance
	ctx      context.Context
	commands map[string]commandHandler
}

type commandHandler func(args []string) error

// Config holds shell configuration.
type Config struct {
	Ship       *Ship
	Seeds      *world.SeedRegistry
	Chunks     *world.ChunkManager
	Classifier *discovery.Classifier
	Discovery  *discovery.Service
	Logbook    *logbook.Logbook
	Saves      *saveload.Service
	Settings   *config.Service
	Logger     *slog.Logger
}

// New creates a new shell instance.
func New(cfg *Config) (*Shell, error) {
	if cfg.Ship == nil {
		return nil, fmt.Errorf("ship is required")
	}
	if cfg.Chunks == nil || cfg.Seeds == nil {
		return nil, fmt.Errorf("world is required")
	}
	if cfg.Discovery == nil {
		return nil, fmt.Errorf("discovery service is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	s := &Shell{
		ship:       cfg.Ship,
		seeds:      cfg.Seeds,
		chunks:     cfg.Chunks,
		classifier: cfg.Classifier,
		discovery:  cfg.Discovery,
		logbook:    cfg.Logbook,
		saves:      cfg.Saves,
		settings:   cfg.Settings,
		logger:     cfg.Logger.With("component", "shell"),
	}
	if s.classifier == nil {
		s.classifier = discovery.NewClassifier()
	}

	s.registerCommands()
	return s, nil
}

// Run starts the shell loop.
func (s *Shell) Run(ctx context.Context) error {
	s.ctx = ctx

	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("surveyor> "),
		HistoryFile:       "",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		AutoComplete:      s.completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s.rl = rl

	s.printWelcome()

	// Initial survey so spawning next to something counts as seeing it.
	s.survey(false)

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				fmt.Println("\nSafe travels!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.processInput(line); err != nil {
			if err == io.EOF {
				return nil
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Printf("%s %v\n", red("Error:"), err)
		}
	}
}

func (s *Shell) processInput(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	if handler, ok := s.commands[parts[0]]; ok {
		return handler(parts[1:])
	}
	return fmt.Errorf("unknown command %q, try 'help'", parts[0])
}

func (s *Shell) registerCommands() {
	s.commands = map[string]commandHandler{
		"help":    s.cmdHelp,
		"?":       s.cmdHelp,
		"status":  s.cmdStatus,
		"move":    s.cmdMove,
		"warp":    s.cmdWarp,
		"scan":    s.cmdScan,
		"logbook": s.cmdLogbook,
		"note":    s.cmdNote,
		"set":     s.cmdSet,
		"save":    s.cmdSave,
		"load":    s.cmdLoad,
		"exit":    s.cmdExit,
		"quit":    s.cmdExit,
	}
}

func (s *Shell) completer() readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(s.commands)+1)
	for name := range s.commands {
		if name == "set" {
			continue
		}
		items = append(items, readline.PcItem(name))
	}
	keys := make([]readline.PrefixCompleterInterface, 0)
	for _, k := range config.Keys() {
		keys = append(keys, readline.PcItem(k))
	}
	items = append(items, readline.PcItem("set", keys...))
	return readline.NewPrefixCompleter(items...)
}

func (s *Shell) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("\n%s\n", cyan("Astral Surveyor"))
	fmt.Printf("Universe seed: %s\n", s.seeds.SeedString())
	fmt.Println()
	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()
}

// survey runs one discovery pass over the space around the ship: the
// cosmic region, every object inside the survey radius, and black hole
// proximity warnings. Verbose mode also prints the contact list.
func (s *Shell) survey(verbose bool) {
	region := world.RegionAt(s.seeds.Seed(), s.ship.X(), s.ship.Y())
	s.discovery.ProcessRegionDiscovery(region.Type, region.Name, s.ship, region.Influence)

	objects := s.chunks.ObjectsNear(s.ship.X(), s.ship.Y(), surveyRadius)
	var contacts []string
	for _, obj := range objects {
		h := obj.Header()
		dist := math.Hypot(h.X-s.ship.X(), h.Y-s.ship.Y())

		if bh, ok := obj.(*types.BlackHole); ok {
			s.warnBlackHole(bh, dist)
		}

		if s.classifier.CheckDiscovery(obj, s.ship, canvasWidth, canvasHeight) {
			s.discovery.ProcessObjectDiscovery(obj, s.ship)
		}

		if verbose && s.classifier.CheckDetection(obj, s.ship) {
			mark := " "
			if h.Discovered {
				mark = "*"
			}
			contacts = append(contacts, fmt.Sprintf("  %s %-14s %7.0f au  (%.0f, %.0f)", mark, obj.Kind(), dist, h.X, h.Y))
		}
	}

	if verbose {
		gray := color.New(color.FgHiBlack).SprintFunc()
		if len(contacts) == 0 {
			fmt.Printf("%s\n", gray("No contacts on sensors."))
			return
		}
		sort.Strings(contacts)
		fmt.Printf("Contacts (%d), * = discovered:\n", len(contacts))
		for _, c := range contacts {
			fmt.Println(c)
		}
	}
}

// warnBlackHole maps distance to an urgency tier and hands it to the
// cooldown-gated warning component.
func (s *Shell) warnBlackHole(bh *types.BlackHole, dist float64) {
	r := bh.Radius
	switch {
	case dist <= r:
		s.discovery.Warnings().Display("past the event horizon, escape impossible", 3, true, bh.ID)
	case dist <= r*3:
		s.discovery.Warnings().Display("extreme gravitational shear, pull away now", 2, false, bh.ID)
	case dist <= r*8:
		s.discovery.Warnings().Display("black hole gravity well detected", 1, false, bh.ID)
	}
}

func (s *Shell) cmdMove(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: move <dx> <dy>")
	}
	dx, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid dx: %w", err)
	}
	dy, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid dy: %w", err)
	}

	s.ship.MoveBy(dx, dy)
	fmt.Printf("Position: (%.0f, %.0f)\n", s.ship.X(), s.ship.Y())
	s.survey(false)
	return nil
}

func (s *Shell) cmdWarp(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: warp <x> <y>")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	s.ship.SetPosition(x, y)
	s.ship.SetVelocity(0, 0)
	fmt.Printf("Warped to (%.0f, %.0f)\n", x, y)
	s.survey(false)
	return nil
}

func (s *Shell) cmdScan(args []string) error {
	s.survey(true)
	return nil
}

func (s *Shell) cmdStatus(args []string) error {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	region := world.RegionAt(s.seeds.Seed(), s.ship.X(), s.ship.Y())

	fmt.Printf("\n%s\n", cyan("=== Survey Status ==="))
	fmt.Printf("  Position:    (%.0f, %.0f)\n", s.ship.X(), s.ship.Y())
	fmt.Printf("  Traveled:    %.0f au\n", s.ship.DistanceTraveled())
	fmt.Printf("  Region:      %s (influence %.2f)\n", region.Name, region.Influence)
	fmt.Printf("  Seed:        %s\n", s.seeds.SeedString())
	fmt.Printf("  Discoveries: %d\n", s.discovery.Count())

	if s.logbook != nil {
		if notes := s.logbook.Notifications(); len(notes) > 0 {
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Println("  Recent notifications:")
			start := len(notes) - 5
			if start < 0 {
				start = 0
			}
			for _, n := range notes[start:] {
				fmt.Printf("    %s\n", gray(n))
			}
		}
	}
	fmt.Println()
	return nil
}

func (s *Shell) cmdLogbook(args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("usage: logbook [count]")
		}
		limit = n
	}

	entries := discovery.FilterDiscoveries(s.discovery.Entries(), nil)
	if len(entries) == 0 {
		gray := color.New(color.FgHiBlack).SprintFunc()
		fmt.Printf("%s\n", gray("Logbook is empty. Go explore."))
		return nil
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	for _, e := range entries {
		printEntry(e)
	}
	return nil
}

// printEntry renders one logbook line with a rarity-tinted marker.
func printEntry(e *types.DiscoveryEntry) {
	marker := color.New(color.FgWhite).SprintFunc()
	switch e.Rarity {
	case types.RarityRare:
		marker = color.New(color.FgYellow).SprintFunc()
	case types.RarityUltraRare:
		marker = color.New(color.FgMagenta, color.Bold).SprintFunc()
	case types.RarityUncommon:
		marker = color.New(color.FgCyan).SprintFunc()
	}

	when := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04")
	fmt.Printf("  %s %-28s %-24s %s  %s\n", marker("●"), e.Name, e.Type, when, e.ID)
	if e.Notes != "" {
		gray := color.New(color.FgHiBlack).SprintFunc()
		fmt.Printf("      %s\n", gray(e.Notes))
	}
}

func (s *Shell) cmdNote(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: note <discovery-id> <text>")
	}
	id := args[0]
	text := strings.Join(args[1:], " ")
	if !s.discovery.SetNotes(id, text) {
		return fmt.Errorf("no discovery with id %q", id)
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s Note saved on %s\n", green("✓"), id)
	return nil
}

func (s *Shell) cmdSet(args []string) error {
	if s.settings == nil {
		return fmt.Errorf("settings are not available")
	}
	if len(args) == 0 {
		cur := s.settings.Settings()
		fmt.Printf("  audio.volume      %.2f\n", cur.Audio.Volume)
		fmt.Printf("  audio.muted       %v\n", cur.Audio.Muted)
		fmt.Printf("  autosave.enabled  %v\n", cur.Autosave.Enabled)
		fmt.Printf("  autosave.interval %s\n", cur.Autosave.Interval)
		fmt.Printf("  log.level         %s\n", cur.Log.Level)
		fmt.Printf("  log.format        %s\n", cur.Log.Format)
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: set <key> <value>")
	}
	if err := s.settings.Set(args[0], args[1]); err != nil {
		return err
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s %s = %s\n", green("✓"), args[0], args[1])
	return nil
}

func (s *Shell) cmdSave(args []string) error {
	if s.saves == nil {
		return fmt.Errorf("save service is not available")
	}
	if err := s.saves.SaveGame(s.ctx); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s Game saved\n", green("✓"))
	return nil
}

func (s *Shell) cmdLoad(args []string) error {
	if s.saves == nil {
		return fmt.Errorf("save service is not available")
	}
	found, err := s.saves.LoadGame(s.ctx)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	if !found {
		return fmt.Errorf("no save found")
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s Game loaded, position (%.0f, %.0f), %d discoveries\n",
		green("✓"), s.ship.X(), s.ship.Y(), s.discovery.Count())
	return nil
}

func (s *Shell) cmdHelp(args []string) error {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("\n%s\n\n", cyan("Available Commands:"))

	commands := []struct {
		name string
		desc string
	}{
		{"move <dx> <dy>", "Fly relative to the current position"},
		{"warp <x> <y>", "Jump to absolute coordinates"},
		{"scan", "Survey nearby space and list contacts"},
		{"status", "Show ship and survey status"},
		{"logbook [n]", "Show the n most recent discoveries"},
		{"note <id> <text>", "Attach a note to a discovery"},
		{"set [key value]", "Show or change a setting"},
		{"save / load", "Write or restore the save slot"},
		{"help, ?", "Show this help message"},
		{"exit, quit", "Leave the shell"},
	}
	for _, cmd := range commands {
		fmt.Printf("  %-20s %s\n", green(cmd.name), cmd.desc)
	}
	fmt.Println()
	return nil
}

func (s *Shell) cmdExit(args []string) error {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("\n%s Safe travels!\n", green("✓"))
	s.rl.Close()
	return io.EOF
}
