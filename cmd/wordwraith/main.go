// Package main provides the wordwraith binary: a typing-combat tower run
// played in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inkhollow/wordwraith/internal/config"
	"github.com/inkhollow/wordwraith/internal/content"
	"github.com/inkhollow/wordwraith/internal/game/enemy"
	"github.com/inkhollow/wordwraith/internal/game/player"
	"github.com/inkhollow/wordwraith/internal/game/rng"
	"github.com/inkhollow/wordwraith/internal/game/session"
	"github.com/inkhollow/wordwraith/internal/observability"
	"github.com/inkhollow/wordwraith/internal/scripting"
	"github.com/inkhollow/wordwraith/internal/storage/postgres"
	"github.com/inkhollow/wordwraith/internal/tui"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty uses built-in defaults")
	contentDir := flag.String("content-dir", "", "directory of word, sentence, and enemy YAML overlays")
	scriptRoot := flag.String("script-root", "", "root directory for Lua theme scripts; empty = scripting disabled")
	seed := flag.Int64("seed", 0, "RNG seed for reproducible runs; 0 draws from crypto/rand")
	startFloor := flag.Int("floor", 0, "starting floor; 0 uses the configured value")
	floors := flag.Int("floors", 0, "tower height; 0 uses the configured value")
	classID := flag.String("class", "", "player class id; empty uses the configured value")
	name := flag.String("name", "", "player name; empty uses the configured value")
	flag.Parse()

	ctx := context.Background()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}
	applyFlags(&cfg, *contentDir, *scriptRoot, *startFloor, *floors, *classID, *name)

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	// Without a log file the terminal belongs to the TUI, so logging is
	// dropped rather than torn through the battle screen.
	if cfg.Logging.File == "" {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	src := newSource(*seed, cfg.Logging.Level, logger)

	contentStart := time.Now()
	db, err := loadContent(cfg.Game.ContentDir, src)
	if err != nil {
		log.Fatalf("loading content: %v", err)
	}
	logger.Info("content loaded",
		zap.Int("words", db.WordCount()),
		zap.Int("sentences", db.SentenceCount()),
		zap.Strings("themes", db.Themes()),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	templates, err := loadEnemies(cfg.Game.ContentDir)
	if err != nil {
		log.Fatalf("loading enemy templates: %v", err)
	}
	enemies, err := enemy.NewRegistry(templates)
	if err != nil {
		log.Fatalf("building enemy registry: %v", err)
	}
	logger.Info("enemy templates registered", zap.Int("count", len(templates)))

	roster, err := loadClasses(cfg.Game.ContentDir)
	if err != nil {
		log.Fatalf("loading classes: %v", err)
	}
	classes, err := player.NewRegistry(roster)
	if err != nil {
		log.Fatalf("building class registry: %v", err)
	}
	class, ok := classes.Class(cfg.Game.PlayerClass)
	if !ok {
		log.Fatalf("unknown class %q (available: %s)", cfg.Game.PlayerClass, strings.Join(classes.IDs(), ", "))
	}

	var scripts *scripting.Manager
	if cfg.Game.ScriptDir != "" {
		scriptStart := time.Now()
		scripts = scripting.NewManager(src, logger)
		if err := scripts.LoadThemes(cfg.Game.ScriptDir, 0); err != nil {
			log.Fatalf("loading theme scripts: %v", err)
		}
		defer scripts.Close()
		logger.Info("theme scripts loaded",
			zap.String("dir", cfg.Game.ScriptDir),
			zap.Duration("elapsed", time.Since(scriptStart)),
		)
	}

	var store tui.ReportStore
	if cfg.Storage.Enabled {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			log.Fatalf("connecting to database: %v", err)
		}
		defer pool.Close()
		store = postgres.NewReportRepository(pool.DB())
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
	}

	duelist, err := player.New(cfg.Game.PlayerName, class)
	if err != nil {
		log.Fatalf("creating player: %v", err)
	}

	run, err := session.NewRun(session.RunConfig{
		Player:     duelist,
		Enemies:    enemies,
		Words:      db,
		Rand:       src,
		Scripts:    scripts,
		Logger:     logger,
		StartFloor: cfg.Game.StartFloor,
		Floors:     cfg.Game.Floors,
		FleeChance: cfg.Game.FleeChance,
	})
	if err != nil {
		log.Fatalf("starting run: %v", err)
	}

	logger.Info("wordwraith initialized",
		zap.String("player", duelist.Name),
		zap.String("class", class.ID),
		zap.Int("start_floor", cfg.Game.StartFloor),
		zap.Int("floors", cfg.Game.Floors),
		zap.Duration("startup", time.Since(start)),
	)

	if err := tui.Run(tui.Config{
		Run:      run,
		Store:    store,
		Logger:   logger,
		TickRate: cfg.Game.TickRate(),
	}); err != nil {
		log.Fatalf("running game: %v", err)
	}

	printSummary(run)
}

// applyFlags lays CLI overrides over the loaded configuration. Zero values
// leave the configured setting in place.
func applyFlags(cfg *config.Config, contentDir, scriptRoot string, startFloor, floors int, classID, name string) {
	if contentDir != "" {
		cfg.Game.ContentDir = contentDir
	}
	if scriptRoot != "" {
		cfg.Game.ScriptDir = scriptRoot
	}
	if startFloor > 0 {
		cfg.Game.StartFloor = startFloor
	}
	if floors > 0 {
		cfg.Game.Floors = floors
	}
	if classID != "" {
		cfg.Game.PlayerClass = classID
	}
	if name != "" {
		cfg.Game.PlayerName = name
	}
}

// newSource picks the randomness source: seeded for reproducible runs,
// crypto otherwise, and logged at debug level so draws can be audited.
func newSource(seed int64, level string, logger *zap.Logger) rng.Source {
	var src rng.Source
	if seed != 0 {
		src = rng.NewSeededSource(seed)
	} else {
		src = rng.NewCryptoSource()
	}
	if level == "debug" {
		src = rng.NewLogged(src, logger)
	}
	return src
}

// loadContent builds the word database from the compiled-in lists, overlaid
// by the content directory when one is configured.
func loadContent(dir string, src rng.Source) (*content.Database, error) {
	if dir == "" {
		return content.NewDatabase(src)
	}
	return content.Load(dir, src)
}

// loadEnemies returns the built-in templates plus any under <dir>/enemies.
// Directory templates replace built-ins that share an ID.
func loadEnemies(dir string) ([]*enemy.Template, error) {
	templates := enemy.DefaultTemplates()
	if dir == "" {
		return templates, nil
	}
	enemyDir := filepath.Join(dir, "enemies")
	info, err := os.Stat(enemyDir)
	if err != nil || !info.IsDir() {
		return templates, nil
	}
	loaded, err := enemy.LoadTemplates(enemyDir)
	if err != nil {
		return nil, err
	}
	return append(templates, loaded...), nil
}

// loadClasses returns the built-in roster plus any under <dir>/classes.
// Directory classes replace built-ins that share an ID.
func loadClasses(dir string) ([]player.Class, error) {
	roster := player.DefaultClasses()
	if dir == "" {
		return roster, nil
	}
	classDir := filepath.Join(dir, "classes")
	info, err := os.Stat(classDir)
	if err != nil || !info.IsDir() {
		return roster, nil
	}
	loaded, err := player.LoadClasses(classDir)
	if err != nil {
		return nil, err
	}
	return append(roster, loaded...), nil
}

// printSummary writes the run ledger to stdout once the screen is back.
func printSummary(run *session.Run) {
	totals := run.Totals()
	p := run.Player()

	fmt.Printf("%s the %s, level %d\n", p.Name, p.Class.Name, p.Level)
	if run.Cleared() {
		fmt.Println("The tower stands silent. Every floor is cleared.")
	}
	fmt.Printf("floors cleared %d, words %d (%d perfect), best combo x%d, peak %.0f wpm\n",
		totals.FloorsCleared, totals.WordsCompleted, totals.PerfectWords, totals.BestCombo, totals.PeakWPM)
	fmt.Printf("earned %d xp and %d gold over %d fights\n",
		totals.XP, totals.Gold, len(run.Reports()))
}
