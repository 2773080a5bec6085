package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iiroka/netquake2-sub002/assets"
	"github.com/iiroka/netquake2-sub002/internal/agent"
	"github.com/iiroka/netquake2-sub002/internal/core/types/enums"
	"github.com/iiroka/netquake2-sub002/internal/engine"
	"github.com/iiroka/netquake2-sub002/internal/infrastructure/storage"
	"github.com/iiroka/netquake2-sub002/internal/server"
	"github.com/iiroka/netquake2-sub002/internal/species"
	"github.com/iiroka/netquake2-sub002/internal/version"
	"github.com/iiroka/netquake2-sub002/pkg/dungeon"
	"github.com/iiroka/netquake2-sub002/pkg/logger"
	"github.com/iiroka/netquake2-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		configPath string
		replayPath string
		skill      string
		seed       int64
		mapName    string
		bots       int
	)
	flag.StringVar(&configPath, "config", "", "Path to TOML config (defaults if empty)")
	// 0 значит "взять из конфига или сгенерировать"
	flag.Int64Var(&seed, "seed", 0, "Arena seed (0 for config/random)")
	flag.StringVar(&mapName, "map", "", "Arena name; same name gives the same arena (ignored with -seed)")
	flag.StringVar(&skill, "skill", "", "Difficulty: easy, medium, hard, hardplus")
	flag.StringVar(&replayPath, "replay", "", "Path to "+storage.FileExt+" journal to simulate")
	flag.IntVar(&bots, "bots", 0, "Number of headless bot players")
	flag.Parse()

	logger.Log.Info("Starting monster arena...")
	logger.Log.Info(version.Current().String())

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Bad config")
	}
	switch {
	case seed != 0:
		cfg.Seed = seed
	case mapName != "":
		cfg.Seed = utils.StringToSeed(mapName)
	}
	if skill != "" {
		d, ok := enums.ParseDifficulty(skill)
		if !ok {
			logger.Log.Fatalf("Unknown skill %q", skill)
		}
		cfg.Skill = d
	}

	reg, err := loadSpecies(cfg.SpeciesDir)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load species")
	}

	// РЕЖИМ ВОСПРОИЗВЕДЕНИЯ
	if replayPath != "" {
		if err := runReplay(cfg, reg, replayPath); err != nil {
			logger.Log.WithError(err).Fatal("Replay failed")
		}
		return
	}

	logger.Log.WithFields(logrus.Fields{"seed": cfg.Seed, "skill": cfg.Skill}).Info("Arena settings")

	// 2. Инициализация ядра
	inst, err := newInstance(cfg, reg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build arena")
	}
	svc := engine.NewService(inst)

	store, err := storage.NewJournalStore(cfg.JournalDir)
	if err != nil {
		logger.Log.WithError(err).Fatal("Journal storage unavailable")
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Симуляция, HTTP и боты живут и умирают вместе
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return svc.Run(gctx) })
	g.Go(func() error { return server.New(svc, cfg.Port).Run(gctx) })
	for k := 0; k < bots; k++ {
		bot := agent.NewBot(fmt.Sprintf("bot%d", k+1), svc)
		g.Go(func() error {
			bot.Run(gctx)
			return nil
		})
	}

	runErr := g.Wait()
	logger.Log.Info("Shutting down...")

	// Журнал пишется и после аварийной остановки: по нему её можно воспроизвести
	if path, err := store.Save(inst.Journal); err != nil {
		logger.Log.WithError(err).Error("Failed to save journal")
	} else {
		logger.Log.WithField("path", path).Info("Journal saved")
	}

	switch {
	case errors.Is(runErr, engine.ErrBadMoveType):
		logger.Log.WithError(runErr).Fatal("Simulation halted")
	case runErr != nil:
		logger.Log.WithError(runErr).Fatal("Server error")
	}
	logger.Log.Info("Done.")
}

// loadSpecies - виды из каталога или встроенные в бинарник.
func loadSpecies(dir string) (*species.Registry, error) {
	if dir != "" {
		return species.LoadDir(dir)
	}
	return species.LoadFS(assets.Species, "species")
}

func newInstance(cfg engine.Config, reg *species.Registry) (*engine.Instance, error) {
	layout := dungeon.Generate(cfg.Seed, reg.Names())
	return engine.NewInstance(0, cfg, reg, layout)
}

func runReplay(cfg engine.Config, reg *species.Registry, path string) error {
	logger.Log.WithField("path", path).Info("Mode: Replay Simulation")

	j, err := storage.LoadFile(path)
	if err != nil {
		return err
	}
	cfg.Seed = j.Seed

	inst, err := newInstance(cfg, reg)
	if err != nil {
		return err
	}
	svc := engine.NewService(inst)
	if err := svc.Replay(j); err != nil {
		return err
	}

	lvl := inst.LevelView()
	logger.Log.WithFields(logrus.Fields{
		"frame":  lvl.Frame,
		"killed": lvl.KilledMonsters,
		"total":  lvl.TotalMonsters,
	}).Info("Replay result")
	return nil
}
