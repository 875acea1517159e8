// Command gameserver boots the world simulation: load config, open the
// database, run migrations, load static game data, then drive
// game.Sim's tick.Scheduler at the configured rate until signaled to
// stop. Wire protocol, session, and authentication are a separate
// process's concern (spec.md Non-goals) — this binary only owns the
// authoritative simulation core.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/novaspire/worldcore/internal/component"
	"github.com/novaspire/worldcore/internal/config"
	"github.com/novaspire/worldcore/internal/data"
	"github.com/novaspire/worldcore/internal/ecs"
	"github.com/novaspire/worldcore/internal/game"
	"github.com/novaspire/worldcore/internal/persist"
	"github.com/novaspire/worldcore/internal/save"
	"github.com/novaspire/worldcore/internal/scripting"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gameserver:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config.toml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := persist.RunMigrations(ctx, db.Pool); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	items := persist.NewItemRepo(db)
	characters := persist.NewCharacterRepo(db)

	itemTable, err := data.LoadItemTable(
		os.Getenv("WORLDCORE_WEAPON_DATA"),
		os.Getenv("WORLDCORE_ARMOR_DATA"),
		os.Getenv("WORLDCORE_ETCITEM_DATA"),
	)
	if err != nil {
		log.Warn("item table not loaded, continuing without it", zap.Error(err))
		itemTable = nil
	}
	_ = itemTable

	scriptsDir := os.Getenv("WORLDCORE_SCRIPTS_DIR")
	if scriptsDir == "" {
		scriptsDir = "scripts"
	}
	engine, err := scripting.NewEngine(scriptsDir, log)
	if err != nil {
		log.Warn("scripting engine not loaded, continuing without it", zap.Error(err))
		engine = nil
	}
	if engine != nil {
		defer engine.Close()
	}

	const saveConcurrency = 4
	var sim *game.Sim
	writer := buildSaveWriter(items, characters, &sim, log)
	sim = game.NewSim(writer, saveConcurrency)
	sched := game.NewScheduler(sim, ctx)

	log.Info("worldcore gameserver starting",
		zap.String("server", cfg.Server.Name),
		zap.Duration("tick_rate", cfg.Network.TickRate),
	)

	ticker := time.NewTicker(cfg.Network.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down, draining save pool")
			drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = sim.SavePool.Run(drainCtx, nil)
			return nil
		case now := <-ticker.C:
			_ = now
			sched.Tick(cfg.Network.TickRate)
		}
	}
}

// buildSaveWriter closes over the repositories the phase-22 save pool
// calls into. It takes sim by pointer-to-pointer because the Sim it reads
// from doesn't exist yet at the point the writer has to be handed to
// game.NewSim — the writer only dereferences it once a save actually
// runs, by which point main has assigned the real value.
func buildSaveWriter(items *persist.ItemRepo, characters *persist.CharacterRepo, sim **game.Sim, log *zap.Logger) save.Writer {
	return func(ctx context.Context, entity ecs.EntityID) error {
		s := *sim
		ch, ok := s.Characters.Get(entity)
		if !ok {
			return nil
		}

		row, err := characters.LoadByName(ctx, ch.Name)
		if err != nil {
			return fmt.Errorf("load character %q: %w", ch.Name, err)
		}
		if row == nil {
			log.Warn("save requested for unknown character row", zap.String("name", ch.Name))
			return nil
		}

		row.Level, row.Exp = ch.Level, ch.Exp
		row.Str, row.Dex, row.Con, row.Wis, row.Cha, row.Intel = ch.Str, ch.Dex, ch.Con, ch.Wis, ch.Cha, ch.Intel
		if v, ok := s.Vitals.Get(entity); ok {
			row.HP, row.MP = int16(v.HP), int16(v.MP)
		}
		if ab, ok := s.Abilities.Get(entity); ok {
			row.MaxHP, row.MaxMP = int16(ab.MaxHealth), int16(ab.MaxMana)
		}
		if pos, ok := s.Positions.Get(entity); ok {
			row.X, row.Y, row.MapID = int32(pos.X), int32(pos.Y), int16(pos.ZoneID)
		}

		if err := characters.SaveCharacter(ctx, row); err != nil {
			return fmt.Errorf("save character %q: %w", ch.Name, err)
		}

		if inv, ok := s.Inventories.Get(entity); ok {
			equip, hasEquip := s.Equipment.Get(entity)
			if !hasEquip {
				equip = &component.Equipment{}
			}
			if err := items.SaveInventory(ctx, row.ID, inv, equip); err != nil {
				return fmt.Errorf("save inventory for %q: %w", ch.Name, err)
			}
		}
		return nil
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zcfg.Level = level
	return zcfg.Build()
}
