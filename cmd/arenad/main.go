// Command arenad runs a headless cell simulation loop: it wires
// enginecfg, enginehost and engine together, spawns a scatter of pellets
// and a couple of player cells, and ticks them at a fixed rate, logging a
// table checksum every tick for offline verification. With -record it
// also writes an enginereplay recording cmd/arenareplay can read back.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/arenasim/core/engine"
	"github.com/arenasim/core/engine/checksum"
	"github.com/arenasim/core/engine/internal/fixture"
	"github.com/arenasim/core/engine/quadtree"
	"github.com/arenasim/core/enginecfg"
	"github.com/arenasim/core/enginehost"
	"github.com/arenasim/core/enginereplay"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

func main() {
	configPath := flag.String("config", "arenad.toml", "path to the engine TOML config")
	ticks := flag.Int("ticks", 100, "number of ticks to run before exiting")
	pellets := flag.Int("pellets", 200, "number of pellets to scatter")
	recordDir := flag.String("record", "", "path to an enginereplay database to record each tick into (disabled if empty)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := enginecfg.Load(*configPath)
	if err != nil {
		log.Error("load engine config", "error", err)
		os.Exit(1)
	}

	registry := enginehost.NewRegistry()
	aliceSession, bobSession := uuid.New(), uuid.New()
	alice, err := registry.Join(aliceSession, "alice")
	if err != nil {
		log.Error("join player", "error", err)
		os.Exit(1)
	}
	bob, err := registry.Join(bobSession, "bob")
	if err != nil {
		log.Error("join player", "error", err)
		os.Exit(1)
	}
	_ = registry.SetScore(aliceSession, 0)
	_ = registry.SetScore(bobSession, 0)

	bounds := cfg.Bounds()
	center := mgl64.Vec2{(bounds.Left + bounds.Right) / 2, (bounds.Bottom + bounds.Top) / 2}

	store := engine.NewStore(*pellets + 8)
	active := make([]engine.Handle, 0, *pellets+8)

	store.Set(1, engine.Cell{Pos: center, R: 40, Type: alice})
	store.Set(2, engine.Cell{Pos: center, R: 40, Type: bob})
	active = append(active, 1, 2)

	for i := 0; i < *pellets; i++ {
		h := engine.Handle(3 + i)
		store.Set(h, fixture.Gen("arenad", i, engine.TypePellet, bounds))
		active = append(active, h)
	}

	stack := make([]quadtree.Node, 256)
	var out []engine.Handle
	score := func(t engine.CellType) float64 { return registry.Score(t) }

	var recorder *enginereplay.Recorder
	if *recordDir != "" {
		recorder, err = enginereplay.OpenRecorder(*recordDir)
		if err != nil {
			log.Error("open replay recorder", "error", err)
			os.Exit(1)
		}
		defer recorder.Close()
	}

	log.Info("starting simulation", "ticks", *ticks, "cells", len(active))

	for tick := 0; tick < *ticks; tick++ {
		active = engine.Update(store, active, cfg.UpdateParams(score))

		engine.UpdatePlayerCells(store, []engine.Handle{1}, 0, 0, 1, cfg.MergeParams())
		engine.UpdatePlayerCells(store, []engine.Handle{2}, 0, 0, 1, cfg.MergeParams())

		idx := quadtree.Build(buildItems(store, active), quadtree.Bounds(bounds), 8)

		engine.Resolve(store, active, idx.Root, stack, cfg.ResolveParams())
		out = engine.Select(store, idx.Root, stack, out, bounds.Left, bounds.Right, bounds.Bottom, bounds.Top)

		if recorder != nil {
			if err := recorder.RecordTick(uint64(tick), store, active); err != nil {
				log.Error("record tick", "tick", tick, "error", err)
			}
		}

		log.Info("tick complete", "tick", tick, "visible", len(out), "checksum", checksum.Table(store, active))
		time.Sleep(time.Millisecond)
	}
}

func buildItems(store *engine.Store, active []engine.Handle) []quadtree.Item {
	items := make([]quadtree.Item, 0, len(active))
	for _, h := range active {
		if h == 0 {
			break
		}
		if !store.Cell(h).Live() {
			continue
		}
		items = append(items, quadtree.Item{ID: uint16(h), X: store.X(h), Y: store.Y(h), R: store.R(h)})
	}
	return items
}
