package main

import (
	"flag"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids-simulation/pkg/simulation"
)

func main() {
	var (
		configFile = flag.String("config", "", "path to a JSON config file (defaults apply when empty)")
		schemaFile = flag.String("schema", "config.schema.json", "path to the config JSON-Schema")
		seed       = flag.Uint64("seed", 0, "random seed; 0 derives one from the clock")
		numBoids   = flag.Int("n", 0, "override the number of boids (0 keeps the config value)")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	zapCfg := zap.NewDevelopmentConfig()
	if !*debug {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := flock.DefaultConfig()
	if *configFile != "" {
		cfg, err = flock.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			logger.Fatal("cannot load config", zap.String("file", *configFile), zap.Error(err))
		}
	}
	if *numBoids > 0 {
		cfg.NumBoids = *numBoids
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(s, s))

	f, err := flock.New(cfg.NumBoids, cfg, rng)
	if err != nil {
		logger.Fatal("cannot create flock", zap.Error(err))
	}
	logger.Info("flock created",
		zap.Int("agents", len(f)),
		zap.Uint64("seed", s),
		zap.Float64("worldWidth", cfg.WorldWidth),
		zap.Float64("worldHeight", cfg.WorldHeight),
	)

	game := simulation.NewGame(cfg, f, logger)

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boids")
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game loop ended", zap.Error(err))
	}
}
