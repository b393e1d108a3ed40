// Command brawld runs a brawl node: the TCP frontend with the battle
// component mounted, the metrics endpoint and, when configured, the
// cluster relay.
package main

import (
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"brawl/catalog"
	"brawl/cluster"
	"brawl/gameplay"
	"brawl/modules/battle"
	"brawl/server"
)

type config struct {
	Name             string        `env:"BRAWL_NAME" envDefault:"brawl-1"`
	ClientAddr       string        `env:"BRAWL_CLIENT_ADDR" envDefault:":33750"`
	MetricsAddr      string        `env:"BRAWL_METRICS_ADDR" envDefault:":9100"`
	RelayAddr        string        `env:"BRAWL_RELAY_ADDR"`
	HeartbeatTimeout time.Duration `env:"BRAWL_HEARTBEAT_TIMEOUT" envDefault:"5s"`
	BattleWorkers    int           `env:"BRAWL_BATTLE_WORKERS" envDefault:"32"`
	BattleTimeout    time.Duration `env:"BRAWL_BATTLE_TIMEOUT" envDefault:"2m"`
	BrawlersFile     string        `env:"BRAWL_BRAWLERS_FILE"`
	TrophyRoadFile   string        `env:"BRAWL_TROPHY_ROAD_FILE"`
	LevelsFile       string        `env:"BRAWL_LEVELS_FILE"`
	Debug            bool          `env:"BRAWL_DEBUG"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	log := newLogger(cfg.Debug)
	defer log.Sync()

	var cat *catalog.Catalog
	if cfg.BrawlersFile != "" {
		var err error
		cat, err = catalog.Load(log, catalog.Files{
			Brawlers:   cfg.BrawlersFile,
			TrophyRoad: cfg.TrophyRoadFile,
			Levels:     cfg.LevelsFile,
		})
		if err != nil {
			log.Fatal("load catalog", zap.Error(err))
		}
		if err := cat.Watch(); err != nil {
			log.Fatal("watch catalog", zap.Error(err))
		}
		defer cat.Close()
	}

	arena, err := gameplay.NewArena(log, gameplay.ArenaOptions{
		Workers:       cfg.BattleWorkers,
		BattleTimeout: cfg.BattleTimeout,
	})
	if err != nil {
		log.Fatal("create arena", zap.Error(err))
	}

	srv := server.New(server.Options{
		Name:             cfg.Name,
		ClientAddr:       cfg.ClientAddr,
		MetricsAddr:      cfg.MetricsAddr,
		HeartbeatTimeout: cfg.HeartbeatTimeout,
	}, log)

	if err := srv.Register("Battle", battle.New(log, arena, cat)); err != nil {
		log.Fatal("register battle component", zap.Error(err))
	}

	if cfg.RelayAddr != "" {
		peers := cluster.NewClientManager()
		defer peers.Close()

		relay := cluster.NewServer(cfg.RelayAddr, newRelayHandler(srv, peers, log), log)
		if err := relay.Start(); err != nil {
			log.Fatal("start relay", zap.Error(err))
		}
		defer relay.Stop()
	}

	if err := srv.Startup(); err != nil {
		log.Fatal("startup", zap.Error(err))
	}
	srv.Shutdown()
}

func newLogger(debug bool) *zap.Logger {
	var log *zap.Logger
	var err error
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return log
}
