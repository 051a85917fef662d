package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/expomatematica/quizmat/internal/app"
	"github.com/expomatematica/quizmat/internal/config"
	"github.com/expomatematica/quizmat/internal/leaderboard"
	"github.com/expomatematica/quizmat/internal/logging"
	"github.com/expomatematica/quizmat/internal/quiz"
	gamescreen "github.com/expomatematica/quizmat/internal/screens/game"
	"github.com/expomatematica/quizmat/internal/store"
	"github.com/expomatematica/quizmat/internal/store/redisstore"
)

const redisDialTimeout = 2 * time.Second

// env is everything a command needs once config, logging and storage are
// set up.
type env struct {
	cfg     config.Config
	store   *store.Store
	records leaderboard.Repo
	mirror  *redisstore.Repo
	logger  *slog.Logger
	closers []io.Closer
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	return errors.Join(errs...)
}

// loadConfig resolves the config file and applies the persistent flags on
// top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if a, _ := cmd.Flags().GetString("redis-addr"); a != "" {
		cfg.Redis.Addr = a
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	return cfg, cfg.Validate()
}

// openEnv loads config, installs the logger and opens the store. The
// Redis mirror is optional: when it can't be reached the leaderboard
// falls back to SQLite alone.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	logCloser, err := logging.Init(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	e.closers = append(e.closers, logCloser)
	e.logger = slog.Default()

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		e.Close()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, st)
	e.records = st.LeaderboardRepo()

	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(cmd.Context(), redisDialTimeout)
		mirror, err := redisstore.Dial(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
		cancel()
		if err != nil {
			e.logger.Warn("redis mirror unavailable", "addr", cfg.Redis.Addr, "err", err)
			fmt.Fprintln(os.Stderr, "Redis mirror not available:", err)
			fmt.Fprintln(os.Stderr, "The leaderboard is kept in SQLite only.")
		} else {
			e.closers = append(e.closers, mirror)
			e.mirror = mirror
			e.records = leaderboard.NewFanout(e.records, mirror)
		}
	}

	e.logger.Debug("environment ready", "db", cfg.DBPath, "redis", cfg.Redis.Addr != "")
	return e, nil
}

// gameDeps builds the question bank once and wires it to persistence.
func (e *env) gameDeps() gamescreen.Deps {
	bank := quiz.BuildBank(quiz.NewRand(), e.cfg.Quiz.BankSizes)
	return gamescreen.Deps{
		Sampler: quiz.NewSampler(bank, e.cfg.Quiz.Quotas, quiz.NewRand()),
		Budget:  e.cfg.Quiz.TimeBudgetSeconds,
		Records: e.records,
		Events:  e.store.EventRepo(),
		Logger:  e.logger,
	}
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, skipWelcome bool) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(cmd.Context(), app.Options{
		Game:        e.gameDeps(),
		SkipWelcome: skipWelcome,
	})
}
