// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/assets"
	"github.com/vechain/rewardpool/clock"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/rewardpool"
	"github.com/vechain/rewardpool/thor"
)

func readIntFromUInt64Flag(val uint64) (int, error) {
	if val > math.MaxInt {
		return 0, errors.Errorf("invalid value %d", val)
	}
	return int(val), nil
}

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	lvl, err := readIntFromUInt64Flag(ctx.GlobalUint64(verbosityFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "parse verbosity flag")
	}

	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(lvl))

	var output io.Writer = os.Stderr
	var handler slog.Handler
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(output, level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) &&
			os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(output, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return level, nil
}

func handleExitSignal() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".rewardpool")
	}
	return ""
}

func makeClock(ctx *cli.Context) clock.Clock {
	if server := ctx.GlobalString(ntpServerFlag.Name); server != "" {
		return clock.NewNTP(server, clock.DefaultNTPRefresh)
	}
	return clock.System{}
}

// openEngine opens the pool database under the data dir. The returned func closes it.
func openEngine(ctx *cli.Context) (*rewardpool.Engine, func(), error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return nil, nil, errors.Errorf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, nil, errors.Wrapf(err, "create data dir [%v]", dataDir)
	}

	path := filepath.Join(dataDir, "pools.db")
	db, err := lvldb.New(path, lvldb.Options{CacheSize: 16, OpenFilesCacheCapacity: 64})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open pool database [%v]", path)
	}
	engine, err := rewardpool.New(db, makeClock(ctx), ctx.GlobalInt(cacheFlag.Name))
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return engine, func() {
		log.Info("closing pool database...")
		if err := db.Close(); err != nil {
			log.Warn("failed to close pool database", "err", err)
		}
	}, nil
}

func addressFlag(ctx *cli.Context, flag cli.StringFlag) (thor.Address, error) {
	val := ctx.String(flag.Name)
	if val == "" {
		return thor.Address{}, errors.Errorf("-%s is required", flag.Name)
	}
	addr, err := thor.ParseAddress(val)
	if err != nil {
		return thor.Address{}, errors.Wrapf(err, "-%s", flag.Name)
	}
	return *addr, nil
}

// ensureAccount opens the token account id unless it already exists.
func ensureAccount(engine *rewardpool.Engine, id, asset, owner thor.Address) error {
	acc, err := engine.Account(id)
	switch {
	case errors.Is(err, assets.ErrAccountNotFound):
		log.Info("creating token account", "id", id, "asset", asset, "owner", owner)
		return engine.CreateAccount(id, asset, owner)
	case err != nil:
		return err
	case acc.Asset != asset || acc.Owner != owner:
		return errors.Errorf("token account %v exists with asset %v owner %v", id, acc.Asset, acc.Owner)
	}
	return nil
}
