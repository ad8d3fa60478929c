// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/api"
	"github.com/vechain/rewardpool/api/admin"
	"github.com/vechain/rewardpool/api/pools"
	"github.com/vechain/rewardpool/cmd/rewardpool/httpserver"
	"github.com/vechain/rewardpool/health"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/rewardpool"
	"github.com/vechain/rewardpool/thor"
)

var (
	version       string
	gitCommit     string
	gitTag        string
	copyrightYear string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "rewardpool",
		Usage:     "Staking reward pools",
		Copyright: fmt.Sprintf("2025-%s VeChain Foundation <https://vechain.org/>", copyrightYear),
		Flags: []cli.Flag{
			dataDirFlag,
			cacheFlag,
			configFlag,
			verbosityFlag,
			jsonLogsFlag,
			ntpServerFlag,
		},
		Commands: []cli.Command{
			{
				Name:  "serve",
				Usage: "Serve the pools over the REST API",
				Flags: []cli.Flag{
					apiAddrFlag,
					apiCorsFlag,
					apiTimeoutFlag,
					apiBodyLimitFlag,
					enableAPILogsFlag,
					apiSlowQueriesThresholdFlag,
					apiLog5xxErrorsFlag,
					apiPprofFlag,
					enableMetricsFlag,
					metricsAddrFlag,
					enableAdminFlag,
					adminAddrFlag,
				},
				Action: serveAction,
			},
			{
				Name:   "create-pool",
				Usage:  "Create a pool of the book together with its vaults",
				Flags:  []cli.Flag{poolFlag},
				Action: createPoolAction,
			},
			{
				Name:   "fund",
				Usage:  "Fund a pool of the book and start a new reward window",
				Flags:  []cli.Flag{poolFlag, funderFlag, fromFlag, amountFlag},
				Action: fundAction,
			},
			{
				Name:   "mint",
				Usage:  "Credit tokens to a token account, opening it when missing",
				Flags:  []cli.Flag{accountFlag, assetFlag, ownerFlag, amountFlag},
				Action: mintAction,
			},
			{
				Name:   "show",
				Usage:  "Print a pool of the book, or a position when -owner is given",
				Flags:  []cli.Flag{poolFlag, ownerFlag},
				Action: showAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}
	exitSignal, cancel := handleExitSignal()
	defer cancel()

	metricsEnabled := ctx.Bool(enableMetricsFlag.Name)
	if metricsEnabled {
		metrics.InitializePrometheusMetrics()
	}

	engine, closeDB, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	reqLogger := &atomic.Bool{}
	reqLogger.Store(ctx.Bool(enableAPILogsFlag.Name))

	handler := api.New(engine, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		PprofOn:              ctx.Bool(apiPprofFlag.Name),
		EnableReqLogger:      reqLogger,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		EnableMetrics:        metricsEnabled,
	})

	apiURL, closeAPI, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		handler,
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
		ctx.Int64(apiBodyLimitFlag.Name),
	)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); closeAPI() }()
	log.Info("API server started", "url", apiURL)

	if metricsEnabled {
		url, closeMetrics, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.WithMessage(err, "unable to start metrics server")
		}
		defer func() { log.Info("stopping metrics server..."); closeMetrics() }()
		log.Info("metrics server started", "url", url)
	}

	if ctx.Bool(enableAdminFlag.Name) {
		handler := admin.New(logLevel, reqLogger, health.New(engine.Probe))
		url, closeAdmin, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), handler)
		if err != nil {
			return errors.WithMessage(err, "unable to start admin server")
		}
		defer func() { log.Info("stopping admin server..."); closeAdmin() }()
		log.Info("admin server started", "url", url)
	}

	<-exitSignal.Done()
	return nil
}

func createPoolAction(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}
	path := ctx.GlobalString(configFlag.Name)
	book, err := loadBook(path)
	if err != nil {
		return err
	}
	entry, err := book.find(ctx.String(poolFlag.Name))
	if err != nil {
		return err
	}
	entry.complete()

	engine, closeDB, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := ensureAccount(engine, entry.StakingVault, entry.StakingAsset, entry.Signer); err != nil {
		return errors.WithMessage(err, "staking vault")
	}
	if err := ensureAccount(engine, entry.RewardVault, entry.RewardAsset, entry.Signer); err != nil {
		return errors.WithMessage(err, "reward vault")
	}
	if err := engine.CreatePool(entry.params()); err != nil {
		return errors.WithMessage(err, "create pool")
	}
	if err := book.save(path); err != nil {
		return err
	}

	log.Info("pool created",
		"name", entry.Name,
		"id", entry.ID,
		"signer", entry.Signer,
		"stakingVault", entry.StakingVault,
		"rewardVault", entry.RewardVault,
	)
	return nil
}

func fundAction(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}
	book, err := loadBook(ctx.GlobalString(configFlag.Name))
	if err != nil {
		return err
	}
	entry, err := book.find(ctx.String(poolFlag.Name))
	if err != nil {
		return err
	}
	funder := entry.Authority
	if ctx.String(funderFlag.Name) != "" {
		if funder, err = addressFlag(ctx, funderFlag); err != nil {
			return err
		}
	}
	from, err := addressFlag(ctx, fromFlag)
	if err != nil {
		return err
	}

	engine, closeDB, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	amount := ctx.Uint64(amountFlag.Name)
	if err := engine.Fund(funder, entry.ID, from, amount); err != nil {
		return errors.WithMessage(err, "fund")
	}
	log.Info("pool funded", "name", entry.Name, "funder", funder, "amount", amount)
	return nil
}

func mintAction(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}
	account, err := addressFlag(ctx, accountFlag)
	if err != nil {
		return err
	}
	asset, err := addressFlag(ctx, assetFlag)
	if err != nil {
		return err
	}
	owner, err := addressFlag(ctx, ownerFlag)
	if err != nil {
		return err
	}

	engine, closeDB, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := ensureAccount(engine, account, asset, owner); err != nil {
		return err
	}
	amount := ctx.Uint64(amountFlag.Name)
	if err := engine.Mint(account, amount); err != nil {
		return errors.WithMessage(err, "mint")
	}
	log.Info("minted", "account", account, "amount", amount)
	return nil
}

func showAction(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}
	book, err := loadBook(ctx.GlobalString(configFlag.Name))
	if err != nil {
		return err
	}
	entry, err := book.find(ctx.String(poolFlag.Name))
	if err != nil {
		return err
	}

	engine, closeDB, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	var out any
	if ctx.String(ownerFlag.Name) != "" {
		owner, err := addressFlag(ctx, ownerFlag)
		if err != nil {
			return err
		}
		if out, err = showPosition(engine, entry, owner); err != nil {
			return err
		}
	} else {
		p, err := engine.Pool(entry.ID)
		if err != nil {
			return err
		}
		total, err := engine.TotalStaked(entry.ID)
		if err != nil {
			return err
		}
		out = pools.ConvertPool(entry.ID, p, total)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func showPosition(engine *rewardpool.Engine, entry *PoolEntry, owner thor.Address) (*pools.Position, error) {
	pos, err := engine.Position(owner, entry.ID)
	if err != nil {
		return nil, err
	}
	earned, err := engine.PreviewEarned(owner, entry.ID)
	if err != nil {
		return nil, err
	}
	return pools.ConvertPosition(pos, earned), nil
}
