// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the pool database",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 4096,
		Usage: "number of decoded records kept in memory",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8670",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	apiBodyLimitFlag = cli.Int64Flag{
		Name:  "api-body-limit",
		Value: 64 * 1024,
		Usage: "maximum size in bytes of an API request body",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Usage: "all queries with duration (ms) greater than threshold will be logged",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log all API requests answered with a 5xx status",
	}
	apiPprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Usage: "read time from this NTP server instead of the system clock",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables the admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Value: "pools.yaml",
		Usage: "path of the pool book",
	}
	poolFlag = cli.StringFlag{
		Name:  "pool",
		Usage: "name of the pool in the book",
	}
	funderFlag = cli.StringFlag{
		Name:  "funder",
		Usage: "address of the funder, the pool authority when empty",
	}
	fromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "token account the funds are taken from",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "amount of tokens",
	}
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "token account address",
	}
	assetFlag = cli.StringFlag{
		Name:  "asset",
		Usage: "asset held by a new token account",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "owner address",
	}
)
