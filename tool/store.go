// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"

	"github.com/pbnjay/memory"
	"github.com/urfave/cli/v2"

	"github.com/jithinraj/coinstack/backend/checkpoint"
	"github.com/jithinraj/coinstack/backend/checkpoint/ldb"
	"github.com/jithinraj/coinstack/backend/checkpoint/sqlite"
)

var (
	dbFlag = cli.StringFlag{
		Name:  "db",
		Usage: "the checkpoint database to operate on (a directory for leveldb, a file for sqlite)",
	}
	backendFlag = cli.StringFlag{
		Name:  "backend",
		Usage: "the storage backend, one of leveldb or sqlite",
		Value: "leveldb",
	}
)

// openStore opens the checkpoint store selected by the --db and --backend
// flags. For LevelDB, a fraction of the total system memory is granted to the
// block cache.
func openStore(context *cli.Context) (checkpoint.Store, error) {
	path := context.String(dbFlag.Name)
	if path == "" {
		return nil, fmt.Errorf("missing --%s parameter", dbFlag.Name)
	}
	switch backend := context.String(backendFlag.Name); backend {
	case "leveldb":
		cacheSize := int(memory.TotalMemory() / 100)
		return ldb.NewStore(path, cacheSize)
	case "sqlite":
		return sqlite.NewStore(path)
	default:
		return nil, fmt.Errorf("unknown backend %q, expected leveldb or sqlite", backend)
	}
}
