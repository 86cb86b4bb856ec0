package main

import (
	"log"
	"os"

	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/user"
	"github.com/ojtrack/ojtrack/services/email"
	"github.com/ojtrack/ojtrack/storage/kvrepos"
	"github.com/ojtrack/ojtrack/storage/kvstore/file"
	"github.com/ojtrack/ojtrack/storage/kvstore/postgres"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up the store
	var store core.Store
	switch core.Conf.Storage.Backend {
	case "postgres":
		pg, err := pgstore.Open(core.Conf)
		errAndDie(err)
		defer pg.Close()
		store = pg
	default:
		fs, err := filestore.Open(core.Conf.Storage.FilePath)
		errAndDie(err)
		store = fs
	}

	// start CLI
	cli := commandLine{
		usrSvc: user.NewService(kvrepos.NewUserRepository(store), emailsvc.NewConsoleService()),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
