package main

import (
	stdlog "log"
	"os"

	"github.com/ojtrack/ojtrack/apps/api/echo"
	"github.com/ojtrack/ojtrack/core"
	"github.com/ojtrack/ojtrack/core/activity"
	"github.com/ojtrack/ojtrack/core/person"
	"github.com/ojtrack/ojtrack/core/user"
	"github.com/ojtrack/ojtrack/services/email"
	"github.com/ojtrack/ojtrack/services/logger"
	"github.com/ojtrack/ojtrack/storage/kvrepos"
	"github.com/ojtrack/ojtrack/storage/kvstore/file"
	"github.com/ojtrack/ojtrack/storage/kvstore/postgres"
)

// TODO: graceful shutdown on SIGTERM (Server.Stop is already in place)
func main() {
	std := stdlog.New(os.Stdout, core.Conf.AppName+" ", stdlog.LstdFlags|stdlog.Lshortfile)

	var appLogger core.Logger
	if core.Conf.Debug || core.Conf.TestMode {
		appLogger = logsvc.NewStdLogger(std)
	} else {
		appLogger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	// set up the store
	var store core.Store
	switch core.Conf.Storage.Backend {
	case "postgres":
		pg, err := pgstore.Open(core.Conf)
		errAndDie(std, err)
		defer pg.Close()
		store = pg
	default:
		fs, err := filestore.Open(core.Conf.Storage.FilePath)
		errAndDie(std, err)
		store = fs
	}

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(appLogger)
	}

	usrSvc := user.NewService(kvrepos.NewUserRepository(store), mailSvc)
	personRepo := kvrepos.NewPersonRepository(store)
	actSvc := activity.NewService(kvrepos.NewActivityRepository(store), personRepo)
	personSvc := person.NewService(personRepo, personRepo, usrSvc, actSvc)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:        core.Conf.Server.Addr,
			UserSvc:     usrSvc,
			PersonSvc:   personSvc,
			ActivitySvc: actSvc,
			Sessions:    kvrepos.NewSessionRepository(store),
			Store:       store,
			Logger:      appLogger,
		},
	)
	app.Start()
}

func errAndDie(std *stdlog.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
