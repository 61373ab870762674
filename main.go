package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	webapi "github.com/darasahq/darasa/apps/web"
	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/auth"
	"github.com/darasahq/darasa/core/directory"
	"github.com/darasahq/darasa/core/nav"
	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/session"
	logsvc "github.com/darasahq/darasa/services/logger"
	notifysvc "github.com/darasahq/darasa/services/notify"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	std := log.New(os.Stdout, "DARASA : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		rl := logsvc.NewRollbarLogger(std, conf)
		rl.Enable(true)
		logger = rl
	}

	notifier := notifysvc.NewConsoleService(std)

	dir := directory.Seeded()
	store := session.NewFileStore(conf.SessionFile, conf.SecretKey)
	gate := auth.NewGate(dir, store, logger, notifier, conf)
	schoolSvc := school.NewService(dir, school.Seed())

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	directory.InitValidators(validate, translator)

	// settle the auth state before the first route is ever evaluated
	gate.Restore()

	// =========================================================================
	// Start Web App

	server := webapi.NewServer(webapi.Deps{
		Conf:       conf,
		Logger:     logger,
		Gate:       gate,
		Directory:  dir,
		School:     schoolSvc,
		Validate:   validate,
		Translator: translator,
	})

	go server.Start()
	logger.Info(fmt.Sprintf("Serving on %s (login at %s)", conf.Server.Addr, nav.LoginPath))

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
