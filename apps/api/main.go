package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/thedigitalbhaiya/ans-sub000/apps/api/echo"
	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/attendance"
	"github.com/thedigitalbhaiya/ans-sub000/core/auth"
	"github.com/thedigitalbhaiya/ans-sub000/core/circular"
	"github.com/thedigitalbhaiya/ans-sub000/core/settings"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
	"github.com/thedigitalbhaiya/ans-sub000/core/timetable"
	logsvc "github.com/thedigitalbhaiya/ans-sub000/services/logger"
	"github.com/thedigitalbhaiya/ans-sub000/storage/kvstore"
)

func main() {
	conf := core.NewConfig()

	// set up logging
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(stdLogger)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(stdLogger, conf)
		rollbarLogger.Enable(true)
		logger = rollbarLogger
	}

	// set up store & repos
	store, err := kvstore.Open(conf.DataDir, logger)
	if err != nil {
		logger.Fatal("opening store", err)
	}
	studentRepo := kvstore.NewStudentRepository(store)
	adminRepo := kvstore.NewAdminRepository(store)
	settingsRepo := kvstore.NewSettingsRepository(store)
	circularRepo := kvstore.NewCircularRepository(store)
	attendanceRepo := kvstore.NewAttendanceRepository(store)
	timetableRepo := kvstore.NewTimetableRepository(store)

	// seed the admission number allocator past what is already on record
	recs, err := studentRepo.QueryAllRecords()
	if err != nil {
		logger.Fatal("loading students", err)
	}
	ids := core.NewIDAllocator("ANS", student.LastAdmissionSeq(recs))

	// set up services
	studentSvc := student.NewService(studentRepo, ids)
	adminSvc := admin.NewService(adminRepo, ids)
	settingsSvc := settings.NewService(settingsRepo, ids)
	circularSvc := circular.NewService(circularRepo, ids, settingsSvc.Flags)
	attendanceSvc := attendance.NewService(attendanceRepo)
	timetableSvc := timetable.NewService(timetableRepo)
	authSvc := auth.NewService(studentSvc, adminSvc, kvstore.NewSessionStore(store), logger, conf)

	// set up validation
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		conf.Server.Addr,
		shutdown,
		&echoapi.Deps{
			Conf:          conf,
			Logger:        logger,
			Validate:      validate,
			Translator:    translator,
			AuthSvc:       authSvc,
			StudentSvc:    studentSvc,
			AdminSvc:      adminSvc,
			SettingsSvc:   settingsSvc,
			CircularSvc:   circularSvc,
			AttendanceSvc: attendanceSvc,
			TimetableSvc:  timetableSvc,
		},
	)
	go app.Start()

	<-shutdown
	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = app.Stop(ctx); err != nil {
		logger.Error("stopping server", err)
	}
}
