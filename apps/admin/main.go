package main

import (
	"log"
	"os"

	"github.com/thedigitalbhaiya/ans-sub000/core"
	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
	logsvc "github.com/thedigitalbhaiya/ans-sub000/services/logger"
	"github.com/thedigitalbhaiya/ans-sub000/storage/kvstore"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewConsoleLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags))

	store, err := kvstore.Open(conf.DataDir, logger)
	if err != nil {
		logger.Fatal("opening store", err)
	}
	studentRepo := kvstore.NewStudentRepository(store)
	adminRepo := kvstore.NewAdminRepository(store)

	recs, err := studentRepo.QueryAllRecords()
	if err != nil {
		logger.Fatal("loading students", err)
	}
	ids := core.NewIDAllocator("ANS", student.LastAdmissionSeq(recs))

	cli := &commandLine{
		studentRepo: studentRepo,
		studentSvc:  student.NewService(studentRepo, ids),
		adminSvc:    admin.NewService(adminRepo, ids),
	}
	if err = cli.run(os.Args); err != nil && err != errHelp {
		logger.Fatal(err.Error(), err)
	}
}
