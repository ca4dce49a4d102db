package initializers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"timesheet-backend/config"
	"timesheet-backend/fiberlog"
	"timesheet-backend/lib/analytics"
	assignmenthandler "timesheet-backend/lib/assignment"
	dailyloghandler "timesheet-backend/lib/daily-log"
	departmentprovider "timesheet-backend/lib/dicts/department"
	designationprovider "timesheet-backend/lib/dicts/designation"
	employeeprovider "timesheet-backend/lib/dicts/employee"
	projectprovider "timesheet-backend/lib/dicts/project"
	xlsexport "timesheet-backend/lib/export/xls"
	filestorage "timesheet-backend/lib/file-storage"
	retentionworker "timesheet-backend/lib/file-storage/retention-worker"
	reviewhandler "timesheet-backend/lib/review"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitDBConnection()
	filestorage.NewHandler(InitS3(ctx), config.Conf.S3.BucketName)
	departmentprovider.NewHandler()
	designationprovider.NewHandler()
	projectprovider.NewHandler()
	assignmenthandler.NewHandler()
	employeeprovider.NewHandler()
	dailyloghandler.NewHandler(dailyLogOptions())
	reviewhandler.NewHandler()
	xlsexport.NewHandler()
	analytics.NewHandler()

	retentionworker.StartWorker(ctx, filestorage.Instance,
		time.Duration(config.Conf.S3.RetentionDays)*24*time.Hour)
}

func dailyLogOptions() dailyloghandler.Options {
	location, err := time.LoadLocation(config.Conf.Timesheet.Timezone)
	if err != nil {
		log.
			WithError(err).
			WithField("timezone", config.Conf.Timesheet.Timezone).
			Warn("неизвестный часовой пояс организации, используется UTC")
		location = time.UTC
	}
	return dailyloghandler.Options{
		AllowOvernight:        *config.Conf.Timesheet.AllowOvernight,
		ResetReviewOnResubmit: *config.Conf.Timesheet.ResetReviewOnResubmit,
		LockWait:              time.Duration(config.Conf.Timesheet.LockWaitSeconds) * time.Second,
		Location:              location,
	}
}
