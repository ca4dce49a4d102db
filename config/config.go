package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr   string `default:"" env:"APP_HOST"`
		Port         int    `default:"8080"  env:"APP_PORT"`
		BodyLimit    int64  `default:"10485760" env:"APP_BODY_LIMIT"`
		SwaggerDoc   string `default:"./docs/swagger.json" env:"APP_SWAGGER_DOC"`
		// ErrNotifyURL - куда отправлять сведения об ответах 5xx, пусто - не отправлять
		ErrNotifyURL string `default:"" env:"APP_ERR_NOTIFY_URL"`
		LogLevel     string `default:"info" env:"APP_LOG_LEVEL"`
		LogBodyLimit int    `default:"2048" env:"APP_LOG_BODY_LIMIT"`
	}
	Database struct {
		Driver         string `default:"postgres" env:"DB_DRIVER"` // postgres | sqlite
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"timesheet" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		SqlitePath     string `default:"timesheet.db" env:"DB_SQLITE_PATH"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Timesheet struct {
		Timezone              string `default:"Asia/Kolkata" env:"TIMESHEET_TIMEZONE"`
		AllowOvernight        *bool  `default:"false" env:"TIMESHEET_ALLOW_OVERNIGHT"`
		ResetReviewOnResubmit *bool  `default:"true" env:"TIMESHEET_RESET_REVIEW_ON_RESUBMIT"`
		LockWaitSeconds       int    `default:"5" env:"TIMESHEET_LOCK_WAIT_SECONDS"`
	}
	S3 struct {
		Enabled         *bool  `default:"false" env:"S3_ENABLED"`
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"timesheet-reports" env:"S3_BUCKET_NAME"`
		RetentionDays   int    `default:"90" env:"S3_RETENTION_DAYS"` // 0 - хранить отчеты бессрочно
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
