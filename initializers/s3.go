package initializers

import (
	"context"

	"github.com/minio/minio-go/v7"
	log "github.com/sirupsen/logrus"
	"timesheet-backend/config"
	s3client "timesheet-backend/s3"
)

// InitS3 возвращает nil, если архив отчетов выключен или S3 недоступен
func InitS3(ctx context.Context) *minio.Client {
	if !*config.Conf.S3.Enabled {
		log.Info("архив отчетов S3 отключен")
		return nil
	}
	client, err := s3client.NewClient(ctx, s3client.Params{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          *config.Conf.S3.UseSSL,
		BucketName:      config.Conf.S3.BucketName,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3, архив отчетов отключен")
		return nil
	}
	log.Info("S3 клиент успешно инициализирован")
	return client
}
