package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"timesheet-backend/lib/utils/helpers"
)

const reportsPrefix = "reports"

// Provider - архив сформированных отчетов
type Provider interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (key string, err error)
	// Purge удаляет из архива отчеты, загруженные раньше olderThan
	Purge(ctx context.Context, olderThan time.Time) (removed int, err error)
	Enabled() bool
}

var Instance Provider

// NewHandler без клиента S3 архив отключен, Upload ничего не делает
func NewHandler(s3client *minio.Client, bucketName string) {
	Instance = NewInstance(s3client, bucketName)
}

func NewInstance(s3client *minio.Client, bucketName string) Provider {
	if s3client == nil {
		return disabled{}
	}
	return &impl{
		s3client:   s3client,
		bucketName: bucketName,
		now:        time.Now,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
	now        func() time.Time
}

func (i impl) Upload(ctx context.Context, fileName, contentType string, data []byte) (key string, err error) {
	key = objectKey(i.now(), fileName)
	_, err = i.s3client.PutObject(ctx, i.bucketName, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "ошибка загрузки отчета %s в хранилище", fileName)
	}
	log.
		WithField("bucket", i.bucketName).
		WithField("key", key).
		Info("отчет сохранен в архив")
	return key, nil
}

func (i impl) Purge(ctx context.Context, olderThan time.Time) (removed int, err error) {
	objects := i.s3client.ListObjects(ctx, i.bucketName, minio.ListObjectsOptions{
		Prefix:    reportsPrefix + "/",
		Recursive: true,
	})
	for object := range objects {
		if object.Err != nil {
			return removed, errors.Wrap(object.Err, "ошибка получения списка отчетов в архиве")
		}
		if helpers.IsContextDone(ctx) {
			return removed, nil
		}
		if !object.LastModified.Before(olderThan) {
			continue
		}
		err = i.s3client.RemoveObject(ctx, i.bucketName, object.Key, minio.RemoveObjectOptions{})
		if err != nil {
			return removed, errors.Wrapf(err, "ошибка удаления отчета %s из архива", object.Key)
		}
		removed++
	}
	return removed, nil
}

func (i impl) Enabled() bool {
	return true
}

type disabled struct{}

func (disabled) Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	return "", nil
}

func (disabled) Purge(ctx context.Context, olderThan time.Time) (int, error) {
	return 0, nil
}

func (disabled) Enabled() bool {
	return false
}

// objectKey - reports/ГГГГ/ММ/<uuid>-<имя файла>
func objectKey(now time.Time, fileName string) string {
	return path.Join(reportsPrefix, now.Format("2006"), now.Format("01"),
		fmt.Sprintf("%s-%s", uuid.NewString(), path.Base(fileName)))
}
