package filestorage

import (
	"ai-interview-backend/config"
	s3client "ai-interview-backend/s3"
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Provider interface {
	SaveReport(ctx context.Context, objectName string, data []byte) (link string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		linkTTL: time.Hour * time.Duration(config.Conf.Interview.ReportLinkTTLInHours),
	}
}

type impl struct {
	linkTTL time.Duration
}

// SaveReport кладет отчет в хранилище и возвращает временную ссылку на скачивание
func (i impl) SaveReport(ctx context.Context, objectName string, data []byte) (string, error) {
	if s3client.Client == nil {
		return "", errors.New("S3 клиент не инициализирован")
	}
	bucketName := config.Conf.S3.BucketName
	reader := bytes.NewReader(data)
	_, err := s3client.Client.PutObject(ctx, bucketName, objectName, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения отчета в S3")
	}
	link, err := s3client.Client.PresignedGetObject(ctx, bucketName, objectName, i.linkTTL, url.Values{})
	if err != nil {
		return "", errors.Wrap(err, "ошибка формирования ссылки на отчет")
	}
	return link.String(), nil
}
