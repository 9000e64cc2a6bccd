package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"hr-recruitment-backend/config"
)

type Provider interface {
	UploadResume(ctx context.Context, spaceID, applyID string, body []byte, fileName string) (path string, err error)
	GetFile(ctx context.Context, path string) ([]byte, error)
}

var Instance Provider

type impl struct {
	s3client *minio.Client
}

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

func (i impl) UploadResume(ctx context.Context, spaceID, applyID string, body []byte, fileName string) (string, error) {
	if i.s3client == nil {
		return "", errors.New("файловое хранилище не настроено")
	}
	path := fmt.Sprintf("%s/resume/%s/%s", spaceID, applyID, fileName)
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.Bucket, path, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки резюме в хранилище")
	}
	return path, nil
}

func (i impl) GetFile(ctx context.Context, path string) ([]byte, error) {
	if i.s3client == nil {
		return nil, errors.New("файловое хранилище не настроено")
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.Bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return body, nil
}
