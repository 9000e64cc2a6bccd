package s3client

import (
	"context"

	"github.com/minio/minio-go/v7"

	"hr-recruitment-backend/config"
)

var Client *minio.Client

// MakeBucket - создать рабочую корзину, если ее еще нет
func MakeBucket(ctx context.Context) error {
	bucketName := config.Conf.S3.Bucket
	location := "us-east-1"
	exists, err := Client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
}
