// db/minio.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"

	logger "github.com/campusweb/mediagate/logging"
)

var MinioClient *minio.Client

func InitMinio() error {
	client, err := minio.New(viper.GetString("minio.endpoint"), &minio.Options{
		Creds: credentials.NewStaticV4(
			viper.GetString("minio.accessKey"),
			viper.GetString("minio.secretKey"),
			"",
		),
		Secure: viper.GetBool("minio.useSSL"),
	})
	if err != nil {
		return fmt.Errorf("failed to create object storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bucket := viper.GetString("minio.bucket")
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to reach object storage: %w", err)
	}
	if !exists {
		return fmt.Errorf("media bucket %q does not exist", bucket)
	}

	MinioClient = client
	logger.Info("Successfully connected to object storage")
	return nil
}
