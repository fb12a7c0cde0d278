// Package media wraps the S3-compatible image host. Uploads use a signed-URL
// handshake: the client asks for a presigned PUT, uploads directly to the
// host, then registers the returned key with the API.
package media

import (
	"context"
	"log"
	"time"

	appconfig "linkfolio/backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var client *s3.Client

// Init builds the S3 client from the application configuration. Must be
// called after config.LoadConfig.
func Init() {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(appconfig.AppConfig.AWSRegion))
	if err != nil {
		log.Fatalf("Failed to configure media host client: %v", err)
	}
	client = s3.NewFromConfig(cfg)
}

// GenerateUploadURL returns a presigned PUT URL and the object key the client
// must upload to. The key is prefixed per upload with a fresh UUID so names
// never collide.
func GenerateUploadURL(fileName, fileType string) (string, string, error) {
	key := "uploads/" + uuid.NewString() + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(appconfig.AppConfig.MediaBucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(client)
	presignedURL, err := presigner.PresignPutObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presignedURL.URL, key, nil
}

// GenerateReadURL returns a presigned GET URL for an object key.
func GenerateReadURL(key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(appconfig.AppConfig.MediaBucket),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(client)
	presignedURL, err := presigner.PresignGetObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}
