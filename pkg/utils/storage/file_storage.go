package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	imageutil "casavista_backend/pkg/utils/image"
)

const (
	MaxFileSize = 10 * 1024 * 1024 // 10MB
	BucketName  = "casavista-images"
	Region      = "eu-central-1"
)

var s3Client *s3.Client

func InitStorage() error {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(Region),
	}

	// Anahtarlar env'de açıkça verilmişse default chain yerine onları kullan
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	return nil
}

// UploadPropertyImage resmi kontrol eder, webp'e çevirir ve yükler
func UploadPropertyImage(file *multipart.FileHeader, propertyID uint) (string, error) {
	if file.Size > MaxFileSize {
		return "", fmt.Errorf("file size too large. Maximum size is %d bytes", MaxFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if !imageutil.AllowedImageTypes[contentType] {
		return "", fmt.Errorf("invalid file type. Allowed types are: jpeg, png, webp")
	}

	buf, outType, err := imageutil.ProcessImage(file)
	if err != nil {
		return "", err
	}

	// Dosya adı: properties/<property_id>/<uuid><ext>
	ext := filepath.Ext(file.Filename)
	if outType == "image/webp" {
		ext = ".webp"
	}
	fileName := fmt.Sprintf("properties/%d/%s%s", propertyID, uuid.NewString(), ext)

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(outType),
	})

	if err != nil {
		return "", fmt.Errorf("could not upload to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", BucketName, Region, fileName), nil
}

// DeleteImage S3'ten resmi siler
func DeleteImage(imageURL string) error {
	// URL'den key'i çıkar
	parts := strings.Split(imageURL, "/")
	key := strings.Join(parts[3:], "/")

	_, err := s3Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(BucketName),
		Key:    aws.String(key),
	})

	return err
}
