// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/i18n"
)

// LocalURLPrefix is where locally stored uploads are served from.
const LocalURLPrefix = "/uploads"

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type StorageService struct {
	s3Client *s3.S3
	aws      config.AWSConfig
	upload   config.UploadConfig
}

type UploadResult struct {
	Image string `json:"image"`
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	s := &StorageService{aws: cfg.AWS, upload: cfg.Upload}

	if cfg.AWS.AccessKeyID == "" {
		// Store on local disk for development
		if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
		return s, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	s.s3Client = s3.New(sess)
	return s, nil
}

// SaveImage validates an uploaded image by extension, size and content and
// stores it. The returned reference is what products keep in their image field.
func (s *StorageService) SaveImage(ctx context.Context, filename string, size int64, r io.Reader) (*UploadResult, error) {
	if s.upload.MaxBytes > 0 && size > s.upload.MaxBytes {
		return nil, apperror.New(apperror.ErrValidation, i18n.KeyUploadTooLarge, s.upload.MaxBytes)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	wantType, ok := allowedImageTypes[ext]
	if !ok {
		return nil, apperror.Validation(i18n.KeyUploadInvalidType)
	}

	limit := s.upload.MaxBytes
	if limit <= 0 {
		limit = size
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, apperror.New(apperror.ErrValidation, i18n.KeyUploadTooLarge, limit)
	}

	// The content must agree with the extension.
	detected := mimetype.Detect(data)
	if !detected.Is(wantType) {
		logrus.WithFields(logrus.Fields{
			"filename": filename,
			"detected": detected.String(),
		}).Warn("Rejected upload with mismatching content")
		return nil, apperror.Validation(i18n.KeyUploadInvalidType)
	}

	key := s.generateFileName(ext)

	// Upload to S3 or local storage
	if s.s3Client != nil {
		return s.uploadToS3(ctx, data, key, wantType)
	}
	return s.uploadToLocal(data, key)
}

func (s *StorageService) uploadToS3(ctx context.Context, data []byte, key, contentType string) (*UploadResult, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.aws.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{Image: s.getS3URL(key)}, nil
}

func (s *StorageService) uploadToLocal(data []byte, key string) (*UploadResult, error) {
	path := filepath.Join(s.upload.Dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	return &UploadResult{Image: LocalURLPrefix + "/" + key}, nil
}

func (s *StorageService) generateFileName(ext string) string {
	// Create filename with timestamp and UUID
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("image-%s-%s%s", timestamp, uuid.NewString()[:8], ext)
}

func (s *StorageService) getS3URL(key string) string {
	if s.aws.PublicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.aws.PublicURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.aws.S3Bucket, s.aws.Region, key)
}
