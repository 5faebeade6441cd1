// Package publish uploads exported stopwatch files to S3.
package publish

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	log "github.com/sirupsen/logrus"
)

const DefaultPrefix = "stopwatch"

type Config struct {
	Bucket string
	Region string
	Prefix string
	DryRun bool
	// Metadata is attached to every uploaded object.
	Metadata map[string]string
}

// Validate checks the required settings.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket name is required")
	}
	if c.Region == "" {
		return fmt.Errorf("bucket region is required")
	}
	return nil
}

// ObjectKey returns the object key for a local file: the file name under prefix.
func ObjectKey(prefix, filePath string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return filepath.Base(filePath)
	}
	return path.Join(prefix, filepath.Base(filePath))
}

// Upload sends every file to the bucket and returns the uploaded object URIs.
// In dry-run mode nothing is sent and no AWS session is created.
func Upload(cfg *Config, files []string) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to publish")
	}

	var uploader *s3manager.Uploader
	if !cfg.DryRun {
		svc, up, err := createS3Client(cfg.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := checkBucketExists(svc, cfg.Bucket); err != nil {
			return nil, err
		}
		uploader = up
	}

	uris := make([]string, 0, len(files))
	for _, file := range files {
		key := ObjectKey(cfg.Prefix, file)
		s3ObjectURI := "s3://" + cfg.Bucket + "/" + key
		uris = append(uris, s3ObjectURI)

		if cfg.DryRun {
			log.Warnf("DRY-RUN mode: skipping upload of %s to %s", file, s3ObjectURI)
			continue
		}
		if err := uploadFile(uploader, cfg, file, key); err != nil {
			return nil, err
		}
		log.Info("Published successfully to ", s3ObjectURI)
	}
	return uris, nil
}

func uploadFile(uploader *s3manager.Uploader, cfg *Config, file, key string) error {
	log.Debugf("Upload(): opening file %s", file)
	fd, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", file, err)
	}
	defer fd.Close()

	input := &s3manager.UploadInput{
		Bucket: aws.String(cfg.Bucket),
		Key:    aws.String(key),
		Body:   fd,
	}
	if len(cfg.Metadata) > 0 {
		input.Metadata = aws.StringMap(cfg.Metadata)
	}
	log.Debugf("Upload(): uploading to object %s", key)
	if _, err := uploader.Upload(input); err != nil {
		return fmt.Errorf("failed to upload file %s to bucket %s: %w", file, cfg.Bucket, err)
	}
	return nil
}
