package publish

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// createS3Client creates an S3 client with the specified region
func createS3Client(region string) (*s3.S3, *s3manager.Uploader, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, nil, err
	}

	svc := s3.New(sess)
	uploader := s3manager.NewUploader(sess)

	return svc, uploader, nil
}

// checkBucketExists checks if the bucket exists in the S3 storage.
func checkBucketExists(svc *s3.S3, bucket string) error {
	_, err := svc.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	return nil
}
