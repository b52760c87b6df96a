package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ammahealth/explainer-backend/internal/domain/providers"
	s3client "github.com/ammahealth/explainer-backend/internal/infrastructure/clients/s3"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
)

// S3Store persists objects to an S3 bucket.
type S3Store struct {
	client    *s3client.Client
	publicURL string
}

// NewS3Store creates a new S3 object store. publicURL overrides the derived
// bucket URL when the bucket is fronted by a CDN.
func NewS3Store(client *s3client.Client, publicURL string) providers.ObjectStore {
	return &S3Store{
		client:    client,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Put uploads the object and returns its public URL.
func (s *S3Store) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	_, err := s.client.API().PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.client.Bucket()),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to upload %s to s3", name), err)
	}

	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, name), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.client.Bucket(), s.client.Region(), name), nil
}
