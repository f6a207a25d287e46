// Package service implements document storage on MinIO with metadata in
// Postgres.
package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"leasewell_backend/internal/documents/repository"
	"leasewell_backend/platform/apperr"
	"leasewell_backend/platform/httpkit"
	"leasewell_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

const presignedURLTTL = 15 * time.Minute

// UploadInput carries the file and its metadata.
type UploadInput struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	Content     io.Reader
	PropertyID  *uuid.UUID
	LeaseID     *uuid.UUID
}

// Service implements document use cases.
type Service struct {
	repo        *repository.Repository
	store       *minio.Client
	bucket      string
	maxFileSize int64
	log         *logger.Logger
}

// New creates a new documents service.
func New(repo *repository.Repository, store *minio.Client, bucket string, maxFileSize int64, log *logger.Logger) *Service {
	return &Service{repo: repo, store: store, bucket: bucket, maxFileSize: maxFileSize, log: log}
}

// EnsureBucket creates the documents bucket if it does not exist yet.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// Upload stores the file in the bucket keyed by owner and records its
// metadata. The object is removed again if the metadata insert fails.
func (s *Service) Upload(ctx context.Context, id httpkit.Identity, input UploadInput) (repository.Document, error) {
	if input.SizeBytes <= 0 {
		return repository.Document{}, apperr.Validation("empty file")
	}
	if input.SizeBytes > s.maxFileSize {
		return repository.Document{}, apperr.Validation(fmt.Sprintf("file exceeds the %d byte limit", s.maxFileSize))
	}

	objectKey := fmt.Sprintf("%s/%s%s", id.UserID(), uuid.New(), path.Ext(input.FileName))

	_, err := s.store.PutObject(ctx, s.bucket, objectKey, input.Content, input.SizeBytes,
		minio.PutObjectOptions{ContentType: input.ContentType})
	if err != nil {
		return repository.Document{}, apperr.Wrap(apperr.KindUpstream, "object upload failed", err)
	}

	doc, err := s.repo.Create(ctx, repository.CreateParams{
		OwnerID:     id.UserID(),
		PropertyID:  input.PropertyID,
		LeaseID:     input.LeaseID,
		FileName:    input.FileName,
		ObjectKey:   objectKey,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
	})
	if err != nil {
		if rmErr := s.store.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); rmErr != nil {
			s.log.Warn("orphaned object cleanup failed", "objectKey", objectKey, "error", rmErr)
		}
		return repository.Document{}, err
	}

	s.log.Info("document uploaded", "documentId", doc.ID, "sizeBytes", doc.SizeBytes)
	return doc, nil
}

// List returns the caller's documents.
func (s *Service) List(ctx context.Context, id httpkit.Identity) ([]repository.Document, error) {
	return s.repo.ListByOwner(ctx, id.UserID())
}

// DownloadURL returns a presigned URL for the caller's document.
func (s *Service) DownloadURL(ctx context.Context, id httpkit.Identity, documentID uuid.UUID) (string, error) {
	doc, err := s.repo.GetByID(ctx, documentID, id.UserID())
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.FileName))

	presigned, err := s.store.PresignedGetObject(ctx, s.bucket, doc.ObjectKey, presignedURLTTL, params)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "failed to presign download", err)
	}
	return presigned.String(), nil
}

// Delete removes the caller's document and its stored object.
func (s *Service) Delete(ctx context.Context, id httpkit.Identity, documentID uuid.UUID) error {
	doc, err := s.repo.GetByID(ctx, documentID, id.UserID())
	if err != nil {
		return err
	}

	if err := s.store.RemoveObject(ctx, s.bucket, doc.ObjectKey, minio.RemoveObjectOptions{}); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "object delete failed", err)
	}
	return s.repo.Delete(ctx, documentID, id.UserID())
}
