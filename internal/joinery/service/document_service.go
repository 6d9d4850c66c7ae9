package service

import (
	"context"
	"fmt"
	"io"

	"github.com/bitfantasy/joinery/internal/joinery/cache"
	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/store"
	"github.com/bitfantasy/joinery/internal/joinery/validation"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// DocumentService handles project documents. File bytes go to object
// storage; the store keeps a metadata row per document. Without object
// storage uploads and downloads are rejected, metadata reads still work.
type DocumentService struct {
	repo        *repository.DocumentRepository
	qpRepo      *repository.QuoteProjectRepository
	minioClient *minio.Client
	bucket      string
	qc          cache.Store
}

// NewDocumentService creates the document service
func NewDocumentService(repo *repository.DocumentRepository, qpRepo *repository.QuoteProjectRepository, minioClient *minio.Client, bucket string, qc cache.Store) *DocumentService {
	return &DocumentService{repo: repo, qpRepo: qpRepo, minioClient: minioClient, bucket: bucket, qc: qc}
}

// List returns a quote/project's documents, newest first
func (s *DocumentService) List(ctx context.Context, quoteProjectID string) ([]entity.ProjectDocument, error) {
	if _, err := s.qpRepo.FindByID(ctx, quoteProjectID); err != nil {
		return nil, err
	}
	return s.repo.FindByQuoteProject(ctx, quoteProjectID)
}

// Upload stores the file bytes and a metadata row
func (s *DocumentService) Upload(ctx context.Context, quoteProjectID, userID, fileName, contentType string, size int64, r io.Reader) (*entity.ProjectDocument, error) {
	errs := validation.Errors{}
	validation.Required(errs, "file_name", "File name", fileName)
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if s.minioClient == nil {
		return nil, store.ErrUnavailable
	}
	if _, err := s.qpRepo.FindByID(ctx, quoteProjectID); err != nil {
		return nil, err
	}

	doc := &entity.ProjectDocument{
		ID:             uuid.New().String()[:32],
		QuoteProjectID: quoteProjectID,
		FileName:       fileName,
		FileSize:       size,
		ContentType:    contentType,
		UploadedBy:     userID,
	}
	doc.ObjectKey = fmt.Sprintf("%s/%s_%s", quoteProjectID, doc.ID, fileName)

	if _, err := s.minioClient.PutObject(ctx, s.bucket, doc.ObjectKey, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document metadata: %w", err)
	}

	invalidate(ctx, s.qc, TagDocument, doc.ID, "created")
	return doc, nil
}

// Download returns a document's metadata and an object stream. The
// caller closes the stream.
func (s *DocumentService) Download(ctx context.Context, id string) (*entity.ProjectDocument, io.ReadCloser, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.minioClient == nil {
		return nil, nil, store.ErrUnavailable
	}

	obj, err := s.minioClient.GetObject(ctx, s.bucket, doc.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("fetch document: %w", err)
	}
	return doc, obj, nil
}

// Delete removes the metadata row and, when object storage is reachable,
// the stored bytes.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if s.minioClient != nil && doc.ObjectKey != "" {
		// Metadata is the source of truth; a failed object removal
		// leaves an orphan in the bucket, not a broken row.
		_ = s.minioClient.RemoveObject(ctx, s.bucket, doc.ObjectKey, minio.RemoveObjectOptions{})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	invalidate(ctx, s.qc, TagDocument, id, "deleted")
	return nil
}
