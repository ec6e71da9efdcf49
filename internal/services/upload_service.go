package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"ecosync-hub/internal/storage"
	ecosync_errors "ecosync-hub/pkg/errors"

	"github.com/google/uuid"
)

// UploadService issues presigned PUT URLs so clients push product and
// avatar images straight to the bucket. Nothing is tracked server side;
// the returned file URL goes into the product or profile row.
type UploadService struct {
	storage *storage.Client
}

func NewUploadService(st *storage.Client) *UploadService {
	return &UploadService{storage: st}
}

type PresignInput struct {
	UploaderID  uint
	FileName    string
	ContentType string
	FileSize    int64
}

type PresignResult struct {
	UploadURL string            `json:"upload_url"`
	UploadKey string            `json:"upload_key"`
	FileURL   string            `json:"file_url,omitempty"`
	Headers   map[string]string `json:"headers"`
}

func (s *UploadService) PresignImageUpload(ctx context.Context, in PresignInput) (PresignResult, error) {
	if s.storage == nil {
		return PresignResult{}, errors.New("s3 storage is not configured")
	}
	if in.UploaderID == 0 || in.FileName == "" || in.ContentType == "" || in.FileSize <= 0 {
		return PresignResult{}, ecosync_errors.ErrInvalidInput
	}
	if err := s.storage.ValidateContentType(in.ContentType); err != nil {
		return PresignResult{}, ecosync_errors.ErrInvalidInput
	}

	key := buildObjectKey(in.UploaderID, in.FileName)
	uploadURL, headers, err := s.storage.PresignPut(ctx, key, in.ContentType, in.FileSize)
	if err != nil {
		return PresignResult{}, err
	}

	return PresignResult{
		UploadURL: uploadURL,
		UploadKey: key,
		FileURL:   s.storage.FileURL(key),
		Headers:   headers,
	}, nil
}

func buildObjectKey(uploaderID uint, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := fmt.Sprintf("images/%d/%s", uploaderID, uuid.NewString())
	if ext == "" {
		return base
	}
	return base + ext
}
