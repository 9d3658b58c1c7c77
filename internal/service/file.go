package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/O-Gamal/FIlePlace/internal/model"
	"github.com/O-Gamal/FIlePlace/internal/repository"
	"github.com/O-Gamal/FIlePlace/internal/storage"
	"github.com/O-Gamal/FIlePlace/internal/validation"
)

type FileService struct {
	files   repository.FileRepository
	storage storage.Storage
}

func NewFileService(files repository.FileRepository, storage storage.Storage) *FileService {
	return &FileService{
		files:   files,
		storage: storage,
	}
}

// Create records file metadata within an organization scope. The byte
// payload must already exist under storageID; no verification happens here.
func (s *FileService) Create(user *model.User, orgID, name, storageID, contentType string) (*model.File, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if !HasAccess(user, orgID) {
		return nil, ErrForbidden
	}
	if err := validation.ValidateFileName(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if storageID == "" {
		return nil, fmt.Errorf("%w: storage id is required", ErrInvalidInput)
	}

	file := &model.File{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Type:      model.FileTypeFromContentType(contentType),
		OrgID:     orgID,
		UserID:    user.ID,
		StorageID: storageID,
		CreatedAt: time.Now(),
	}

	err := s.files.Create(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	slog.Info("file created", "file_id", file.ID, "org_id", orgID, "type", file.Type)
	return file, nil
}

// DownloadURL issues a temporary read URL for a file. Treated as a read:
// an unauthorized caller gets ErrNotFound rather than a hint that the file
// exists.
func (s *FileService) DownloadURL(user *model.User, fileID string) (string, error) {
	file, err := s.files.ByID(fileID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get file: %w", err)
	}

	if !HasAccess(user, file.OrgID) {
		return "", ErrNotFound
	}

	url, err := s.storage.PresignDownload(file.StorageID)
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}

	return url, nil
}

// PermanentlyDelete removes the byte payload and then the metadata record.
// The two deletes are not atomic: a crash in between leaves a metadata row
// with a dangling storage reference, matching the byte-first ordering the
// rest of the system already tolerates. A payload that is already gone is
// non-fatal.
func (s *FileService) PermanentlyDelete(user *model.User, fileID string) error {
	if user == nil {
		return ErrUnauthenticated
	}

	file, err := s.files.ByID(fileID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	if !HasAccess(user, file.OrgID) {
		return ErrForbidden
	}

	err = s.storage.Delete(file.StorageID)
	if err != nil {
		slog.Warn("failed to delete byte payload, deleting metadata anyway", "storage_id", file.StorageID, "error", err)
	}

	err = s.files.Delete(fileID)
	if errors.Is(err, repository.ErrFileNotFound) {
		// Another session already deleted it.
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	slog.Info("file permanently deleted", "file_id", fileID, "org_id", file.OrgID)
	return nil
}
