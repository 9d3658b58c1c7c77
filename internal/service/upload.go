package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/O-Gamal/FIlePlace/internal/model"
	"github.com/O-Gamal/FIlePlace/internal/storage"
)

// UploadTarget is the first half of the two-phase upload: a one-time
// writable URL and the storage ID that finalize must echo back.
type UploadTarget struct {
	UploadURL string `json:"uploadUrl"`
	StorageID string `json:"storageId"`
}

// UploadService admits new files in two phases: issue a write target, then
// record metadata once the caller reports the byte upload done. The server
// never sees the bytes and does not verify that the write happened; a
// finalize with a bogus storage ID produces a record pointing at nothing.
type UploadService struct {
	storage storage.Storage
	files   *FileService
}

func NewUploadService(storage storage.Storage, files *FileService) *UploadService {
	return &UploadService{
		storage: storage,
		files:   files,
	}
}

// RequestUploadTarget issues a presigned write target. Requires only
// authentication: the target is not yet bound to a scope or file.
func (s *UploadService) RequestUploadTarget(user *model.User) (*UploadTarget, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}

	storageID := "uploads/" + uuid.New().String()

	url, err := s.storage.PresignUpload(storageID)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &UploadTarget{
		UploadURL: url,
		StorageID: storageID,
	}, nil
}

// Finalize records metadata for bytes the caller already wrote to the
// target from phase one.
func (s *UploadService) Finalize(user *model.User, orgID, name, storageID, contentType string) (*model.File, error) {
	return s.files.Create(user, orgID, name, storageID, contentType)
}
