package service

import (
	"errors"
	"fmt"

	"github.com/O-Gamal/FIlePlace/internal/model"
	"github.com/O-Gamal/FIlePlace/internal/repository"
)

type ToggleResult string

const (
	ToggleAdded   ToggleResult = "added"
	ToggleRemoved ToggleResult = "removed"
)

// MarkService toggles one existence-only relation between users and files.
// One instance serves favorites, another trash; restoring a trashed file is
// toggling its trash mark off.
type MarkService struct {
	marks repository.MarkRepository
	files repository.FileRepository
}

func NewMarkService(marks repository.MarkRepository, files repository.FileRepository) *MarkService {
	return &MarkService{
		marks: marks,
		files: files,
	}
}

// Toggle flips the mark for (user, file). The file's own scope decides
// authorization, so the caller cannot smuggle a mark into a foreign scope.
func (s *MarkService) Toggle(user *model.User, fileID string) (ToggleResult, error) {
	if user == nil {
		return "", ErrUnauthenticated
	}

	file, err := s.files.ByID(fileID)
	if errors.Is(err, repository.ErrFileNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get file: %w", err)
	}

	if !HasAccess(user, file.OrgID) {
		return "", ErrForbidden
	}

	added, err := s.marks.Toggle(user.ID, file.OrgID, fileID)
	if err != nil {
		return "", fmt.Errorf("failed to toggle mark: %w", err)
	}

	if added {
		return ToggleAdded, nil
	}
	return ToggleRemoved, nil
}
