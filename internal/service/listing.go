package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/O-Gamal/FIlePlace/internal/model"
	"github.com/O-Gamal/FIlePlace/internal/repository"
	"github.com/O-Gamal/FIlePlace/internal/storage"
)

// ListQuery carries the view parameters the UI may combine freely.
type ListQuery struct {
	Search        string
	Type          string
	FavoritesOnly bool
	TrashOnly     bool
}

// AnnotatedFile is a file plus the per-caller membership flags the UI needs
// to render star and trash state, and a temporary read URL for the bytes.
type AnnotatedFile struct {
	model.File
	IsFavorite bool   `json:"isFavorite"`
	IsDeleted  bool   `json:"isDeleted"`
	URL        string `json:"url"`
}

// ListingService composes the file listing from the scope's files and the
// caller's favorite and trash sets. The sets are sparsely related: there is
// no pre-joined index, so membership is resolved through lookup tables built
// per call.
type ListingService struct {
	files     repository.FileRepository
	favorites repository.MarkRepository
	trash     repository.MarkRepository
	storage   storage.Storage
}

func NewListingService(files repository.FileRepository, favorites, trash repository.MarkRepository, storage storage.Storage) *ListingService {
	return &ListingService{
		files:     files,
		favorites: favorites,
		trash:     trash,
		storage:   storage,
	}
}

// List returns the filtered, annotated files for a scope. Authorization
// failures and unauthenticated callers degrade to an empty listing: the
// caller learns nothing about what a foreign scope holds.
func (s *ListingService) List(user *model.User, orgID string, q ListQuery) ([]AnnotatedFile, error) {
	if !HasAccess(user, orgID) {
		return []AnnotatedFile{}, nil
	}

	files, err := s.files.ByOrg(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	if q.Search != "" {
		search := strings.ToLower(q.Search)
		kept := files[:0]
		for _, f := range files {
			if strings.Contains(strings.ToLower(f.Name), search) {
				kept = append(kept, f)
			}
		}
		files = kept
	}

	trashed, err := s.markSet(s.trash, user.ID, orgID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.markSet(s.favorites, user.ID, orgID)
	if err != nil {
		return nil, err
	}

	// Marks whose file no longer resolves are dangling leftovers from a
	// crash mid-deletion; iterating files rather than marks filters them
	// out here without a sweep.
	result := make([]AnnotatedFile, 0, len(files))
	for _, f := range files {
		inTrash := trashed[f.ID]

		if q.TrashOnly {
			if !inTrash {
				continue
			}
		} else {
			// Trashed files never appear in normal or favorites views.
			if inTrash {
				continue
			}
			if q.FavoritesOnly && !favorites[f.ID] {
				continue
			}
		}

		if q.Type != "" && f.Type != q.Type {
			continue
		}

		// A presign failure degrades the row to no URL rather than
		// failing the whole listing.
		url, err := s.storage.PresignDownload(f.StorageID)
		if err != nil {
			slog.Warn("failed to presign download for listing", "file_id", f.ID, "error", err)
			url = ""
		}

		result = append(result, AnnotatedFile{
			File:       *f,
			IsFavorite: favorites[f.ID],
			IsDeleted:  inTrash,
			URL:        url,
		})
	}

	return result, nil
}

func (s *ListingService) markSet(repo repository.MarkRepository, userID, orgID string) (map[string]bool, error) {
	marks, err := repo.ForUserOrg(userID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list marks: %w", err)
	}

	set := make(map[string]bool, len(marks))
	for _, m := range marks {
		set[m.FileID] = true
	}
	return set, nil
}
