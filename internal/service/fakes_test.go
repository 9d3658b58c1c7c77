package service

import (
	"fmt"
	"time"

	"github.com/O-Gamal/FIlePlace/internal/model"
	"github.com/O-Gamal/FIlePlace/internal/repository"
)

// --- shared test doubles ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newUser(tokenIdentifier string, orgIDs ...string) *model.User {
	return &model.User{
		ID:              "user-" + tokenIdentifier,
		TokenIdentifier: tokenIdentifier,
		Name:            "Test User",
		OrgIDs:          orgIDs,
		CreatedAt:       time.Now(),
	}
}

type fakeUserRepo struct {
	byToken map[string]*model.User
	byID    map[string]*model.User

	created    []*model.User
	createErr  error
	updated    map[string][2]string // tokenIdentifier -> (name, image)
	orgUpdates map[string]model.OrgIDs
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{
		byToken:    map[string]*model.User{},
		byID:       map[string]*model.User{},
		updated:    map[string][2]string{},
		orgUpdates: map[string]model.OrgIDs{},
	}
	for _, u := range users {
		r.byToken[u.TokenIdentifier] = u
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byToken[user.TokenIdentifier]; ok {
		return repository.ErrUserExists
	}
	r.created = append(r.created, user)
	r.byToken[user.TokenIdentifier] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ByID(id string) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ByTokenIdentifier(tokenIdentifier string) (*model.User, error) {
	u, ok := r.byToken[tokenIdentifier]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) UpdateProfile(tokenIdentifier, name, image string) error {
	u, ok := r.byToken[tokenIdentifier]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Name, u.Image = name, image
	r.updated[tokenIdentifier] = [2]string{name, image}
	return nil
}

func (r *fakeUserRepo) UpdateOrgIDs(id string, orgIDs model.OrgIDs) error {
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.OrgIDs = orgIDs
	r.orgUpdates[id] = orgIDs
	return nil
}

type fakeFileRepo struct {
	files map[string]*model.File
	order []string

	createErr error
	listErr   error
	deleted   []string
}

func newFakeFileRepo(files ...*model.File) *fakeFileRepo {
	r := &fakeFileRepo{files: map[string]*model.File{}}
	for _, f := range files {
		r.files[f.ID] = f
		r.order = append(r.order, f.ID)
	}
	return r
}

func (r *fakeFileRepo) Create(file *model.File) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.files[file.ID] = file
	r.order = append(r.order, file.ID)
	return nil
}

func (r *fakeFileRepo) ByID(id string) (*model.File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, repository.ErrFileNotFound
	}
	return f, nil
}

func (r *fakeFileRepo) ByOrg(orgID string) ([]*model.File, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var files []*model.File
	for _, id := range r.order {
		f, ok := r.files[id]
		if ok && f.OrgID == orgID {
			files = append(files, f)
		}
	}
	return files, nil
}

func (r *fakeFileRepo) Delete(id string) error {
	if _, ok := r.files[id]; !ok {
		return repository.ErrFileNotFound
	}
	delete(r.files, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeMarkRepo struct {
	marks     map[string]bool // userID|orgID|fileID
	toggleErr error
}

func newFakeMarkRepo() *fakeMarkRepo {
	return &fakeMarkRepo{marks: map[string]bool{}}
}

func (r *fakeMarkRepo) key(userID, orgID, fileID string) string {
	return userID + "|" + orgID + "|" + fileID
}

func (r *fakeMarkRepo) set(userID, orgID, fileID string) {
	r.marks[r.key(userID, orgID, fileID)] = true
}

func (r *fakeMarkRepo) Toggle(userID, orgID, fileID string) (bool, error) {
	if r.toggleErr != nil {
		return false, r.toggleErr
	}
	k := r.key(userID, orgID, fileID)
	if r.marks[k] {
		delete(r.marks, k)
		return false, nil
	}
	r.marks[k] = true
	return true, nil
}

func (r *fakeMarkRepo) ForUserOrg(userID, orgID string) ([]*model.Mark, error) {
	var marks []*model.Mark
	prefix := userID + "|" + orgID + "|"
	for k := range r.marks {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			marks = append(marks, &model.Mark{
				UserID: userID,
				OrgID:  orgID,
				FileID: k[len(prefix):],
			})
		}
	}
	return marks, nil
}

type fakeStorage struct {
	deleted    []string
	deleteErr  error
	presignErr error
}

func (s *fakeStorage) PresignUpload(storageID string) (string, error) {
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return fmt.Sprintf("https://store.test/upload/%s", storageID), nil
}

func (s *fakeStorage) PresignDownload(storageID string) (string, error) {
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return fmt.Sprintf("https://store.test/download/%s", storageID), nil
}

func (s *fakeStorage) Delete(storageID string) error {
	s.deleted = append(s.deleted, storageID)
	return s.deleteErr
}
