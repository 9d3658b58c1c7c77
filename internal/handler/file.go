package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/O-Gamal/FIlePlace/internal/ctxkeys"
	"github.com/O-Gamal/FIlePlace/internal/model"
	"github.com/O-Gamal/FIlePlace/internal/service"
)

type FileHandler struct {
	listingService *service.ListingService
	uploadService  *service.UploadService
	fileService    *service.FileService
	favorites      *service.MarkService
	trash          *service.MarkService
}

func NewFileHandler(
	listingService *service.ListingService,
	uploadService *service.UploadService,
	fileService *service.FileService,
	favorites *service.MarkService,
	trash *service.MarkService,
) *FileHandler {
	return &FileHandler{
		listingService: listingService,
		uploadService:  uploadService,
		fileService:    fileService,
		favorites:      favorites,
		trash:          trash,
	}
}

// List composes the file listing for a scope. Missing authentication or
// authorization is not an error here: the listing degrades to empty.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := r.URL.Query().Get("orgId")
	if orgID == "" {
		writeError(w, fmt.Errorf("%w: orgId is required", service.ErrInvalidInput))
		return
	}

	fileType := r.URL.Query().Get("type")
	if fileType != "" && !model.ValidFileType(fileType) {
		writeError(w, fmt.Errorf("%w: unknown file type %q", service.ErrInvalidInput, fileType))
		return
	}

	query := service.ListQuery{
		Search:        r.URL.Query().Get("q"),
		Type:          fileType,
		FavoritesOnly: r.URL.Query().Get("favorites") == "true",
		TrashOnly:     r.URL.Query().Get("deleted") == "true",
	}

	files, err := h.listingService.List(ctxkeys.User(r.Context()), orgID, query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, files)
}

// UploadURL issues the first phase of the two-phase upload.
func (h *FileHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	target, err := h.uploadService.RequestUploadTarget(ctxkeys.User(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, target)
}

type createFileRequest struct {
	Name        string `json:"name"`
	OrgID       string `json:"orgId"`
	StorageID   string `json:"storageId"`
	ContentType string `json:"contentType"`
}

// Create finalizes an upload by recording file metadata.
func (h *FileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFileRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid JSON body", service.ErrInvalidInput))
		return
	}

	file, err := h.uploadService.Finalize(ctxkeys.User(r.Context()), req.OrgID, req.Name, req.StorageID, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, file)
}

type toggleResponse struct {
	Status service.ToggleResult `json:"status"`
}

// ToggleFavorite stars or unstars a file for the caller.
func (h *FileHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	result, err := h.favorites.Toggle(ctxkeys.User(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{Status: result})
}

// ToggleTrash soft-deletes or restores a file for the caller.
func (h *FileHandler) ToggleTrash(w http.ResponseWriter, r *http.Request) {
	result, err := h.trash.Toggle(ctxkeys.User(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{Status: result})
}

// Delete permanently removes a file's bytes and metadata.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.fileService.PermanentlyDelete(ctxkeys.User(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DownloadURL issues a temporary read URL for a file's bytes.
func (h *FileHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.fileService.DownloadURL(ctxkeys.User(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
