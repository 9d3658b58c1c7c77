package handler

import (
	"net/http"

	"github.com/O-Gamal/FIlePlace/internal/ctxkeys"
	"github.com/O-Gamal/FIlePlace/internal/service"
)

type UserHandler struct {
	identityService *service.IdentityService
}

func NewUserHandler(identityService *service.IdentityService) *UserHandler {
	return &UserHandler{identityService: identityService}
}

// Me returns the resolved caller record.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		writeError(w, service.ErrUnauthenticated)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Profile returns the public fields of any user record.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.identityService.ByID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"name":  user.Name,
		"image": user.Image,
	})
}
