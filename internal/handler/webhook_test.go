package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/O-Gamal/FIlePlace/internal/model"
	"github.com/O-Gamal/FIlePlace/internal/repository"
	"github.com/O-Gamal/FIlePlace/internal/service"
)

const testWebhookSecret = "whsec-test-secret"

type memUserRepo struct {
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(user *model.User) error {
	if _, ok := r.users[user.TokenIdentifier]; ok {
		return repository.ErrUserExists
	}
	r.users[user.TokenIdentifier] = user
	return nil
}

func (r *memUserRepo) ByID(id string) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) ByTokenIdentifier(tokenIdentifier string) (*model.User, error) {
	u, ok := r.users[tokenIdentifier]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) UpdateProfile(tokenIdentifier, name, image string) error {
	u, ok := r.users[tokenIdentifier]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Name, u.Image = name, image
	return nil
}

func (r *memUserRepo) UpdateOrgIDs(id string, orgIDs model.OrgIDs) error {
	for _, u := range r.users {
		if u.ID == id {
			u.OrgIDs = orgIDs
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func signedRequest(t *testing.T, payload string) *http.Request {
	t.Helper()

	wh, err := standardwebhooks.NewWebhookRaw([]byte(testWebhookSecret))
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}

	now := time.Now()
	signature, err := wh.Sign("msg_1", now, []byte(payload))
	if err != nil {
		t.Fatalf("failed to sign payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewBufferString(payload))
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", fmt.Sprintf("%d", now.Unix()))
	req.Header.Set("svix-signature", signature)
	return req
}

func newWebhookHandler(repo repository.UserRepository) *WebhookHandler {
	return NewWebhookHandler(service.NewIdentityService(repo), "https://id.test", testWebhookSecret)
}

func TestIdentityWebhook_UserCreated(t *testing.T) {
	repo := newMemUserRepo()
	h := newWebhookHandler(repo)

	payload := `{"type":"user.created","data":{"id":"user_1","first_name":"Ada","last_name":"Lovelace","image_url":"https://img.test/a.png"}}`
	rec := httptest.NewRecorder()
	h.Identity(rec, signedRequest(t, payload))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	user, err := repo.ByTokenIdentifier("https://id.test|user_1")
	if err != nil {
		t.Fatalf("user not provisioned: %v", err)
	}
	if user.Name != "Ada Lovelace" {
		t.Fatalf("name = %q, want %q", user.Name, "Ada Lovelace")
	}
}

func TestIdentityWebhook_UserCreatedMissingNames(t *testing.T) {
	repo := newMemUserRepo()
	h := newWebhookHandler(repo)

	payload := `{"type":"user.created","data":{"id":"user_1","image_url":""}}`
	rec := httptest.NewRecorder()
	h.Identity(rec, signedRequest(t, payload))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	user, _ := repo.ByTokenIdentifier("https://id.test|user_1")
	if user.Name != "Unknown user" {
		t.Fatalf("name = %q, want %q", user.Name, "Unknown user")
	}
}

func TestIdentityWebhook_OrgMembershipCreated(t *testing.T) {
	repo := newMemUserRepo()
	h := newWebhookHandler(repo)

	created := `{"type":"user.created","data":{"id":"user_1","first_name":"Ada"}}`
	rec := httptest.NewRecorder()
	h.Identity(rec, signedRequest(t, created))
	if rec.Code != http.StatusOK {
		t.Fatalf("user.created status = %d", rec.Code)
	}

	membership := `{"type":"organizationMembership.created","data":{"organization":{"id":"org_a"},"public_user_data":{"user_id":"user_1"}}}`
	for i := 0; i < 2; i++ { // redelivery must be a no-op
		rec = httptest.NewRecorder()
		h.Identity(rec, signedRequest(t, membership))
		if rec.Code != http.StatusOK {
			t.Fatalf("membership status = %d", rec.Code)
		}
	}

	user, _ := repo.ByTokenIdentifier("https://id.test|user_1")
	if len(user.OrgIDs) != 1 || user.OrgIDs[0] != "org_a" {
		t.Fatalf("org memberships = %v, want [org_a]", user.OrgIDs)
	}
}

func TestIdentityWebhook_BadSignature(t *testing.T) {
	h := newWebhookHandler(newMemUserRepo())

	payload := `{"type":"user.created","data":{"id":"user_1"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewBufferString(payload))
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", fmt.Sprintf("%d", time.Now().Unix()))
	req.Header.Set("svix-signature", "v1,bm90LWEtcmVhbC1zaWduYXR1cmU=")

	rec := httptest.NewRecorder()
	h.Identity(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestIdentityWebhook_UnknownEventTypeIsAccepted(t *testing.T) {
	h := newWebhookHandler(newMemUserRepo())

	payload := `{"type":"session.created","data":{}}`
	rec := httptest.NewRecorder()
	h.Identity(rec, signedRequest(t, payload))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
