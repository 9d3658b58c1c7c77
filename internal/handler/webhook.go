package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/O-Gamal/FIlePlace/internal/service"
)

// WebhookHandler mirrors identity-provider lifecycle events into local user
// records. The provider redelivers events on failure, so every branch is
// idempotent.
type WebhookHandler struct {
	identityService *service.IdentityService
	issuer          string
	secret          string
}

func NewWebhookHandler(identityService *service.IdentityService, issuer, secret string) *WebhookHandler {
	return &WebhookHandler{
		identityService: identityService,
		issuer:          issuer,
		secret:          secret,
	}
}

type webhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type webhookUser struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	ImageURL  string  `json:"image_url"`
}

type webhookMembership struct {
	Organization struct {
		ID string `json:"id"`
	} `json:"organization"`
	PublicUserData struct {
		UserID string `json:"user_id"`
	} `json:"public_user_data"`
}

func (h *WebhookHandler) Identity(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	err = h.verify(payload, r.Header)
	if err != nil {
		slog.Warn("identity webhook signature rejected", "error", err)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	var event webhookEvent
	err = json.Unmarshal(payload, &event)
	if err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	slog.Info("identity webhook received", "event_type", event.Type)

	err = h.handleEvent(event)
	if err != nil {
		slog.Error("identity webhook failed", "event_type", event.Type, "error", err)
		http.Error(w, "webhook error", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) handleEvent(event webhookEvent) error {
	switch event.Type {
	case "user.created":
		var data webhookUser
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return fmt.Errorf("failed to parse user data: %w", err)
		}
		return h.identityService.HandleUserCreated(h.tokenIdentifier(data.ID), displayName(data), data.ImageURL)

	case "user.updated":
		var data webhookUser
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return fmt.Errorf("failed to parse user data: %w", err)
		}
		return h.identityService.HandleUserUpdated(h.tokenIdentifier(data.ID), displayName(data), data.ImageURL)

	case "organizationMembership.created":
		var data webhookMembership
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return fmt.Errorf("failed to parse membership data: %w", err)
		}
		return h.identityService.HandleOrgMembershipCreated(
			h.tokenIdentifier(data.PublicUserData.UserID),
			data.Organization.ID,
		)

	default:
		slog.Warn("identity webhook unknown event type", "event_type", event.Type)
		return nil
	}
}

func (h *WebhookHandler) verify(payload []byte, headers http.Header) error {
	if h.secret == "" {
		slog.Warn("identity webhook no secret configured, skipping signature verification")
		return nil
	}

	wh, err := standardwebhooks.NewWebhookRaw([]byte(h.secret))
	if err != nil {
		return fmt.Errorf("failed to create webhook verifier: %w", err)
	}

	// The identity provider sends svix-prefixed headers; normalize to the
	// standard-webhooks names the verifier expects.
	normalized := http.Header{}
	normalized.Set("webhook-id", headerAny(headers, "webhook-id", "svix-id"))
	normalized.Set("webhook-timestamp", headerAny(headers, "webhook-timestamp", "svix-timestamp"))
	normalized.Set("webhook-signature", headerAny(headers, "webhook-signature", "svix-signature"))

	err = wh.Verify(payload, normalized)
	if err != nil {
		return fmt.Errorf("invalid webhook signature: %w", err)
	}

	return nil
}

func headerAny(headers http.Header, names ...string) string {
	for _, name := range names {
		if v := headers.Get(name); v != "" {
			return v
		}
	}
	return ""
}

func (h *WebhookHandler) tokenIdentifier(subject string) string {
	return h.issuer + "|" + subject
}

func displayName(u webhookUser) string {
	first := "Unknown user"
	if u.FirstName != nil {
		first = *u.FirstName
	}
	last := ""
	if u.LastName != nil {
		last = *u.LastName
	}
	return strings.TrimSpace(first + " " + last)
}
