package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"arrivals-board/internal/domain/entity"
	"arrivals-board/internal/domain/repository"
	"arrivals-board/pkg/logger"
)

// PushNotifierRepository delivers delay notifications to an external push
// service over HTTP. An empty endpoint means the capability is absent on
// this host and every operation degrades to a no-op.
type PushNotifierRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewPushNotifierRepository creates a new push notifier repository
func NewPushNotifierRepository(baseURL, bearerToken string, logger logger.Logger) repository.NotifierRepository {
	return &PushNotifierRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// RequestPermission probes the push service once at session start. The
// probe is best-effort: an absent endpoint reports denied, an unreachable
// service reports default.
func (r *PushNotifierRepository) RequestPermission(ctx context.Context) entity.PermissionState {
	if r.baseURL == "" {
		r.logger.Info("Push endpoint not configured, notifications disabled")
		return entity.PermissionDenied
	}

	url := fmt.Sprintf("%s/api/v1/permission", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return entity.PermissionDefault
	}
	req.Header.Set("Authorization", "Bearer "+r.bearerToken)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("Push permission probe failed", "error", err)
		return entity.PermissionDefault
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return entity.PermissionDenied
	}
	if resp.StatusCode != http.StatusOK {
		return entity.PermissionDefault
	}

	var response struct {
		Permission entity.PermissionState `json:"permission"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return entity.PermissionDefault
	}

	r.logger.Info("Push permission resolved", "permission", response.Permission)
	return response.Permission
}

// Send posts one notification to the push service
func (r *PushNotifierRepository) Send(ctx context.Context, notification *entity.Notification) error {
	if r.baseURL == "" {
		return fmt.Errorf("push endpoint is not configured")
	}

	jsonData, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/notifications/push", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("push service returned status %d: %v", resp.StatusCode, errorBody)
	}

	r.logger.Info("Notification dispatched",
		"title", notification.Title)

	return nil
}
