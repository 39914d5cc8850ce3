package account

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"warden/internal/domain/agent"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

var emptyDocument = json.RawMessage(`{}`)

// SettingsService stores per-license detection settings. The document is
// opaque to the server; agents interpret it.
type SettingsService struct {
	repo   agent.SettingsRepository
	logger logger.Interface
}

func NewSettingsService(repo agent.SettingsRepository, logger logger.Interface) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns the tenant's document, or {} when none was saved.
func (s *SettingsService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.NewValidationError(errors.CodeMissingLicense, "license is required")
	}
	doc, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Errorw("failed to load detection settings", "license_key", key, "error", err)
		return nil, errors.NewDBError("failed to load settings", err)
	}
	if len(doc) == 0 {
		return emptyDocument, nil
	}
	return doc, nil
}

// Put replaces the tenant's document. It must be a JSON object.
func (s *SettingsService) Put(ctx context.Context, key string, doc json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, errors.NewValidationError(errors.CodeMissingFields, "settings must be a JSON object")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return nil, errors.NewValidationError(errors.CodeMissingFields, "settings must be a JSON object")
	}
	out := json.RawMessage(compact.Bytes())

	if err := s.repo.Upsert(ctx, key, out); err != nil {
		s.logger.Errorw("failed to save detection settings", "license_key", key, "error", err)
		return nil, errors.NewDBError("failed to save settings", err)
	}
	s.logger.Infow("detection settings updated", "license_key", key)
	return out, nil
}
