// Package ban records player bans reported by agents and lifts them on
// behalf of dashboard users.
package ban

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"warden/internal/application/command"
	"warden/internal/application/identity"
	"warden/internal/domain/agent"
	"warden/internal/domain/ban"
	"warden/internal/infrastructure/blob"
	"warden/internal/shared/biztime"
	"warden/internal/shared/errors"
	"warden/internal/shared/id"
	"warden/internal/shared/logger"
)

var dataURIPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// CreateCommand is a ban reported by an agent. ExpiresAt, when set, wins
// over Duration. CreatedAt lets agents report a ban they issued earlier;
// Duration offsets still count from the time of recording.
type CreateCommand struct {
	BanID       string
	LicenseKey  string
	PlayerID    string
	Reason      string
	Duration    string
	ExpiresAt   *time.Time
	BannedBy    string
	EvidenceURL *string
	CreatedAt   *time.Time
	Identifiers []string
}

// CheckResult is the answer to "is any of these identifiers banned".
type CheckResult struct {
	Banned bool
	Ban    *ban.Ban
}

type Service struct {
	repo           ban.Repository
	queue          *command.Queue
	resolver       *identity.Resolver
	blobs          blob.Store
	evidenceBucket string
	legacyUnban    bool
	now            biztime.Clock
	logger         logger.Interface
}

func NewService(
	repo ban.Repository,
	queue *command.Queue,
	resolver *identity.Resolver,
	blobs blob.Store,
	evidenceBucket string,
	legacyUnban bool,
	logger logger.Interface,
) *Service {
	if evidenceBucket == "" {
		evidenceBucket = "evidence"
	}
	return &Service{
		repo:           repo,
		queue:          queue,
		resolver:       resolver,
		blobs:          blobs,
		evidenceBucket: evidenceBucket,
		legacyUnban:    legacyUnban,
		now:            biztime.NowUTC,
		logger:         logger,
	}
}

// SetClock replaces the time source.
func (s *Service) SetClock(c biztime.Clock) {
	s.now = c
}

// Create stores a new ban and returns it.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*ban.Ban, error) {
	key := strings.TrimSpace(cmd.LicenseKey)
	playerID := strings.TrimSpace(cmd.PlayerID)
	if key == "" || playerID == "" {
		return nil, errors.NewValidationError(errors.CodeMissingFields, "license_key and player_id are required")
	}

	now := s.now()
	banID := strings.TrimSpace(cmd.BanID)
	if banID == "" {
		banID = id.NewBanID(now)
	}
	expiresAt := cmd.ExpiresAt
	if expiresAt == nil {
		expiresAt = ban.ParseExpiry(cmd.Duration, now)
	}
	createdAt := now
	if cmd.CreatedAt != nil && !cmd.CreatedAt.IsZero() {
		createdAt = cmd.CreatedAt.UTC()
	}
	var evidenceURL *string
	if cmd.EvidenceURL != nil && strings.TrimSpace(*cmd.EvidenceURL) != "" {
		v := strings.TrimSpace(*cmd.EvidenceURL)
		evidenceURL = &v
	}

	b := &ban.Ban{
		BanID:       banID,
		LicenseKey:  key,
		PlayerID:    playerID,
		Reason:      cmd.Reason,
		Duration:    cmd.Duration,
		CreatedAt:   createdAt,
		ExpiresAt:   expiresAt,
		BannedBy:    cmd.BannedBy,
		EvidenceURL: evidenceURL,
		Identifiers: ban.NormalizeIdentifiers(cmd.Identifiers),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Errorw("failed to create ban", "ban_id", banID, "license_key", key, "error", err)
		return nil, errors.NewDBError("failed to create ban", err)
	}

	s.logger.Infow("ban recorded",
		"ban_id", banID,
		"license_key", key,
		"player_id", playerID,
		"permanent", b.IsPermanent(),
	)
	return b, nil
}

// List returns the tenant's bans newest first.
func (s *Service) List(ctx context.Context, key string) ([]*ban.Ban, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.NewValidationError(errors.CodeMissingLicense, "license is required")
	}
	bans, err := s.repo.ListByLicense(ctx, key)
	if err != nil {
		s.logger.Errorw("failed to list bans", "license_key", key, "error", err)
		return nil, errors.NewDBError("failed to list bans", err)
	}
	if bans == nil {
		bans = []*ban.Ban{}
	}
	return bans, nil
}

// ParseIdentifiers decodes the identifiers field of a check request. It
// must be a JSON array of strings.
func ParseIdentifiers(raw json.RawMessage) ([]string, error) {
	var ids []string
	if len(raw) == 0 || raw[0] != '[' {
		return nil, errors.NewValidationError(errors.CodeInvalidIdentifiers, "identifiers must be an array")
	}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, errors.NewValidationError(errors.CodeInvalidIdentifiers, "identifiers must be an array of strings")
	}
	return ids, nil
}

// Check reports the newest active ban of the tenant sharing any of the
// identifiers.
func (s *Service) Check(ctx context.Context, key string, identifiers []string) (*CheckResult, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.NewValidationError(errors.CodeMissingFields, "license_key is required")
	}
	if identifiers == nil {
		return nil, errors.NewValidationError(errors.CodeInvalidIdentifiers, "identifiers must be an array")
	}

	ids := ban.NormalizeIdentifiers(identifiers)
	if len(ids) == 0 {
		return &CheckResult{Banned: false}, nil
	}

	found, err := s.repo.FindActiveByIdentifiers(ctx, key, ids, s.now())
	if err != nil {
		s.logger.Errorw("failed to check bans", "license_key", key, "error", err)
		return nil, errors.NewDBError("failed to check bans", err)
	}
	if found == nil {
		return &CheckResult{Banned: false}, nil
	}
	return &CheckResult{Banned: true, Ban: found}, nil
}

// AttachEvidence stores a screenshot given as a base64 data URI and points
// the ban at its public URL.
func (s *Service) AttachEvidence(ctx context.Context, key, banID, dataURI string) (string, error) {
	if strings.TrimSpace(key) == "" || strings.TrimSpace(banID) == "" || dataURI == "" {
		return "", errors.NewValidationError(errors.CodeMissingFields, "license_key, ban_id and image are required")
	}

	m := dataURIPattern.FindStringSubmatch(dataURI)
	if m == nil {
		return "", errors.NewValidationError(errors.CodeInvalidImageData, "image must be a base64 data URI")
	}
	mime := m[1]
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", errors.NewValidationError(errors.CodeInvalidImageData, "image payload is not valid base64")
	}

	b, err := s.repo.Get(ctx, banID)
	if err != nil {
		return "", errors.NewDBError("failed to load ban", err)
	}
	if b == nil || b.LicenseKey != key {
		return "", errors.NewNotFoundError(errors.CodeNotFound, "ban not found")
	}

	ext := "jpg"
	if strings.Contains(mime, "png") {
		ext = "png"
	}
	objectPath := fmt.Sprintf("%s/%s/%d.%s", key, banID, s.now().UnixMilli(), ext)

	if err := s.blobs.Upload(ctx, s.evidenceBucket, objectPath, data, mime); err != nil {
		s.logger.Errorw("failed to upload evidence", "ban_id", banID, "path", objectPath, "error", err)
		return "", errors.NewInternalError(errors.CodeUploadFailed, "failed to upload evidence", err)
	}
	url, err := s.blobs.PublicURL(s.evidenceBucket, objectPath)
	if err != nil {
		s.logger.Errorw("failed to resolve evidence url", "ban_id", banID, "path", objectPath, "error", err)
		return "", errors.NewInternalError(errors.CodePublicURLFailed, "failed to resolve evidence url", err)
	}

	if _, err := s.repo.SetEvidenceURL(ctx, banID, url); err != nil {
		s.logger.Errorw("failed to save evidence url", "ban_id", banID, "error", err)
		return "", errors.NewDBError("failed to save evidence url", err)
	}
	return url, nil
}

// Lift ends a ban for the caller's own tenant and tells the agent to
// unban the player. Nothing is read or written for an unresolved token.
func (s *Service) Lift(ctx context.Context, banID, token string) (*ban.Ban, error) {
	ident, err := s.resolver.MustResolve(ctx, token)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.Get(ctx, banID)
	if err != nil {
		s.logger.Errorw("failed to load ban", "ban_id", banID, "error", err)
		return nil, errors.NewDBError("failed to load ban", err)
	}
	if b == nil {
		return nil, errors.NewNotFoundError(errors.CodeNotFound, "ban not found")
	}
	if b.LicenseKey != ident.LicenseKey {
		s.logger.Warnw("cross-tenant unban rejected",
			"ban_id", banID,
			"ban_license", b.LicenseKey,
			"caller_license", ident.LicenseKey,
		)
		return nil, errors.NewForbiddenError("ban belongs to another license")
	}

	if err := s.lift(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Infow("ban lifted", "ban_id", banID, "license_key", b.LicenseKey, "by", ident.Kind)
	return b, nil
}

// LiftUnchecked lifts a ban without any authorization. It exists for old
// dashboards and is refused unless enabled in config.
//
// Deprecated: use Lift.
func (s *Service) LiftUnchecked(ctx context.Context, banID string) (*ban.Ban, error) {
	s.logger.Warnw("unauthenticated legacy unban called", "ban_id", banID, "enabled", s.legacyUnban)
	if !s.legacyUnban {
		return nil, errors.NewForbiddenError("legacy unban is disabled")
	}

	b, err := s.repo.Get(ctx, banID)
	if err != nil {
		return nil, errors.NewDBError("failed to load ban", err)
	}
	if b == nil {
		return nil, errors.NewNotFoundError(errors.CodeNotFound, "ban not found")
	}
	if err := s.lift(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) lift(ctx context.Context, b *ban.Ban) error {
	now := s.now()
	found, err := s.repo.SetExpiry(ctx, b.BanID, now)
	if err != nil {
		s.logger.Errorw("failed to lift ban", "ban_id", b.BanID, "error", err)
		return errors.NewDBError("failed to lift ban", err)
	}
	if !found {
		return errors.NewNotFoundError(errors.CodeNotFound, "ban not found")
	}
	b.ExpiresAt = &now

	payload, err := json.Marshal(agent.UnbanPayload{
		BanID:       b.BanID,
		PlayerID:    b.PlayerID,
		Identifiers: b.Identifiers,
	})
	if err != nil {
		return errors.NewInternalError(errors.CodeServerError, "failed to encode unban command", err)
	}
	s.queue.Push(b.LicenseKey, s.queue.New(agent.CommandUnban, payload))
	return nil
}

// CountActive is used by the customer dashboard.
func (s *Service) CountActive(ctx context.Context, key string) (int64, error) {
	n, err := s.repo.CountActive(ctx, key, s.now())
	if err != nil {
		return 0, errors.NewDBError("failed to count bans", err)
	}
	return n, nil
}
