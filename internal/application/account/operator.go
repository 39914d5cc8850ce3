package account

import (
	"context"

	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

// OperatorRole is the JWT role carried by console sessions.
const OperatorRole = "operator"

// PasswordVerifier checks a password against a stored hash.
type PasswordVerifier interface {
	Verify(password, hash string) error
}

// TokenIssuer signs console session tokens.
type TokenIssuer interface {
	Generate(subject, role string) (string, int64, error)
}

// OperatorSession is a console login.
type OperatorSession struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// OperatorService authenticates the single operator account configured by
// bcrypt hash.
type OperatorService struct {
	passwordHash string
	subject      string
	hasher       PasswordVerifier
	tokens       TokenIssuer
	logger       logger.Interface
}

func NewOperatorService(passwordHash, subject string, hasher PasswordVerifier, tokens TokenIssuer, logger logger.Interface) *OperatorService {
	return &OperatorService{
		passwordHash: passwordHash,
		subject:      subject,
		hasher:       hasher,
		tokens:       tokens,
		logger:       logger,
	}
}

// Login fails with INVALID_CREDENTIALS when no operator hash is configured.
func (s *OperatorService) Login(ctx context.Context, password string) (*OperatorSession, error) {
	if password == "" {
		return nil, errors.NewValidationError(errors.CodeMissingFields, "password is required")
	}
	if s.passwordHash == "" {
		s.logger.Warnw("operator login attempted but no password hash is configured")
		return nil, errors.NewUnauthorizedError(errors.CodeInvalidCredentials, "operator login is disabled")
	}
	if err := s.hasher.Verify(password, s.passwordHash); err != nil {
		s.logger.Infow("operator login rejected")
		return nil, errors.NewUnauthorizedError(errors.CodeInvalidCredentials, "invalid password")
	}

	token, expiresIn, err := s.tokens.Generate(s.subject, OperatorRole)
	if err != nil {
		return nil, errors.NewInternalError(errors.CodeServerError, "failed to issue session", err)
	}
	s.logger.Infow("operator logged in")
	return &OperatorSession{AccessToken: token, ExpiresIn: expiresIn, TokenType: "Bearer"}, nil
}
