// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/MKhiriev/hello-auth/internal/config"
	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/internal/store"
	"github.com/MKhiriev/hello-auth/internal/utils"
	"github.com/MKhiriev/hello-auth/models"
)

// maxPasswordLength bounds the scrypt input.
const maxPasswordLength = 128

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, session lifecycle and
// JWT issuing on top of the user, account and session repositories.
type authService struct {
	userRepository    store.UserRepository
	accountRepository store.AccountRepository
	sessionRepository store.SessionRepository

	ids IDGenerator
	now func() time.Time

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	sessionDuration   time.Duration
	minPasswordLength int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given storages
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(storages *store.Storages, ids IDGenerator, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    storages.UserRepository,
		accountRepository: storages.AccountRepository,
		sessionRepository: storages.SessionRepository,
		ids:               ids,
		now:               func() time.Time { return time.Now().UTC() },
		tokenSignKey:      cfg.SecretKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		sessionDuration:   cfg.SessionDuration,
		minPasswordLength: cfg.MinPasswordLength,
		logger:            logger,
	}
}

// SignUp creates a user with a credential account and opens a session.
//
// Returns:
//   - ErrInvalidDataProvided if name is empty.
//   - ErrInvalidEmail if the email cannot be parsed.
//   - ErrPasswordTooShort / ErrPasswordTooLong for out of range passwords.
//   - store.ErrEmailAlreadyExists (wrapped) if the email is taken.
func (a *authService) SignUp(ctx context.Context, req models.SignUpRequest, client models.ClientInfo) (models.SessionWithUser, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		log.Error().Msg("empty name provided")
		return models.SessionWithUser{}, ErrInvalidDataProvided
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		log.Err(err).Msg("invalid email provided")
		return models.SessionWithUser{}, err
	}

	if err = a.validatePassword(req.Password); err != nil {
		log.Err(err).Str("email", email).Msg("invalid password provided")
		return models.SessionWithUser{}, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.SessionWithUser{}, fmt.Errorf("password hashing failed: %w", err)
	}

	now := a.now()
	user := models.User{
		ID:        a.ids.Generate(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	account := models.Account{
		ID:           a.ids.Generate(),
		UserID:       user.ID,
		ProviderID:   models.CredentialProviderID,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := a.userRepository.CreateUser(ctx, user, account)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.SessionWithUser{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	session, err := a.openSession(ctx, created.ID, client)
	if err != nil {
		return models.SessionWithUser{}, err
	}

	log.Info().Str("user_id", created.ID).Msg("user signed up")
	return models.SessionWithUser{Session: session, User: created}, nil
}

// SignIn verifies email and password and opens a session.
//
// Unknown emails, users without a credential account and wrong passwords all
// return ErrInvalidEmailOrPassword.
func (a *authService) SignIn(ctx context.Context, req models.SignInRequest, client models.ClientInfo) (models.SessionWithUser, error) {
	log := logger.FromContext(ctx)

	email, err := normalizeEmail(req.Email)
	if err != nil || req.Password == "" {
		log.Error().Msg("invalid credentials provided")
		return models.SessionWithUser{}, ErrInvalidEmailOrPassword
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Str("email", email).Msg("sign in with unknown email")
		return models.SessionWithUser{}, ErrInvalidEmailOrPassword
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.SessionWithUser{}, fmt.Errorf("user search by email failed: %w", err)
	}

	account, err := a.accountRepository.FindAccount(ctx, user.ID, models.CredentialProviderID)
	if errors.Is(err, store.ErrAccountNotFound) {
		log.Warn().Str("user_id", user.ID).Msg("user has no credential account")
		return models.SessionWithUser{}, ErrInvalidEmailOrPassword
	}
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("account search failed")
		return models.SessionWithUser{}, fmt.Errorf("account search failed: %w", err)
	}

	ok, err := utils.VerifyPassword(req.Password, account.PasswordHash)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("stored password hash is unusable")
		return models.SessionWithUser{}, ErrInvalidEmailOrPassword
	}
	if !ok {
		log.Warn().Str("user_id", user.ID).Msg("wrong password")
		return models.SessionWithUser{}, ErrInvalidEmailOrPassword
	}

	session, err := a.openSession(ctx, user.ID, client)
	if err != nil {
		return models.SessionWithUser{}, err
	}

	return models.SessionWithUser{Session: session, User: user}, nil
}

// SignOut deletes the session. An unknown token is reported as
// ErrSessionExpiredOrInvalid.
func (a *authService) SignOut(ctx context.Context, sessionToken string) error {
	err := a.sessionRepository.DeleteSessionByToken(ctx, sessionToken)
	if errors.Is(err, store.ErrSessionNotFound) {
		return ErrSessionExpiredOrInvalid
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("session deletion failed")
		return fmt.Errorf("session deletion failed: %w", err)
	}

	return nil
}

// GetSession looks the token up and returns the session with its user.
// Missing and expired sessions both return ErrSessionExpiredOrInvalid; an
// expired one is deleted on the way.
func (a *authService) GetSession(ctx context.Context, sessionToken string) (models.SessionWithUser, error) {
	log := logger.FromContext(ctx)

	if sessionToken == "" {
		return models.SessionWithUser{}, ErrSessionExpiredOrInvalid
	}

	session, err := a.sessionRepository.FindSessionByToken(ctx, sessionToken)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.SessionWithUser{}, ErrSessionExpiredOrInvalid
	}
	if err != nil {
		log.Err(err).Msg("session search failed")
		return models.SessionWithUser{}, fmt.Errorf("session search failed: %w", err)
	}

	if session.IsExpired(a.now()) {
		if delErr := a.sessionRepository.DeleteSessionByToken(ctx, sessionToken); delErr != nil && !errors.Is(delErr, store.ErrSessionNotFound) {
			log.Err(delErr).Str("session_id", session.ID).Msg("expired session deletion failed")
		}
		return models.SessionWithUser{}, ErrSessionExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, session.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.SessionWithUser{}, ErrSessionExpiredOrInvalid
	}
	if err != nil {
		log.Err(err).Str("user_id", session.UserID).Msg("session user search failed")
		return models.SessionWithUser{}, fmt.Errorf("session user search failed: %w", err)
	}

	return models.SessionWithUser{Session: session, User: user}, nil
}

// CreateToken issues a signed JWT for the given identity.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, identity models.Identity) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, identity, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return a.sessionRepository.DeleteExpiredSessions(ctx, a.now())
}

func (a *authService) openSession(ctx context.Context, userID string, client models.ClientInfo) (models.Session, error) {
	token, err := utils.GenerateSessionToken()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	now := a.now()
	session := models.Session{
		ID:        a.ids.Generate(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(a.sessionDuration),
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = a.sessionRepository.CreateSession(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("session creation failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	return session, nil
}

func (a *authService) validatePassword(password string) error {
	switch {
	case len(password) < a.minPasswordLength:
		return ErrPasswordTooShort
	case len(password) > maxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}

// normalizeEmail lower-cases a bare address and rejects display-name forms.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
