// Package auth gates app access behind an optional PIN, tracks session
// liveness, and provides symmetric encryption for sensitive payloads.
package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/keystore"
	"github.com/hetpatel672/BudgetWise/internal/logger"
	"github.com/hetpatel672/BudgetWise/internal/models"
	"github.com/hetpatel672/BudgetWise/internal/services"
)

// Method is the configured authentication method.
type Method string

const (
	MethodNone Method = "none"
	MethodPIN  Method = "pin"
	// MethodBiometric is reserved; the core never sets it itself.
	MethodBiometric Method = "biometric"
)

// livenessSchedule is the cadence of the cooperative session expiry check.
const livenessSchedule = "@every 30s"

const minPINLength = 4

// Result is the outcome of an Authenticate call.
type Result struct {
	Granted     bool `json:"granted"`
	RequiresPIN bool `json:"requires_pin"`
}

// Service owns the authentication state machine. All state is guarded by a
// mutex because the liveness job and explicit logout calls run on
// different goroutines.
type Service struct {
	mu            sync.Mutex
	method        Method
	authenticated bool
	lastActivity  time.Time
	timeout       time.Duration

	failOpen bool
	keys     keystore.Store
	settings services.SettingsServicer
	cron     *cron.Cron
}

// NewService creates an auth service. failOpen preserves the legacy
// behavior of granting access when the auth state cannot be read; it must
// be enabled explicitly.
func NewService(keys keystore.Store, settings services.SettingsServicer, timeout time.Duration, failOpen bool) *Service {
	return &Service{
		method:   MethodNone,
		timeout:  timeout,
		failOpen: failOpen,
		keys:     keys,
		settings: settings,
	}
}

// Initialize loads the persisted auth method and starts the recurring
// liveness check.
func (s *Service) Initialize() error {
	method, err := s.loadMethod()
	if err != nil {
		if s.failOpen {
			logger.Get().Warnw("failed to load auth method, continuing without a gate", "error", err)
			method = MethodNone
		} else {
			return err
		}
	}

	if setting, err := s.settings.Get(models.SettingSessionTimeout); err == nil {
		if d, parseErr := time.ParseDuration(setting.Value); parseErr == nil && d > 0 {
			s.mu.Lock()
			s.timeout = d
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	s.method = method
	s.mu.Unlock()

	c := cron.New()
	if _, err := c.AddFunc(livenessSchedule, s.checkLiveness); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	c.Start()

	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()

	return nil
}

func (s *Service) loadMethod() (Method, error) {
	setting, err := s.settings.Get(models.SettingAuthMethod)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrSettingNotFound.Code {
			return MethodNone, nil
		}
		return MethodNone, err
	}

	switch Method(setting.Value) {
	case MethodPIN:
		return MethodPIN, nil
	case MethodNone, MethodBiometric:
		return Method(setting.Value), nil
	default:
		return MethodNone, nil
	}
}

// checkLiveness logs the session out when wall-clock time since the last
// activity exceeds the timeout. Cooperative polling, not event-driven.
func (s *Service) checkLiveness() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated {
		return
	}
	if time.Since(s.lastActivity) > s.timeout {
		s.authenticated = false
		logger.Get().Infow("session expired", "idle", time.Since(s.lastActivity).String())
	}
}

// SetupPIN hashes the PIN, persists the hash in the keystore, and switches
// the auth method to "pin".
func (s *Service) SetupPIN(pin string) error {
	if len(pin) < minPINLength {
		return apperrors.ErrPINTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.keys.Set(keystore.KeyPINHash, hash); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.settings.Set(models.SettingAuthMethod, string(MethodPIN)); err != nil {
		return err
	}

	s.mu.Lock()
	s.method = MethodPIN
	s.mu.Unlock()

	return nil
}

// AuthenticateWithPIN compares the input against the stored hash. bcrypt's
// comparison is constant-time. With no PIN configured it fails with
// NO_PIN_CONFIGURED, never INCORRECT_PIN.
func (s *Service) AuthenticateWithPIN(pin string) error {
	hash, err := s.keys.Get(keystore.KeyPINHash)
	if err != nil {
		if errors.Is(err, keystore.ErrNotFound) {
			return apperrors.ErrNoPINConfigured
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(pin)); err != nil {
		return apperrors.ErrIncorrectPIN
	}

	s.mu.Lock()
	s.authenticated = true
	s.lastActivity = time.Now()
	s.mu.Unlock()

	return nil
}

// Authenticate evaluates the gate. Method "none" auto-succeeds; "pin"
// signals the caller that PIN entry is required without prompting itself.
// With failOpen set, unexpected failures grant access to avoid lockout.
func (s *Service) Authenticate() (Result, error) {
	s.mu.Lock()
	method := s.method
	s.mu.Unlock()

	switch method {
	case MethodNone:
		s.mu.Lock()
		s.authenticated = true
		s.lastActivity = time.Now()
		s.mu.Unlock()
		return Result{Granted: true}, nil
	case MethodPIN:
		return Result{RequiresPIN: true}, nil
	default:
		if s.failOpen {
			logger.Get().Warnw("unknown auth method, failing open", "method", method)
			return Result{Granted: true}, nil
		}
		return Result{}, apperrors.ErrUnauthorized
	}
}

// Authenticated reports whether a live session exists.
func (s *Service) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Method returns the configured authentication method.
func (s *Service) Method() Method {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.method
}

// Touch refreshes the last-activity timestamp.
func (s *Service) Touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// Logout clears the session.
func (s *Service) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.mu.Unlock()
}

// Close stops the liveness job.
func (s *Service) Close() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		c.Stop()
	}
}

// ResetSecurity clears the stored PIN hash and encryption key, resets the
// auth method to "none", and ends any session.
func (s *Service) ResetSecurity() error {
	if err := s.keys.Delete(keystore.KeyPINHash); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.keys.Delete(keystore.KeyEncryptionKey); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.settings.Set(models.SettingAuthMethod, string(MethodNone)); err != nil {
		return err
	}

	s.mu.Lock()
	s.method = MethodNone
	s.authenticated = false
	s.mu.Unlock()

	return nil
}
