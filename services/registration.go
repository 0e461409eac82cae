package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"storeadmin-backend/mailer"
	"storeadmin-backend/models"
	"storeadmin-backend/otpstore"
)

// UserDirectory is the part of UserService the registration flow needs.
type UserDirectory interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
}

// RegistrationService runs the email verification flow:
// none -> otp_sent -> verified -> consumed.
type RegistrationService struct {
	store     otpstore.Store
	users     UserDirectory
	mail      MailQueue
	ttl       time.Duration
	storeName string
	log       *logrus.Entry
	now       func() time.Time
}

func NewRegistrationService(store otpstore.Store, users UserDirectory, mail MailQueue, ttl time.Duration, storeName string, log *logrus.Entry) *RegistrationService {
	return &RegistrationService{
		store:     store,
		users:     users,
		mail:      mail,
		ttl:       ttl,
		storeName: storeName,
		log:       log,
		now:       time.Now,
	}
}

// RequestOTP issues a fresh code for email, replacing any earlier one.
func (s *RegistrationService) RequestOTP(ctx context.Context, email string) error {
	email = otpstore.NormalizeKey(email)
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
	}

	code, err := otpstore.GenerateCode(otpDigits)
	if err != nil {
		return err
	}
	entry := otpstore.Entry{Code: code, ExpiresAt: s.now().Add(s.ttl)}
	if err := s.store.Put(ctx, email, entry); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	html, err := mailer.Render("otp", mailer.OTPData{
		StoreName: s.storeName,
		Code:      code,
		Minutes:   int(s.ttl / time.Minute),
	})
	if err != nil {
		return err
	}
	s.mail.Dispatch("register_otp", mailer.Message{
		To:      []string{email},
		Subject: s.storeName + ": verify your email",
		HTML:    html,
	})
	s.log.WithField("email", email).Debug("registration otp issued")
	return nil
}

// live returns the unexpired entry for email, or ok=false.
func (s *RegistrationService) live(ctx context.Context, email string) (otpstore.Entry, bool, error) {
	entry, err := s.store.Get(ctx, email)
	if errors.Is(err, otpstore.ErrNotFound) {
		return entry, false, nil
	}
	if err != nil {
		return entry, false, err
	}
	if entry.Expired(s.now()) {
		if err := s.store.Delete(ctx, email); err != nil {
			s.log.WithError(err).WithField("email", email).Warn("failed to drop expired registration otp")
		}
		return entry, false, nil
	}
	return entry, true, nil
}

func codesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// VerifyOTP marks the code as verified when it matches. Unknown email, wrong
// code and expired code all report false without an error.
func (s *RegistrationService) VerifyOTP(ctx context.Context, email, code string) (bool, error) {
	email = otpstore.NormalizeKey(email)
	entry, ok, err := s.live(ctx, email)
	if err != nil || !ok {
		return false, err
	}
	if !codesEqual(entry.Code, code) {
		return false, nil
	}
	entry.Verified = true
	if err := s.store.Put(ctx, email, entry); err != nil {
		return false, fmt.Errorf("store otp: %w", err)
	}
	return true, nil
}

// Complete creates the account once the code is verified, unexpired and
// matches. The code is consumed on success.
func (s *RegistrationService) Complete(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := otpstore.NormalizeKey(req.Email)
	entry, ok, err := s.live(ctx, email)
	if err != nil {
		return nil, err
	}
	if !ok || !entry.Verified || !codesEqual(entry.Code, req.OTP) {
		return nil, fmt.Errorf("%w: email is not verified or the code has expired", ErrInvalid)
	}

	u, err := s.users.Create(ctx, models.CreateUserRequest{
		Name:     req.Name,
		Email:    email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     models.RoleUser,
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, email); err != nil {
		s.log.WithError(err).WithField("email", email).Warn("failed to consume registration otp")
	}
	return u, nil
}
