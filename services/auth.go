package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"storeadmin-backend/mailer"
	"storeadmin-backend/models"
	"storeadmin-backend/otpstore"
	"storeadmin-backend/token"
)

const otpDigits = 6

// AuthService handles login and the password reset flow. Reset codes live on
// the user document.
type AuthService struct {
	users     *UserService
	maker     token.Maker
	tokenTTL  time.Duration
	otpTTL    time.Duration
	mail      MailQueue
	storeName string
	log       *logrus.Entry
	now       func() time.Time
}

func NewAuthService(users *UserService, maker token.Maker, tokenTTL, otpTTL time.Duration, mail MailQueue, storeName string, log *logrus.Entry) *AuthService {
	return &AuthService{
		users:     users,
		maker:     maker,
		tokenTTL:  tokenTTL,
		otpTTL:    otpTTL,
		mail:      mail,
		storeName: storeName,
		log:       log,
		now:       time.Now,
	}
}

// Login checks the credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if !u.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", ErrUnauthorized)
	}

	tok, payload, err := s.maker.CreateToken(u.ID.Hex(), string(u.Role), s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &models.AuthResult{Token: tok, ExpiresAt: payload.ExpiresAt.Unix(), User: u}, nil
}

func (s *AuthService) Me(ctx context.Context, id string) (*models.User, error) {
	return s.users.Get(ctx, id)
}

func (s *AuthService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPassword)) != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrInvalid)
	}
	return s.setPassword(ctx, u, newPassword)
}

func (s *AuthService) setPassword(ctx context.Context, u *models.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.users.users.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{
		"$set":   bson.M{"password": string(hashed), "updatedAt": s.now()},
		"$unset": bson.M{"resetOtp": "", "resetOtpExpiresAt": ""},
	})
	return err
}

// ForgotPassword stores a reset code on the user and mails it in the background.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	code, err := otpstore.GenerateCode(otpDigits)
	if err != nil {
		return err
	}
	expires := s.now().Add(s.otpTTL)
	_, err = s.users.users.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{
		"$set": bson.M{"resetOtp": code, "resetOtpExpiresAt": expires, "updatedAt": s.now()},
	})
	if err != nil {
		return err
	}

	html, err := mailer.Render("reset", mailer.OTPData{
		StoreName: s.storeName,
		Name:      u.Name,
		Code:      code,
		Minutes:   int(s.otpTTL / time.Minute),
	})
	if err != nil {
		return err
	}
	s.mail.Dispatch("reset", mailer.Message{
		To:      []string{u.Email},
		Subject: s.storeName + ": password reset code",
		HTML:    html,
	})
	return nil
}

// VerifyResetOTP reports whether code is the live reset code of the user.
func (s *AuthService) VerifyResetOTP(ctx context.Context, email, code string) (bool, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return s.resetCodeMatches(u, code), nil
}

func (s *AuthService) resetCodeMatches(u *models.User, code string) bool {
	if u.ResetOTP == "" || u.ResetOTPExpiresAt == nil {
		return false
	}
	if !s.now().Before(*u.ResetOTPExpiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.ResetOTP), []byte(code)) == 1
}

// ResetPassword sets a new password when code matches and clears the reset code.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: invalid or expired code", ErrInvalid)
		}
		return err
	}
	if !s.resetCodeMatches(u, code) {
		return fmt.Errorf("%w: invalid or expired code", ErrInvalid)
	}
	return s.setPassword(ctx, u, newPassword)
}
