package authService

import (
	"FinTrackGolang/internal/api/auth"
	contextPkg "FinTrackGolang/pkg/context"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const otpTTL = 10 * time.Minute

func (s *passwordDomainImpl) ForgotPassword(c context.Context, req auth.ForgotPasswordRequest) error {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return err
	}

	if _, err := repo.Users.GetByEmail(c, req.Email); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.ErrUserWithEmailNotFound
		}
		return err
	}

	otp, err := s.utils.GenerateOTP(6)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate OTP")
		return err
	}

	if err := s.redisServer.SetOTP(c, req.Email, otp, otpTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store OTP")
		return err
	}

	if err := s.smtpMailer.CreateSmtp(req.Email, otp); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to send OTP email")
		return err
	}

	return nil
}

func (s *passwordDomainImpl) ResetPassword(c context.Context, req auth.ResetPasswordRequest) error {
	requestID := contextPkg.GetRequestID(c)

	storedOTP, err := s.redisServer.GetOTP(c, req.Email)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return auth.ErrTokenExpired
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to read OTP")
		return err
	}

	if storedOTP != req.OTP {
		return auth.ErrInvalidOTP
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return err
	}

	user, err := repo.Users.GetByEmail(c, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.ErrUserWithEmailNotFound
		}
		return err
	}

	if err := s.bcryptUtils.ComparePassword(user.Password, req.NewPassword); err == nil {
		return auth.ErrPasswordSame
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return err
	}

	if err := repo.Users.UpdateUserPassword(c, req.Email, hashedPassword); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to update password")
		return err
	}

	if err := s.redisServer.DeleteOTP(c, req.Email); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to delete used OTP")
	}

	return nil
}
