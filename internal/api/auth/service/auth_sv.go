package authService

import (
	"FinTrackGolang/internal/api/auth"
	"FinTrackGolang/internal/entity"
	contextPkg "FinTrackGolang/pkg/context"
	jwtPkg "FinTrackGolang/pkg/jwt"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

func (s *authDomainImpl) Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return auth.LoginUserResponse{}, err
	}

	var user entity.User
	if strings.Contains(req.Identifier, "@") {
		user, err = repo.Users.GetByEmail(c, req.Identifier)
	} else {
		user, err = repo.Users.GetByUsername(c, req.Identifier)
	}
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.LoginUserResponse{}, auth.ErrInvalidUsernameOrPassword
		}
		return auth.LoginUserResponse{}, err
	}

	if err := s.bcryptUtils.ComparePassword(user.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"username":   user.Username,
		}).Warn("Password mismatch on login")
		return auth.LoginUserResponse{}, auth.ErrInvalidUsernameOrPassword
	}

	return s.issueTokens(c, user)
}

func (s *authDomainImpl) issueTokens(c context.Context, user entity.User) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	claims := map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	}

	accessToken, expiresAt, err := jwtPkg.Sign(claims, accessTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return auth.LoginUserResponse{}, err
	}

	jti, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return auth.LoginUserResponse{}, err
	}

	refreshToken, _, err := jwtPkg.SignRefresh(claims, jti, refreshTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign refresh token")
		return auth.LoginUserResponse{}, err
	}

	return auth.LoginUserResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User: auth.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Phone:     user.Phone,
			Timezone:  user.Timezone,
			Currency:  user.Currency,
		},
	}, nil
}

// RefreshToken rotates the token pair. The presented refresh token must be
// valid, not blacklisted, and carry the user claims issued at login.
func (s *authDomainImpl) RefreshToken(c context.Context, refreshToken string) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	token, err := jwtPkg.ParseToken(refreshToken, "JWT_REFRESH_TOKEN_SECRET")
	if err != nil {
		return auth.LoginUserResponse{}, auth.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["jti"] == nil || claims["id"] == nil {
		return auth.LoginUserResponse{}, auth.ErrInvalidRefreshToken
	}

	jti := claims["jti"].(string)
	blacklisted, err := s.redisServer.IsTokenBlacklisted(c, jti)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to check token blacklist")
		return auth.LoginUserResponse{}, err
	}
	if blacklisted {
		return auth.LoginUserResponse{}, auth.ErrInvalidRefreshToken
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return auth.LoginUserResponse{}, err
	}

	user, err := repo.Users.GetByID(c, claims["id"].(string))
	if err != nil {
		return auth.LoginUserResponse{}, err
	}

	// The old refresh token is revoked so each one is single use.
	if err := s.redisServer.BlacklistToken(c, jti, refreshTokenTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to blacklist rotated token")
		return auth.LoginUserResponse{}, err
	}

	return s.issueTokens(c, user)
}

func (s *authDomainImpl) Logout(c context.Context, refreshToken string) error {
	requestID := contextPkg.GetRequestID(c)

	if refreshToken == "" {
		return nil
	}

	token, err := jwtPkg.ParseToken(refreshToken, "JWT_REFRESH_TOKEN_SECRET")
	if err != nil {
		// An unusable token needs no revocation.
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["jti"] == nil {
		return nil
	}

	if err := s.redisServer.BlacklistToken(c, claims["jti"].(string), refreshTokenTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to blacklist refresh token on logout")
		return err
	}

	return nil
}

func (s *authDomainImpl) LoginGoogle() (*url.URL, error) {
	config := s.googleProvider.GetConfig()

	authURL, err := url.Parse(config.Endpoint.AuthURL)
	if err != nil {
		return nil, err
	}

	parameters := url.Values{}
	parameters.Add("client_id", config.ClientID)
	parameters.Add("scope", strings.Join(config.Scopes, " "))
	parameters.Add("redirect_uri", config.RedirectURL)
	parameters.Add("response_type", "code")
	authURL.RawQuery = parameters.Encode()

	return authURL, nil
}

func (s *authDomainImpl) UserLoginGoogle(c context.Context, req auth.LoginUserGoogle) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	if req.Email == "" {
		return auth.LoginUserResponse{}, auth.ErrInvalidEmail
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return auth.LoginUserResponse{}, err
	}

	user, err := repo.Users.GetByEmail(c, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return auth.LoginUserResponse{}, auth.ErrUserWithEmailNotFound
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to look up Google user")
		return auth.LoginUserResponse{}, err
	}

	return s.issueTokens(c, user)
}

// DecodeGoogleUser extracts the email from the userinfo payload returned by
// the OAuth exchange.
func DecodeGoogleUser(payload []byte) (auth.LoginUserGoogle, error) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return auth.LoginUserGoogle{}, err
	}
	return auth.LoginUserGoogle{Email: body.Email}, nil
}
