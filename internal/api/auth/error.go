package auth

import (
	"FinTrackGolang/pkg/response"
	"net/http"
)

var (
	ErrUsernameAlreadyExists     = response.NewError(http.StatusConflict, "username already exists")
	ErrEmailAlreadyExists        = response.NewError(http.StatusConflict, "email already exists")
	ErrInvalidUsernameOrPassword = response.NewError(http.StatusBadRequest, "username or password is wrong")
	ErrUserNotFound              = response.NewError(http.StatusNotFound, "user not found")
	ErrUserWithEmailNotFound     = response.NewError(http.StatusNotFound, "user with email not found")
	ErrInvalidRefreshToken       = response.NewError(http.StatusUnauthorized, "invalid or revoked refresh token")
	ErrTokenExpired              = response.NewError(http.StatusBadRequest, "token expired or not found")
	ErrInvalidOTP                = response.NewError(http.StatusBadRequest, "invalid otp")
	ErrPasswordSame              = response.NewError(http.StatusBadRequest, "password same as before")
	ErrInvalidEmail              = response.NewError(http.StatusBadRequest, "invalid email")
)
