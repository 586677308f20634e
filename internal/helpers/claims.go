package helpers

import (
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims carries the acting user id issued by the identity service.
// Tokens minted by the session endpoint put it in "id"; tokens from an
// external provider put it in "sub".
type AuthClaims struct {
	UserID uint   `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var ErrMissingUserID = errors.New("token carries no user id")

func (ac *AuthClaims) ActingUserID() (uint, error) {
	if ac.UserID != 0 {
		return ac.UserID, nil
	}
	if ac.Subject == "" {
		return 0, ErrMissingUserID
	}
	id, err := strconv.ParseUint(ac.Subject, 10, 0)
	if err != nil || id == 0 {
		return 0, ErrMissingUserID
	}
	return uint(id), nil
}
