package server

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/carebridge/go-hospital-admin/users"
)

// issueToken signs an HS256 token binding the device session to the
// authenticated user. The sid claim is what ties a bearer back to its
// session store.
func (s *Server) issueToken(sid string, user *users.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid":    sid,
		"sub":    user.ID,
		"email":  user.Email,
		"role":   string(user.Role),
		"tenant": user.TenantID,
		"iat":    now.Unix(),
		"exp":    now.Add(s.cfg.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTS))
	if err != nil {
		return "", errors.Wrap(err, "[issueToken] sign")
	}
	return signed, nil
}

// parseToken validates a bearer token and returns its session ID.
func (s *Server) parseToken(raw string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.JWTS), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("token carries no session")
	}
	return sid, nil
}
