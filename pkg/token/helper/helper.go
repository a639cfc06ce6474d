package helper

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"time"

	"github.com/gatherly/event-manager/pkg/model"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// GenerateSessionToken signs a session token binding the user's identity. The
// token carries no expiration, its lifetime is bounded by revocation of the
// returned token id.
func GenerateSessionToken(user *model.User, key *rsa.PrivateKey) (signed string, tokenID string, err error) {
	token := jwt.New()

	err = token.Set(jwt.IssuedAtKey, time.Now().Unix())
	if err != nil {
		return "", "", err
	}

	tokenID = uuid.NewString()
	err = token.Set(jwt.JwtIDKey, tokenID)
	if err != nil {
		return "", "", err
	}

	err = token.Set("user", user)
	if err != nil {
		return "", "", err
	}

	signedBytes, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, key))
	if err != nil {
		return "", "", err
	}

	return string(signedBytes), tokenID, nil
}

// ParseSessionToken verifies the signature and returns the embedded user and
// the token id.
func ParseSessionToken(tokenString string, key *rsa.PublicKey) (*model.User, string, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.RS256, key),
	)
	if err != nil {
		return nil, "", err
	}

	user, err := extractUser(token)
	if err != nil {
		return nil, "", err
	}

	return user, token.JwtID(), nil
}

func extractUser(token jwt.Token) (*model.User, error) {
	userData, ok := token.Get("user")
	if !ok {
		return nil, errors.New("user not found in claims")
	}

	bytes, err := json.Marshal(userData)
	if err != nil {
		return nil, err
	}

	user := &model.User{}
	err = json.Unmarshal(bytes, user)
	return user, err
}
