package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/pkg/model"
	"golang.org/x/crypto/scrypt"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(repository userRepository, sessions sessionRevoker) *Service {
	return &Service{
		repository: repository,
		sessions:   sessions,
	}
}

type userRepository interface {
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
}

type sessionRevoker interface {
	RevokeAllSessions(ctx context.Context, userID uint) error
}

type Service struct {
	repository userRepository
	sessions   sessionRevoker
}

// SignUp creates a new user with the password hashed before persistence. A
// reused email fails with a duplicated error.
func (s Service) SignUp(ctx context.Context, name, email, password, role string) (*model.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Name:     name,
		Email:    strings.ToLower(email),
		Password: hashedPassword,
		Role:     role,
	}

	err = s.repository.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SignIn validates the credentials. An unknown email fails with not found, a
// wrong password with bad request, matching the API contract.
func (s Service) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repository.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	match, err := comparePasswords(user.Password, password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %s", err)
	}

	if !match {
		return nil, errdef.NewBadRequest("password does not match")
	}

	return user, nil
}

// ChangePassword re-hashes and persists the new secret and revokes every
// outstanding session so stolen tokens die with the old password.
func (s Service) ChangePassword(ctx context.Context, id uint, newPassword string) error {
	user, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	user.Password, err = hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("password hashing failed: %s", err)
	}

	if err := s.repository.Save(ctx, user); err != nil {
		return err
	}

	return s.sessions.RevokeAllSessions(ctx, user.ID)
}

func (s Service) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return s.repository.FindByID(ctx, id)
}

func (s Service) FindAll(ctx context.Context) ([]*model.User, error) {
	return s.repository.FindAll(ctx)
}

func hashPassword(password string) (string, error) {
	// example for making salt - https://play.golang.org/p/_Aw6WeWC42I
	salt := make([]byte, 32)
	_, err := rand.Read(salt)
	if err != nil {
		return "", err
	}

	// using recommended cost parameters from - https://godoc.org/golang.org/x/crypto/scrypt
	hash, err := scrypt.Key([]byte(password), salt, 32768, 8, 1, 32)
	if err != nil {
		return "", err
	}

	hashedPassword := fmt.Sprintf("%s.%s", hex.EncodeToString(hash), hex.EncodeToString(salt))

	return hashedPassword, nil
}

func comparePasswords(storedPassword string, suppliedPassword string) (bool, error) {
	passwordAndSalt := strings.Split(storedPassword, ".")
	if len(passwordAndSalt) != 2 {
		return false, fmt.Errorf("wrong password/salt format")
	}

	salt, err := hex.DecodeString(passwordAndSalt[1])
	if err != nil {
		return false, fmt.Errorf("unable to verify user password")
	}

	hash, err := scrypt.Key([]byte(suppliedPassword), salt, 32768, 8, 1, 32)
	if err != nil {
		return false, err
	}

	return hex.EncodeToString(hash) == passwordAndSalt[0], nil
}
