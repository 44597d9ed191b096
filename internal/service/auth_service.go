package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"biblioteca-backend/internal/models"
	"biblioteca-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = 2 * time.Hour

type AuthService struct {
	users     *repository.UserRepository
	resets    *repository.ResetTokenRepository
	jwtSecret []byte
}

func NewAuthService(users *repository.UserRepository, resets *repository.ResetTokenRepository, secret string) *AuthService {
	return &AuthService{users: users, resets: resets, jwtSecret: []byte(secret)}
}

type RegisterUserData struct {
	Email    string
	Username string
	Password string
}

type UpdateUserData struct {
	Email    *string
	Username *string
	Password *string
}

// ================== REGISTER & LOGIN ==================

func (s *AuthService) Register(ctx context.Context, data RegisterUserData) (*models.UserDoc, error) {
	if data.Email == "" || data.Password == "" {
		return nil, fmt.Errorf("email y password son requeridos")
	}

	existing, err := s.users.FindByEmail(ctx, data.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	nextID, err := s.users.GetNextUserID(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	u := &models.UserDoc{
		UserID:       nextID,
		Email:        data.Email,
		Username:     data.Username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserDoc, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": u.UserID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	sToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return sToken, u, nil
}

// ================== UPDATE PROFILE ==================

func (s *AuthService) UpdateUser(ctx context.Context, userID int, data UpdateUserData) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user not found")
	}

	update := bson.M{}

	if data.Email != nil {
		if *data.Email == "" {
			return fmt.Errorf("email cannot be empty")
		}
		existing, err := s.users.FindByEmail(ctx, *data.Email)
		if err != nil {
			return err
		}
		if existing != nil && existing.UserID != userID {
			return fmt.Errorf("email already in use")
		}
		update["email"] = *data.Email
	}

	if data.Username != nil {
		update["username"] = *data.Username
	}

	if data.Password != nil {
		if *data.Password == "" {
			return fmt.Errorf("password cannot be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*data.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		update["passwordHash"] = string(hash)
	}

	if len(update) == 0 {
		return fmt.Errorf("no fields to update")
	}

	update["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	return s.users.UpdateByID(ctx, userID, update)
}

func (s *AuthService) GetUserByID(ctx context.Context, userID int) (*models.UserDoc, error) {
	return s.users.FindByID(ctx, userID)
}

// ================== PASSWORD RESET ==================

// RequestPasswordReset genera un token de un solo uso con expiración. El
// envío por mail queda fuera de este backend: el token se loguea para que el
// operador lo haga llegar (misma respuesta exista o no el email, para no
// filtrar qué cuentas están registradas).
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		log.Printf("[auth] reset pedido para email no registrado")
		return nil
	}

	t := &models.ResetTokenDoc{
		Token:     uuid.NewString(),
		UserID:    u.UserID,
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL).Format(time.RFC3339),
	}
	if err := s.resets.Insert(ctx, t); err != nil {
		return err
	}

	log.Printf("[auth] token de reset generado para usuario %d: %s", u.UserID, t.Token)
	return nil
}

// ConfirmPasswordReset valida el token y cambia la contraseña.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("password cannot be empty")
	}

	t, err := s.resets.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if t == nil || t.Used {
		return fmt.Errorf("token inválido")
	}
	expires, err := time.Parse(time.RFC3339, t.ExpiresAt)
	if err != nil || time.Now().After(expires) {
		return fmt.Errorf("token vencido")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdateByID(ctx, t.UserID, bson.M{
		"passwordHash": string(hash),
		"updatedAt":    time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token)
}
