package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"flock/internal/models"
	"flock/internal/repositories"
	"flock/pkg/rabbitmq"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// MailPublisher is the slice of the message-queue client the user service
// needs: dispatching a welcome-mail event after registration.
type MailPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// LoginResult is what a successful credential check yields.
type LoginResult struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// UserUpdate carries the fields of a partial user update. Empty fields are
// left untouched; a non-empty password is re-hashed before storage.
type UserUpdate struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserService handles authentication and user account management.
type UserService struct {
	userRepo   repositories.UserRepository
	mq         MailPublisher
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, mq MailPublisher, jwtSecret string) *UserService {
	return &UserService{
		userRepo:   userRepo,
		mq:         mq,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 30 * 24 * time.Hour,
	}
}

// Login authenticates a user and returns their id, role and a signed JWT.
// An unknown email and a wrong password both come back as the same
// "invalid credentials" error, so callers cannot probe which emails exist.
func (s *UserService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{ID: user.ID, Role: user.Role, Token: tokenString}, nil
}

// Register hashes the password, stores the user, and dispatches a
// welcome-mail event. The mail event is fire-and-forget: a publish failure
// is logged and never fails the registration.
func (s *UserService) Register(user *models.User) error {
	plaintext := user.Password

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.publishWelcomeMail(user, plaintext)
	return nil
}

// publishWelcomeMail sends a user.registered event carrying the plaintext
// password, which the mail consumer forwards to the new address. The
// plaintext echo stops at the mail; it is never persisted.
func (s *UserService) publishWelcomeMail(user *models.User, password string) {
	if s.mq == nil {
		log.Println("Mail publisher is not initialized. Skipping welcome mail.")
		return
	}

	event := rabbitmq.MailEvent{
		To:       user.Email,
		Name:     user.Name,
		LastName: user.LastName,
		Password: password,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal welcome mail event: %v", err)
		return
	}

	if err := s.mq.Publish("", rabbitmq.MailQueue, body); err != nil {
		log.Printf("Warning: Failed to publish welcome mail event for user %s: %v", user.ID, err)
	} else {
		log.Printf("Published welcome mail event for user %s", user.ID)
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateUser applies a partial update to a user. Only fields present in
// the request overwrite stored values; a new password is hashed first.
func (s *UserService) UpdateUser(id string, update UserUpdate) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Role != "" {
		user.Role = update.Role
	}
	if update.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	return s.userRepo.Update(user)
}

// DeleteUser deletes a user by their ID.
func (s *UserService) DeleteUser(id string) error {
	return s.userRepo.Delete(id)
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *UserService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
