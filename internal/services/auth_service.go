package services

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gamevault/backend/internal/database"
	"github.com/gamevault/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/argon2"
)

// AuthService is a mock identity provider: two seeded demo identities plus
// unconditional signup. There is no real account system behind it.
type AuthService struct {
	kv        database.KV
	validator *validator.Validate

	mu       sync.RWMutex
	accounts map[string]account // keyed by lowercase email
}

type account struct {
	user         models.User
	passwordHash string
}

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"password"`
}

// SignupRequest represents the signup request payload
// @Description Signup request structure
type SignupRequest struct {
	Name            string `json:"name" validate:"required,min=2" example:"Jane Doe"`
	Email           string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password        string `json:"password" validate:"required,min=6" example:"password123"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password" example:"password123"`
}

// AuthResponse represents the authentication response
// @Description Authentication response structure
type AuthResponse struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  models.User `json:"user"`
}

func NewAuthService(kv database.KV) *AuthService {
	viper.SetDefault("jwt.secret_key", "dev-secret")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	s := &AuthService{
		kv:        kv,
		validator: validator.New(),
		accounts:  map[string]account{},
	}

	s.seed(models.User{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin}, "password")
	s.seed(models.User{ID: "2", Name: "Regular User", Email: "user@example.com", Role: models.RoleUser}, "password")
	return s
}

func (s *AuthService) seed(user models.User, password string) {
	hash, err := hashPassword(password)
	if err != nil {
		log.Printf("[AUTH] Failed to seed identity %s: %v", user.Email, err)
		return
	}
	s.accounts[user.Email] = account{user: user, passwordHash: hash}
	s.persistUser(context.Background(), user)
}

// Login handles user authentication
// @Summary Login user
// @Description Authenticate with one of the demo credential pairs
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse "Login successful"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Login attempt from IP: %s", r.RemoteAddr)

	var req LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := s.validator.Struct(&req); err != nil {
		log.Printf("[AUTH] Login validation failed: %v", err)
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	s.mu.RLock()
	acct, ok := s.accounts[strings.ToLower(req.Email)]
	s.mu.RUnlock()
	if !ok || !verifyPassword(req.Password, acct.passwordHash) {
		log.Printf("[AUTH] Invalid credentials for %s", req.Email)
		SendErrorResponse(w, "Invalid credentials", http.StatusUnauthorized, nil)
		return
	}

	token, err := generateJWT(acct.user)
	if err != nil {
		log.Printf("[AUTH] JWT generation failed for user %s: %v", acct.user.ID, err)
		SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	s.persistUser(r.Context(), acct.user)

	log.Printf("[AUTH] Login successful for user %s (%s)", acct.user.ID, acct.user.Role)
	SendJSON(w, http.StatusOK, AuthResponse{Token: token, User: acct.user})
}

// Signup handles user registration
// @Summary Sign up a new user
// @Description Fabricates a new user-role identity; any unseen email succeeds
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup request"
// @Success 200 {object} AuthResponse "Signup successful"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Email already exists"
// @Router /auth/signup [post]
func (s *AuthService) Signup(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Signup attempt from IP: %s", r.RemoteAddr)

	var req SignupRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := s.validator.Struct(&req); err != nil {
		log.Printf("[AUTH] Signup validation failed: %v", err)
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	email := strings.ToLower(req.Email)

	hash, err := hashPassword(req.Password)
	if err != nil {
		log.Printf("[AUTH] Password hashing failed for %s: %v", email, err)
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}

	user := models.User{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Email: email,
		Role:  models.RoleUser,
	}

	s.mu.Lock()
	if _, exists := s.accounts[email]; exists {
		s.mu.Unlock()
		log.Printf("[AUTH] Signup rejected, email exists: %s", email)
		SendErrorResponse(w, "Email Already Exists", http.StatusConflict, nil)
		return
	}
	s.accounts[email] = account{user: user, passwordHash: hash}
	s.mu.Unlock()

	s.persistUser(r.Context(), user)

	token, err := generateJWT(user)
	if err != nil {
		log.Printf("[AUTH] JWT generation failed for user %s: %v", user.ID, err)
		SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[AUTH] Signup successful for user %s", user.ID)
	SendJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// Logout handles user logout
// @Summary Logout user
// @Description Blacklists the presented token until it expires
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logout successful"
// @Router /auth/logout [post]
func (s *AuthService) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if strings.HasPrefix(token, "Bearer ") {
		token = strings.TrimPrefix(token, "Bearer ")
		key := fmt.Sprintf("blacklist:%s", token)
		expiry := time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour
		if err := s.kv.Set(r.Context(), key, "1", expiry); err != nil {
			log.Printf("[AUTH] Failed to blacklist token: %v", err)
		}
	}

	SendJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// GetAccount retrieves the authenticated identity
// @Summary Get current user
// @Description Returns the identity behind the presented token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "Current identity"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /auth/account [get]
func (s *AuthService) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	user, err := s.UserByID(r.Context(), userID)
	if err != nil {
		log.Printf("[AUTH] User not found for ID %s: %v", userID, err)
		SendErrorResponse(w, "User not found", http.StatusNotFound, nil)
		return
	}

	SendJSON(w, http.StatusOK, user)
}

// UserByID reads the persisted identity back from storage.
func (s *AuthService) UserByID(ctx context.Context, userID string) (models.User, error) {
	raw, ok, err := s.kv.Get(ctx, fmt.Sprintf("user:%s", userID))
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, fmt.Errorf("user %s not found", userID)
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Corrupt identity heals by deletion, same as a corrupt cart.
		s.kv.Del(ctx, fmt.Sprintf("user:%s", userID))
		return models.User{}, fmt.Errorf("stored user %s was corrupt", userID)
	}
	return user, nil
}

func (s *AuthService) persistUser(ctx context.Context, user models.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.kv.Set(ctx, fmt.Sprintf("user:%s", user.ID), string(raw), 0); err != nil {
		log.Printf("[AUTH] Failed to persist user %s: %v", user.ID, err)
	}
}

// decodeJSONBody applies the shared request hygiene: size cap, unknown field
// rejection and single-object enforcement. Returns false after responding.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}

	return true
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour).Unix(),
	})

	return token.SignedString([]byte(viper.GetString("jwt.secret_key")))
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, viper.GetInt("argon2.salt_length"))
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt,
		uint32(viper.GetInt("argon2.time")),
		uint32(viper.GetInt("argon2.memory")),
		uint8(viper.GetInt("argon2.threads")),
		uint32(viper.GetInt("argon2.key_length")))
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func verifyPassword(password, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt,
		uint32(viper.GetInt("argon2.time")),
		uint32(viper.GetInt("argon2.memory")),
		uint8(viper.GetInt("argon2.threads")),
		uint32(viper.GetInt("argon2.key_length")))
	return string(hash) == string(computedHash)
}
