package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"challengehub/internal/models"
)

const tokenLifetime = 7 * 24 * time.Hour

type AuthHandler struct {
	db        *sqlx.DB
	jwtSecret []byte
}

func NewAuthHandler(db *sqlx.DB, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

const userSelectColumns = `id, email, password_hash, name, level, total_points, current_streak, longest_streak, challenges_completed, last_challenge_date, created_at`

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "Email, password, and name are required")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	var exists bool
	if err := h.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`, req.Email); err != nil {
		respondError(w, http.StatusInternalServerError, "server error during registration")
		return
	}
	if exists {
		respondError(w, http.StatusBadRequest, "User already exists with this email")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	var user models.User
	err = h.db.QueryRowx(`INSERT INTO users (email, password_hash, name) VALUES ($1, $2, $3) RETURNING `+userSelectColumns,
		req.Email, string(hashed), req.Name).StructScan(&user)
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not create user")
		return
	}

	token, err := h.issueJWT(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"token":   token,
		"user":    toUserPayload(user),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	err := h.db.Get(&user, `SELECT `+userSelectColumns+` FROM users WHERE email=$1`, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		respondError(w, http.StatusInternalServerError, "server error during login")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusBadRequest, "Invalid email or password")
		return
	}

	token, err := h.issueJWT(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    toUserPayload(user),
	})
}

// Verify resolves a bearer token back to its user, for session restore on the
// client.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		respondError(w, http.StatusUnauthorized, "No token provided")
		return
	}
	tokenStr := strings.TrimPrefix(authz, "Bearer ")
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return h.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var user models.User
	if err := h.db.Get(&user, `SELECT `+userSelectColumns+` FROM users WHERE id=$1`, int(sub)); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": toUserPayload(user)})
}

func (h *AuthHandler) issueJWT(userID int) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(tokenLifetime).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}
