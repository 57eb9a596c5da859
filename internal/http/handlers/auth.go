package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	intconfig "bacalah/internal/config"
	intdb "bacalah/internal/db"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret []byte

// SetJWTSecret wires the signing key from config at router build time.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// AuthUser is the user payload returned by auth endpoints.
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var (
		user         AuthUser
		passwordHash string
	)
	err := intconfig.DB.QueryRow(`
        SELECT id, COALESCE(username, ''), email, password_hash
        FROM users
        WHERE email = ? OR username = ?
    `, req.Email, req.Email).Scan(&user.ID, &user.Username, &user.Email, &passwordHash)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusUnauthorized, "invalid_credentials", "wrong email or password", nil)
		} else {
			respondError(c, http.StatusInternalServerError, "internal_error", "failed to query user", nil)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "wrong email or password", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to sign token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString, "user": user})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)

	var exists int
	err := intconfig.DB.QueryRow(`
        SELECT COUNT(*) FROM users WHERE email = ? OR username = ?
    `, email, username).Scan(&exists)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to check user", nil)
		return
	}
	if exists > 0 {
		respondError(c, http.StatusConflict, "conflict", "email or username already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to hash password", nil)
		return
	}

	// the unique keys on email and username settle concurrent
	// registrations the pre-check cannot see
	res, err := intconfig.DB.Exec(`
        INSERT INTO users (username, email, password_hash, created_at)
        VALUES (?, ?, ?, ?)
    `, intdb.NullIfEmpty(username), email, string(hash), time.Now().UTC())
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			respondError(c, http.StatusConflict, "conflict", "email or username already registered", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to save user", nil)
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user":    AuthUser{ID: id, Username: username, Email: email},
	})
}
