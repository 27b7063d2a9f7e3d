package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patronbase/backend/internal/config"
	"github.com/patronbase/backend/internal/database"
	"github.com/patronbase/backend/internal/middleware"
	"github.com/patronbase/backend/internal/models"
	"github.com/patronbase/backend/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles registration and the session lifecycle
type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob" binding:"required"` // YYYY-MM-DD
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user and its profile. Duplicate usernames and emails
// are rejected with 400; the response never includes the password.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dob must be in YYYY-MM-DD format"})
		return
	}

	if _, err := database.GetUserByUsername(h.db, req.Username); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already in use"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if _, err := database.GetProfileByEmail(h.db, req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already in use"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process password"})
		return
	}

	user := models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashedPassword,
	}
	profile := models.Profile{
		Email: req.Email,
		DOB:   dob,
	}

	if err := database.CreateUserWithProfile(h.db, &user, &profile); err != nil {
		// The unique indexes are the authority for races past the
		// pre-checks above.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username or email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"profile": profile,
	})
}

// Login verifies email + password and issues a session token. The same
// generic message covers an unknown email and a wrong password, so the
// endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := database.GetUserByEmail(h.db, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
		return
	}

	expiry := time.Duration(h.cfg.JWT.ExpirationMinutes) * time.Minute
	token, err := utils.GenerateToken(user.ID, h.cfg.JWT.Secret, expiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.SetCookie(middleware.CookieName, token, int(expiry.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// VerifyToken reports whether the presented token is still good. The token
// comes from the jwt cookie or a bearer header.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	tokenString := h.extractToken(c)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if _, err := utils.ValidateToken(tokenString, h.cfg.JWT.Secret); err != nil {
		switch {
		case errors.Is(err, utils.ErrTokenExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
		case errors.Is(err, utils.ErrTokenInvalid):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
}

// CurrentUser returns the authenticated user's public record. The auth
// middleware has already verified the cookie and set user_id.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	user, err := database.GetUserByID(h.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	response := gin.H{"user": user}

	// A user may predate its profile row; the schema allows that.
	if profile, err := database.GetProfileByUserID(h.db, userID); err == nil {
		response["profile"] = profile
	}

	c.JSON(http.StatusOK, response)
}

// Logout clears the session cookie. It succeeds whether or not a session
// exists, so repeated calls are harmless.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

// extractToken gets the token from the jwt cookie, falling back to the
// Authorization header.
func (h *AuthHandler) extractToken(c *gin.Context) string {
	if token, err := c.Cookie(middleware.CookieName); err == nil && token != "" {
		return token
	}
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
