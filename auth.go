package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"expenzaar/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL     = 24 * time.Hour
	refreshedTokenTTL  = 15 * time.Minute
	refreshTokenExpiry = 30 * 24 * time.Hour
	resetCodeExpiry    = 15 * time.Minute
)

func (a *app) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := a.resolveCallerIdentity(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// resolveCallerIdentity is the single place credentials become a user id.
// It reads the Authorization bearer header and falls back to the
// access_token cookie set at login; both carry the same signed token.
func (a *app) resolveCallerIdentity(c *gin.Context) (uint, error) {
	var tokenString string
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		tokenString = h[len("Bearer "):]
	} else if cookie, err := c.Cookie("access_token"); err == nil {
		tokenString = cookie
	}
	if tokenString == "" {
		return 0, errors.New("missing or invalid credentials")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return a.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	sub, _ := claims["sub"].(float64)
	if sub <= 0 {
		return 0, errors.New("invalid claims")
	}
	return uint(sub), nil
}

// userFromContext fetches the authenticated user using the id set by
// authMiddleware.
func (a *app) userFromContext(c *gin.Context) (*models.User, bool) {
	v, _ := c.Get("user_id")
	id, ok := v.(uint)
	if !ok {
		return nil, false
	}
	user, err := a.store.FindUser(id)
	if err != nil {
		return nil, false
	}
	return user, true
}

func (a *app) signAccessToken(user *models.User, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(a.jwtSecret)
}

func (a *app) registerHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Password) < 6 { // basic password policy
		c.JSON(http.StatusBadRequest, gin.H{"error": "password too short (min 6)"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	// pre-check existing (optimistic); the unique index catches the race
	if _, err := a.store.FindUserByEmail(email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.writeError(c, err)
		return
	}
	user := &models.User{Email: email, HashedPassword: hashed, Name: req.Name, Currency: "$"}
	if err := a.store.CreateUser(user); err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func (a *app) loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := a.store.FindUserByEmail(email)
	if err != nil || len(user.HashedPassword) == 0 {
		// OAuth-only accounts have no password to check
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	tokenString, err := a.signAccessToken(user, accessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refreshToken, err := a.createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	// cookie carrier for browser sessions; header carrier for API clients
	c.SetCookie("access_token", tokenString, int(accessTokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

// createAndStoreRefreshToken generates a random refresh token, stores its
// hash with expiry and returns the raw token string.
func (a *app) createAndStoreRefreshToken(userID uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	h := sha256.Sum256([]byte(token))
	rt := &models.RefreshToken{
		UserID:    userID,
		TokenHash: hex.EncodeToString(h[:]),
		ExpiresAt: time.Now().Add(refreshTokenExpiry),
	}
	if err := a.store.CreateRefreshToken(rt); err != nil {
		return "", err
	}
	return token, nil
}

func (a *app) findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	return a.store.FindRefreshTokenByHash(hex.EncodeToString(h[:]))
}

// refreshHandler exchanges a refresh token for a new access token and
// rotates the refresh token.
func (a *app) refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := a.findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	user, err := a.store.FindUser(rt.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	tokenString, err := a.signAccessToken(user, refreshedTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate: revoke the used token and hand out a fresh one
	rt.Revoked = true
	if err := a.store.SaveRefreshToken(rt); err != nil {
		a.writeError(c, err)
		return
	}
	newRT, err := a.createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func (a *app) revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := a.findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := a.store.SaveRefreshToken(rt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

func (a *app) meHandler(c *gin.Context) {
	user, ok := a.userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"currency":   user.Currency,
		"salary":     user.Salary,
		"oauth_only": user.OAuthOnly,
	})
}

func (a *app) updateMeHandler(c *gin.Context) {
	user, ok := a.userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name     *string  `json:"name"`
		Currency *string  `json:"currency"`
		Salary   *float64 `json:"salary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Currency != nil && *req.Currency != "" {
		user.Currency = *req.Currency
	}
	if req.Salary != nil {
		user.Salary = req.Salary
	}
	if err := a.store.SaveUser(user); err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// deleteMeHandler deletes the account and everything it owns.
func (a *app) deleteMeHandler(c *gin.Context) {
	user, ok := a.userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if err := a.store.DeleteUser(user.ID); err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// generateResetCode returns a 6-digit one-time code.
func generateResetCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}

func hashResetCode(code string) string {
	h := sha256.Sum256([]byte(code))
	return hex.EncodeToString(h[:])
}

// forgotPasswordHandler issues an OTP and mails it without blocking the
// request. The response never reveals whether the email is registered.
func (a *app) forgotPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp := gin.H{"message": "if the account exists, a reset code has been sent"}
	user, err := a.store.FindUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusOK, resp)
		return
	}
	code, err := generateResetCode()
	if err != nil {
		a.writeError(c, err)
		return
	}
	pr := &models.PasswordReset{
		UserID:    user.ID,
		CodeHash:  hashResetCode(code),
		ExpiresAt: time.Now().Add(resetCodeExpiry),
	}
	if err := a.store.CreatePasswordReset(pr); err != nil {
		a.writeError(c, err)
		return
	}
	email := user.Email
	go func() {
		if err := a.mailer.SendPasswordResetCode(email, code); err != nil {
			log.Printf("password reset mail to %s failed: %v", email, err)
		}
	}()
	c.JSON(http.StatusOK, resp)
}

func (a *app) resetPasswordHandler(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password too short (min 6)"})
		return
	}
	user, err := a.store.FindUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired reset code"})
		return
	}
	pr, err := a.store.FindActivePasswordReset(user.ID, hashResetCode(req.Code))
	if err != nil || time.Now().After(pr.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired reset code"})
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		a.writeError(c, err)
		return
	}
	user.HashedPassword = hashed
	user.OAuthOnly = false
	if err := a.store.SaveUser(user); err != nil {
		a.writeError(c, err)
		return
	}
	pr.Used = true
	if err := a.store.SavePasswordReset(pr); err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
