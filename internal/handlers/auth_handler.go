package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Mart1n-S/WatchListy-sub000/internal/models"
	"github.com/Mart1n-S/WatchListy-sub000/internal/repositories"
	"github.com/Mart1n-S/WatchListy-sub000/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Session lifetime. Renewal is a fresh login, not a silent extension.
const sessionTTL = 12 * time.Hour

// Seams for failure injection in tests.
var (
	generatePasswordHash = bcrypt.GenerateFromPassword
	signJWT              = func(token *jwt.Token, secret string) (string, error) {
		return token.SignedString([]byte(secret))
	}
	newTokenSecret = func() (string, error) {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		return hex.EncodeToString(buf), nil
	}
	sendVerificationMail = utils.SendVerificationEmail
	sendResetMail        = utils.SendResetPasswordEmail
)

// errLiveToken signals an unexpired token of the same purpose already exists.
var errLiveToken = errors.New("a valid token is already out")

// writeMailError keeps a stalled notifier distinguishable from a rejected
// delivery, mirroring the catalog's timeout/upstream split.
func writeMailError(w http.ResponseWriter, err error) {
	if errors.Is(err, utils.ErrMailTimeout) {
		utils.JSONError(w, http.StatusInternalServerError, "email.delivery_timeout")
		return
	}
	utils.JSONError(w, http.StatusInternalServerError, "email.delivery_failed")
}

// hashTokenSecret is the at-rest form of a token secret; the plaintext only
// ever travels in the email.
func hashTokenSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// AuthHandler manages registration, verification and session endpoints.
type AuthHandler struct {
	UserRepo  UserRepository
	TokenRepo TokenRepository
	JWTSecret string
}

func NewAuthHandler(userRepo UserRepository, tokenRepo TokenRepository) *AuthHandler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev"
	}
	return &AuthHandler{UserRepo: userRepo, TokenRepo: tokenRepo, JWTSecret: secret}
}

type registerRequest struct {
	Pseudo   string `json:"pseudo"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Locale   string `json:"locale"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

type emailRequest struct {
	Email  string `json:"email"`
	Locale string `json:"locale"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// issueToken mints a fresh single-use secret for the user, persisting only
// its hash. While an unexpired token of the same purpose exists the flow
// short-circuits with errLiveToken; an expired one is superseded.
func (h *AuthHandler) issueToken(userID uint, purpose models.TokenPurpose, ttl time.Duration) (string, error) {
	if _, err := h.TokenRepo.GetValidByUserAndPurpose(userID, purpose); err == nil {
		return "", errLiveToken
	} else if !errors.Is(err, repositories.ErrTokenNotFound) {
		return "", err
	}
	if err := h.TokenRepo.DeleteByUserAndPurpose(userID, purpose); err != nil {
		return "", err
	}

	secret, err := newTokenSecret()
	if err != nil {
		return "", err
	}
	token := &models.Token{
		UserID:    userID,
		Purpose:   purpose,
		TokenHash: hashTokenSecret(secret),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := h.TokenRepo.Create(token); err != nil {
		return "", err
	}
	return secret, nil
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "validation.invalid_payload")
		return
	}
	if req.Pseudo == "" || req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "validation.missing_fields")
		return
	}
	if !utils.IsPseudoValid(req.Pseudo) {
		utils.JSONError(w, http.StatusBadRequest, "validation.pseudo_invalid")
		return
	}
	if !utils.IsEmailValid(req.Email) {
		utils.JSONError(w, http.StatusBadRequest, "validation.email_invalid")
		return
	}
	if !utils.IsPasswordValid(req.Password) {
		utils.JSONError(w, http.StatusBadRequest, "validation.password_weak")
		return
	}

	if _, err := h.UserRepo.GetUserByPseudo(req.Pseudo); err == nil {
		utils.JSONError(w, http.StatusConflict, "auth.pseudo_taken")
		return
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	if _, err := h.UserRepo.GetUserByEmail(req.Email); err == nil {
		utils.JSONError(w, http.StatusConflict, "auth.email_taken")
		return
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}

	hash, err := generatePasswordHash([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.hashing")
		return
	}
	user := &models.User{
		Pseudo:       req.Pseudo,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Avatar:       models.Avatars[0],
	}
	if err := h.UserRepo.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent registration won the unique index between the
			// pre-checks and the insert.
			if _, perr := h.UserRepo.GetUserByPseudo(req.Pseudo); perr == nil {
				utils.JSONError(w, http.StatusConflict, "auth.pseudo_taken")
			} else {
				utils.JSONError(w, http.StatusConflict, "auth.email_taken")
			}
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}

	secret, err := h.issueToken(user.ID, models.TokenPurposeVerifyEmail, models.VerifyEmailTokenTTL)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.token")
		return
	}
	if err := sendVerificationMail(user.Email, secret, req.Locale); err != nil {
		// The unverified account stays behind; the reaper frees the
		// identifiers once the token expires.
		writeMailError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]any{
		"id":     user.ID,
		"pseudo": user.Pseudo,
		"email":  user.Email,
	})
}

func (h *AuthHandler) VerifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	secret := r.URL.Query().Get("token")
	if secret == "" {
		utils.JSONError(w, http.StatusBadRequest, "validation.missing_token")
		return
	}

	token, err := h.TokenRepo.GetByHash(hashTokenSecret(secret), models.TokenPurposeVerifyEmail)
	if errors.Is(err, repositories.ErrTokenNotFound) {
		utils.JSONError(w, http.StatusBadRequest, "auth.token_invalid")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	if token.Expired(time.Now()) {
		utils.JSONError(w, http.StatusBadRequest, "auth.token_expired")
		return
	}

	user, err := h.UserRepo.GetUserByID(token.UserID)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "auth.token_invalid")
		return
	}
	now := time.Now()
	user.VerifiedAt = &now
	if err := h.UserRepo.SaveUser(user); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	// Single use: the record goes away with the successful validation.
	if err := h.TokenRepo.DeleteByID(token.ID); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "auth.email_verified"})
}

// ResendVerificationHandler always answers neutrally on unknown or already
// verified accounts so the endpoint cannot be used to enumerate users.
func (h *AuthHandler) ResendVerificationHandler(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		utils.JSONError(w, http.StatusBadRequest, "validation.missing_fields")
		return
	}

	user, err := h.UserRepo.GetUserByEmail(req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		utils.JSON(w, http.StatusOK, map[string]string{"message": "auth.check_email"})
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	if user.Verified() {
		utils.JSON(w, http.StatusOK, map[string]string{"message": "auth.check_email"})
		return
	}

	secret, err := h.issueToken(user.ID, models.TokenPurposeVerifyEmail, models.VerifyEmailTokenTTL)
	if errors.Is(err, errLiveToken) {
		// A valid token is already in their inbox; do not mint another.
		utils.JSON(w, http.StatusOK, map[string]string{"message": "auth.check_email"})
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.token")
		return
	}
	if err := sendVerificationMail(user.Email, secret, req.Locale); err != nil {
		writeMailError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "auth.check_email"})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "validation.invalid_payload")
		return
	}

	user, err := h.UserRepo.GetUserByEmail(req.Email)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "auth.invalid_credentials")
		return
	}
	if !user.Verified() {
		utils.JSONError(w, http.StatusUnauthorized, "auth.not_verified")
		return
	}
	if user.Blocked() {
		utils.JSONError(w, http.StatusUnauthorized, "auth.blocked")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.JSONError(w, http.StatusUnauthorized, "auth.invalid_credentials")
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    fmt.Sprintf("%d", user.ID),
		"pseudo": user.Pseudo,
		"role":   user.Role,
		"iat":    now.Unix(),
		"exp":    now.Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := signJWT(token, h.JWTSecret)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.token")
		return
	}
	utils.JSON(w, http.StatusOK, authResponse{Token: signed})
}

// ForgotPasswordHandler collapses "no such account" into the same neutral
// answer as success; only a notifier failure on a real account is an error.
func (h *AuthHandler) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		utils.JSONError(w, http.StatusBadRequest, "validation.missing_fields")
		return
	}

	user, err := h.UserRepo.GetUserByEmail(req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		utils.JSON(w, http.StatusOK, map[string]string{"message": "auth.check_email"})
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}

	secret, err := h.issueToken(user.ID, models.TokenPurposeResetPassword, models.ResetPasswordTokenTTL)
	if errors.Is(err, errLiveToken) {
		utils.JSON(w, http.StatusOK, map[string]string{"message": "auth.check_email"})
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.token")
		return
	}
	if err := sendResetMail(user.Email, secret, req.Locale); err != nil {
		writeMailError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "auth.check_email"})
}

func (h *AuthHandler) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		utils.JSONError(w, http.StatusBadRequest, "validation.missing_fields")
		return
	}
	if !utils.IsPasswordValid(req.Password) {
		utils.JSONError(w, http.StatusBadRequest, "validation.password_weak")
		return
	}

	token, err := h.TokenRepo.GetByHash(hashTokenSecret(req.Token), models.TokenPurposeResetPassword)
	if errors.Is(err, repositories.ErrTokenNotFound) {
		utils.JSONError(w, http.StatusBadRequest, "auth.token_invalid")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	if token.Expired(time.Now()) {
		utils.JSONError(w, http.StatusBadRequest, "auth.token_expired")
		return
	}

	user, err := h.UserRepo.GetUserByID(token.UserID)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "auth.token_invalid")
		return
	}
	hash, err := generatePasswordHash([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.hashing")
		return
	}
	user.PasswordHash = string(hash)
	if err := h.UserRepo.SaveUser(user); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}
	if err := h.TokenRepo.DeleteByID(token.ID); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "auth.password_reset"})
}

// MeHandler echoes the principal for the presented session token.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := utils.VerifyToken(r, h.JWTSecret)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	userID, err := utils.GetUserIDFromClaims(claims)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
		return
	}
	user, err := h.UserRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			utils.JSONError(w, http.StatusNotFound, "user.not_found")
		} else {
			utils.JSONError(w, http.StatusInternalServerError, "internal.database")
		}
		return
	}
	utils.JSON(w, http.StatusOK, user)
}
