package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"sweetcreations/internal/middleware"
	"sweetcreations/internal/models"
	"sweetcreations/internal/session"
	"sweetcreations/internal/store"
)

const minPasswordLen = 8

// Auth serves login, logout, account self-service, and the optional TOTP
// second factor for the admin panel.
type Auth struct {
	sessions *session.Store
	users    *store.UserStore
}

// NewAuth creates the auth handler group.
func NewAuth(sessions *session.Store, users *store.UserStore) *Auth {
	return &Auth{sessions: sessions, users: users}
}

// authResponse is the login reply: the bearer token plus the account it
// belongs to.
type authResponse struct {
	Status string       `json:"status"`
	Token  string       `json:"token"`
	Data   *models.User `json:"data"`
}

// Login handles POST /api/auth/login. Accounts with TOTP enabled must also
// supply a valid code. The error message never reveals which part of the
// credential was wrong.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.FindByEmail(strings.TrimSpace(strings.ToLower(payload.Email)))
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil || !h.users.CheckPassword(user, payload.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if user.TOTPEnabled {
		if payload.Code == "" {
			respondError(w, http.StatusUnauthorized, "Two-factor code required")
			return
		}
		if user.TOTPSecret == nil || !totp.Validate(payload.Code, *user.TOTPSecret) {
			respondError(w, http.StatusUnauthorized, "Invalid two-factor code")
			return
		}
	}

	token, err := h.sessions.Issue(r.Context(), user)
	if err != nil {
		slog.Error("session issue failed", "error", err, "user", user.Email)
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	slog.Info("login", "user", user.Email)
	respondJSON(w, http.StatusOK, authResponse{Status: "success", Token: token, Data: user})
}

// Logout handles POST /api/auth/logout and revokes the presented token
// server-side.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Revoke(r.Context(), middleware.BearerToken(r)); err != nil {
		slog.Error("session revoke failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	respondMessage(w, http.StatusOK, "Logged out successfully")
}

// Me handles GET /api/auth/me and returns the account behind the session,
// freshly loaded so role or 2FA changes show up immediately.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := h.users.FindByID(sess.UserID)
	if err != nil {
		slog.Error("me lookup failed", "error", err, "user_id", sess.UserID)
		respondError(w, http.StatusInternalServerError, "Failed to load account")
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Account no longer exists")
		return
	}

	respondData(w, http.StatusOK, user)
}

// UpdatePassword handles PUT /api/auth/updatepassword for the logged-in account.
func (h *Auth) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(payload.NewPassword) < minPasswordLen {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	user, err := h.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("password update lookup failed", "error", err, "user_id", sess.UserID)
		respondError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}
	if !h.users.CheckPassword(user, payload.CurrentPassword) {
		respondError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	if err := h.users.UpdatePassword(user.ID, payload.NewPassword); err != nil {
		slog.Error("password update failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	respondMessage(w, http.StatusOK, "Password updated successfully")
}

// Register handles POST /api/auth/register (admin only) and creates a new
// panel account.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
		Role        string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(payload.Email))
	if email == "" || !strings.Contains(email, "@") {
		respondError(w, http.StatusBadRequest, "Please provide a valid email address")
		return
	}
	if len(payload.Password) < minPasswordLen {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	role := models.RoleEditor
	if payload.Role != "" {
		role = models.Role(payload.Role)
		if role != models.RoleAdmin && role != models.RoleEditor {
			respondError(w, http.StatusBadRequest, "Invalid role "+payload.Role)
			return
		}
	}

	user, err := h.users.Create(email, payload.Password, strings.TrimSpace(payload.DisplayName), role)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respondError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		slog.Error("register failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	respondData(w, http.StatusCreated, user)
}

// TwoFASetup handles POST /api/auth/2fa/setup. It generates a fresh TOTP
// secret for the account and returns it with a QR code for authenticator
// apps. The factor stays inactive until verified.
func (h *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Sweet Creations",
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to start two-factor setup")
		return
	}

	if err := h.users.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("totp secret save failed", "error", err, "user_id", sess.UserID)
		respondError(w, http.StatusInternalServerError, "Failed to start two-factor setup")
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("totp qr encode failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to start two-factor setup")
		return
	}

	respondData(w, http.StatusOK, map[string]string{
		"secret":     key.Secret(),
		"otpauthUrl": key.URL(),
		"qrCode":     "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}

// TwoFAVerify handles POST /api/auth/2fa/verify. A correct code activates
// the second factor for all future logins.
func (h *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("totp verify lookup failed", "error", err, "user_id", sess.UserID)
		respondError(w, http.StatusInternalServerError, "Failed to verify two-factor code")
		return
	}
	if user.TOTPSecret == nil {
		respondError(w, http.StatusBadRequest, "Two-factor setup has not been started")
		return
	}
	if !totp.Validate(payload.Code, *user.TOTPSecret) {
		respondError(w, http.StatusBadRequest, "Invalid two-factor code")
		return
	}

	if err := h.users.EnableTOTP(user.ID); err != nil {
		slog.Error("totp enable failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to enable two-factor authentication")
		return
	}

	respondMessage(w, http.StatusOK, "Two-factor authentication enabled")
}
