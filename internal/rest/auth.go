package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sanLimbu/taskboard-api/internal"
)

//go:generate counterfeiter -o resttesting/auth_service.gen.go . AuthService

// AuthService ...
type AuthService interface {
	Register(ctx context.Context, name, email, pass string, role internal.Role) (string, internal.User, error)
	Login(ctx context.Context, email, pass string) (string, internal.User, error)
	RequestPasswordReset(ctx context.Context, email string) (string, time.Time, error)
	VerifyResetToken(ctx context.Context, resetToken string) (string, error)
	CompletePasswordReset(ctx context.Context, resetToken, newPassword string) error
	SetRole(ctx context.Context, actor internal.Actor, role string) (internal.User, error)
	Users(ctx context.Context, actor internal.Actor) ([]internal.User, error)
}

// AuthHandler ...
type AuthHandler struct {
	svc AuthService
}

// NewAuthHandler ...
func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// Register connects the public handlers to the router.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
	r.Post("/auth/forgot-password", h.forgotPassword)
	r.Get("/auth/verify-reset-token/{token}", h.verifyResetToken)
	r.Post("/auth/reset-password", h.resetPassword)
}

// RegisterProtected connects the handlers requiring a resolved actor.
func (h *AuthHandler) RegisterProtected(r chi.Router) {
	r.Put("/auth/role", h.setRole)
	r.Get("/auth/users", h.users)
}

// User defines the account projection returned to callers, credentials and
// reset-token state never appear in it.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// NewUser converts a domain user into its response projection.
func NewUser(user internal.User) User {
	return User{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

// RegisterRequest defines the request used for registering accounts.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SessionResponse defines the response returned after registering or
// logging in.
type SessionResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderErrorResponse(r.Context(), w, "invalid request",
			internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "json decoder"))
		return
	}
	defer r.Body.Close()

	role := internal.RoleUnset

	if req.Role != "" {
		parsed, err := internal.ParseRole(req.Role)
		if err != nil {
			renderErrorResponse(r.Context(), w, "invalid role", err)
			return
		}

		role = parsed
	}

	session, user, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		renderErrorResponse(r.Context(), w, "register failed", err)
		return
	}

	renderResponse(w, &SessionResponse{
		Token: session,
		User:  NewUser(user),
	}, http.StatusCreated)
}

// LoginRequest defines the request used for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderErrorResponse(r.Context(), w, "invalid request",
			internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "json decoder"))
		return
	}
	defer r.Body.Close()

	session, user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		renderErrorResponse(r.Context(), w, "invalid credentials", err)
		return
	}

	renderResponse(w, &SessionResponse{
		Token: session,
		User:  NewUser(user),
	}, http.StatusOK)
}

// ForgotPasswordRequest defines the request used for issuing reset tokens.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordResponse returns the reset token directly, email delivery
// is out of scope.
type ForgotPasswordResponse struct {
	ResetToken string `json:"reset_token"`
	ExpiresIn  int64  `json:"expires_in"`
}

func (h *AuthHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderErrorResponse(r.Context(), w, "invalid request",
			internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "json decoder"))
		return
	}
	defer r.Body.Close()

	resetToken, expiry, err := h.svc.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		renderErrorResponse(r.Context(), w, "user not found", err)
		return
	}

	renderResponse(w, &ForgotPasswordResponse{
		ResetToken: resetToken,
		ExpiresIn:  int64(time.Until(expiry).Seconds()),
	}, http.StatusOK)
}

// VerifyResetTokenResponse defines the response returned for a valid token.
type VerifyResetTokenResponse struct {
	Email string `json:"email"`
}

func (h *AuthHandler) verifyResetToken(w http.ResponseWriter, r *http.Request) {
	email, err := h.svc.VerifyResetToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		renderErrorResponse(r.Context(), w, "invalid or expired reset token", err)
		return
	}

	renderResponse(w, &VerifyResetTokenResponse{Email: email}, http.StatusOK)
}

// ResetPasswordRequest defines the request used for completing a reset.
type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderErrorResponse(r.Context(), w, "invalid request",
			internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "json decoder"))
		return
	}
	defer r.Body.Close()

	if err := h.svc.CompletePasswordReset(r.Context(), req.ResetToken, req.NewPassword); err != nil {
		renderErrorResponse(r.Context(), w, "reset failed", err)
		return
	}

	renderResponse(w, struct{}{}, http.StatusOK)
}

// SetRoleRequest defines the request used for role selection.
type SetRoleRequest struct {
	Role string `json:"role"`
}

func (h *AuthHandler) setRole(w http.ResponseWriter, r *http.Request) {
	var req SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderErrorResponse(r.Context(), w, "invalid request",
			internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "json decoder"))
		return
	}
	defer r.Body.Close()

	user, err := h.svc.SetRole(r.Context(), actorFromRequest(r), req.Role)
	if err != nil {
		renderErrorResponse(r.Context(), w, "invalid role", err)
		return
	}

	renderResponse(w, NewUser(user), http.StatusOK)
}

// UsersResponse defines the response returned when listing accounts.
type UsersResponse struct {
	Users []User `json:"users"`
}

func (h *AuthHandler) users(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users(r.Context(), actorFromRequest(r))
	if err != nil {
		renderErrorResponse(r.Context(), w, "list failed", err)
		return
	}

	res := UsersResponse{Users: make([]User, 0, len(users))}
	for _, user := range users {
		res.Users = append(res.Users, NewUser(user))
	}

	renderResponse(w, &res, http.StatusOK)
}
