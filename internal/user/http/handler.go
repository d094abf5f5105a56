package http

import (
	"errors"
	"log/slog"
	"net/http"

	authapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/app"
	authhttp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/http"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/user/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/user/domain"
	"github.com/Carole-Bou-Shakra/Quick-Shop/pkg/httpx"
)

type Handler struct {
	svc    *app.Service
	tokens *authapp.Service
	log    *slog.Logger
}

func NewHandler(svc *app.Service, tokens *authapp.Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, tokens: tokens, log: log}
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", err.Error())
		return
	}

	u, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, err, "Something went wrong!")
		return
	}

	token, err := h.tokens.Issue(authapp.Identity{UserID: u.ID, Name: u.Name, Email: u.Email})
	if err != nil {
		h.fail(w, err, "Something went wrong!")
		return
	}

	httpx.OK(w, "User was created successfully!", loginResponse{User: u, Token: token})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", err.Error())
		return
	}

	u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			httpx.Fail(w, http.StatusUnauthorized, "Invalid email or password!")
			return
		}
		h.fail(w, err, "Something went wrong!")
		return
	}

	token, err := h.tokens.Issue(authapp.Identity{UserID: u.ID, Name: u.Name, Email: u.Email})
	if err != nil {
		h.fail(w, err, "Something went wrong!")
		return
	}

	httpx.OK(w, "Login successful!", loginResponse{User: u, Token: token})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ownID(w, r)
	if !ok {
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, "Something went wrong!")
		return
	}

	httpx.OK(w, "User found successfully!", u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ownID(w, r)
	if !ok {
		return
	}

	var req credentialsRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", err.Error())
		return
	}

	u, err := h.svc.Update(r.Context(), id, req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, err, "Something went wrong!")
		return
	}

	httpx.OK(w, "User was updated successfully!", u)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ownID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "Something went wrong!")
		return
	}

	httpx.OK(w, "User was deleted successfully!", nil)
}

// ownID extracts the {id} path value and enforces that a user only
// touches their own record.
func (h *Handler) ownID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	identity, _ := authhttp.FromContext(r.Context())
	if id != identity.UserID {
		httpx.Fail(w, http.StatusForbidden, "Forbidden!", "you are not authorized to access this user")
		return "", false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "User not found!")
	case errors.Is(err, app.ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, "Invalid request.", err.Error())
	case errors.Is(err, app.ErrEmailTaken):
		httpx.Fail(w, http.StatusBadRequest, message, err.Error())
	default:
		h.log.Error("user request failed", slog.Any("err", err))
		httpx.Fail(w, http.StatusInternalServerError, message, err.Error())
	}
}
