// Package stub is a local implementation of the backend API the client
// talks to: registration, login and the AI prompt endpoint. It exists for
// development and integration tests; state lives in memory and replies come
// from canned text unless an Ark model is configured.
package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dmorita/sage/internal/model"
	"github.com/dmorita/sage/pkg/httpx"
)

// Handler serves the three API endpoints.
type Handler struct {
	store     *Store
	tokens    TokenConfig
	responder Responder
	logger    *zap.Logger
}

// NewRouter wires the stub endpoints under /api.
func NewRouter(store *Store, tokens TokenConfig, responder Responder, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{store: store, tokens: tokens, responder: responder, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", h.handleRegister)
		api.Post("/auth/login", h.handleLogin)
		api.Post("/ai/prompt", h.handlePrompt)
	})

	return r
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload model.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.FirstName == "" || payload.LastName == "" || payload.Email == "" || payload.PasswordHash == "" {
		httpx.RespondError(w, http.StatusBadRequest, "firstName, lastName, email and passwordHash are required")
		return
	}

	if _, err := h.store.Create(payload.FirstName, payload.LastName, payload.Email, payload.PasswordHash); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			httpx.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("register failed", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	h.logger.Info("account registered", zap.String("email", payload.Email))
	httpx.RespondJSON(w, http.StatusOK, model.RegistrationResponse{Message: "User registered successfully"})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload model.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.store.Authenticate(payload.Email, payload.PasswordHash)
	if err != nil {
		httpx.RespondError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
		return
	}

	token, err := MintToken(account.ID, h.tokens)
	if err != nil {
		h.logger.Error("token mint failed", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.logger.Info("login", zap.String("user", account.ID))
	httpx.RespondJSON(w, http.StatusOK, model.AuthResponse{
		Token: token,
		User: model.AuthUser{
			ID:        account.ID,
			FirstName: account.FirstName,
			LastName:  account.LastName,
			Email:     account.Email,
			CreatedAt: account.CreatedAt.Format(time.RFC3339),
			LastLogin: account.LastLogin.Format(time.RFC3339),
		},
	})
}

func (h *Handler) handlePrompt(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		httpx.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	claims, err := VerifyToken(token, h.tokens)
	if err != nil {
		httpx.RespondError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	// The body is a raw JSON-encoded string, not an object.
	var promptText string
	if err := json.NewDecoder(r.Body).Decode(&promptText); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "body must be a JSON string")
		return
	}
	if strings.TrimSpace(promptText) == "" {
		httpx.RespondError(w, http.StatusBadRequest, "prompt is empty")
		return
	}

	resp, err := h.responder.Reply(r.Context(), promptText)
	if err != nil {
		h.logger.Error("responder failed", zap.String("user", claims.UserID), zap.Error(err))
		httpx.RespondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, resp)
}

var errInvalidAuthHeader = errors.New("invalid authorization format, expected 'Bearer <token>'")

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errInvalidAuthHeader
	}
	return token, nil
}

// cors mirrors what the real backend allows; the stub is called from local
// web front ends during development.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
