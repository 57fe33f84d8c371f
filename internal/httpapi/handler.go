package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/growthnest/mindset-service/internal/account"
	"github.com/growthnest/mindset-service/internal/auth"
	"github.com/growthnest/mindset-service/internal/httperr"
	"github.com/growthnest/mindset-service/internal/logging"
	"github.com/growthnest/mindset-service/internal/mindset"
)

const (
	serviceTimeout   = 8 * time.Second
	maxAuthBodyBytes = 16 * 1024
)

// RegisterRoutes registers the auth, profile, challenge and leaderboard routes.
func RegisterRoutes(r chi.Router, gateway *account.Gateway, service mindset.Service, verifier auth.Verifier, logger *slog.Logger) {
	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/signup", signUp(gateway, logger))
		r.Post("/login", logIn(gateway, service, logger))

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(verifier))
			r.Post("/logout", logOut(service))
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(verifier))

		r.Route("/v1/profile", func(r chi.Router) {
			r.Get("/me", getProfile(service, logger))
			r.Patch("/me", saveProgress(service, logger))
		})

		r.Route("/v1/challenges", func(r chi.Router) {
			r.Get("/random", randomChallenge())
			r.Post("/complete", completeChallenge(service, logger))
		})

		r.Get("/v1/leaderboard", leaderboard(service, logger))
	})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID  string                   `json:"user_id"`
	Email   string                   `json:"email"`
	Token   string                   `json:"token"`
	Profile *mindset.ProfileResponse `json:"profile,omitempty"`
}

func signUp(gateway *account.Gateway, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		session, err := gateway.SignUp(ctx, creds.Email, creds.Password)
		if err != nil {
			switch {
			case errors.Is(err, account.ErrEmailTaken):
				writeError(w, r, "conflict", err.Error())
			case errors.Is(err, account.ErrInvalidEmail), errors.Is(err, account.ErrWeakPassword):
				writeError(w, r, "bad_request", err.Error())
			default:
				logRequestError(r.Context(), logger, "sign up failed", err, "")
				writeError(w, r, "internal", "sign up failed")
			}
			return
		}

		writeJSON(w, http.StatusCreated, sessionResponse{
			UserID: session.UserID,
			Email:  session.Email,
			Token:  session.Token,
		})
	}
}

func logIn(gateway *account.Gateway, service mindset.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		session, err := gateway.SignIn(ctx, creds.Email, creds.Password)
		if err != nil {
			if errors.Is(err, account.ErrInvalidCredentials) {
				writeError(w, r, "unauthorized", err.Error())
				return
			}
			logRequestError(r.Context(), logger, "sign in failed", err, "")
			writeError(w, r, "internal", "sign in failed")
			return
		}

		// Entering the session runs the streak rule exactly once per login.
		profile, err := service.Enter(ctx, session.UserID, session.Email)
		if err != nil {
			logRequestError(r.Context(), logger, "session entry failed", err, session.UserID)
			writeError(w, r, "internal", "failed to load profile")
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{
			UserID:  session.UserID,
			Email:   session.Email,
			Token:   session.Token,
			Profile: profile,
		})
	}
}

func logOut(service mindset.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			writeError(w, r, "unauthorized", "missing user")
			return
		}

		// Tokens are not revoked server-side; only the cached session goes.
		service.Leave(user.UserID)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func getProfile(service mindset.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			writeError(w, r, "unauthorized", "missing user")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		profile, err := service.GetProfile(ctx, user.UserID)
		if err != nil {
			if errors.Is(err, mindset.ErrNotFound) {
				writeError(w, r, "not_found", "profile not found")
				return
			}
			logRequestError(r.Context(), logger, "failed to load profile", err, user.UserID)
			writeError(w, r, "internal", "failed to load profile")
			return
		}

		writeJSON(w, http.StatusOK, profile)
	}
}

func saveProgress(service mindset.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			writeError(w, r, "unauthorized", "missing user")
			return
		}

		var body struct {
			Progress *int `json:"progress"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Progress == nil {
			writeError(w, r, "bad_request", "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		profile, err := service.SaveProgress(ctx, user.UserID, *body.Progress)
		if err != nil {
			switch {
			case errors.Is(err, mindset.ErrInvalidProgress):
				writeError(w, r, "bad_request", err.Error())
			case errors.Is(err, mindset.ErrNotFound):
				writeError(w, r, "not_found", "profile not found")
			default:
				logRequestError(r.Context(), logger, "failed to save progress", err, user.UserID)
				writeError(w, r, "internal", "failed to save progress")
			}
			return
		}

		writeJSON(w, http.StatusOK, profile)
	}
}

func randomChallenge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"challenge": mindset.RandomChallenge()})
	}
}

func completeChallenge(service mindset.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			writeError(w, r, "unauthorized", "missing user")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := service.CompleteChallenge(ctx, user.UserID)
		if err != nil {
			if errors.Is(err, mindset.ErrNotFound) {
				writeError(w, r, "not_found", "profile not found")
				return
			}
			logRequestError(r.Context(), logger, "failed to complete challenge", err, user.UserID)
			writeError(w, r, "internal", "failed to complete challenge")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func leaderboard(service mindset.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		entries, err := service.Leaderboard(ctx)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to load leaderboard", err, "")
			writeError(w, r, "internal", "failed to load leaderboard")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
	}
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAuthBodyBytes)
	defer r.Body.Close()

	var creds credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, r, "bad_request", "invalid request body")
		return creds, false
	}
	if creds.Email == "" || creds.Password == "" {
		writeError(w, r, "bad_request", "email and password are required")
		return creds, false
	}
	return creds, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, code, message string) {
	writeJSON(w, httperr.ToStatusCode(code), httperr.ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func logRequestError(ctx context.Context, logger *slog.Logger, message string, err error, userID string) {
	if logger == nil || err == nil {
		return
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logging.WithRequestID(ctx, logger, reqID)
	}
	logger.Error(message,
		slog.String("userId", userID),
		slog.Any("error", err),
	)
}
