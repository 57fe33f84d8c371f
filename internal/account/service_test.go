package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/growthnest/mindset-service/internal/auth"
	"github.com/growthnest/mindset-service/internal/mindset"
)

type recordingInitializer struct {
	calls []string
	err   error
}

func (r *recordingInitializer) InitProfile(ctx context.Context, userID, email string) error {
	r.calls = append(r.calls, userID)
	return r.err
}

func newTestGateway(t *testing.T, init ProfileInitializer) *Gateway {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret-0123456789", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	passwords := auth.NewPasswordServiceWithCost(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewGateway(NewMemoryRepository(), tokens, passwords, init, logger)
}

func TestSignUpCreatesAccountAndProfile(t *testing.T) {
	init := &recordingInitializer{}
	gw := newTestGateway(t, init)

	session, err := gw.SignUp(context.Background(), "A@X.com", "password123")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if session.UserID == "" || session.Token == "" {
		t.Fatalf("incomplete session: %+v", session)
	}
	if session.Email != "a@x.com" {
		t.Fatalf("email not normalized: %q", session.Email)
	}
	if len(init.calls) != 1 || init.calls[0] != session.UserID {
		t.Fatalf("profile initializer not invoked for %s: %v", session.UserID, init.calls)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	gw := newTestGateway(t, &recordingInitializer{})

	if _, err := gw.SignUp(context.Background(), "a@x.com", "password123"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	if _, err := gw.SignUp(context.Background(), "a@x.com", "password456"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignUpRejectsBadInput(t *testing.T) {
	gw := newTestGateway(t, &recordingInitializer{})

	if _, err := gw.SignUp(context.Background(), "not-an-email", "password123"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := gw.SignUp(context.Background(), "a@x.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestSignUpSurvivesProfileInitFailure(t *testing.T) {
	init := &recordingInitializer{err: errors.New("store down")}
	gw := newTestGateway(t, init)

	// Account creation and profile initialization are two writes with no
	// atomicity; the sign-up still succeeds and the profile is repaired on
	// the first login.
	session, err := gw.SignUp(context.Background(), "a@x.com", "password123")
	if err != nil {
		t.Fatalf("SignUp should survive profile init failure, got %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected a usable session")
	}
}

func TestSignInVerifiesCredentials(t *testing.T) {
	gw := newTestGateway(t, &recordingInitializer{})

	created, err := gw.SignUp(context.Background(), "a@x.com", "password123")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	session, err := gw.SignIn(context.Background(), "a@x.com", "password123")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if session.UserID != created.UserID {
		t.Fatalf("SignIn returned user %s, want %s", session.UserID, created.UserID)
	}

	if _, err := gw.SignIn(context.Background(), "a@x.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := gw.SignIn(context.Background(), "nobody@x.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSignUpDefaultsFlowThroughProfileService(t *testing.T) {
	profiles := mindset.NewService(mindset.NewMemoryRepository())
	gw := newTestGateway(t, profiles)

	session, err := gw.SignUp(context.Background(), "a@x.com", "password123")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	resp, err := profiles.GetProfile(context.Background(), session.UserID)
	if err != nil {
		t.Fatalf("GetProfile after sign-up: %v", err)
	}
	if resp.Progress != mindset.DefaultProgress || resp.Streak != 0 || resp.ChallengesCompleted != 0 {
		t.Fatalf("unexpected defaults: %+v", resp)
	}
	if resp.Badge != mindset.BadgeBeginner {
		t.Fatalf("expected Beginner badge, got %q", resp.Badge)
	}
}
