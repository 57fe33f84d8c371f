package account

import (
	"context"
	"time"
)

// Account represents the persisted credential document stored in Firestore,
// keyed by lowercase email.
type Account struct {
	UserID       string    `json:"user_id" firestore:"user_id"`
	Email        string    `json:"email" firestore:"email"`
	PasswordHash string    `json:"-" firestore:"password_hash"`
	CreatedAt    time.Time `json:"created_at" firestore:"created_at"`
}

// Session is the identity and token pair returned by sign-up and sign-in.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// Repository encapsulates persistence for account credentials.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, account *Account) error
}

// ProfileInitializer creates the default profile for a new account.
// Satisfied by the mindset service.
type ProfileInitializer interface {
	InitProfile(ctx context.Context, userID, email string) error
}
