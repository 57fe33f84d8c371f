package account

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const accountsCollection = "accounts"

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore account repository.
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	doc, err := r.client.Collection(accountsCollection).Doc(email).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}

	var acct Account
	if err := doc.DataTo(&acct); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}
	return &acct, nil
}

func (r *firestoreRepository) Create(ctx context.Context, acct *Account) error {
	_, err := r.client.Collection(accountsCollection).Doc(acct.Email).Create(ctx, acct)
	if status.Code(err) == codes.AlreadyExists {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}
