package profile

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/profile-console/internal/platform/logging"
)

const profilesCollection = "profiles"

// firestoreProfile maps to Firestore document structure.
type firestoreProfile struct {
	Name      string    `firestore:"name"`
	Email     string    `firestore:"email"`
	Age       *int64    `firestore:"age"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func (fp firestoreProfile) toProfile(id string) *Profile {
	p := &Profile{
		ID:        id,
		Name:      fp.Name,
		Email:     fp.Email,
		CreatedAt: fp.CreatedAt,
		UpdatedAt: fp.UpdatedAt,
	}
	if fp.Age != nil {
		age := int(*fp.Age)
		p.Age = &age
	}
	return p
}

// FirestoreStore implements Service using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// CreateOrUpdate writes the profile inside a transaction so the lookup by id
// or name and the write are atomic.
func (s *FirestoreStore) CreateOrUpdate(ctx context.Context, name string, params SaveParams) (*Profile, error) {
	fields, err := normalize(name, params)
	if err != nil {
		applog.LogAuditEvent(ctx, "save", "profile", params.ID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	col := s.client.Collection(profilesCollection)
	now := time.Now().UTC()

	var result *Profile

	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef, existing, err := s.resolve(tx, col, fields.Name, fields.ID)
		if err != nil {
			return err
		}

		fp := firestoreProfile{
			Name:      fields.Name,
			Email:     fields.Email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if fields.Age != nil {
			age := int64(*fields.Age)
			fp.Age = &age
		}
		if existing != nil {
			fp.CreatedAt = existing.CreatedAt
		}

		if err := tx.Set(docRef, fp); err != nil {
			return err
		}

		result = fp.toProfile(docRef.ID)
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "save", "profile", params.ID, "failure",
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "save", "profile", result.ID, "success", nil)

	return result, nil
}

// resolve finds the document to write: the one named by id, else the first
// profile stored under name, else a new document with a random id.
func (s *FirestoreStore) resolve(
	tx *firestore.Transaction,
	col *firestore.CollectionRef,
	name, id string,
) (*firestore.DocumentRef, *firestoreProfile, error) {
	if id != "" {
		docRef := col.Doc(id)
		doc, err := tx.Get(docRef)
		switch {
		case err == nil && doc.Exists():
			var fp firestoreProfile
			if err := doc.DataTo(&fp); err != nil {
				return nil, nil, err
			}
			return docRef, &fp, nil
		case err != nil && status.Code(err) != codes.NotFound:
			return nil, nil, err
		}
	}

	docs, err := tx.Documents(col.Where("name", "==", name).Limit(1)).GetAll()
	if err != nil {
		return nil, nil, err
	}
	if len(docs) > 0 {
		var fp firestoreProfile
		if err := docs[0].DataTo(&fp); err != nil {
			return nil, nil, err
		}
		return docs[0].Ref, &fp, nil
	}

	return col.Doc(uuid.NewString()), nil, nil
}

// Current returns the most recently updated profile.
func (s *FirestoreStore) Current(ctx context.Context) (*Profile, error) {
	docs, err := s.client.Collection(profilesCollection).
		OrderBy("updated_at", firestore.Desc).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}

	var fp firestoreProfile
	if err := docs[0].DataTo(&fp); err != nil {
		return nil, err
	}
	return fp.toProfile(docs[0].Ref.ID), nil
}

// Delete removes a profile using a transaction to ensure it exists.
func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	docRef := s.client.Collection(profilesCollection).Doc(id)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		return tx.Delete(docRef)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "delete", "profile", id, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}

	applog.LogAuditEvent(ctx, "delete", "profile", id, "success", nil)

	return nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
