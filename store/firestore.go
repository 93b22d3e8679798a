package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"fernbot/errors"
	"fernbot/match"
)

// FirestoreStore reads the question/answer collection from Firestore. It is
// read-only: the bot never writes, so no locking or cache invalidation is
// needed. Built once at startup and shared across requests.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
	logger     *zap.Logger
}

// NewFirestoreStore connects to Firestore for the given project. When
// credentialsJSON is empty the client falls back to application default
// credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsJSON, collection string, logger *zap.Logger) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, errors.WrapError(err, "failed to create firestore client")
	}

	logger.Info("Connected to Firestore",
		zap.String("project_id", projectID),
		zap.String("collection", collection))

	return &FirestoreStore{
		client:     client,
		collection: collection,
		logger:     logger,
	}, nil
}

// FetchAll reads the entire candidate collection. Every query does a full
// scan over these entries, so there is no pagination and no local index;
// the collection is expected to stay small. Firestore does not guarantee a
// stable iteration order across calls.
func (s *FirestoreStore) FetchAll(ctx context.Context) ([]match.Entry, error) {
	docs, err := s.client.Collection(s.collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.WrapErrorf(err, "failed to read collection %q", s.collection)
	}

	entries := make([]match.Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, decodeEntry(doc.Ref.ID, doc.Data()))
	}
	return entries, nil
}

// Collection returns the configured collection name, for diagnostics.
func (s *FirestoreStore) Collection() string {
	return s.collection
}

// Count reports how many candidate entries the collection currently holds.
func (s *FirestoreStore) Count(ctx context.Context) (int, error) {
	entries, err := s.FetchAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
