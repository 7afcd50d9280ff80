package repo

import (
	"SurveyBot/model"
	"context"
	"fmt"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// FirebaseStore keeps responses in the Firebase Realtime Database under
// responses/<user_id>, one child per answered column.
type FirebaseStore struct {
	app    *firebase.App
	client *db.Client
}

// NewFirebaseStore creates a store for the database at databaseURL. The
// service account key file is used for credentials when given; extra
// options are passed through to the Firebase app.
func NewFirebaseStore(ctx context.Context, serviceAccountKeyPath string, databaseURL string, opts ...option.ClientOption) (*FirebaseStore, error) {
	if serviceAccountKeyPath != "" {
		opts = append([]option.ClientOption{option.WithCredentialsFile(serviceAccountKeyPath)}, opts...)
	}

	config := &firebase.Config{
		DatabaseURL: databaseURL,
	}
	app, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting database client: %w", err)
	}

	return &FirebaseStore{
		app:    app,
		client: client,
	}, nil
}

func (fs *FirebaseStore) userRef(userID int64) *db.Ref {
	return fs.client.NewRef(responsesTable).Child(strconv.FormatInt(userID, 10))
}

// Upsert sets one child of the user's node. Realtime Database applies an
// update atomically and creates the node when it does not exist.
func (fs *FirebaseStore) Upsert(ctx context.Context, userID int64, column model.Column, answer string) error {
	if !column.Valid() {
		return fmt.Errorf("firebase: %w: %q", model.ErrUnknownColumn, string(column))
	}
	err := fs.userRef(userID).Update(ctx, map[string]interface{}{
		string(column): answer,
	})
	if err != nil {
		return storageErr("firebase update "+string(column), err)
	}
	return nil
}

// Read returns the user's answers. Children that are not known columns are
// skipped.
func (fs *FirebaseStore) Read(ctx context.Context, userID int64) (*model.ResponseRecord, error) {
	var values map[string]string
	if err := fs.userRef(userID).Get(ctx, &values); err != nil {
		return nil, storageErr("firebase read", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("firebase: user %d: %w", userID, model.ErrRecordNotFound)
	}

	r := &model.ResponseRecord{UserID: userID}
	for key, value := range values {
		column, err := model.ParseColumn(key)
		if err != nil {
			continue
		}
		_ = r.Set(column, value)
	}
	return r, nil
}

// Close is a no-op; the Firebase SDK holds no connections that need closing.
func (fs *FirebaseStore) Close() error {
	return nil
}
