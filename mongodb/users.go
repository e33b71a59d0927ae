package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"finance-tracker/api/models"
)

// FindUserBySubject looks up the application user for an identity-provider
// subject id. Every operation except the first-login path resolves the
// caller through this.
func (s *Store) FindUserBySubject(ctx context.Context, subjectID string) (*models.User, error) {
	var user models.User
	err := s.collection(UserCollection).FindOne(ctx, bson.M{"subject_id": subjectID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return &user, nil
}

// FindOrCreateUser is the first-login path: it returns the existing record
// for the subject id or lazily creates one from the identity claims.
func (s *Store) FindOrCreateUser(ctx context.Context, claims *models.IdentityClaims) (*models.User, error) {
	user, err := s.FindUserBySubject(ctx, claims.Sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created := &models.User{
		SubjectID: claims.Sub,
		Email:     claims.Email,
		Name:      claims.Name,
		ImageURL:  claims.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := s.collection(UserCollection).InsertOne(ctx, created)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	created.ID = res.InsertedID.(bson.ObjectID)
	return created, nil
}

// FirstUser returns any user record, used only by the demo seeder.
func (s *Store) FirstUser(ctx context.Context) (*models.User, error) {
	var user models.User
	err := s.collection(UserCollection).FindOne(ctx, bson.M{}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return &user, nil
}
