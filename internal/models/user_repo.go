package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foliohive/server/internal/apperror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update bson.M) (*User, error)
}

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	col := mdb.Collection(UsersCol)

	count, err := col.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return nil, fmt.Errorf("error checking for existing email: %v", err)
	}
	if count > 0 {
		return nil, apperror.Conflict("user", "email already exists")
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	if _, err := col.InsertOne(ctx, user); err != nil {
		// the unique email index closes the check-then-insert race
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperror.Conflict("user", "email already exists")
		}
		return nil, fmt.Errorf("error inserting user: %v", err)
	}

	return user, nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := mdb.Collection(UsersCol).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("error finding user by email: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := mdb.Collection(UsersCol).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("error finding user by id: %v", err)
	}
	return &user, nil
}

// UpdateProfile applies an allow-listed $set built by the service layer and
// returns the updated document.
func (mdb *MongodbRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, update bson.M) (*User, error) {
	if len(update) == 0 {
		return nil, apperror.ValidationFailed("", "no fields to update")
	}
	update["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user User
	err := mdb.Collection(UsersCol).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).
		Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("error updating profile: %v", err)
	}
	return &user, nil
}
