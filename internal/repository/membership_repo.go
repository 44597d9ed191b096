package repository

import (
	"context"
	"time"

	"biblioteca-backend/internal/db"
	"biblioteca-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MembershipRepository maneja una colección de membresías (usuario, libro).
// Se instancia dos veces: colección "libraries" y colección "wishlists".
type MembershipRepository struct {
	col *mongo.Collection
}

func NewLibraryRepository() *MembershipRepository {
	return &MembershipRepository{col: db.DB().Collection("libraries")}
}

func NewWishlistRepository() *MembershipRepository {
	return &MembershipRepository{col: db.DB().Collection("wishlists")}
}

func (r *MembershipRepository) Exists(ctx context.Context, userID int, googleID string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"userId": userID, "googleId": googleID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *MembershipRepository) Add(ctx context.Context, userID int, googleID string) error {
	_, err := r.col.InsertOne(ctx, models.MembershipDoc{
		UserID:   userID,
		GoogleID: googleID,
		AddedAt:  time.Now().UTC().Format(time.RFC3339),
	})
	return err
}

func (r *MembershipRepository) Remove(ctx context.Context, userID int, googleID string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"userId": userID, "googleId": googleID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ListGoogleIDs devuelve los ids de libro del usuario, en orden de agregado.
func (r *MembershipRepository) ListGoogleIDs(ctx context.Context, userID int) ([]string, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []string
	for cur.Next(ctx) {
		var m models.MembershipDoc
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m.GoogleID)
	}
	return out, cur.Err()
}
