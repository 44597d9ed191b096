package repository

import (
	"context"

	"biblioteca-backend/internal/db"
	"biblioteca-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository() *BookRepository {
	return &BookRepository{col: db.DB().Collection("books")}
}

func (r *BookRepository) FindByGoogleID(ctx context.Context, googleID string) (*models.BookDoc, error) {
	var b models.BookDoc
	err := r.col.FindOne(ctx, bson.M{"googleId": googleID}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &b, err
}

func (r *BookRepository) Insert(ctx context.Context, b *models.BookDoc) error {
	_, err := r.col.InsertOne(ctx, b)
	return err
}

// UpdateByGoogleID aplica un $set parcial (backfill de metadatos).
func (r *BookRepository) UpdateByGoogleID(ctx context.Context, googleID string, update bson.M) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"googleId": googleID},
		bson.M{"$set": update},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindByGoogleIDs trae varios libros de una (para armar las vistas de
// biblioteca/wishlist a partir de las membresías).
func (r *BookRepository) FindByGoogleIDs(ctx context.Context, googleIDs []string) ([]models.BookDoc, error) {
	if len(googleIDs) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"googleId": bson.M{"$in": googleIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BookDoc
	for cur.Next(ctx) {
		var b models.BookDoc
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, cur.Err()
}
