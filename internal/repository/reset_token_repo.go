package repository

import (
	"context"

	"biblioteca-backend/internal/db"
	"biblioteca-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ResetTokenRepository struct {
	col *mongo.Collection
}

func NewResetTokenRepository() *ResetTokenRepository {
	return &ResetTokenRepository{col: db.DB().Collection("reset_tokens")}
}

func (r *ResetTokenRepository) Insert(ctx context.Context, t *models.ResetTokenDoc) error {
	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *ResetTokenRepository) FindByToken(ctx context.Context, token string) (*models.ResetTokenDoc, error) {
	var t models.ResetTokenDoc
	err := r.col.FindOne(ctx, bson.M{"token": token}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &t, err
}

func (r *ResetTokenRepository) MarkUsed(ctx context.Context, token string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{"$set": bson.M{"used": true}},
	)
	return err
}
