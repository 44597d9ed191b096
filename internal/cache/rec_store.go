package cache

import (
	"context"
	"fmt"
)

// RecStore es la caché de sesión de recomendaciones, una entrada por usuario.
// Implementa la interfaz RecCache de internal/service sobre los helpers JSON
// de este paquete.
type RecStore struct{}

func NewRecStore() *RecStore { return &RecStore{} }

func recKey(userID int) string {
	return fmt.Sprintf("rec:user:%d", userID)
}

func (s *RecStore) Get(ctx context.Context, userID int, dest any) (bool, error) {
	return GetJSON(ctx, recKey(userID), dest)
}

func (s *RecStore) Set(ctx context.Context, userID int, value any, ttlSeconds int) error {
	return SetJSON(ctx, recKey(userID), value, ttlSeconds)
}

func (s *RecStore) Delete(ctx context.Context, userID int) error {
	return Delete(ctx, recKey(userID))
}
