package models

type UserDoc struct {
	UserID       int    `json:"userId" bson:"userId"`
	Email        string `json:"email" bson:"email"`
	Username     string `json:"username,omitempty" bson:"username,omitempty"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	CreatedAt    string `json:"createdAt" bson:"createdAt"`
	UpdatedAt    string `json:"updatedAt" bson:"updatedAt"`
}

// Token de recuperación de contraseña (un solo uso, con expiración).
type ResetTokenDoc struct {
	Token     string `json:"token" bson:"token"`
	UserID    int    `json:"userId" bson:"userId"`
	ExpiresAt string `json:"expiresAt" bson:"expiresAt"`
	Used      bool   `json:"used" bson:"used"`
}
