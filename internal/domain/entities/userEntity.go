package entities

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is an account in the users collection. The password is only ever
// stored as a salted hash.
type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
}
