package types

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CHAT_ROLE_USER      = "user"
	CHAT_ROLE_ASSISTANT = "assistant"
)

type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Name       string     `bson:"name" json:"name"`
	Email      string     `bson:"email" json:"email"`
	Password   string     `bson:"password" json:"-"`
	IsVerified bool       `bson:"isVerified" json:"isVerified"`
	Timestamps Timestamps `bson:"timestamps" json:"timestamps"`
	Chats      []ChatTurn `bson:"chats" json:"chats"`
}

type Timestamps struct {
	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	LastLogin int64 `bson:"lastLogin" json:"lastLogin"`
}

// ChatTurn is one entry of the user's conversation history.
type ChatTurn struct {
	ID      string `bson:"id" json:"id"`
	Role    string `bson:"role" json:"role"`
	Content string `bson:"content" json:"content"`
}

func NewChatTurn(role string, content string) ChatTurn {
	return ChatTurn{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
	}
}

func InitNewEmailUser(name string, email string, hashedPassword string) User {
	return User{
		Name:       name,
		Email:      email,
		Password:   hashedPassword,
		IsVerified: false,
		Timestamps: Timestamps{
			CreatedAt: time.Now().Unix(),
		},
		Chats: []ChatTurn{},
	}
}
