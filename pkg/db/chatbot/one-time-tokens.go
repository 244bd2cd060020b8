package chatbot

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	userTypes "github.com/alvin0727/AI-Chatbot/pkg/user-management/types"
)

func (dbService *ChatbotDBService) CreateIndexForOneTimeTokens() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionOneTimeTokens().Indexes().CreateMany(
		ctx, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "token", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "userID", Value: 1},
					{Key: "type", Value: 1},
				},
			},
			{
				Keys: bson.D{
					{Key: "expiresAt", Value: 1},
				},
				Options: options.Index().SetExpireAfterSeconds(0),
			},
		},
	)
	return err
}

func (dbService *ChatbotDBService) CreateOneTimeToken(token userTypes.OneTimeToken) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionOneTimeTokens().InsertOne(ctx, token)
	return err
}

// FindOneTimeToken looks up a non-expired token by its secret value and type.
func (dbService *ChatbotDBService) FindOneTimeToken(tokenValue string, t userTypes.TokenType) (userTypes.OneTimeToken, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"token": tokenValue, "type": t, "expiresAt": bson.M{"$gt": time.Now()}}
	var token userTypes.OneTimeToken
	err := dbService.collectionOneTimeTokens().FindOne(ctx, filter).Decode(&token)
	return token, err
}

// FindOneTimeTokenForUser looks up the active token of a user by type.
func (dbService *ChatbotDBService) FindOneTimeTokenForUser(userID string, t userTypes.TokenType) (userTypes.OneTimeToken, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"userID": userID, "type": t, "expiresAt": bson.M{"$gt": time.Now()}}
	sort := bson.M{"createdAt": -1}

	var token userTypes.OneTimeToken
	err := dbService.collectionOneTimeTokens().FindOne(ctx, filter, options.FindOne().SetSort(sort)).Decode(&token)
	return token, err
}

// ReplaceOneTimeToken overwrites the stored record in place, keyed by id.
func (dbService *ChatbotDBService) ReplaceOneTimeToken(token userTypes.OneTimeToken) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	token.UpdatedAt = time.Now()
	_, err := dbService.collectionOneTimeTokens().ReplaceOne(ctx, bson.M{"_id": token.ID}, token)
	return err
}

func (dbService *ChatbotDBService) DeleteOneTimeToken(tokenValue string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionOneTimeTokens().DeleteOne(ctx, bson.M{"token": tokenValue})
	return err
}

func (dbService *ChatbotDBService) DeleteOneTimeTokensForUser(userID string, t userTypes.TokenType) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionOneTimeTokens().DeleteMany(ctx, bson.M{"userID": userID, "type": t})
	return err
}
