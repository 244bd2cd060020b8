package chatbot

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	userTypes "github.com/alvin0727/AI-Chatbot/pkg/user-management/types"
)

var ErrDuplicateEmail = errors.New("email already registered")

func (dbService *ChatbotDBService) CreateIndexForUsers() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionUsers().Indexes().CreateMany(
		ctx, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "email", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "timestamps.createdAt", Value: 1},
				},
			},
		},
	)
	return err
}

func (dbService *ChatbotDBService) AddUser(user userTypes.User) (string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionUsers().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateEmail
		}
		return "", err
	}
	id := res.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

func (dbService *ChatbotDBService) GetUser(userID string) (userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return userTypes.User{}, err
	}

	var user userTypes.User
	err = dbService.collectionUsers().FindOne(ctx, bson.M{"_id": _id}).Decode(&user)
	return user, err
}

func (dbService *ChatbotDBService) GetUserByEmail(email string) (userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var user userTypes.User
	err := dbService.collectionUsers().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, err
}

func (dbService *ChatbotDBService) GetAllUsers() ([]userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionUsers().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []userTypes.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (dbService *ChatbotDBService) MarkUserVerified(userID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = dbService.collectionUsers().UpdateOne(ctx,
		bson.M{"_id": _id},
		bson.M{"$set": bson.M{"isVerified": true}},
	)
	return err
}

func (dbService *ChatbotDBService) UpdateLastLogin(userID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = dbService.collectionUsers().UpdateOne(ctx,
		bson.M{"_id": _id},
		bson.M{"$set": bson.M{"timestamps.lastLogin": time.Now().Unix()}},
	)
	return err
}

// AppendChatTurns adds conversation entries to the end of the user's history.
func (dbService *ChatbotDBService) AppendChatTurns(userID string, turns []userTypes.ChatTurn) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = dbService.collectionUsers().UpdateOne(ctx,
		bson.M{"_id": _id},
		bson.M{"$push": bson.M{"chats": bson.M{"$each": turns}}},
	)
	return err
}

func (dbService *ChatbotDBService) ClearChatTurns(userID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = dbService.collectionUsers().UpdateOne(ctx,
		bson.M{"_id": _id},
		bson.M{"$set": bson.M{"chats": []userTypes.ChatTurn{}}},
	)
	return err
}
