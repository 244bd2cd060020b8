package chatbot

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	userTypes "github.com/alvin0727/AI-Chatbot/pkg/user-management/types"
)

const (
	// backstop cleanup for quota rows, the read path resets stale rows anyway
	CHAT_QUOTA_TTL = 60 * 60 * 24
)

func (dbService *ChatbotDBService) CreateIndexForChatQuotas() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionChatQuotas().Indexes().CreateMany(
		ctx, []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "userID", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "createdAt", Value: 1},
				},
				Options: options.Index().SetExpireAfterSeconds(CHAT_QUOTA_TTL),
			},
		},
	)
	return err
}

// GetOrCreateChatQuota fetches the quota row of a user, inserting a fresh one
// with a zero count if none exists yet.
func (dbService *ChatbotDBService) GetOrCreateChatQuota(userID string) (userTypes.ChatQuota, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now()
	var quota userTypes.ChatQuota
	err := dbService.collectionChatQuotas().FindOneAndUpdate(
		ctx,
		bson.M{"userID": userID},
		bson.M{
			"$setOnInsert": bson.M{
				"userID":        userID,
				"dailyCount":    0,
				"lastResetDate": now,
				"createdAt":     now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&quota)
	return quota, err
}

// ResetChatQuota sets the count back to zero and stamps the reset date.
func (dbService *ChatbotDBService) ResetChatQuota(userID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionChatQuotas().UpdateOne(ctx,
		bson.M{"userID": userID},
		bson.M{"$set": bson.M{"dailyCount": 0, "lastResetDate": time.Now()}},
	)
	return err
}

// IncrementChatQuota counts one completion, but only while the stored count is
// still below the limit (atomic conditional update). Returns false if the cap
// was already reached, e.g. by a concurrent request.
func (dbService *ChatbotDBService) IncrementChatQuota(userID string, limit int) (bool, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionChatQuotas().UpdateOne(ctx,
		bson.M{"userID": userID, "dailyCount": bson.M{"$lt": limit}},
		bson.M{
			"$inc": bson.M{"dailyCount": 1},
			"$set": bson.M{"lastResetDate": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
