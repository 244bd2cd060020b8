package chatbot

import (
	"context"
	"log/slog"
	"time"

	"github.com/alvin0727/AI-Chatbot/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_USERS           = "users"
	COLLECTION_NAME_ONE_TIME_TOKENS = "oneTimeTokens"
	COLLECTION_NAME_CHAT_QUOTAS     = "chatQuotas"
)

type ChatbotDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewChatbotDBService(configs db.DBConfig) (*ChatbotDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	cbDBSc := &ChatbotDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		cbDBSc.ensureIndexes()
	}
	return cbDBSc, nil
}

func (dbService *ChatbotDBService) getDBName() string {
	return dbService.DBNamePrefix + "chatbot"
}

func (dbService *ChatbotDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *ChatbotDBService) collectionUsers() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_USERS)
}

func (dbService *ChatbotDBService) collectionOneTimeTokens() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_ONE_TIME_TOKENS)
}

func (dbService *ChatbotDBService) collectionChatQuotas() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_CHAT_QUOTAS)
}

func (dbService *ChatbotDBService) ensureIndexes() {
	slog.Debug("Ensuring indexes for chatbot DB")

	if err := dbService.CreateIndexForUsers(); err != nil {
		slog.Error("Error creating indexes for users", slog.String("error", err.Error()))
	}
	if err := dbService.CreateIndexForOneTimeTokens(); err != nil {
		slog.Error("Error creating indexes for one time tokens", slog.String("error", err.Error()))
	}
	if err := dbService.CreateIndexForChatQuotas(); err != nil {
		slog.Error("Error creating indexes for chat quotas", slog.String("error", err.Error()))
	}
}
