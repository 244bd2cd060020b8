package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	chatbotDB "github.com/alvin0727/AI-Chatbot/pkg/db/chatbot"
	llmclient "github.com/alvin0727/AI-Chatbot/pkg/llm-client"
	usermanagement "github.com/alvin0727/AI-Chatbot/pkg/user-management"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	userDBConn *chatbotDB.ChatbotDBService
	userMgmt   *usermanagement.Service
	llmClient  *llmclient.LLMClient

	tokenSignKey          string
	tokenExpiresIn        time.Duration
	refreshTokenSignKey   string
	refreshTokenExpiresIn time.Duration

	useSecureCookies bool
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	refreshTokenSignKey string,
	refreshTokenExpiresIn time.Duration,
	userDBConn *chatbotDB.ChatbotDBService,
	userMgmt *usermanagement.Service,
	llmClient *llmclient.LLMClient,
	useSecureCookies bool,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:          tokenSignKey,
		tokenExpiresIn:        tokenExpiresIn,
		refreshTokenSignKey:   refreshTokenSignKey,
		refreshTokenExpiresIn: refreshTokenExpiresIn,
		userDBConn:            userDBConn,
		userMgmt:              userMgmt,
		llmClient:             llmClient,
		useSecureCookies:      useSecureCookies,
	}
}
