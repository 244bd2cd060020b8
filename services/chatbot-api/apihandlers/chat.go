package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/alvin0727/AI-Chatbot/pkg/apihelpers/middlewares"
	usermanagement "github.com/alvin0727/AI-Chatbot/pkg/user-management"
	userTypes "github.com/alvin0727/AI-Chatbot/pkg/user-management/types"
)

func (h *HttpEndpoints) AddChatAPI(rg *gin.RouterGroup) {
	chatGroup := rg.Group("/chat")
	chatGroup.Use(mw.GetAndValidateUserTokenCookie(h.tokenSignKey))
	chatGroup.Use(mw.RequireVerifiedUser())
	{
		chatGroup.POST("/new", mw.RequirePayload(), h.newChatMessage)
		chatGroup.GET("/all-chats", h.getAllChats)
		chatGroup.DELETE("/delete-all-chats", h.deleteAllChats)
		chatGroup.GET("/chat-limit-info", h.getChatLimitInfo)
	}
}

type NewChatMessageReq struct {
	Message string `json:"message"`
}

func (h *HttpEndpoints) newChatMessage(c *gin.Context) {
	claims, ok := getValidatedClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req NewChatMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message missing"})
		return
	}

	userID := claims.Subject
	limitInfo, err := h.userMgmt.CheckChatLimit(userID)
	if err != nil {
		slog.Error("failed to check chat limit", slog.String("userID", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !limitInfo.CanChat {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     "daily chat limit reached",
			"remaining": 0,
			"limit":     limitInfo.Limit,
		})
		return
	}

	user, err := h.userDBConn.GetUser(userID)
	if err != nil {
		slog.Error("failed to load user for chat", slog.String("userID", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	reply, err := h.llmClient.Complete(c.Request.Context(), user.Chats, req.Message)
	if err != nil {
		slog.Error("chat completion failed", slog.String("userID", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not generate a response, please try again"})
		return
	}

	userTurn := userTypes.NewChatTurn(userTypes.CHAT_ROLE_USER, req.Message)
	assistantTurn := userTypes.NewChatTurn(userTypes.CHAT_ROLE_ASSISTANT, reply)
	if err := h.userDBConn.AppendChatTurns(userID, []userTypes.ChatTurn{userTurn, assistantTurn}); err != nil {
		// the exchange is not stored, so it does not count against the quota
		slog.Error("failed to store chat turns", slog.String("userID", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	remaining := limitInfo.Remaining - 1
	if err := h.userMgmt.CountChatCompletion(userID); err != nil {
		if errors.Is(err, usermanagement.ErrQuotaExceeded) {
			remaining = 0
		} else {
			slog.Error("failed to count chat completion", slog.String("userID", userID), slog.String("error", err.Error()))
		}
	}

	chats := append(user.Chats, userTurn, assistantTurn)
	c.JSON(http.StatusOK, gin.H{
		"chats":     chats,
		"remaining": remaining,
		"limit":     limitInfo.Limit,
	})
}

func (h *HttpEndpoints) getAllChats(c *gin.Context) {
	claims, ok := getValidatedClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.userDBConn.GetUser(claims.Subject)
	if err != nil {
		slog.Error("failed to load user chats", slog.String("userID", claims.Subject), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	chats := user.Chats
	if chats == nil {
		chats = []userTypes.ChatTurn{}
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

func (h *HttpEndpoints) deleteAllChats(c *gin.Context) {
	claims, ok := getValidatedClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.userDBConn.ClearChatTurns(claims.Subject); err != nil {
		slog.Error("failed to delete chats", slog.String("userID", claims.Subject), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	slog.Info("user deleted chat history", slog.String("userID", claims.Subject))
	c.JSON(http.StatusOK, gin.H{"message": "chat history deleted"})
}

func (h *HttpEndpoints) getChatLimitInfo(c *gin.Context) {
	claims, ok := getValidatedClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	limitInfo, err := h.userMgmt.CheckChatLimit(claims.Subject)
	if err != nil {
		slog.Error("failed to check chat limit", slog.String("userID", claims.Subject), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, limitInfo)
}
