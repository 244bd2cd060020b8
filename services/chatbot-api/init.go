package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/alvin0727/AI-Chatbot/pkg/db"
	llmclient "github.com/alvin0727/AI-Chatbot/pkg/llm-client"
	emailsending "github.com/alvin0727/AI-Chatbot/pkg/messaging/email-sending"
	smtpclient "github.com/alvin0727/AI-Chatbot/pkg/smtp-client"
	usermanagement "github.com/alvin0727/AI-Chatbot/pkg/user-management"
	"github.com/alvin0727/AI-Chatbot/pkg/user-management/pwhash"
	"github.com/alvin0727/AI-Chatbot/pkg/utils"

	chatbotDB "github.com/alvin0727/AI-Chatbot/pkg/db/chatbot"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_CHATBOT_DB_USERNAME = "CHATBOT_DB_USERNAME"
	ENV_CHATBOT_DB_PASSWORD = "CHATBOT_DB_PASSWORD"

	ENV_USER_JWT_SIGN_KEY    = "USER_JWT_SIGN_KEY"
	ENV_REFRESH_JWT_SIGN_KEY = "REFRESH_JWT_SIGN_KEY"

	ENV_SMTP_USERNAME = "SMTP_USERNAME"
	ENV_SMTP_PASSWORD = "SMTP_PASSWORD"

	ENV_LLM_API_KEY = "LLM_API_KEY"

	// Optional overrides for token lifetimes, e.g. "60m" or "168h"
	ENV_USER_TOKEN_EXPIRES_IN    = "USER_TOKEN_EXPIRES_IN"
	ENV_REFRESH_TOKEN_EXPIRES_IN = "REFRESH_TOKEN_EXPIRES_IN"
)

type ChatbotApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	// user management configs
	UserManagementConfig struct {
		PWHashing struct {
			BcryptCost int `json:"bcrypt_cost" yaml:"bcrypt_cost"`
		} `json:"pw_hashing" yaml:"pw_hashing"`
		UserJWTConfig struct {
			SignKey   string        `json:"sign_key" yaml:"sign_key"`
			ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
		} `json:"user_jwt_config" yaml:"user_jwt_config"`
		RefreshJWTConfig struct {
			SignKey   string        `json:"sign_key" yaml:"sign_key"`
			ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
		} `json:"refresh_jwt_config" yaml:"refresh_jwt_config"`

		EmailVerificationTokenTTL time.Duration `json:"email_verification_token_ttl" yaml:"email_verification_token_ttl"`
		OtpTTL                    time.Duration `json:"otp_ttl" yaml:"otp_ttl"`
		MaxOtpAttempts            int           `json:"max_otp_attempts" yaml:"max_otp_attempts"`
		OtpBlockDuration          time.Duration `json:"otp_block_duration" yaml:"otp_block_duration"`
		OtpResendCooldown         time.Duration `json:"otp_resend_cooldown" yaml:"otp_resend_cooldown"`
		DailyChatLimit            int           `json:"daily_chat_limit" yaml:"daily_chat_limit"`

		// Frontend page that receives the verification token
		VerificationURL string `json:"verification_url" yaml:"verification_url"`

		UseSecureCookies bool `json:"use_secure_cookies" yaml:"use_secure_cookies"`
	} `json:"user_management_config" yaml:"user_management_config"`

	// DB configs
	DBConfigs struct {
		ChatbotDB db.DBConfigYaml `json:"chatbot_db" yaml:"chatbot_db"`
	} `json:"db_configs" yaml:"db_configs"`

	SmtpServerConfig smtpclient.SmtpServerList `json:"smtp_server_config" yaml:"smtp_server_config"`

	LLMConfig llmclient.LLMConfig `json:"llm_config" yaml:"llm_config"`
}

var (
	chatbotDBService *chatbotDB.ChatbotDBService
	userMgmtService  *usermanagement.Service
	llmClientService *llmclient.LLMClient
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
	)

	// Override secrets from environment variables
	secretsOverride()

	applyUserManagementDefaults()

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	pwhash.InitHashingCost(conf.UserManagementConfig.PWHashing.BcryptCost)

	initUserManagement()

	llmClientService, err = llmclient.NewLLMClient(conf.LLMConfig)
	if err != nil {
		panic(err)
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_CHATBOT_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.ChatbotDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_CHATBOT_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.ChatbotDB.Password = dbPassword
	}

	if userJwtSignKey := os.Getenv(ENV_USER_JWT_SIGN_KEY); userJwtSignKey != "" {
		conf.UserManagementConfig.UserJWTConfig.SignKey = userJwtSignKey
	}

	if refreshJwtSignKey := os.Getenv(ENV_REFRESH_JWT_SIGN_KEY); refreshJwtSignKey != "" {
		conf.UserManagementConfig.RefreshJWTConfig.SignKey = refreshJwtSignKey
	}

	if smtpUsername := os.Getenv(ENV_SMTP_USERNAME); smtpUsername != "" {
		for i := range conf.SmtpServerConfig.Servers {
			conf.SmtpServerConfig.Servers[i].SetUsername(smtpUsername)
		}
	}

	if smtpPassword := os.Getenv(ENV_SMTP_PASSWORD); smtpPassword != "" {
		for i := range conf.SmtpServerConfig.Servers {
			conf.SmtpServerConfig.Servers[i].SetPassword(smtpPassword)
		}
	}

	if llmAPIKey := os.Getenv(ENV_LLM_API_KEY); llmAPIKey != "" {
		conf.LLMConfig.APIKey = llmAPIKey
	}

	if expiresIn := os.Getenv(ENV_USER_TOKEN_EXPIRES_IN); expiresIn != "" {
		d, err := utils.ParseDurationString(expiresIn)
		if err != nil {
			panic(err)
		}
		conf.UserManagementConfig.UserJWTConfig.ExpiresIn = d
	}

	if expiresIn := os.Getenv(ENV_REFRESH_TOKEN_EXPIRES_IN); expiresIn != "" {
		d, err := utils.ParseDurationString(expiresIn)
		if err != nil {
			panic(err)
		}
		conf.UserManagementConfig.RefreshJWTConfig.ExpiresIn = d
	}
}

func applyUserManagementDefaults() {
	umConf := &conf.UserManagementConfig
	if umConf.UserJWTConfig.ExpiresIn <= 0 {
		umConf.UserJWTConfig.ExpiresIn = 60 * time.Minute
	}
	if umConf.RefreshJWTConfig.ExpiresIn <= 0 {
		umConf.RefreshJWTConfig.ExpiresIn = 7 * 24 * time.Hour
	}
	if umConf.EmailVerificationTokenTTL <= 0 {
		umConf.EmailVerificationTokenTTL = 24 * time.Hour
	}
	if umConf.OtpTTL <= 0 {
		umConf.OtpTTL = 5 * time.Minute
	}
	if umConf.MaxOtpAttempts <= 0 {
		umConf.MaxOtpAttempts = 3
	}
	if umConf.OtpBlockDuration <= 0 {
		umConf.OtpBlockDuration = 15 * time.Minute
	}
	if umConf.OtpResendCooldown <= 0 {
		umConf.OtpResendCooldown = 60 * time.Second
	}
	if umConf.DailyChatLimit <= 0 {
		umConf.DailyChatLimit = 4
	}
}

func initDBs() {
	var err error
	chatbotDBService, err = chatbotDB.NewChatbotDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ChatbotDB))
	if err != nil {
		slog.Error("Error connecting to Chatbot DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func initUserManagement() {
	smtpClients, err := smtpclient.NewSmtpClients(conf.SmtpServerConfig)
	if err != nil {
		panic(err)
	}

	umConf := conf.UserManagementConfig
	emailSender := emailsending.NewEmailSender(smtpClients, emailsending.Config{
		VerificationURL:         umConf.VerificationURL,
		VerificationExpiryHours: int(umConf.EmailVerificationTokenTTL.Hours()),
		OtpExpiryMinutes:        int(umConf.OtpTTL.Minutes()),
	})

	userMgmtService = usermanagement.NewService(
		chatbotDBService,
		chatbotDBService,
		chatbotDBService,
		emailSender,
		usermanagement.Policy{
			VerificationTokenTTL: umConf.EmailVerificationTokenTTL,
			OtpTTL:               umConf.OtpTTL,
			MaxOtpAttempts:       umConf.MaxOtpAttempts,
			OtpBlockDuration:     umConf.OtpBlockDuration,
			OtpResendCooldown:    umConf.OtpResendCooldown,
			DailyChatLimit:       umConf.DailyChatLimit,
		},
	)
}
