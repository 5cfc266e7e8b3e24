package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/itmo-ai/qa-bot-backend/internal"
	"github.com/itmo-ai/qa-bot-backend/internal/chat"
	"github.com/itmo-ai/qa-bot-backend/internal/chatlog"
	"github.com/itmo-ai/qa-bot-backend/internal/config"
	"github.com/itmo-ai/qa-bot-backend/internal/provider"
	"github.com/itmo-ai/qa-bot-backend/internal/store"
)

const keyMissingMessage = "Не найден OPENAI_API_KEY. Добавьте ключ в secrets.yaml или переменные окружения."

func main() {
	_ = godotenv.Load() // загружает .env, если есть

	cfg := config.Load()

	// Session event log first: it creates the log directory the zap file
	// sink needs.
	events, eventsErr := chatlog.New(cfg.LogPath)

	zcfg := zap.NewDevelopmentConfig()
	if eventsErr == nil {
		// Warnings land next to the session events, one file to grep.
		zcfg.OutputPaths = []string{"stderr", cfg.LogPath}
	}
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zlog := logger.Sugar()
	if eventsErr != nil {
		zlog.Fatalf("chat log unavailable: %v", eventsErr)
	}
	defer events.Close()

	// Provider: OpenAI when a key resolves, mock only when asked for.
	apiKey := config.ResolveAPIKey(cfg.SecretsPath)
	var chatProvider provider.ChatProvider
	if apiKey != "" {
		p, err := provider.NewOpenAIProvider(apiKey, cfg.Model, cfg.BaseURL)
		if err != nil {
			zlog.Warnf("openai provider init failed: %v", err)
		} else {
			chatProvider = p
		}
	} else if os.Getenv("QA_USE_MOCK") == "1" {
		chatProvider = provider.MockProvider{}
	} else {
		zlog.Warnf("OPENAI_API_KEY не найден, отправка сообщений заблокирована")
	}

	sess := store.NewSession()
	svc := chat.NewService(cfg, sess, chatProvider, events, zlog)
	svc.Reset() // seeds the welcome turn
	zlog.Infof("session=%s | started | model=%s", svc.SessionID(), svc.Model())

	r := gin.Default()

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "*")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	r.GET("/api/model", func(c *gin.Context) {
		c.JSON(200, gin.H{"model": svc.Model()})
	})

	r.GET("/api/key-status", func(c *gin.Context) {
		resp := internal.KeyStatusResponse{Configured: svc.Ready()}
		if resp.Configured {
			resp.Message = "API ключ загружен"
		} else {
			resp.Message = keyMissingMessage
		}
		c.JSON(200, resp)
	})

	r.GET("/api/context", func(c *gin.Context) {
		refCtx := svc.Context()
		c.JSON(200, internal.ContextResponse{
			AIProduct:   refCtx.AIProduct,
			AITalentHub: refCtx.AITalentHub,
			Combined:    refCtx.Combined,
		})
	})

	r.GET("/api/messages", func(c *gin.Context) {
		c.JSON(200, internal.ChatHistory{
			SessionID: svc.SessionID(),
			Messages:  svc.History(),
		})
	})

	r.POST("/api/messages", func(c *gin.Context) {
		var req internal.SendMessageRequest
		if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
			c.JSON(400, gin.H{"error": "content требуется"})
			return
		}
		if !svc.Ready() {
			c.JSON(503, gin.H{"error": keyMissingMessage})
			return
		}
		c.JSON(200, svc.Send(c.Request.Context(), req.Content))
	})

	r.POST("/api/reset", func(c *gin.Context) {
		svc.Reset()
		c.JSON(200, gin.H{"ok": true})
	})

	_ = r.Run(":" + cfg.Port)
}
