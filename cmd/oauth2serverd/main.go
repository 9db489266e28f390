// Command oauth2serverd is a reference demo binary wiring the engine
// to a sqlite-backed gormstore.Store and a gin HTTP server. It exists
// to exercise the full dependency stack end to end; real deployments
// are expected to supply their own storage.Adapter and transport.
package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mcpjungle/oauth2core/server"
	"github.com/mcpjungle/oauth2core/storage/gormstore"
	"github.com/mcpjungle/oauth2core/transport/ginadapter"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("oauth2serverd: failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	db, err := gorm.Open(sqlite.Open("oauth2serverd.db"), &gorm.Config{})
	if err != nil {
		sugar.Fatalf("failed to open database: %v", err)
	}

	store, err := gormstore.New(db, sugar)
	if err != nil {
		sugar.Fatalf("failed to initialize storage: %v", err)
	}
	store = store.WithTokenTTLs(time.Hour, 30*24*time.Hour)

	engine := server.New(server.Config{
		TokenExpiresIn:             time.Hour,
		RefreshTokenExpiresIn:      30 * 24 * time.Hour,
		AuthorizationCodeExpiresIn: 10 * time.Minute,
		Logger:                     sugar,
	}, store)

	router := gin.Default()
	handlers := ginadapter.NewHandlers(engine, nil)
	handlers.Register(router, "/oauth")

	sugar.Infof("oauth2serverd listening on :8080")
	if err := router.Run(":8080"); err != nil {
		sugar.Fatalf("server exited: %v", err)
	}
}
