package main

import (
	"context"
	"fmt"

	"EMProject/global/config"
	"EMProject/logger"
	"EMProject/module/employee/handler"
	recstore "EMProject/module/employee/store"
	message "EMProject/module/message"
	userservice "EMProject/module/user/service"
	"EMProject/service/chat"
	"EMProject/service/mgo"
	"EMProject/service/natsx"
	"EMProject/service/storage"
	redisx "EMProject/service/storage/redis"
	"EMProject/tools/ids"
	jwtlib "EMProject/tools/security"

	mid "EMProject/middleware/security"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Global
	ids.SetNodeID(cfg.NodeID)

	ctx := context.Background()
	if err := mgo.Init(ctx, mgo.Config{URI: cfg.MongoURI, Database: cfg.MongoDB}); err != nil {
		logger.Log.Fatal("mongo init failed: " + err.Error())
	}
	defer mgo.Close(context.Background())

	userSvc := userservice.New(mgo.DB())
	msgStore := message.NewMongoStore(mgo.DB())
	records := recstore.New(mgo.DB())
	for _, ensure := range []func(context.Context) error{
		userSvc.EnsureIndexes, msgStore.EnsureIndexes, records.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			logger.Log.Fatal("index setup failed: " + err.Error())
		}
	}

	jwtOpts := jwtlib.DefaultOptions(cfg.JwtSecret)
	authOpts := &mid.Options{Jwt: jwtOpts, Users: userSvc, QueryTokenParam: "token"}

	gateway := chat.NewServer(msgStore, userSvc, func(c *gin.Context) *chat.Identity {
		if u := mid.CurrentUser(c); u != nil {
			return &chat.Identity{UserID: u.ID, Username: u.Username}
		}
		return nil
	})

	// Presence is advisory; run without it if redis is down.
	if err := redisx.Init(redisx.Config{
		Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB,
	}); err != nil {
		logger.Warnf("redis unavailable, presence disabled: %v", err)
	} else {
		gateway.SetPresence(storage.RedisPresence{})
		defer redisx.Close()
	}

	if cfg.NatsURL != "" {
		nc, err := natsx.New(natsx.Config{URL: cfg.NatsURL, Name: fmt.Sprintf("em-gateway-%d", cfg.NodeID)})
		if err != nil {
			logger.Log.Fatal("nats connect failed: " + err.Error())
		}
		defer nc.Close()
		relay := chat.NewNatsRelay(nc)
		if err := relay.Start(gateway); err != nil {
			logger.Log.Fatal("relay subscribe failed: " + err.Error())
		}
		gateway.SetRelay(relay)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	h := handler.New(userSvc, records, msgStore, jwtOpts)
	h.Register(r, mid.Middleware(authOpts))
	r.GET("/api/ws", mid.SoftMiddleware(authOpts), gateway.HandleWS)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Infof("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Log.Fatal("server exited: " + err.Error())
	}
}
