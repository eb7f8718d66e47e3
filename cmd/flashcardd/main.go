package main

import (
	"flashcards/internal/config"
	"flashcards/internal/logger"
	"flashcards/internal/mongo"
	"flashcards/internal/mysql"
	"flashcards/internal/redis"
	"flashcards/internal/routing"
	"flashcards/pkg/middleware"
	"flashcards/pkg/session"

	"github.com/gorilla/mux"
)

func main() {
	config.Load() // load env var from .env

	db := mysql.LoadDB()
	defer db.Close()

	mongoDB := mongo.LoadDB()

	logger := logger.Load()

	var sessionRepo session.Repository
	if config.SessionStore() == config.SessionStoreRedis {
		sessionRepo = session.NewRedisRepo(redis.Load())
	} else {
		sessionRepo = session.NewMySQLRepo(db)
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Panic)
	api.Use(middleware.RequestID(logger))
	api.Use(middleware.CheckJWT(sessionRepo))

	routing.InitRoutes(api, db, mongoDB, sessionRepo, logger)
	routing.StartServer(r)
}
