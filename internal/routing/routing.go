package routing

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"flashcards/pkg/card"
	"flashcards/pkg/deck"
	"flashcards/pkg/handlers"
	"flashcards/pkg/loginlimit"
	"flashcards/pkg/session"
	"flashcards/pkg/user"
)

func InitRoutes(api *mux.Router, db *sql.DB, mongoDB *mongo.Database, sessionRepo session.Repository, logger *slog.Logger) {

	userService := user.NewService(user.NewMySQLRepo(db), sessionRepo)
	authHandler := handlers.NewAuthHandler(userService, loginlimit.New(), logger)

	cardRepo := card.NewMongoRepo(mongoDB)
	deckService := deck.NewService(deck.NewMongoRepo(mongoDB), cardRepo)
	deckHandler := handlers.NewDeckHandler(deckService, logger)

	cardService := card.NewService(cardRepo, deckService)
	cardHandler := handlers.NewCardHandler(cardService, logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	authRouter := api.PathPrefix("/auth").Subrouter()
	decksRouter := api.PathPrefix("/decks").Subrouter()
	cardsRouter := api.PathPrefix("/cards").Subrouter()

	/* auth routers */
	authRouter.HandleFunc("/register", authHandler.Register).Methods("POST").Name("register")
	authRouter.HandleFunc("/login", authHandler.Login).Methods("POST").Name("login")
	authRouter.HandleFunc("/me", authHandler.Me).Methods("GET")

	/* deck routers */
	decksRouter.HandleFunc("", deckHandler.List).Methods("GET")
	decksRouter.HandleFunc("", deckHandler.Create).Methods("POST")
	decksRouter.HandleFunc("/{id:[0-9]+}", deckHandler.Get).Methods("GET")
	decksRouter.HandleFunc("/{id:[0-9]+}", deckHandler.Update).Methods("PUT")
	decksRouter.HandleFunc("/{id:[0-9]+}", deckHandler.Delete).Methods("DELETE")

	/* card routers */
	cardsRouter.HandleFunc("/deck/{deckId:[0-9]+}", cardHandler.ListByDeck).Methods("GET")
	cardsRouter.HandleFunc("", cardHandler.Create).Methods("POST")
	cardsRouter.HandleFunc("/{id:[0-9]+}", cardHandler.Get).Methods("GET")
	cardsRouter.HandleFunc("/{id:[0-9]+}", cardHandler.Update).Methods("PUT")
	cardsRouter.HandleFunc("/{id:[0-9]+}", cardHandler.Delete).Methods("DELETE")
}

func StartServer(r *mux.Router) {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	fmt.Println("\n\033[32m", "The server is running on http://localhost"+addr, "\033[0m")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
