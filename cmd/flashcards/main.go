package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"flashcards/internal/logger"
	"flashcards/pkg/card"
	"flashcards/pkg/client"
	"flashcards/pkg/user"
)

// Default server base URL; can override with FLASHCARDS_SERVER env var or --server flag.
var serverBaseURL = "http://localhost:8080/api/v1"

func main() {
	cmd := flag.String("cmd", "", "Command: register|login|logout|whoami|decks|deck|create-deck|update-deck|delete-deck|cards|card|create-card|update-card|delete-card")
	loginID := flag.String("login", "", "Login id (for register/login)")
	password := flag.String("password", "", "Password (for register/login)")
	name := flag.String("name", "", "Display name (register) or deck name (deck commands)")
	email := flag.String("email", "", "Email (optional, for register)")
	age := flag.Int("age", 0, "Age (optional, for register)")
	id := flag.Int64("id", 0, "Deck or card id")
	deckID := flag.Int64("deck", 0, "Deck id (for card commands)")
	front := flag.String("front", "", "Card front content")
	back := flag.String("back", "", "Card back content")
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://api.example.com/api/v1)")
	flag.Parse()

	if env := os.Getenv("FLASHCARDS_SERVER"); env != "" {
		serverBaseURL = strings.TrimRight(env, "/")
	}
	if *serverFlag != "" {
		serverBaseURL = strings.TrimRight(*serverFlag, "/")
	}

	path, err := client.DefaultSessionPath()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	app := client.NewApp(serverBaseURL, client.NewFileStorage(path), logger.Load())
	app.OnSessionExpired = func() {
		fmt.Println("Session expired, please run 'flashcards -cmd login' again.")
	}
	app.Store.InitializeAuth()

	ctx := context.Background()

	var cmdErr error
	switch *cmd {
	case "register":
		cmdErr = register(ctx, app, *loginID, *password, *name, *email, *age)
	case "login":
		cmdErr = login(ctx, app, *loginID, *password)
	case "logout":
		app.Auth.Logout()
		fmt.Println("Logged out.")
	case "whoami":
		cmdErr = whoami(ctx, app)
	case "decks":
		cmdErr = listDecks(ctx, app)
	case "deck":
		cmdErr = showDeck(ctx, app, *id)
	case "create-deck":
		cmdErr = createDeck(ctx, app, *name)
	case "update-deck":
		cmdErr = updateDeck(ctx, app, *id, *name)
	case "delete-deck":
		cmdErr = deleteDeck(ctx, app, *id)
	case "cards":
		cmdErr = listCards(ctx, app, *deckID)
	case "card":
		cmdErr = showCard(ctx, app, *id)
	case "create-card":
		cmdErr = createCard(ctx, app, *deckID, *front, *back)
	case "update-card":
		cmdErr = updateCard(ctx, app, *deckID, *id, *front, *back)
	case "delete-card":
		cmdErr = deleteCard(ctx, app, *deckID, *id)
	default:
		fmt.Println("Unknown command")
		flag.Usage()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Println("Error:", cmdErr)
		os.Exit(1)
	}
}

func register(ctx context.Context, app *client.App, loginID, password, name, email string, age int) error {
	if loginID == "" || password == "" || name == "" {
		return fmt.Errorf("--login, --password and --name required")
	}

	form := user.RegisterForm{
		LoginID:  loginID,
		Password: password,
		Name:     name,
		Email:    email,
	}
	if age > 0 {
		form.Age = &age
	}

	u, err := app.Auth.Register(ctx, form)
	if err != nil {
		return err
	}

	fmt.Printf("Registered and logged in as %s (id %d).\n", u.LoginID, u.ID)
	return nil
}

func login(ctx context.Context, app *client.App, loginID, password string) error {
	if loginID == "" || password == "" {
		return fmt.Errorf("--login and --password required")
	}

	u, err := app.Auth.Login(ctx, loginID, password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (id %d).\n", u.LoginID, u.ID)
	return nil
}

func whoami(ctx context.Context, app *client.App) error {
	session := app.Store.Session()
	if !session.IsAuthenticated {
		fmt.Println("Not logged in.")
		return nil
	}

	u, err := app.Auth.Me(ctx)
	if err != nil {
		return err
	}
	return printJSON(u)
}

func listDecks(ctx context.Context, app *client.App) error {
	decks, err := app.Decks.List(ctx)
	if err != nil {
		return err
	}
	return printJSON(decks)
}

func showDeck(ctx context.Context, app *client.App, id int64) error {
	if id == 0 {
		return fmt.Errorf("--id required")
	}

	d, err := app.Decks.Get(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(d)
}

func createDeck(ctx context.Context, app *client.App, name string) error {
	if name == "" {
		return fmt.Errorf("--name required")
	}

	d, err := app.Decks.Create(ctx, name)
	if err != nil {
		return err
	}
	return printJSON(d)
}

func updateDeck(ctx context.Context, app *client.App, id int64, name string) error {
	if id == 0 || name == "" {
		return fmt.Errorf("--id and --name required")
	}

	d, err := app.Decks.Update(ctx, id, name)
	if err != nil {
		return err
	}
	return printJSON(d)
}

func deleteDeck(ctx context.Context, app *client.App, id int64) error {
	if id == 0 {
		return fmt.Errorf("--id required")
	}

	if err := app.Decks.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println("Deck deleted.")
	return nil
}

func listCards(ctx context.Context, app *client.App, deckID int64) error {
	if deckID == 0 {
		return fmt.Errorf("--deck required")
	}

	cards, err := app.Cards.ListByDeck(ctx, deckID)
	if err != nil {
		return err
	}
	return printJSON(cards)
}

func showCard(ctx context.Context, app *client.App, id int64) error {
	if id == 0 {
		return fmt.Errorf("--id required")
	}

	c, err := app.Cards.Get(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(c)
}

func createCard(ctx context.Context, app *client.App, deckID int64, front, back string) error {
	if deckID == 0 || front == "" || back == "" {
		return fmt.Errorf("--deck, --front and --back required")
	}

	c, err := app.Cards.Create(ctx, card.CreateForm{
		DeckID:       deckID,
		FrontContent: front,
		BackContent:  back,
	})
	if err != nil {
		return err
	}
	return printJSON(c)
}

func updateCard(ctx context.Context, app *client.App, deckID, id int64, front, back string) error {
	if deckID == 0 || id == 0 || front == "" || back == "" {
		return fmt.Errorf("--deck, --id, --front and --back required")
	}

	c, err := app.Cards.Update(ctx, deckID, id, front, back)
	if err != nil {
		return err
	}
	return printJSON(c)
}

func deleteCard(ctx context.Context, app *client.App, deckID, id int64) error {
	if deckID == 0 || id == 0 {
		return fmt.Errorf("--deck and --id required")
	}

	if err := app.Cards.Delete(ctx, deckID, id); err != nil {
		return err
	}
	fmt.Println("Card deleted.")
	return nil
}

func printJSON(v any) error {
	enc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(enc))
	return nil
}
