// Package api wires the resource services to HTTP: routing, bearer-token
// middleware, request validation and response shaping.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/handlers"

	"courier/internal/config"
	"courier/internal/database"
	"courier/internal/service"
)

type CourierApp struct {
	log      *log.Logger
	mux      *http.Server
	validate *validator.Validate
	db       database.CourierRepository
	auth     *service.AuthService
	users    *service.UserService
	chats    *service.ChatService
	messages *service.MessageService
}

func NewCourierApp(
	mux *http.ServeMux,
	logger *log.Logger,
	db database.CourierRepository,
	authSvc *service.AuthService,
	userSvc *service.UserService,
	chatSvc *service.ChatService,
	messageSvc *service.MessageService,
	cfg *config.Config,
) *CourierApp {
	a := &CourierApp{
		log:      logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		db:       db,
		auth:     authSvc,
		users:    userSvc,
		chats:    chatSvc,
		messages: messageSvc,
	}

	mux.HandleFunc("POST /auth/registration", a.register)
	mux.HandleFunc("POST /auth/token", a.token)

	mux.HandleFunc("GET /users", a.listUsers)
	mux.HandleFunc("GET /users/me", a.authMiddleware(a.currentUser))
	mux.HandleFunc("PUT /users/me", a.authMiddleware(a.updateCurrentUser))
	mux.HandleFunc("GET /users/{id}", a.getUser)
	mux.HandleFunc("GET /users/{id}/chats", a.getUserChats)

	mux.HandleFunc("GET /chats", a.authMiddleware(a.listChats))
	mux.HandleFunc("POST /chats", a.authMiddleware(a.createChat))
	mux.HandleFunc("GET /chats/{id}", a.authMiddleware(a.getChat))
	mux.HandleFunc("PUT /chats/{id}", a.authMiddleware(a.updateChat))
	mux.HandleFunc("DELETE /chats/{id}", a.authMiddleware(a.deleteChat))
	mux.HandleFunc("GET /chats/{id}/users", a.authMiddleware(a.getChatMembers))
	mux.HandleFunc("PUT /chats/{id}/users/{user_id}", a.authMiddleware(a.addChatMember))
	mux.HandleFunc("DELETE /chats/{id}/users/{user_id}", a.authMiddleware(a.removeChatMember))
	mux.HandleFunc("GET /chats/{id}/messages", a.authMiddleware(a.listMessages))
	mux.HandleFunc("POST /chats/{id}/messages", a.authMiddleware(a.createMessage))
	mux.HandleFunc("PUT /chats/{id}/messages/{message_id}", a.authMiddleware(a.updateMessage))
	mux.HandleFunc("DELETE /chats/{id}/messages/{message_id}", a.authMiddleware(a.deleteMessage))

	mux.HandleFunc("GET /healthz", a.healthCheck)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept", "Authorization"}),
		handlers.AllowCredentials(),
	)(mux)

	h = handlers.CombinedLoggingHandler(logger.Writer(), h)
	h = a.requestIdHandler(h)
	h = a.recoveryHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	a.mux = srv
	return a
}

func (a *CourierApp) Start() error {
	a.log.Printf("starting server on %s\n", a.mux.Addr)
	return a.mux.ListenAndServe()
}

func (a *CourierApp) Shutdown(ctx context.Context) error {
	a.log.Println("shutting down HTTP server...")
	if err := a.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

func (a *CourierApp) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if err := a.db.Ping(); err != nil {
		a.log.Printf("health check: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (a *CourierApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Printf("json encode: %v", err)
	}
}
