package rest

import "net/http"

// RouterDeps bundles the handlers mounted by NewRouter.
type RouterDeps struct {
	Auth        *AuthHandler
	Items       *ItemHandler
	Attachments *AttachmentHandler
	Users       *UserHandler
	Categories  *CategoryHandler
	Health      *HealthHandler
}

// NewRouter mounts all REST routes. Authentication and the rest of the
// middleware stack are applied by the caller around the returned handler.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", deps.Auth.Login)

	mux.HandleFunc("POST /items", deps.Items.Create)
	mux.HandleFunc("GET /items", deps.Items.List)
	mux.HandleFunc("GET /items/{id}", deps.Items.Get)
	mux.HandleFunc("PATCH /items/{id}", deps.Items.Update)
	mux.HandleFunc("PATCH /items/{id}/renew", deps.Items.Renew)
	mux.HandleFunc("DELETE /items/{id}", deps.Items.Delete)
	mux.HandleFunc("GET /items/{id}/history", deps.Items.History)

	mux.HandleFunc("GET /items/{id}/attachments", deps.Attachments.List)
	mux.HandleFunc("POST /items/{id}/attachments", deps.Attachments.Upload)
	mux.HandleFunc("GET /attachments/{id}/download", deps.Attachments.Download)

	mux.HandleFunc("GET /users", deps.Users.List)
	mux.HandleFunc("POST /users", deps.Users.Create)
	mux.HandleFunc("GET /users/{id}", deps.Users.Get)
	mux.HandleFunc("PATCH /users/{id}", deps.Users.Update)

	mux.HandleFunc("GET /categories", deps.Categories.List)
	mux.HandleFunc("POST /categories", deps.Categories.Create)

	mux.HandleFunc("GET /health", deps.Health.Health)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /live", deps.Health.Live)

	return mux
}
