package handler

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()

	router.NotFound(h.notFoundResponse)
	router.MethodNotAllowed(h.methodNotAllowed)

	router.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", h.healthcheckHandler)

		r.Post("/auth/register", h.registerUserHandler)
		r.Post("/auth/login", h.loginHandler)

		r.Get("/books", h.listBooksHandler)
		r.Post("/books", h.requireAuthenticatedUser(h.createBookHandler))
		r.Get("/books/search", h.searchBooksHandler)
		r.Get("/books/author/{author}", h.listBooksByAuthorHandler)
		r.Get("/books/{bookId}", h.showBookHandler)
		r.Put("/books/{bookId}", h.requireAuthenticatedUser(h.updateBookHandler))
		r.Delete("/books/{bookId}", h.requireAuthenticatedUser(h.deleteBookHandler))
	})

	router.Get("/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	// Swagger routes
	router.Get("/spec", h.handleSwaggerFile())
	router.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.recoverPanic(h.enableCORS(h.rateLimit(h.metrics(h.logRequest(h.authenticate(router))))))
}
