package main

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/julienschmidt/httprouter"
	"github.com/sushihentaime/currytech/internal/userservice"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/", app.rootHandler)
	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	// auth
	router.HandlerFunc(http.MethodPost, "/api/auth/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/auth/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodGet, "/api/auth/me", app.requireAuthUser(app.meHandler))
	router.HandlerFunc(http.MethodGet, "/api/auth/logout", app.requireAuthUser(app.logoutUserHandler))
	if app.config.isDevelopment() {
		router.HandlerFunc(http.MethodGet, "/api/auth/make-admin", app.requireAuthUser(app.makeAdminHandler))
	}

	// blogs
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.listBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs", app.requireRole(app.createBlogHandler, userservice.RoleAdmin))
	router.HandlerFunc(http.MethodGet, "/api/blogs/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodPut, "/api/blogs/:id", app.requireAuthUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/api/blogs/:id", app.requireAuthUser(app.deleteBlogHandler))
	router.HandlerFunc(http.MethodPost, "/api/blogs/:id/comments", app.requireAuthUser(app.addCommentHandler))
	router.HandlerFunc(http.MethodPut, "/api/blogs/:id/like", app.requireAuthUser(app.toggleLikeHandler))

	// contact
	router.HandlerFunc(http.MethodPost, "/api/contact", app.submitContactHandler)
	router.HandlerFunc(http.MethodGet, "/api/contact", app.requireRole(app.listContactsHandler, userservice.RoleAdmin))
	router.HandlerFunc(http.MethodGet, "/api/contact/:id", app.requireRole(app.getContactHandler, userservice.RoleAdmin))
	router.HandlerFunc(http.MethodPut, "/api/contact/:id", app.requireRole(app.updateContactHandler, userservice.RoleAdmin))
	router.HandlerFunc(http.MethodDelete, "/api/contact/:id", app.requireRole(app.deleteContactHandler, userservice.RoleAdmin))

	// testimonials
	router.HandlerFunc(http.MethodGet, "/api/testimonials", app.listApprovedTestimonialsHandler)
	router.HandlerFunc(http.MethodPost, "/api/testimonials", app.requireAuthUser(app.createTestimonialHandler))
	router.HandlerFunc(http.MethodGet, "/api/testimonials/:id", app.testimonialLookupHandler)
	router.HandlerFunc(http.MethodPut, "/api/testimonials/:id", app.requireAuthUser(app.updateTestimonialHandler))
	router.HandlerFunc(http.MethodDelete, "/api/testimonials/:id", app.requireAuthUser(app.deleteTestimonialHandler))
	router.HandlerFunc(http.MethodPut, "/api/testimonials/:id/approve", app.requireRole(app.approveTestimonialHandler, userservice.RoleAdmin))

	var handler http.Handler = router
	handler = app.authenticate(handler)
	handler = app.rateLimit(handler)
	handler = app.enableCORS(handler)
	handler = app.logRequest(handler)
	handler = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(handler)

	return app.recoverPanic(handler)
}

// testimonialLookupHandler serves GET /api/testimonials/:id. httprouter does
// not allow static segments beside a wildcard, so the "me" and "admin" lists
// are resolved here before the id lookup.
func (app *application) testimonialLookupHandler(w http.ResponseWriter, r *http.Request) {
	switch httprouter.ParamsFromContext(r.Context()).ByName("id") {
	case "me":
		app.requireAuthUser(app.listMyTestimonialsHandler)(w, r)
	case "admin":
		app.requireRole(app.listAllTestimonialsHandler, userservice.RoleAdmin)(w, r)
	default:
		app.getTestimonialHandler(w, r)
	}
}
