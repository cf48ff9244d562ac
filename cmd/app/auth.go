package main

import (
	"net/http"

	"github.com/sushihentaime/currytech/internal/userservice"
)

type loginUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input userservice.RegisterRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token, err := app.userService.CreateUser(r.Context(), input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"success": true, "token": token}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token, err := app.userService.LoginUser(r.Context(), input.Email, input.Password)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "token": token}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) meHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	err := app.writeJSON(w, http.StatusOK, envelope{"success": true, "data": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// logoutUserHandler exists for the client's benefit. Tokens are stateless and
// stay valid until they expire.
func (app *application) logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{"success": true, "data": envelope{}}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// makeAdminHandler promotes the caller. Only routed in development.
func (app *application) makeAdminHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	promoted, err := app.userService.PromoteToAdmin(r.Context(), user.ID)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "user is now an admin", "data": promoted}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
