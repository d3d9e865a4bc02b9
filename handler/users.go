package handler

import (
	"errors"
	"net/http"

	"github.com/osagie/bookstore/data/dto"
	"github.com/osagie/bookstore/service"
)

// RegisterUser godoc
// @Summary Register a new user
// @Description This endpoint registers a new user account
// @Tags auth
// @Accept  json
// @Produce json
// @Param body body dto.RegisterUserRequestBody true "JSON payload required to register"
// @Success 200
// @Failure 400
// @Router /api/auth/register [post]
func (h *Handler) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.RegisterUserRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	_, err = h.service.RegisterUser(requestBody.Username, requestBody.Email, requestBody.Password)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.failedValidationResponse(w, r, validationErr.Fields)
		default:
			h.uncaughtErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "user successfully registered"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// Login godoc
// @Summary Login
// @Description This endpoint checks a user's credentials and returns a signed authentication token
// @Tags auth
// @Accept  json
// @Produce json
// @Param body body dto.LoginRequestBody true "JSON payload required to log in"
// @Success 200 {object} service.Token
// @Failure 400
// @Failure 401
// @Router /api/auth/login [post]
func (h *Handler) loginHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.LoginRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	token, err := h.service.CreateAuthenticationToken(requestBody.Username, requestBody.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			h.invalidCredentialsResponse(w, r)
		default:
			h.uncaughtErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"token": token.Token, "expiration": token.Expiration, "message": "login successful"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
