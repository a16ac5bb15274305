// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/delivery/http/response"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const signupMessage = "User registered successfully"

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc usecase.AccountUsecase
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Signup handles account registration.
func (h *AccountHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return bindingError(err)
	}

	output, err := h.uc.Signup(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, response.Signup{
		Message: signupMessage,
		Token:   output.Token,
		User:    response.NewUser(output.Account),
	})
}

// Login handles credential login.
func (h *AccountHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return bindingError(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.Login{
		Token: output.Token,
		User:  response.NewUser(output.Account),
	})
}

// Me returns the authenticated caller's profile.
func (h *AccountHandler) Me(c echo.Context) error {
	claims := deliverycontext.GetClaims(c)
	if claims == nil {
		return domainerrors.ErrMissingToken
	}

	account, err := h.uc.GetProfile(c.Request().Context(), claims.AccountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.NewProfile(account))
}

// bindingError turns a body decoding failure into a validation failure.
func bindingError(err error) error {
	if errors.Is(err, entity.ErrLocationShape) {
		return domainerrors.ErrValidationFailed.WithDetails(entity.ErrLocationShape.Error())
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code == http.StatusRequestEntityTooLarge {
		return err
	}

	return domainerrors.ErrValidationFailed.WithDetails("request body must be valid JSON")
}
