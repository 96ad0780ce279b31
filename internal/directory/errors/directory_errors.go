package errors

import (
	"net/http"

	"go-agency/internal/shared/apperror"
)

var (
	ErrInvalidAgencyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid agency id",
		http.StatusBadRequest,
	)

	ErrRoleRequired = apperror.RequiredField("Role")
)
