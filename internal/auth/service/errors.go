package service

import (
	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
)

var (
	ErrInvalidCredentials = commonerrors.ErrInvalidCredentials
	ErrUsernameTaken      = commonerrors.ErrDuplicateUsername
	ErrUnauthenticated    = commonerrors.ErrUnauthenticated
	ErrValidation         = commonerrors.ErrValidation
)
