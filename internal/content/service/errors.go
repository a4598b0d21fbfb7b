package service

import (
	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
)

var (
	ErrValidation   = commonerrors.ErrValidation
	ErrPostNotFound = commonerrors.ErrNotFound
)
