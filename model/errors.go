package model

import "errors"

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrSinkUnavailable    = errors.New("export sink unavailable")
	ErrRecordNotFound     = errors.New("response record does not exist")
	ErrUnknownColumn      = errors.New("unknown column")
	ErrOutOfRange         = errors.New("question index out of range")
)
