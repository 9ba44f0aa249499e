package service

import "errors"

var (
	ErrInvalidPostID      = errors.New("invalid post id")
	ErrDraftIncomplete    = errors.New("post draft incomplete")
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
	ErrCredentialsMissing = errors.New("username or password missing")
	ErrLoginRejected      = errors.New("login rejected")
	ErrFormTransition     = errors.New("illegal form transition")
)
