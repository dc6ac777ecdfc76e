package domain

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrMachineNotFound  = errors.New("machine not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrNoteNotFound     = errors.New("note not found")
)
