package domain

import "errors"

var ErrAgentExists = errors.New("agent already exists")
var ErrAgentNotFound = errors.New("agent not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrForbidden = errors.New("access forbidden")
