package dto

import "encoding/json"

type LoginRequest struct {
	Usuario  string `json:"usuario"  validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User json.RawMessage `json:"user"`
}
