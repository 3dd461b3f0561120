package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

type RegisterInput struct {
	StoreID string
	Name    string
	Phone   string
}

type SessionResponse struct {
	Session *model.CustomerSession `json:"session"`
	Token   string                 `json:"token"`
}
