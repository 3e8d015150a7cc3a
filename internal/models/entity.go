package models

import "time"

// Entity groups tickets under a counterparty or site name. The name is the document key.
type Entity struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateEntityRequest represents the request body for creating an entity
type CreateEntityRequest struct {
	Name string `json:"name"`
}
