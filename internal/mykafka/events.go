package mykafka

import "time"

const (
	UserRegistered  = "user_registered"
	UserActivated   = "user_activated"
	UserDeleted     = "user_deleted"
	ResourceCreated = "resource_created"
	ResourceUpdated = "resource_updated"
	ResourceDeleted = "resource_deleted"
)

type UserEvent struct {
	Type   string    `json:"type"`
	UserID uint      `json:"user_id"`
	Name   string    `json:"name"`
	At     time.Time `json:"at"`
}

type ResourceEvent struct {
	Type string    `json:"type"`
	Key  string    `json:"key"`
	At   time.Time `json:"at"`
}
