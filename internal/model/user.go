package model

// User carries only its identity; profile attributes live outside this service.
type User struct {
	Base
}
