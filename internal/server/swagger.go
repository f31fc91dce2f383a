package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title Kensa API
// @version 0.1
// @description Interactive documentation for the kensa suppression screen API surface.
// @contact.name Kensa Maintainers
// @contact.url https://github.com/raysh454/kensa
// @BasePath /
