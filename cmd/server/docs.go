package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           BookHive API
// @version         0.1.0
// @description     Book catalog ingestion, ratings, preferences and recommendations.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
