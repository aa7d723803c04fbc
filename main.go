package main

import (
	"metra-api/core/logger"
	"metra-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("Failed to start server", "error", err)
	}
}
