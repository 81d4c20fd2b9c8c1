package main

import "staffhub/internal/app/server"

func main() {
	server.Run()
}
