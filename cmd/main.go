package main

import "github.com/adanyl0v/go-todo-client/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustInitServices()
	app.MustRunTUI()
}
