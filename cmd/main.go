package main

import (
	"github.com/corray333/orderflow/internal/app"
	"github.com/corray333/orderflow/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
