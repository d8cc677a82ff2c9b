// Command store-svc serves the store back office API.
//
//	@title			Store API
//	@version		1.0
//	@description	Catalog, customers and orders of the store back office.
//	@BasePath		/api
package main

import (
	"github.com/corray333/backend-labs/store/internal/app"
	"github.com/corray333/backend-labs/store/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
