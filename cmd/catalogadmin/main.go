// Package main is the entry point for the application.
//
// @title Catalog Admin API
// @version 1.0
// @description Back office for the product catalog: browse, search, filter, adjust stock, manage images and export PDF sheets.
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
package main

import "github.com/yourorg/catalogadmin/cmd/catalogadmin/cmd"

func main() {
	cmd.Execute()
}
