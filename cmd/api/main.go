package main

import (
	_ "taller_str/docs"
	"taller_str/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Taller STR API
// @version         1.0
// @description     Device-repair shop API: service orders, budget approval, inventory and client portal. Flat JSON file persistence.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /api

func main() {
	routes.Run()
}
