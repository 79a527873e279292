// main.go
package main

import (
	"log"
	"os"

	"github.com/YetundeAlabi/E-voting/config"
	"github.com/YetundeAlabi/E-voting/controllers"
	"github.com/YetundeAlabi/E-voting/routes"
	"github.com/YetundeAlabi/E-voting/services"
)

func main() {
	config.LoadConfig()
	config.ConnectDatabase()

	if config.SMTPHost != "" {
		controllers.Mailer = &services.SMTPSender{
			Host:     config.SMTPHost,
			Port:     config.SMTPPort,
			Username: config.SMTPUser,
			Password: config.SMTPPassword,
			From:     config.EmailFrom,
		}
	} else {
		log.Println("SMTP not configured, email delivery disabled")
	}

	router := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on http://localhost:%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
