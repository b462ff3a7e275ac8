package routes

import (
	"log"
	"os"

	_ "taller_str/docs" // swag-generated docs registration
	"taller_str/internal/adapter/http/handlers"
	"taller_str/internal/adapter/http/middleware"
	"taller_str/internal/adapter/persistence/jsonstore"
	"taller_str/internal/infrastructure/token"
	"taller_str/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = "8080"

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	orderRepo := jsonstore.NewOrderJSONRepository(dataDir)
	partRepo := jsonstore.NewPartJSONRepository(dataDir)
	serviceRepo := jsonstore.NewServiceJSONRepository(dataDir)
	settingsRepo := jsonstore.NewSettingsJSONRepository(dataDir)
	notifRepo := jsonstore.NewNotificationJSONRepository(dataDir)
	credentialRepo := jsonstore.NewCredentialJSONRepository(dataDir)

	sessionSigner := token.NewSessionSignerFromEnv()
	clientSigner := token.NewClientSignerFromEnv()

	orderUseCase := usecase.NewOrderUseCase(orderRepo, partRepo, serviceRepo, settingsRepo, notifRepo)
	partUseCase := usecase.NewPartUseCase(partRepo, settingsRepo)
	serviceUseCase := usecase.NewServiceUseCase(serviceRepo, partRepo)
	settingsUseCase := usecase.NewSettingsUseCase(settingsRepo)
	notifUseCase := usecase.NewNotificationUseCase(notifRepo)
	authUseCase := usecase.NewAuthUseCase(credentialRepo)
	exportUseCase := usecase.NewExportUseCase(orderRepo, partRepo, serviceRepo, settingsRepo)

	orderHandler := handlers.NewOrderHandler(orderUseCase)
	portalHandler := handlers.NewPortalHandler(orderUseCase, clientSigner)
	catalogHandler := handlers.NewCatalogHandler(partUseCase, serviceUseCase)
	settingsHandler := handlers.NewSettingsHandler(settingsUseCase)
	notifHandler := handlers.NewNotificationHandler(notifUseCase)
	authHandler := handlers.NewAuthHandler(authUseCase, sessionSigner)
	exportHandler := handlers.NewExportHandler(exportUseCase)

	requireAdmin := middleware.RequireAdmin(sessionSigner)
	requireClient := middleware.RequireClientToken(clientSigner)

	api := router.Group("/api")
	addPingRoutes(api)
	addOrderRoutes(api, orderHandler, portalHandler, requireAdmin, requireClient)
	addCatalogRoutes(api, catalogHandler, settingsHandler, notifHandler, requireAdmin)
	addAuthRoutes(api, authHandler, exportHandler, requireAdmin)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
