package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rustico-backend/config"
	"rustico-backend/controllers"
	"rustico-backend/routes"
	"rustico-backend/services"
	"rustico-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB

	uploadsDir := utils.EnvOrDefault("UPLOADS_DIR", "./uploads")

	fileService := services.NewFileService(uploadsDir)
	guestService := services.NewGuestService(db)
	serviceService := services.NewServiceService(db)
	bookingService := services.NewBookingService(db)
	settingsService := services.NewSettingsService(db, fileService)
	userService := services.NewUserService(db)
	reportService := services.NewReportService(db, settingsService)

	authController := controllers.NewAuthController(userService)
	guestController := controllers.NewGuestController(guestService)
	bookingController := controllers.NewBookingController(bookingService)
	serviceController := controllers.NewServiceController(serviceService)
	settingsController := controllers.NewSettingsController(settingsService)
	reportController := controllers.NewReportController(reportService, bookingService)
	userController := controllers.NewUserController(userService)

	router := routes.SetupRouter(
		authController,
		guestController,
		bookingController,
		serviceController,
		settingsController,
		reportController,
		userController,
		uploadsDir,
	)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// PDF rendering can take a while
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
