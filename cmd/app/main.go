package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"wayfarer/cmd/fx/account_fx"
	"wayfarer/cmd/fx/db_fx"
	"wayfarer/cmd/fx/plan_fx"
	"wayfarer/internal/api/controllers"
	"wayfarer/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		plan_fx.Module,
		account_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	planController *controllers.PlanController,
	accountController *controllers.AccountController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, planController, accountController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	planController *controllers.PlanController,
	accountController *controllers.AccountController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	plansGroup := r.Group("/plans")
	plansGroup.POST("/generate", middleware.OptionalJWTMiddleware(), planController.GeneratePlanHandler)
	plansGroup.POST("/similar", planController.SimilarPlansHandler)
	plansGroup.GET("/history", middleware.JWTAuthMiddleware(), planController.HistoryHandler)

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", accountController.Register)
	accountsGroup.POST("/login", accountController.Login)
}
