package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"wandermind/cmd/fx/configfx"
	"wandermind/cmd/fx/eventfx"
	"wandermind/cmd/fx/factcheckfx"
	"wandermind/cmd/fx/tripfx"
	"wandermind/internal/api/controllers"
	"wandermind/internal/config"
	"wandermind/pkg/middleware"
)

func main() {
	app := fx.New(
		configfx.Module,
		tripfx.Module,
		eventfx.Module,
		factcheckfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
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
	tripController *controllers.TripController,
	eventController *controllers.EventController,
	factCheckController *controllers.FactCheckController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, tripController, eventController, factCheckController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	tripController *controllers.TripController,
	eventController *controllers.EventController,
	factCheckController *controllers.FactCheckController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tripsGroup := r.Group("/api/trips")
	tripsGroup.POST("/generate", tripController.GenerateItineraryHandler)
	tripsGroup.POST("/events/modify", eventController.ModifyEventHandler)
	tripsGroup.POST("/factcheck", factCheckController.FactCheckHandler)
}
