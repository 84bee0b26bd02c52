// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/promptparty/promptparty/internal/config"
	"github.com/promptparty/promptparty/internal/genai"
	"github.com/promptparty/promptparty/internal/handlers"
	"github.com/promptparty/promptparty/internal/middleware"
	"github.com/promptparty/promptparty/internal/relay"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store := relay.NewStore(logger)
	ai := genai.NewClient(cfg, logger)

	logHTTP := middleware.LogMiddleware(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/", handlers.PingHandler)

	// relay websocket
	mux.Handle("/ws", handlers.RelayWSHandler(logger, store))

	// generative AI endpoints
	mux.Handle("/api/evaluate", logHTTP(http.HandlerFunc(handlers.EvaluateHandler(ai, logger))))
	mux.Handle("/api/image", logHTTP(http.HandlerFunc(handlers.ImageHandler(ai, logger))))
	mux.Handle("/api/audio", logHTTP(http.HandlerFunc(handlers.AudioHandler(ai, logger))))
	mux.Handle("/api/descriptors", logHTTP(http.HandlerFunc(handlers.DescriptorsHandler(ai, logger))))

	// room inspection and sharing
	mux.Handle("/rooms", logHTTP(http.HandlerFunc(handlers.ListRoomsHandler(store))))
	mux.Handle("/rooms/", logHTTP(http.HandlerFunc(handlers.RoomQRHandler(cfg))))

	addr := ":" + cfg.Port
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
