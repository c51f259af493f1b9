package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/prepwise/prepwise-backend/config"
	"github.com/prepwise/prepwise-backend/internal/api/handlers"
	"github.com/prepwise/prepwise-backend/internal/api/middleware"
	"github.com/prepwise/prepwise-backend/internal/api/routes"
	"github.com/prepwise/prepwise-backend/internal/cache"
	"github.com/prepwise/prepwise-backend/internal/logger"
	"github.com/prepwise/prepwise-backend/internal/providers/embedding"
	"github.com/prepwise/prepwise-backend/internal/providers/extract"
	"github.com/prepwise/prepwise-backend/internal/providers/llm"
	mongorepo "github.com/prepwise/prepwise-backend/internal/repositories/mongo"
	pgrepo "github.com/prepwise/prepwise-backend/internal/repositories/postgres"
	"github.com/prepwise/prepwise-backend/internal/services"
	"github.com/prepwise/prepwise-backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	l.Info("MongoDB connected")

	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("Mongo index error: %v", err)
	}

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	l.Info("PostgreSQL connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	ctx := context.Background()

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "prepwise"
	}
	mongoDB := config.MongoClient.Database(dbName)

	// Providers
	embedder, err := embedding.NewClient(embedding.Config{
		BaseURL:   os.Getenv("EMBEDDING_BASE_URL"),
		APIKey:    os.Getenv("EMBEDDING_API_KEY"),
		Model:     os.Getenv("EMBEDDING_MODEL"),
		Dimension: 0, // default dimension
		Timeout:   30 * time.Second,
	})
	if err != nil {
		log.Fatalf("embedding init error: %v", err)
	}

	generator, err := newLLM(ctx)
	if err != nil {
		log.Fatalf("llm init error: %v", err)
	}
	defer generator.Close()

	uploader, err := storage.NewGCSUploader(ctx, os.Getenv("GCS_BUCKET"), os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	if err != nil {
		log.Fatalf("GCS init error: %v", err)
	}

	extractor, err := extract.NewHTTPExtractor(os.Getenv("EXTRACTOR_BASE_URL"), 60*time.Second)
	if err != nil {
		log.Fatalf("extractor init error: %v", err)
	}

	// Repositories
	users := pgrepo.NewUserRepo(config.PostgresDB)
	resumes := pgrepo.NewResumeRepo(config.PostgresDB)
	chunks := pgrepo.NewChunkRepo(config.PostgresDB)
	turns := pgrepo.NewTurnRepo(config.PostgresDB)
	sessions := mongorepo.NewSessionRepo(mongoDB)

	rcache := cache.NewRedisCache(config.RedisClient)

	// Services
	authSvc := services.NewAuthService(users, os.Getenv("JWT_SECRET"))
	resumeSvc := services.NewResumeService(resumes, chunks, uploader, uploader, extractor, embedder)
	sessionSvc := services.NewSessionService(sessions, resumes, turns, rcache)
	interviewSvc := services.NewInterviewService(sessionSvc, turns, chunks, embedder, generator)
	feedbackSvc := services.NewFeedbackService(sessionSvc, turns, generator, rcache)
	searchSvc := services.NewSearchService(resumeSvc, chunks, embedder)

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:      handlers.NewAuthHandler(authSvc),
		Resume:    handlers.NewResumeHandler(resumeSvc),
		Session:   handlers.NewSessionHandler(sessionSvc),
		Interview: handlers.NewInterviewHandler(interviewSvc, feedbackSvc),
		Search:    handlers.NewSearchHandler(searchSvc),
		WS:        handlers.NewWSHandler(interviewSvc, feedbackSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// newLLM picks the text generator from LLM_PROVIDER: "vertex" for Vertex AI
// Gemini, anything else for Groq.
func newLLM(ctx context.Context) (llm.Provider, error) {
	if os.Getenv("LLM_PROVIDER") == "vertex" {
		return llm.NewVertexGemini(ctx,
			os.Getenv("VERTEX_PROJECT_ID"),
			os.Getenv("VERTEX_LOCATION"),
			os.Getenv("VERTEX_MODEL"),
		)
	}
	return llm.NewGroq(llm.GroqConfig{
		BaseURL: os.Getenv("GROQ_BASE_URL"),
		APIKey:  os.Getenv("GROQ_API_KEY"),
		Model:   os.Getenv("GROQ_MODEL"),
		Timeout: 60 * time.Second,
	})
}
