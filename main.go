package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/mazelab/api"
	"github.com/beka-birhanu/mazelab/api/auth"
	api_i "github.com/beka-birhanu/mazelab/api/i"
	labapi "github.com/beka-birhanu/mazelab/api/lab"
	"github.com/beka-birhanu/mazelab/api/stream"
	"github.com/beka-birhanu/mazelab/config"
	"github.com/beka-birhanu/mazelab/infrastruture/leaderboard"
	"github.com/beka-birhanu/mazelab/infrastruture/repo"
	"github.com/beka-birhanu/mazelab/infrastruture/token"
	"github.com/beka-birhanu/mazelab/logger"
	"github.com/beka-birhanu/mazelab/service"
	"github.com/beka-birhanu/mazelab/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient      *mongo.Client
	redisClient      *redis.Client
	mazeRepo         i.MazeRepo
	board            i.Leaderboard
	jwtTokenizer     i.Tokenizer
	lab              i.Lab
	labController    api_i.Controller
	streamController api_i.Controller
	router           *api.Router
	appLogger        i.Logger
)

func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	clientOptions := options.Client().ApplyURI(config.Envs.DBURI)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initMazeRepo(ctx context.Context, client *mongo.Client) {
	r := repo.NewMazeRepo(client, config.Envs.DBName, "mazes")
	if err := r.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze indexes: %v", err))
		os.Exit(1)
	}
	mazeRepo = r
	appLogger.Info("Maze repository initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initLeaderboard() {
	var err error
	board, err = leaderboard.NewRedisLeaderboard(redisClient, config.Envs.LeaderboardTTLSec)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initLab() {
	var err error
	lab, err = service.NewLab(mazeRepo, board, jwtTokenizer, newLogger("LAB", config.ColorCyan), &service.LabOptions{
		MaxGridDimension:   config.Envs.MaxGridDimension,
		MaxStepsPerRequest: config.Envs.MaxStepsPerRequest,
		TokenTTL:           time.Duration(config.Envs.RunTokenTTLMinutes) * time.Minute,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating lab service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Lab service initialized")
}

func initControllers() {
	var err error
	labController, err = labapi.NewLabController(lab, newLogger("LAB-API", config.ColorBlue))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating lab controller: %v", err))
		os.Exit(1)
	}

	streamController, err = stream.NewStreamController(lab, newLogger("STREAM", config.ColorMagenta), &stream.Options{
		Interval: time.Duration(config.Envs.StreamIntervalMS) * time.Millisecond,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating stream controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{labController, streamController},
		AuthorizationMiddleware: auth.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger = newLogger("APP", config.ColorGreen)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initMazeRepo(ctx, mongoClient)

	initRedis(ctx)
	defer redisClient.Close()
	initLeaderboard()

	initJWTTokenizer()
	initLab()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
