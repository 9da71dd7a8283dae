package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	mathrand "math/rand"
	"net"
	"os"
	"sync"
	"time"

	udpcrypto "github.com/beka-birhanu/udp-socket-manager/crypto"
	udppb "github.com/beka-birhanu/udp-socket-manager/encoding"
	udpsocket "github.com/beka-birhanu/udp-socket-manager/socket"
	general_i "github.com/beka-birhanu/vinom/common/interfaces/general"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mazehunt/mazehunt-api/api"
	gameapi "github.com/mazehunt/mazehunt-api/api/game"
	api_i "github.com/mazehunt/mazehunt-api/api/i"
	"github.com/mazehunt/mazehunt-api/api/identity"
	"github.com/mazehunt/mazehunt-api/config"
	"github.com/mazehunt/mazehunt-api/game/jsonenc"
	"github.com/mazehunt/mazehunt-api/infrastructure/leaderboard"
	logger "github.com/mazehunt/mazehunt-api/infrastructure/log"
	"github.com/mazehunt/mazehunt-api/infrastructure/repo"
	"github.com/mazehunt/mazehunt-api/infrastructure/token"
	"github.com/mazehunt/mazehunt-api/maze"
	"github.com/mazehunt/mazehunt-api/service"
	"github.com/mazehunt/mazehunt-api/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	userRepo       i.UserRepo
	runRepo        i.RunRepo
	escapeBoard    i.Leaderboard
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	sessionManager *service.GameSessionManager
	gameSocket     i.ServerSocketManager
	authController api_i.Controller
	huntController api_i.Controller
	router         *api.Router
	appLogger      general_i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
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

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	runRepo = repo.NewRunRepo(client, config.Envs.DBName, "runs")
	appLogger.Info("Repositories initialized")
}

func initLeaderboard() {
	var err error
	escapeBoard, err = leaderboard.NewRedisLeaderboard(redisClient, "mazehunt:escapes")
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

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

// newMazeFactory returns a factory producing generated mazes with torches
// placed. The shared rng is guarded since hunts can start concurrently.
func newMazeFactory() func(int, int, float64) (*maze.Maze, []maze.Torch, error) {
	var mu sync.Mutex
	rng := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	return func(width, height int, cellSize float64) (*maze.Maze, []maze.Torch, error) {
		m, err := maze.New(width, height, cellSize)
		if err != nil {
			return nil, nil, err
		}
		mu.Lock()
		defer mu.Unlock()
		m.Generate(rng)
		torches := m.PlaceTorches(rng, width*height)
		return m, torches, nil
	}
}

// initGameSocket builds the session manager and the realtime socket it
// serves. The manager is created first since the socket authenticates
// clients through it, then the socket is bound back onto the manager.
func initGameSocket() {
	sessionLogger, err := logger.New("SESSION-MANAGER", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager logger: %v", err))
		os.Exit(1)
	}

	asymmKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Generating socket RSA key: %v", err))
		os.Exit(1)
	}
	rsaCrypto := udpcrypto.NewRSA(asymmKey)

	socketAddrString := fmt.Sprintf("%s:%d", config.Envs.HostIP, config.Envs.UDPPort)
	listenAddr, err := net.ResolveUDPAddr("udp", socketAddrString)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Resolving socket address: %v", err))
		os.Exit(1)
	}

	sessionManager, err = service.NewGameSessionManager(&service.Config{
		SocketPubKey: rsaCrypto.GetPublicKey(),
		SocketAddr:   socketAddrString,
		MazeFactory:  newMazeFactory(),
		Encoder:      &jsonenc.JSON{},
		UserRepo:     userRepo,
		RunRepo:      runRepo,
		Leaderboard:  escapeBoard,
		Logger:       sessionLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}

	socketLogger, err := logger.New("GAME-SOCKET", config.ColorBlue, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating socket logger: %v", err))
		os.Exit(1)
	}

	gameSocket, err = udpsocket.NewServerSocketManager(udpsocket.ServerConfig{
		ListenAddr:    listenAddr,
		Authenticator: sessionManager,
		AsymmCrypto:   rsaCrypto,
		SymmCrypto:    udpcrypto.NewAESCBC(),
		Encoder:       &udppb.Protobuf{},
		HMAC:          &udpcrypto.HMAC{},
		Logger:        socketLogger,
	},
		udpsocket.ServerWithClientRegisterHandler(func(id uuid.UUID) {
			socketLogger.Info(fmt.Sprintf("client connected: %s", id))
		}),
		udpsocket.ServerWithClientRequestHandler(sessionManager.HandlePlayerRequest),
		udpsocket.ServerWithHeartbeatExpiration(30*time.Second),
	)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game socket: %v", err))
		os.Exit(1)
	}

	sessionManager.BindSocket(gameSocket)
	appLogger.Info("Game socket and session manager initialized")
}

func initHuntController() {
	var err error
	huntController, err = gameapi.NewHuntController(gameapi.HuntControllerConfig{
		GameSessionManager: sessionManager,
		RunRepo:            runRepo,
		Leaderboard:        escapeBoard,
		DefaultWidth:       config.Envs.MazeWidth,
		DefaultHeight:      config.Envs.MazeHeight,
		CellSize:           config.Envs.MazeCellSize,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating hunt controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Hunt controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, huntController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	gin.SetMode(config.Envs.GinMode)

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initRepos(mongoClient)
	initLeaderboard()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initGameSocket()
	initHuntController()
	initRouter(jwtTokenizer)

	go gameSocket.Serve()
	defer func() {
		sessionManager.StopAll()
		gameSocket.Stop()
	}()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
