package app

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"fieldops-backend/cache"
	"fieldops-backend/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Aliases so handlers don't import gin for context types.
type Ctx = gin.Context
type H = gin.H

// App aggregates the service dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	stock *cache.StockCache
}

type Config struct {
	RedisAddr      string
	RedisPwd       string
	WebOrigin      string
	StockCacheTTL  time.Duration
	AdminUsernames []string
	BootstrapAdmin string
}

func (a *App) StockCache() *cache.StockCache { return a.stock }

func MustNew() *App {
	cfg := loadConfig()

	dbConn := db.ConnectDB()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router: r, DB: dbConn, RDB: rdb, Config: cfg,
		stock: cache.NewStockCache(rdb, cfg.StockCacheTTL),
	}
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}

	ttl := 30 * time.Second
	if sec, err := strconv.Atoi(get("STOCK_CACHE_TTL_SECONDS", "30")); err == nil && sec > 0 {
		ttl = time.Duration(sec) * time.Second
	}

	var admins []string
	for _, s := range strings.Split(os.Getenv("ADMIN_USERNAMES"), ",") {
		if t := strings.TrimSpace(s); t != "" {
			admins = append(admins, strings.ToLower(t))
		}
	}

	return Config{
		RedisAddr:      get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:       os.Getenv("REDIS_PASSWORD"),
		WebOrigin:      get("WEB_ORIGIN", "http://localhost:3000"),
		StockCacheTTL:  ttl,
		AdminUsernames: admins,
		BootstrapAdmin: os.Getenv("BOOTSTRAP_ADMIN"),
	}
}
