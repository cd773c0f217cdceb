package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-console/internal/config"
	"fleet-console/internal/db"
	"fleet-console/internal/handlers"
	"fleet-console/internal/logging"
	"fleet-console/internal/routes"
	"fleet-console/internal/services/flash"
	"fleet-console/internal/services/fleetapi"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// newFlashStore выбирает хранилище уведомлений: Redis, если он доступен, иначе память процесса
func newFlashStore(cfg config.Config) (flash.Store, func()) {
	if !cfg.RedisEnabled {
		log.Info("Redis отключен, уведомления хранятся в памяти процесса")
		return flash.NewMemoryStore(cfg.FlashTTL), func() {}
	}

	redisClient, err := db.NewRedisClient(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis недоступен, уведомления хранятся в памяти процесса")
		return flash.NewMemoryStore(cfg.FlashTTL), func() {}
	}

	log.Info("Успешное подключение к Redis")
	return flash.NewRedisStore(redisClient, cfg.FlashTTL), func() { redisClient.Close() }
}

func main() {
	cfg := config.Load()

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := logging.Configure(cfg); err != nil {
		log.Fatalf("Не получилось настроить логирование: %v", err)
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = uuid.NewString()
		log.Warn("SESSION_SECRET не задан, используется случайный ключ; cookie сессий не переживут перезапуск")
	}

	store, closeStore := newFlashStore(cfg)
	defer closeStore()

	client := fleetapi.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	log.WithField("url", client.BaseURL()).Info("API автопарка")

	r, err := routes.NewRouter(cfg, handlers.NewHandler(client, store))
	if err != nil {
		log.Fatalf("Ошибка инициализации роутера: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Сервер запущен на порту %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Ошибка запуска сервера: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Получен сигнал завершения, закрываем соединения...")

	// Даем 30 секунд на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Ошибка при graceful shutdown: %s", err)
		return
	}

	log.Info("Сервер корректно завершил работу")
}
