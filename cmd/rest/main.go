package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-notes-be/internal/bootstrap"
	"ai-notes-be/internal/config"
	"ai-notes-be/internal/server"
	"ai-notes-be/internal/tracer"
	"ai-notes-be/pkg/database"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Otel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, gormDB, cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap application: %v", err)
	}

	if err := container.NoteRepository.Migrate(ctx); err != nil {
		log.Panicf("Unable to initialize notes schema: %v", err)
	}

	// 5. Start Background Services. The consumer runs until the event bus is
	// closed so events from draining requests are still delivered.
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		container.Logger.Error("Main", "Failed to start activity consumer", map[string]interface{}{"error": err})
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Run()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			container.Logger.Error("Main", "Server stopped unexpectedly", map[string]interface{}{"error": err})
		}
	case <-ctx.Done():
		log.Println("Shutting down...")
		if err := srv.Shutdown(shutdownTimeout); err != nil {
			container.Logger.Error("Main", "Graceful shutdown failed", map[string]interface{}{"error": err})
		}
	}

	// 7. Release resources after in-flight requests finish
	if err := container.Close(); err != nil {
		container.Logger.Warn("Main", "Failed to close event bus", map[string]interface{}{"error": err.Error()})
	}
	if err := database.Close(gormDB); err != nil {
		container.Logger.Warn("Main", "Failed to close database pool", map[string]interface{}{"error": err.Error()})
	}

	tracerCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracer(tracerCtx); err != nil {
		log.Printf("Tracer shutdown: %v", err)
	}

	_ = container.Logger.Sync()
}
