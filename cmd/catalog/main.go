package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"library_catalog/pkg/api"
	"library_catalog/pkg/config"
	"library_catalog/pkg/database"
	"library_catalog/pkg/models"
	"library_catalog/pkg/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting catalog service")

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}
	gin.SetMode(cfg.GinMode)

	books, db, closeStore, err := openStore(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	if cfg.SeedData {
		if err := seedTestData(ctx, books, log); err != nil {
			log.Err(err).Error("seeding failed")
		}
	}

	router := api.NewRouter(api.RouterConfig{
		AllowedOrigin: cfg.CORSAllowedOrigin,
		Log:           log,
	}, books, db)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	graceful := signals.Setup()

	go func() {
		log.Info("server started", logger.Data{"port": cfg.ServerPort})
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Err(err).Error("server shutdown error")
	}

	if err := closeStore(); err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}

// openStore returns the book store for the configured driver together with
// the pinger used by the health check and a close function.
func openStore(cfg *config.Config) (store.BookStore, api.Pinger, func() error, error) {
	if cfg.DBDriver == config.DriverMemory {
		books := store.NewMemoryStore()
		return books, books, func() error { return nil }, nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, errors.WithStack(err)
	}
	books := store.NewGormStore(db)
	return books, books, sqlDB.Close, nil
}

func seedTestData(ctx context.Context, books store.BookStore, log logger.Logger) error {
	existing, err := books.FindAll(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, b := range existing {
		if b.ISBN != nil {
			known[*b.ISBN] = true
		}
	}

	for _, book := range sampleBooks() {
		if known[*book.ISBN] {
			continue
		}
		if err := books.Save(ctx, &book); err != nil {
			return errors.Wrapf(err, "failed to create test book %q", book.Title)
		}
		log.Info("created test book", logger.Data{"id": book.ID, "titulo": book.Title})
	}
	log.Info("catalog test data seeded")
	return nil
}

func sampleBooks() []models.Book {
	book := func(title, author, isbn string, year int, available bool) models.Book {
		return models.Book{
			Title:           title,
			Author:          author,
			ISBN:            &isbn,
			PublicationYear: &year,
			Available:       available,
		}
	}
	return []models.Book{
		book("Cien años de soledad", "Gabriel García Márquez", "978-0307474728", 1967, true),
		book("Don Quijote de la Mancha", "Miguel de Cervantes", "978-8424116378", 1605, true),
		book("Clean Code", "Robert C. Martin", "978-0132350884", 2008, true),
		book("Dune", "Frank Herbert", "978-0441172719", 1965, false),
	}
}
