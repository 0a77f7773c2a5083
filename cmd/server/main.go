package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"vocabdeck/internal/audio"
	"vocabdeck/internal/config"
	"vocabdeck/internal/database"
	"vocabdeck/internal/deck"
	"vocabdeck/internal/handlers"
	"vocabdeck/internal/selection"
	"vocabdeck/internal/service"
	"vocabdeck/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	// Open persistent storage. A broken database is not fatal: the app
	// keeps working on an in-memory store and simply loses edits on exit.
	store := openStorage(cfg)

	deckStore := deck.NewStore(store)

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize TTS with the audio directory under static files
	speaker := audio.NewSpeaker(filepath.Join(cfg.StaticFilesPath, "audio"), cfg.SpeechLang, cfg.SpeechRate)

	// Initialize services
	rng := selection.NewRand()
	studyService := service.NewStudyService(deckStore, speaker, rng)
	deckService := service.NewDeckService(deckStore, speaker, studyService)

	// Clean up audio files for cards that no longer exist
	if err := deckService.CleanupOrphanedAudio(); err != nil {
		log.Printf("Warning: Failed to cleanup orphaned audio files: %v", err)
	}

	// Initialize handlers
	folderHandler := handlers.NewFolderHandler(deckService, templates)
	deckHandler := handlers.NewDeckHandler(deckService, templates)
	studyHandler := handlers.NewStudyHandler(deckService, studyService, speaker, templates)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Folder routes
	mux.HandleFunc("GET /", folderHandler.Home)
	mux.HandleFunc("POST /folders/create", folderHandler.CreateFolder)
	mux.HandleFunc("POST /folders/{id}/delete", folderHandler.DeleteFolder)

	// Card editing routes
	mux.HandleFunc("GET /folders/{id}/edit", deckHandler.ShowDeck)
	mux.HandleFunc("POST /folders/{id}/cards/add", deckHandler.AddCard)
	mux.HandleFunc("POST /folders/{folderId}/cards/{cardId}/delete", deckHandler.DeleteCard)
	mux.HandleFunc("POST /folders/{id}/cards/clear", deckHandler.ClearFolder)
	mux.HandleFunc("POST /folders/{id}/import", deckHandler.Import)
	mux.HandleFunc("POST /folders/{id}/import-file", deckHandler.ImportFile)
	mux.HandleFunc("GET /folders/{id}/export", deckHandler.Export)

	// Flashcard routes
	mux.HandleFunc("GET /folders/{id}/flashcards", studyHandler.ShowFlashcards)
	mux.HandleFunc("POST /folders/{id}/flashcards/next", studyHandler.FlashcardNext)
	mux.HandleFunc("POST /folders/{id}/flashcards/previous", studyHandler.FlashcardPrevious)
	mux.HandleFunc("POST /folders/{id}/flashcards/flip", studyHandler.FlashcardFlip)
	mux.HandleFunc("POST /folders/{id}/flashcards/shuffle", studyHandler.FlashcardShuffle)
	mux.HandleFunc("POST /folders/{id}/flashcards/swipe", studyHandler.FlashcardSwipe)
	mux.HandleFunc("POST /folders/{id}/flashcards/autoplay", studyHandler.FlashcardAutoPlay)

	// Quiz routes
	mux.HandleFunc("GET /folders/{id}/quiz", studyHandler.ShowQuiz)
	mux.HandleFunc("POST /folders/{id}/quiz/start", studyHandler.StartQuiz)
	mux.HandleFunc("POST /folders/{id}/quiz/answer", studyHandler.AnswerQuiz)
	mux.HandleFunc("POST /folders/{id}/quiz/reset", studyHandler.ResetQuiz)

	// Match game routes
	mux.HandleFunc("GET /folders/{id}/match", studyHandler.ShowMatch)
	mux.HandleFunc("POST /folders/{id}/match/start", studyHandler.StartMatch)
	mux.HandleFunc("POST /folders/{id}/match/select", studyHandler.SelectMatchTile)
	mux.HandleFunc("POST /folders/{id}/match/cancel", studyHandler.CancelMatch)

	// Typed recall routes
	mux.HandleFunc("GET /folders/{id}/recall", studyHandler.ShowRecall)
	mux.HandleFunc("POST /folders/{id}/recall/check", studyHandler.SubmitRecall)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// openStorage opens the configured database and wraps it in a key-value
// store, falling back to an in-memory store when the database is unusable
func openStorage(cfg *config.Config) storage.Store {
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Printf("Warning: Failed to open database, edits will not persist: %v", err)
		return storage.NewMemoryStore()
	}

	store, err := storage.NewSQLStore(db)
	if err != nil {
		log.Printf("Warning: Failed to prepare storage, edits will not persist: %v", err)
		db.Close()
		return storage.NewMemoryStore()
	}

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)
	return store
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	pattern := filepath.Join(templatesPath, "*.tmpl")

	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found at %s", templatesPath)
	}

	return template.ParseFiles(files...)
}
