// Package audio is the pronunciation collaborator: it turns card terms into
// cached mp3 files the browser can play. Requests are fire-and-forget and a
// new request cancels any fetch still in flight.
package audio

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const ttsRequestTimeout = 10 * time.Second

// Speaker provides text-to-speech playback files
type Speaker struct {
	audioDir string
	lang     string
	rate     float64

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSpeaker creates a speaker that caches audio under audioDir, speaking
// in the given language (e.g. "ja") at the given speed. A rate outside
// (0, 1] falls back to normal speed.
func NewSpeaker(audioDir, lang string, rate float64) *Speaker {
	if rate <= 0 || rate > 1 {
		rate = 1
	}
	return &Speaker{
		audioDir: audioDir,
		lang:     lang,
		rate:     rate,
	}
}

// Filename returns the cache filename for the given text. Terms are hashed
// so arbitrary scripts and punctuation stay out of the filesystem; the
// language and rate are part of the key so changing either refetches.
func (s *Speaker) Filename(text string) string {
	normalized := fmt.Sprintf("%s\n%.2f\n%s", s.lang, s.rate, strings.ToLower(strings.TrimSpace(text)))
	sum := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("tts_%x.mp3", sum[:8])
}

// Speak asynchronously makes sure the pronunciation for text is cached,
// cancelling any fetch still in flight from a previous request. There is
// no completion signal; failures are logged and the term simply has no
// audio until the next attempt.
func (s *Speaker) Speak(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), ttsRequestTimeout)
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer cancel()
		if _, err := s.ensure(ctx, text); err != nil && ctx.Err() == nil {
			log.Printf("Failed to fetch pronunciation for %q: %v", text, err)
		}
	}()
}

// Cancel aborts any in-flight fetch
func (s *Speaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// EnsureAudioFile fetches and caches the pronunciation synchronously,
// returning the cache filename. Used when pre-generating audio for a
// folder's cards.
func (s *Speaker) EnsureAudioFile(text string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ttsRequestTimeout)
	defer cancel()
	return s.ensure(ctx, text)
}

func (s *Speaker) ensure(ctx context.Context, text string) (string, error) {
	filename := s.Filename(text)
	path := filepath.Join(s.audioDir, filename)

	// Already cached
	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := s.fetchGoogleTTS(ctx, text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	return filename, nil
}

// fetchGoogleTTS uses Google Translate's text-to-speech endpoint, a simple
// free option that doesn't require API keys
func (s *Speaker) fetchGoogleTTS(ctx context.Context, text, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", s.lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))
	params.Set("ttsspeed", fmt.Sprintf("%.2f", s.rate))

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	client := &http.Client{Timeout: ttsRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// CleanupOrphanedFiles removes cached mp3 files whose text is no longer
// referenced by any card term
func (s *Speaker) CleanupOrphanedFiles(activeTerms []string) error {
	active := make(map[string]bool, len(activeTerms))
	for _, term := range activeTerms {
		active[s.Filename(term)] = true
	}

	files, err := os.ReadDir(s.audioDir)
	if err != nil {
		return fmt.Errorf("failed to read audio directory: %w", err)
	}

	for _, file := range files {
		name := file.Name()
		if file.IsDir() || filepath.Ext(name) != ".mp3" || !strings.HasPrefix(name, "tts_") {
			continue
		}
		if !active[name] {
			if err := os.Remove(filepath.Join(s.audioDir, name)); err != nil {
				log.Printf("Failed to remove orphaned audio file %s: %v", name, err)
			}
		}
	}
	return nil
}
