package shortener

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Recorder receives the outcome of every Shorten and Expand call.
type Recorder interface {
	Observe(operation, result string)
	SetEntries(n int)
}

// Config describes one shortening session.
type Config struct {
	Alphabet string
	Protocol string
	StartID  int64
}

type Option func(*Service)

// WithRepository replaces the default in-memory registry.
func WithRepository(repo Repository) Option {
	return func(s *Service) { s.repo = repo }
}

// WithIDGenerator replaces the counter seeded from Config.StartID.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Service) { s.ids = ids }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithRecorder(rec Recorder) Option {
	return func(s *Service) { s.recorder = rec }
}

// Service owns the identifier counter and registry of a single session.
// Each Shorten and Expand call runs under one lock so that issuing an id
// and storing its entry happen together.
type Service struct {
	mu       sync.Mutex
	alphabet *Alphabet
	protocol string
	ids      IDGenerator
	repo     Repository
	logger   *slog.Logger
	recorder Recorder
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	alphabet, err := NewAlphabet(cfg.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("failed to build alphabet: %w", err)
	}

	s := &Service{
		alphabet: alphabet,
		protocol: cfg.Protocol,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.ids == nil {
		counter, err := NewCounter(cfg.StartID)
		if err != nil {
			return nil, fmt.Errorf("failed to build id counter: %w", err)
		}
		s.ids = counter
	}
	if s.repo == nil {
		s.repo = NewMemoryRepository()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.logger = s.logger.With("component", "shortener")

	return s, nil
}

// Shorten registers longURL under a fresh identifier and returns its short URL.
func (s *Service) Shorten(longURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shortURL, err := s.shorten(longURL)
	s.observe("shorten", err)
	if err != nil {
		s.logger.Warn("shorten failed", "long_url", longURL, "error", err)
		return "", err
	}

	s.logger.Debug("shortened url", "long_url", longURL, "short_url", shortURL)
	return shortURL, nil
}

func (s *Service) shorten(longURL string) (string, error) {
	// 1. Draw the next identifier
	id, err := s.ids.Next()
	if err != nil {
		return "", fmt.Errorf("failed to issue id: %w", err)
	}

	// 2. Encode identifier to a short code
	shortCode, err := s.alphabet.Encode(id)
	if err != nil {
		return "", fmt.Errorf("failed to encode id %d: %w", id, err)
	}

	// 3. Register by identifier, not by digit sequence or code
	if err := s.repo.Save(id, longURL); err != nil {
		return "", err
	}

	return s.protocol + shortCode, nil
}

// Expand resolves a short URL produced by Shorten back to its long URL.
func (s *Service) Expand(shortURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	longURL, err := s.expand(shortURL)
	s.observe("expand", err)
	if err != nil {
		s.logger.Warn("expand failed", "short_url", shortURL, "error", err)
		return "", err
	}

	s.logger.Debug("expanded url", "short_url", shortURL, "long_url", longURL)
	return longURL, nil
}

func (s *Service) expand(shortURL string) (string, error) {
	// 1. Pull the code out of the short URL
	shortCode, err := ExtractPath(shortURL)
	if err != nil {
		return "", err
	}

	// 2. Decode characters to digits
	digits, err := s.alphabet.DecodeCode(shortCode)
	if err != nil {
		return "", err
	}

	// Shorten never emits a leading zero digit, so such codes have no entry
	if len(digits) > 1 && digits[0] == 0 {
		return "", fmt.Errorf("short code %q: %w", shortCode, ErrNotFound)
	}

	// 3. Digits back to the identifier, then look it up
	id, err := s.alphabet.FromDigits(digits)
	if err != nil {
		return "", err
	}

	longURL, err := s.repo.Get(id)
	if err != nil {
		return "", fmt.Errorf("short code %q: %w", shortCode, err)
	}

	return longURL, nil
}

// Len reports the number of registered entries.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Len()
}

func (s *Service) Protocol() string {
	return s.protocol
}

func (s *Service) Alphabet() *Alphabet {
	return s.alphabet
}

func (s *Service) observe(operation string, err error) {
	if s.recorder == nil {
		return
	}
	s.recorder.Observe(operation, resultLabel(err))
	s.recorder.SetEntries(s.repo.Len())
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrIDExhausted):
		return "exhausted"
	default:
		return "error"
	}
}
