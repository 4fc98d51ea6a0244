package shortener

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Alphabet: DefaultAlphabet,
		Protocol: "http://short.ly/",
		StartID:  4097,
	}, opts...)
	require.NoError(t, err)
	return svc
}

func TestNewService_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"repeated alphabet", Config{Alphabet: "aab", Protocol: "http://s/"}},
		{"short alphabet", Config{Alphabet: "a", Protocol: "http://s/"}},
		{"negative start id", Config{Alphabet: DefaultAlphabet, Protocol: "http://s/", StartID: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestService_Scenario(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Shorten("http://www.google.com")
	require.NoError(t, err)
	assert.Equal(t, "http://short.ly/bef", first)

	second, err := svc.Shorten("https://www.cics.umass.edu")
	require.NoError(t, err)
	assert.Equal(t, "http://short.ly/beg", second)

	got, err := svc.Expand("http://short.ly/bef")
	require.NoError(t, err)
	assert.Equal(t, "http://www.google.com", got)

	got, err = svc.Expand(second)
	require.NoError(t, err)
	assert.Equal(t, "https://www.cics.umass.edu", got)

	assert.Equal(t, 2, svc.Len())
}

func TestService_DuplicateLongURL(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.Shorten("https://example.com")
	require.NoError(t, err)
	b, err := svc.Shorten("https://example.com")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, svc.Len())
}

func TestService_Expand(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Shorten("http://www.google.com")
	require.NoError(t, err)

	tests := []struct {
		name     string
		shortURL string
		wantURL  string
		wantErr  error
	}{
		{"registered code", "http://short.ly/bef", "http://www.google.com", nil},
		{"code never issued", "http://short.ly/zzz", "", ErrNotFound},
		{"code below seed", "http://short.ly/a", "", ErrNotFound},
		{"leading zero digit", "http://short.ly/abef", "", ErrNotFound},
		{"character outside alphabet", "http://short.ly/be!", "", ErrInvalidArgument},
		{"empty code", "http://short.ly/", "", ErrInvalidArgument},
		{"malformed url", "short.ly", "", ErrInvalidArgument},
		{"overflowing code", "http://short.ly/" + strings.Repeat("9", 12), "", ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Expand(tt.shortURL)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expand(%q) error = %v, want %v", tt.shortURL, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expand(%q) unexpected error = %v", tt.shortURL, err)
			}
			if got != tt.wantURL {
				t.Errorf("Expand(%q) = %s, want %s", tt.shortURL, got, tt.wantURL)
			}
		})
	}
}

func TestService_ProtocolIndependentLookup(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Shorten("http://www.google.com")
	require.NoError(t, err)

	// Only the code segment takes part in the lookup
	got, err := svc.Expand("https://other.host/bef")
	require.NoError(t, err)
	assert.Equal(t, "http://www.google.com", got)
}

func TestService_RepositoryErrors(t *testing.T) {
	saveErr := errors.New("registry full")

	var savedID int64 = -1
	mockRepo := &MockRepository{
		SaveFunc: func(id int64, url string) error {
			savedID = id
			return saveErr
		},
	}

	svc := newTestService(t, WithRepository(mockRepo))

	_, err := svc.Shorten("https://example.com")
	if !errors.Is(err, saveErr) {
		t.Fatalf("Shorten() error = %v, want %v", err, saveErr)
	}
	if savedID != 4097 {
		t.Errorf("Save() called with id %d, want 4097", savedID)
	}

	_, err = svc.Expand("http://short.ly/bef")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expand() error = %v, want ErrNotFound", err)
	}
}

type stubIDs struct {
	ids []int64
	err error
}

func (s *stubIDs) Next() (int64, error) {
	if len(s.ids) == 0 {
		return 0, s.err
	}
	id := s.ids[0]
	s.ids = s.ids[1:]
	return id, nil
}

func TestService_IDGeneratorErrors(t *testing.T) {
	svc := newTestService(t, WithIDGenerator(&stubIDs{ids: []int64{0, -3}, err: ErrIDExhausted}))

	short, err := svc.Shorten("https://zero.example")
	require.NoError(t, err)
	assert.Equal(t, "http://short.ly/a", short)

	_, err = svc.Shorten("https://negative.example")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Shorten("https://exhausted.example")
	assert.ErrorIs(t, err, ErrIDExhausted)

	assert.Equal(t, 1, svc.Len())
}

func TestService_Recorder(t *testing.T) {
	rec := &MockRecorder{}
	svc := newTestService(t, WithRecorder(rec))

	_, err := svc.Shorten("http://www.google.com")
	require.NoError(t, err)
	_, err = svc.Expand("http://short.ly/bef")
	require.NoError(t, err)
	_, _ = svc.Expand("http://short.ly/zzz")
	_, _ = svc.Expand("nope")

	assert.Equal(t, []string{
		"shorten:ok",
		"expand:ok",
		"expand:not_found",
		"expand:invalid_argument",
	}, rec.Observations)
	assert.Equal(t, 1, rec.Entries)
}

func TestService_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := newTestService(t, WithLogger(logger))

	_, err := svc.Shorten("http://www.google.com")
	require.NoError(t, err)
	_, _ = svc.Expand("http://short.ly/zzz")

	out := buf.String()
	assert.Contains(t, out, "component=shortener")
	assert.Contains(t, out, "shortened url")
	assert.Contains(t, out, "short_url=http://short.ly/bef")
	assert.Contains(t, out, "expand failed")
}

func TestService_Concurrent(t *testing.T) {
	svc := newTestService(t)

	const numWorkers = 50
	results := make(chan string, numWorkers)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			short, err := svc.Shorten("https://example.com/concurrent")
			if err != nil {
				t.Errorf("Shorten() failed: %v", err)
				return
			}
			results <- short
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for short := range results {
		if seen[short] {
			t.Errorf("Duplicate short url detected: %s", short)
		}
		seen[short] = true

		if _, err := svc.Expand(short); err != nil {
			t.Errorf("Expand(%s) failed: %v", short, err)
		}
	}

	if len(seen) != numWorkers {
		t.Errorf("Expected %d unique short urls, got %d", numWorkers, len(seen))
	}
	assert.Equal(t, numWorkers, svc.Len())
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newTestService(t)
	b := newTestService(t)

	_, err := a.Shorten("https://a.example")
	require.NoError(t, err)

	short, err := b.Shorten("https://b.example")
	require.NoError(t, err)
	assert.Equal(t, "http://short.ly/bef", short)

	got, err := a.Expand(short)
	require.NoError(t, err)
	assert.Equal(t, "https://a.example", got)
}
