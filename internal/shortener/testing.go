package shortener

// MockRepository is a mock implementation of Repository for testing.
// This mock is exported to allow usage in tests across multiple packages.
type MockRepository struct {
	SaveFunc func(id int64, originalURL string) error
	GetFunc  func(id int64) (string, error)
	LenFunc  func() int
}

func (m *MockRepository) Save(id int64, originalURL string) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(id, originalURL)
	}
	return nil
}

func (m *MockRepository) Get(id int64) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return "", ErrNotFound
}

func (m *MockRepository) Len() int {
	if m.LenFunc != nil {
		return m.LenFunc()
	}
	return 0
}

// MockRecorder collects observations passed to a Recorder.
type MockRecorder struct {
	Observations []string
	Entries      int
}

func (m *MockRecorder) Observe(operation, result string) {
	m.Observations = append(m.Observations, operation+":"+result)
}

func (m *MockRecorder) SetEntries(n int) {
	m.Entries = n
}
