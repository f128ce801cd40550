package classifier

import (
	"bytes"
	"io"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
)

// ErrNotReady is returned while no model has been trained
var ErrNotReady = errors.New("diabetes model is not ready")

// Service holds the current model. It is built once at startup and the model
// can be swapped while requests are reading it.
type Service struct {
	model atomic.Pointer[Model]
	opts  Options
}

// NewService creates a Service with no model
func NewService(opts Options) *Service {
	return &Service{opts: opts}
}

// Ready reports whether a model is loaded
func (s *Service) Ready() bool {
	return s.model.Load() != nil
}

// Model returns the current model, or ErrNotReady
func (s *Service) Model() (*Model, error) {
	m := s.model.Load()
	if m == nil {
		return nil, ErrNotReady
	}
	return m, nil
}

// Replace installs m as the current model
func (s *Service) Replace(m *Model) {
	s.model.Store(m)
}

// TrainFrom loads samples from r, trains and installs the result
func (s *Service) TrainFrom(r io.Reader) (*Model, error) {
	samples, err := LoadCSV(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load training data")
	}
	m, err := Train(samples, s.opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to train model")
	}
	s.Replace(m)
	return m, nil
}

// Bootstrap trains from the CSV at path, or from fallback when path is empty
func (s *Service) Bootstrap(path string, fallback []byte) (*Model, error) {
	if path == "" {
		return s.TrainFrom(bytes.NewReader(fallback))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open training data")
	}
	defer f.Close()

	return s.TrainFrom(f)
}
