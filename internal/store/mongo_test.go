package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"kancparser/internal/model"
)

// TestMongoNotConnected tests that operations before Connect fail fast.
func TestMongoNotConnected(t *testing.T) {
	t.Parallel()

	m := NewMongo("mongodb://localhost:27017/", "KancMir", "products")

	err := m.SaveProduct(context.Background(), model.NewProduct(time.Now()))
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("got %v, expected ErrNotConnected", err)
	}
}

// TestMongoCloseIdempotent tests that Close without Connect is a no-op.
func TestMongoCloseIdempotent(t *testing.T) {
	t.Parallel()

	m := NewMongo("mongodb://localhost:27017/", "KancMir", "products")

	if err := m.Close(context.Background()); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := m.Close(context.Background()); err != nil {
		t.Errorf("expected nil error on second close, got %v", err)
	}
}
