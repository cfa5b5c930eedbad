package service_test

import (
	"bytes"
	"testing"

	"restaurant-reviews/review-svc/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestDefaultQRGenerator(t *testing.T) {
	gen := service.DefaultQRGenerator{BaseURL: "http://localhost"}
	png, err := gen.Generate(2)

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
