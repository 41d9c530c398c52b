package repository

import (
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewRefID_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^AWB[A-Z0-9]{6}$`)
	seen := make(map[string]struct{})

	for i := 0; i < 200; i++ {
		ref, err := newRefID()
		assert.NoError(t, err)
		assert.Regexp(t, pattern, ref)
		seen[ref] = struct{}{}
	}

	// 200 draws over 36^6 candidates should essentially never collide.
	assert.Greater(t, len(seen), 190)
}
