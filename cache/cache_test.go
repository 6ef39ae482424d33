package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseRatingKey(t *testing.T) {
	assert.Equal(t, "course:rating:42", CourseRatingKey(42))
}

func TestEmptyKeyRejected(t *testing.T) {
	c := &Cache{}
	ctx := context.Background()

	assert.ErrorIs(t, c.Set(ctx, "", 1, 0), ErrCacheKeyEmpty)
	var out int
	assert.ErrorIs(t, c.Get(ctx, "", &out), ErrCacheKeyEmpty)
	assert.NoError(t, c.Delete(ctx))
}
