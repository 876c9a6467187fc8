package repository

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("noop", nil))

	err := Wrap("list reviews", sql.ErrConnDone)

	var se *StorageError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "list reviews", se.Op)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Equal(t, "storage: list reviews: "+sql.ErrConnDone.Error(), err.Error())
}
