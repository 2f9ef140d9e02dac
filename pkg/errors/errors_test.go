package errors_test

import (
	errs "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/enderchest/pkg/errors"
)

func TestErrorFormatting(t *testing.T) {
	plain := errors.New(errors.ErrChestNotFound, "no chest here")
	assert.Equal(t, "[CHEST_NOT_FOUND] no chest here", plain.Error())

	wrapped := errors.Wrap(os.ErrPermission, errors.ErrChestAccess, "cannot open chest")
	assert.Equal(t, "[CHEST_ACCESS] cannot open chest: permission denied", wrapped.Error())
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nope"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "nope %d", 1))
}

func TestUnwrapPreservesCause(t *testing.T) {
	err := errors.Wrap(os.ErrNotExist, errors.ErrFileAccess, "reading entry")
	assert.True(t, errs.Is(err, os.ErrNotExist))
}

func TestIsErrorCodeSeesThroughWrapping(t *testing.T) {
	inner := errors.New(errors.ErrMalformedEntry, "bad tag")
	outer := fmt.Errorf("scanning: %w", inner)

	assert.True(t, errors.IsErrorCode(outer, errors.ErrMalformedEntry))
	assert.False(t, errors.IsErrorCode(outer, errors.ErrRealFileConflict))
	assert.False(t, errors.IsErrorCode(errs.New("plain"), errors.ErrMalformedEntry))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrRemoteInvalid,
		errors.GetErrorCode(errors.New(errors.ErrRemoteInvalid, "no host")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(errs.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrPlacementConflict, "two entries, one slot").
		WithDetail("rel_path", "mods/BME.jar").
		WithDetail("instance", "axolotl")

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "mods/BME.jar", details["rel_path"])
	assert.Equal(t, "axolotl", details["instance"])
	assert.Nil(t, errors.GetErrorDetails(errs.New("plain")))
}

func TestIsMatchesByCode(t *testing.T) {
	a := errors.New(errors.ErrChestExists, "already crafted")
	b := errors.Newf(errors.ErrChestExists, "chest at %s", "/tmp")

	assert.True(t, errs.Is(a, b))
	assert.False(t, errs.Is(a, errors.New(errors.ErrChestNotFound, "")))
}
