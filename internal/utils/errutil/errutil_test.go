package errutil_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/easeaico/virtual-companion/internal/logging"
	"github.com/easeaico/virtual-companion/internal/utils/errutil"
)

func TestHandleLogsGoerrValues(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := logging.With(context.Background(), logging.New("info", buf))

	err := goerr.New("save failed", goerr.V("collection", "moods"))
	got := errutil.Handle(ctx, err, "failed to persist")

	gt.Equal(t, got, error(err))
	gt.S(t, buf.String()).Contains("failed to persist")
	gt.S(t, buf.String()).Contains("moods")
}

func TestHandlePlainError(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := logging.With(context.Background(), logging.New("info", buf))

	err := errors.New("boom")
	gt.Equal(t, errutil.Handle(ctx, err, "plain"), err)
	gt.S(t, buf.String()).Contains("boom")
}

func TestHandleNil(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := logging.With(context.Background(), logging.New("info", buf))

	gt.NoError(t, errutil.Handle(ctx, nil, "nothing"))
	gt.Equal(t, buf.Len(), 0)
}
