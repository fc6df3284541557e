package export

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/deadline-tracker/internal/config"
)

type fakePutObject struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutObject) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Archiver_UploadsUnderDatedKey(t *testing.T) {
	fake := &fakePutObject{}
	a := NewS3ArchiverWithClient(fake, "exports-bucket")
	a.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }

	key, err := a.Archive(context.Background(), "user-7", "timetable_weekly.pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(key, "exports/user-7/2024/05/10/"))
	require.True(t, strings.HasSuffix(key, "-timetable_weekly.pdf"))
	require.Equal(t, "exports-bucket", *fake.input.Bucket)
	require.Equal(t, key, *fake.input.Key)
	require.Equal(t, ContentType, *fake.input.ContentType)
	require.Equal(t, []byte("%PDF-1.3"), fake.body)
}

func TestS3Archiver_PropagatesError(t *testing.T) {
	a := NewS3ArchiverWithClient(&fakePutObject{err: errors.New("access denied")}, "b")
	_, err := a.Archive(context.Background(), "u", "f.pdf", []byte("x"))
	require.ErrorContains(t, err, "access denied")
}

func TestNewS3Archiver_RequiresBucket(t *testing.T) {
	_, err := NewS3Archiver(context.Background(), config.ArchiveConfig{})
	require.Error(t, err)
}
