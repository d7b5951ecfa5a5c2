package file_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsonloc/pkg/file"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectsOutput), args.Error(1)
}

// MockS3ListObjectsV2Paginator is a mock implementation of the S3ListObjectsV2Paginator interface
type MockS3ListObjectsV2Paginator struct {
	mock.Mock
}

func (m *MockS3ListObjectsV2Paginator) HasMorePages() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockS3ListObjectsV2Paginator) NextPage(ctx context.Context, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.ListObjectsV2Output), args.Error(1)
}

func newS3Storage(t *testing.T, client file.S3Client, prefix string, opts ...file.S3Option) *file.S3Storage {
	t.Helper()
	opts = append([]file.S3Option{file.WithS3Client(client)}, opts...)
	storage, err := file.NewS3Storage(context.Background(), file.S3Config{
		Bucket: "test-bucket",
		Region: "us-east-1",
		Prefix: prefix,
	}, opts...)
	require.NoError(t, err)
	return storage
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:      "test-bucket",
			Region:      "us-east-1",
			AccessKeyID: "test-key",
			SecretKey:   "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("with custom endpoint", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:         "test-bucket",
			Region:         "us-east-1",
			Endpoint:       "http://localhost:9000",
			ForcePathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "us-east-1"})
		assert.True(t, errors.Is(err, file.ErrInvalidConfig))
		assert.Nil(t, storage)
	})

	t.Run("missing region", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{Bucket: "test-bucket"})
		assert.True(t, errors.Is(err, file.ErrInvalidConfig))
		assert.Nil(t, storage)
	})
}

func TestS3Storage_Write(t *testing.T) {
	t.Parallel()

	t.Run("put object with prefix and content type", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("PutObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.PutObjectInput) bool {
				body, ok := params.Body.(*bytes.Reader)
				return ok && body.Len() == 2 &&
					aws.ToString(params.Bucket) == "test-bucket" &&
					aws.ToString(params.Key) == "release/app/resources/de/appinfo.json" &&
					aws.ToString(params.ContentType) == "application/json" &&
					aws.ToInt64(params.ContentLength) == 2
			}),
			mock.Anything,
		).Return(&s3.PutObjectOutput{}, nil)

		storage := newS3Storage(t, mockClient, "/release/")
		err := storage.Write(context.Background(), "/app/resources/de/appinfo.json", []byte("{}"))
		require.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		storage := newS3Storage(t, new(MockS3Client), "")
		err := storage.Write(context.Background(), "../etc/passwd", []byte("x"))
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		storage := newS3Storage(t, new(MockS3Client), "out")
		err := storage.Write(context.Background(), "", []byte("x"))
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("access denied", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})

		storage := newS3Storage(t, mockClient, "")
		err := storage.Write(context.Background(), "a.json", []byte("{}"))
		assert.ErrorIs(t, err, file.ErrAccessDenied)
	})
}

func TestS3Storage_Read(t *testing.T) {
	t.Parallel()

	t.Run("get object", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("GetObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.GetObjectInput) bool {
				return aws.ToString(params.Key) == "res/ilibmanifest.json"
			}),
			mock.Anything,
		).Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte(`{"generated":true}`)))}, nil)

		storage := newS3Storage(t, mockClient, "")
		data, err := storage.Read(context.Background(), "res/ilibmanifest.json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"generated":true}`, string(data))
	})

	t.Run("no such key", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{})

		storage := newS3Storage(t, mockClient, "")
		_, err := storage.Read(context.Background(), "missing.json")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})
}

func TestS3Storage_Delete(t *testing.T) {
	t.Parallel()

	t.Run("delete existing", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
		mockClient.On("DeleteObject",
			mock.Anything,
			mock.MatchedBy(func(params *s3.DeleteObjectInput) bool {
				return aws.ToString(params.Key) == "a/b.json"
			}),
			mock.Anything,
		).Return(&s3.DeleteObjectOutput{}, nil)

		storage := newS3Storage(t, mockClient, "")
		require.NoError(t, storage.Delete(context.Background(), "a/b.json"))
		mockClient.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NotFound{})

		storage := newS3Storage(t, mockClient, "")
		err := storage.Delete(context.Background(), "a/b.json")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
		mockClient.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestS3Storage_DeleteDir(t *testing.T) {
	t.Parallel()

	t.Run("delete all pages", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		paginator := new(MockS3ListObjectsV2Paginator)
		paginator.On("HasMorePages").Return(true).Once()
		paginator.On("HasMorePages").Return(false).Once()
		paginator.On("NextPage", mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{
			Contents: []types.Object{
				{Key: aws.String("res/de/appinfo.json")},
				{Key: aws.String("res/fr/appinfo.json")},
			},
		}, nil).Once()
		mockClient.On("DeleteObjects",
			mock.Anything,
			mock.MatchedBy(func(params *s3.DeleteObjectsInput) bool {
				return len(params.Delete.Objects) == 2
			}),
			mock.Anything,
		).Return(&s3.DeleteObjectsOutput{}, nil)

		var gotPrefix string
		storage := newS3Storage(t, mockClient, "", file.WithPaginatorFactory(
			func(_ file.S3Client, params *s3.ListObjectsV2Input) file.S3ListObjectsV2Paginator {
				gotPrefix = aws.ToString(params.Prefix)
				return paginator
			},
		))

		require.NoError(t, storage.DeleteDir(context.Background(), "res"))
		assert.Equal(t, "res/", gotPrefix)
		mockClient.AssertExpectations(t)
		paginator.AssertExpectations(t)
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()
		paginator := new(MockS3ListObjectsV2Paginator)
		paginator.On("HasMorePages").Return(false)

		storage := newS3Storage(t, new(MockS3Client), "", file.WithPaginatorFactory(
			func(file.S3Client, *s3.ListObjectsV2Input) file.S3ListObjectsV2Paginator { return paginator },
		))
		err := storage.DeleteDir(context.Background(), "res")
		assert.ErrorIs(t, err, file.ErrDirectoryNotFound)
	})

	t.Run("nil paginator", func(t *testing.T) {
		t.Parallel()
		storage := newS3Storage(t, new(MockS3Client), "", file.WithPaginatorFactory(
			func(file.S3Client, *s3.ListObjectsV2Input) file.S3ListObjectsV2Paginator { return nil },
		))
		err := storage.DeleteDir(context.Background(), "res")
		assert.ErrorIs(t, err, file.ErrPaginatorNil)
	})
}

func TestS3Storage_Exists(t *testing.T) {
	t.Parallel()

	t.Run("object exists", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{}, nil)

		storage := newS3Storage(t, mockClient, "")
		assert.True(t, storage.Exists(context.Background(), "res/ilibmanifest.json"))
	})

	t.Run("directory exists", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NotFound{})
		mockClient.On("ListObjectsV2",
			mock.Anything,
			mock.MatchedBy(func(params *s3.ListObjectsV2Input) bool {
				return aws.ToString(params.Prefix) == "res/" && aws.ToInt32(params.MaxKeys) == 1
			}),
			mock.Anything,
		).Return(&s3.ListObjectsV2Output{Contents: []types.Object{{Key: aws.String("res/de/appinfo.json")}}}, nil)

		storage := newS3Storage(t, mockClient, "")
		assert.True(t, storage.Exists(context.Background(), "res"))
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NotFound{})
		mockClient.On("ListObjectsV2", mock.Anything, mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{}, nil)

		storage := newS3Storage(t, mockClient, "")
		assert.False(t, storage.Exists(context.Background(), "missing.json"))
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		storage := newS3Storage(t, new(MockS3Client), "")
		assert.False(t, storage.Exists(context.Background(), "../../../etc/passwd"))
	})
}

func TestS3Storage_List(t *testing.T) {
	t.Parallel()

	t.Run("list files and directories sorted", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("ListObjectsV2",
			mock.Anything,
			mock.MatchedBy(func(params *s3.ListObjectsV2Input) bool {
				return aws.ToString(params.Bucket) == "test-bucket" &&
					aws.ToString(params.Prefix) == "out/resources/" &&
					aws.ToString(params.Delimiter) == "/"
			}),
			mock.Anything,
		).Return(&s3.ListObjectsV2Output{
			CommonPrefixes: []types.CommonPrefix{
				{Prefix: aws.String("out/resources/zh/")},
				{Prefix: aws.String("out/resources/de/")},
			},
			Contents: []types.Object{
				{Key: aws.String("out/resources/ilibmanifest.json"), Size: aws.Int64(100)},
				{Key: aws.String("out/resources/")},
			},
		}, nil)

		storage := newS3Storage(t, mockClient, "out")
		entries, err := storage.List(context.Background(), "resources")
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, file.Entry{Name: "de", Path: "resources/de", IsDir: true}, entries[0])
		assert.Equal(t, file.Entry{Name: "ilibmanifest.json", Path: "resources/ilibmanifest.json", Size: 100}, entries[1])
		assert.Equal(t, "zh", entries[2].Name)
		mockClient.AssertExpectations(t)
	})

	t.Run("follows continuation tokens", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("ListObjectsV2",
			mock.Anything,
			mock.MatchedBy(func(params *s3.ListObjectsV2Input) bool { return params.ContinuationToken == nil }),
			mock.Anything,
		).Return(&s3.ListObjectsV2Output{
			Contents:              []types.Object{{Key: aws.String("b.json"), Size: aws.Int64(1)}},
			IsTruncated:           aws.Bool(true),
			NextContinuationToken: aws.String("next"),
		}, nil).Once()
		mockClient.On("ListObjectsV2",
			mock.Anything,
			mock.MatchedBy(func(params *s3.ListObjectsV2Input) bool {
				return aws.ToString(params.ContinuationToken) == "next"
			}),
			mock.Anything,
		).Return(&s3.ListObjectsV2Output{
			Contents: []types.Object{{Key: aws.String("a.json"), Size: aws.Int64(1)}},
		}, nil).Once()

		storage := newS3Storage(t, mockClient, "")
		entries, err := storage.List(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "a.json", entries[0].Name)
		assert.Equal(t, "b.json", entries[1].Name)
		mockClient.AssertExpectations(t)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		storage := newS3Storage(t, new(MockS3Client), "")
		entries, err := storage.List(context.Background(), "../../../etc")
		assert.True(t, errors.Is(err, file.ErrInvalidPath))
		assert.Len(t, entries, 0)
	})

	t.Run("bucket missing", func(t *testing.T) {
		t.Parallel()
		mockClient := new(MockS3Client)
		mockClient.On("ListObjectsV2", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NoSuchBucket{})

		storage := newS3Storage(t, mockClient, "")
		_, err := storage.List(context.Background(), "res")
		assert.ErrorIs(t, err, file.ErrBucketNotFound)
	})
}

func TestS3Storage_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"timeout", context.DeadlineExceeded, file.ErrOperationTimeout},
		{"canceled", context.Canceled, file.ErrOperationCanceled},
		{"throttled", &smithy.GenericAPIError{Code: "SlowDown"}, file.ErrServiceUnavailable},
		{"request timeout", &smithy.GenericAPIError{Code: "RequestTimeout"}, file.ErrRequestTimeout},
		{"archived", &smithy.GenericAPIError{Code: "InvalidObjectState"}, file.ErrInvalidObjectState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mockClient := new(MockS3Client)
			mockClient.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			storage := newS3Storage(t, mockClient, "")
			_, err := storage.Read(context.Background(), "x.json")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
