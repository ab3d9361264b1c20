package resources

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S3MockClient is a mock implementation of S3Client. Pages are returned in
// order, keyed by the continuation token that requests them ("" for the
// first page).
type S3MockClient struct {
	Objects        map[string]string
	GetObjectError error
	Pages          map[string]*s3.ListObjectsV2Output
	ListError      error
	ListCalls      int
}

func (m *S3MockClient) GetObject(input *s3.GetObjectInput) (
	*s3.GetObjectOutput,
	error,
) {
	if m.GetObjectError != nil {
		return nil, m.GetObjectError
	}
	content, ok := m.Objects[aws.StringValue(input.Key)]
	if !ok {
		return nil, awserr.New(
			"NoSuchKey", "The specified key does not exist", nil,
		)
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(content)),
		ContentLength: aws.Int64(int64(len(content))),
	}, nil
}

func (m *S3MockClient) ListObjectsV2(input *s3.ListObjectsV2Input) (
	*s3.ListObjectsV2Output,
	error,
) {
	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Pages[aws.StringValue(input.ContinuationToken)], nil
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func collectLines(t *testing.T, next func() (string, error)) []string {
	t.Helper()
	lines := make([]string, 0)
	for {
		line, err := next()
		if errors.Is(err, io.EOF) {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
}

type LinesTest struct {
	Name     string
	Input    string
	Expected []string
}

var linesTests = []LinesTest{
	{"empty", "", []string{}},
	{"trailing newline", "[]\n()\n", []string{"[]", "()"}},
	{"no trailing newline", "[]\n()", []string{"[]", "()"}},
	{"blank line kept", "[]\n\n()\n", []string{"[]", "", "()"}},
	{"crlf left for the caller", "[]\r\n", []string{"[]\r"}},
}

func TestLineReader_Next(t *testing.T) {
	dir := t.TempDir()
	for idx, test := range linesTests {
		path := filepath.Join(dir, string(rune('a'+idx))+".txt")
		writeFile(t, path, test.Input)
		texts, err := ResolveTexts(path, nil)
		require.NoError(t, err, test.Name)
		assert.Equal(t, test.Expected, collectLines(t, NewLineReader(texts).Next),
			test.Name)
	}
}

func TestLineReader_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dyck.txt")
	writeFile(t, path, "[]\n()\n")
	texts, err := ResolveTexts(path, nil)
	require.NoError(t, err)
	lines := NewLineReader(texts)
	line, err := lines.Next()
	require.NoError(t, err)
	assert.Equal(t, "[]", line)
	assert.NoError(t, lines.Close())
	assert.NoError(t, lines.Close())
}

func TestOpenLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dyck.txt")
	writeFile(t, path, "[()]\n")
	text, err := OpenLocal(path)
	require.NoError(t, err)
	assert.Equal(t, "[()]\n", string(text.Data))
	assert.NoError(t, text.Close())
	assert.NoError(t, text.Close())

	_, err = OpenLocal(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestGlobTexts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "()\n")
	writeFile(t, filepath.Join(dir, "a", "c.txt"), "[]\n")
	writeFile(t, filepath.Join(dir, "a", "notes.md"), "ignored\n")

	pathInfos, err := GlobTexts(dir)
	require.NoError(t, err)
	paths := make([]string, 0)
	for _, pathInfo := range pathInfos {
		paths = append(paths, pathInfo.Path)
	}
	assert.Equal(t, []string{
		filepath.Join(dir, "a", "c.txt"),
		filepath.Join(dir, "b.txt"),
	}, paths)

	texts, err := ResolveTexts(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"[]", "()"}, collectLines(t, NewLineReader(texts).Next))

	_, err = GlobTexts(t.TempDir())
	assert.Error(t, err)
}

func TestParseS3URI(t *testing.T) {
	bucket, key, ok := ParseS3URI("s3://dyck/natural/train.txt")
	assert.True(t, ok)
	assert.Equal(t, "dyck", bucket)
	assert.Equal(t, "natural/train.txt", key)

	bucket, key, ok = ParseS3URI("s3://dyck")
	assert.True(t, ok)
	assert.Equal(t, "dyck", bucket)
	assert.Equal(t, "", key)

	for _, uri := range []string{"dyck/train.txt", "s3://", "s3:///key"} {
		_, _, ok = ParseS3URI(uri)
		assert.False(t, ok, uri)
	}
}

func TestFetchS3(t *testing.T) {
	mockSvc := &S3MockClient{
		Objects: map[string]string{"dyck.txt": "[]()\n[(\n"},
	}
	text, err := FetchS3(mockSvc, "test-bucket", "dyck.txt")
	require.NoError(t, err)
	assert.Equal(t, "s3://test-bucket/dyck.txt", text.Path)
	assert.Equal(t, "[]()\n[(\n", string(text.Data))

	mockSvc.GetObjectError = errors.New("simulated error")
	_, err = FetchS3(mockSvc, "test-bucket", "dyck.txt")
	assert.ErrorIs(t, err, mockSvc.GetObjectError)
}

func TestListS3(t *testing.T) {
	mockSvc := &S3MockClient{
		Pages: map[string]*s3.ListObjectsV2Output{
			"": {
				Contents: []*s3.Object{
					{Key: aws.String("prefix/b.txt")},
					{Key: aws.String("prefix/sub/")},
				},
				IsTruncated:           aws.Bool(true),
				NextContinuationToken: aws.String("page2"),
			},
			"page2": {
				Contents: []*s3.Object{
					{Key: aws.String("prefix/a.txt")},
				},
				IsTruncated: aws.Bool(false),
			},
		},
	}
	keys, err := ListS3(mockSvc, "test-bucket", "prefix/")
	require.NoError(t, err)
	assert.Equal(t, []string{"prefix/a.txt", "prefix/b.txt"}, keys)
	assert.Equal(t, 2, mockSvc.ListCalls)

	empty := &S3MockClient{Pages: map[string]*s3.ListObjectsV2Output{
		"": {IsTruncated: aws.Bool(false)},
	}}
	_, err = ListS3(empty, "test-bucket", "prefix/")
	assert.Error(t, err)
}

func TestResolveTexts_S3(t *testing.T) {
	mockSvc := &S3MockClient{
		Objects: map[string]string{
			"prefix/a.txt": "[]\n",
			"prefix/b.txt": "()\n[(",
		},
		Pages: map[string]*s3.ListObjectsV2Output{
			"": {
				Contents: []*s3.Object{
					{Key: aws.String("prefix/b.txt")},
					{Key: aws.String("prefix/a.txt")},
				},
				IsTruncated: aws.Bool(false),
			},
		},
	}
	texts, err := ResolveTexts("s3://test-bucket/prefix/", mockSvc)
	require.NoError(t, err)
	assert.Equal(t, []string{"[]", "()", "[("},
		collectLines(t, NewLineReader(texts).Next))

	texts, err = ResolveTexts("s3://test-bucket/prefix/b.txt", mockSvc)
	require.NoError(t, err)
	assert.Equal(t, []string{"()", "[("}, collectLines(t, NewLineReader(texts).Next))

	_, err = ResolveTexts("s3://test-bucket/prefix/", nil)
	assert.Error(t, err)
}

func TestWriteCounter(t *testing.T) {
	var buf bytes.Buffer
	counter := NewWriteCounter(&buf, "natural.csv")
	n, err := counter.Write([]byte("header\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.False(t, counter.Reported)

	counter.Interval = 0
	_, err = counter.Write([]byte("row\r\n"))
	require.NoError(t, err)
	assert.True(t, counter.Reported)
	assert.Equal(t, uint64(13), counter.Total)
	assert.Equal(t, "header\r\nrow\r\n", buf.String())
}
