package resources

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"github.com/yargevad/filepathx"
)

// Text
// The contents of one input source. Local files are memory mapped, so Data
// is only valid until Close.
type Text struct {
	Path    string
	Data    []byte
	release func() error
}

// Close releases the mapping and file handle, if any. It is safe to call
// more than once.
func (text *Text) Close() error {
	if text.release == nil {
		return nil
	}
	release := text.release
	text.release = nil
	return release()
}

// TextsIterator yields input sources in order, returning io.EOF when done.
type TextsIterator func() (*Text, error)

type PathInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// OpenLocal
// Opens a local file and maps it read-only. Empty files are not mapped.
func OpenLocal(path string) (*Text, error) {
	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	stat, statErr := file.Stat()
	if statErr != nil {
		file.Close()
		return nil, statErr
	}
	if stat.Size() == 0 {
		file.Close()
		return &Text{Path: path, Data: []byte{}}, nil
	}
	data, unmap, mmapErr := readMmap(file)
	if mmapErr != nil {
		file.Close()
		return nil, fmt.Errorf("error trying to mmap %s: %w", path, mmapErr)
	}
	return &Text{
		Path: path,
		Data: data,
		release: func() error {
			unmapErr := unmap()
			closeErr := file.Close()
			if unmapErr != nil {
				return unmapErr
			}
			return closeErr
		},
	}, nil
}

// GlobTexts
// Given a directory path, recursively finds all `.txt` files, returning them
// sorted by path so that datasets are rebuilt in a stable order.
func GlobTexts(dirPath string) ([]PathInfo, error) {
	textPaths, err := filepathx.Glob(dirPath + "/**/*.txt")
	if err != nil {
		return nil, err
	}
	if len(textPaths) == 0 {
		return nil, fmt.Errorf("%s does not contain any .txt files", dirPath)
	}
	pathInfos := make([]PathInfo, 0, len(textPaths))
	for _, textPath := range textPaths {
		stat, statErr := os.Stat(textPath)
		if statErr != nil {
			return nil, statErr
		}
		if stat.IsDir() {
			continue
		}
		pathInfos = append(pathInfos, PathInfo{
			Path:    textPath,
			Size:    stat.Size(),
			ModTime: stat.ModTime(),
		})
	}
	sort.Slice(pathInfos, func(i, j int) bool {
		return pathInfos[i].Path < pathInfos[j].Path
	})
	return pathInfos, nil
}

// ResolveTexts
// Resolves an input URI into a TextsIterator. The URI may be a local file, a
// directory that is searched for `.txt` files, or an `s3://bucket/key` URI.
// An S3 key that is empty or ends in `/` is treated as a prefix. svc is only
// used for S3 URIs and may be nil otherwise.
func ResolveTexts(uri string, svc S3Client) (TextsIterator, error) {
	if bucket, key, ok := ParseS3URI(uri); ok {
		if svc == nil {
			return nil, errors.New("no S3 client configured for " + uri)
		}
		keys := []string{key}
		if key == "" || key[len(key)-1] == '/' {
			var listErr error
			if keys, listErr = ListS3(svc, bucket, key); listErr != nil {
				return nil, listErr
			}
		}
		return keysIterator(keys, func(key string) (*Text, error) {
			return FetchS3(svc, bucket, key)
		}), nil
	}

	stat, statErr := os.Stat(uri)
	if statErr != nil {
		return nil, statErr
	}
	paths := []string{uri}
	if stat.IsDir() {
		pathInfos, globErr := GlobTexts(uri)
		if globErr != nil {
			return nil, globErr
		}
		paths = paths[:0]
		for _, pathInfo := range pathInfos {
			paths = append(paths, pathInfo.Path)
		}
	}
	return keysIterator(paths, OpenLocal), nil
}

func keysIterator(keys []string,
	open func(string) (*Text, error)) TextsIterator {
	idx := 0
	return func() (*Text, error) {
		if idx >= len(keys) {
			return nil, io.EOF
		}
		idx++
		return open(keys[idx-1])
	}
}

// LineReader
// Flattens a TextsIterator into its lines. A trailing newline does not
// produce an empty final line, but blank lines in between are kept. Each
// Text is closed once its last line has been returned; Close releases the
// one in progress.
type LineReader struct {
	nextText TextsIterator
	text     *Text
	offset   int
}

func NewLineReader(nextText TextsIterator) *LineReader {
	return &LineReader{nextText: nextText}
}

// Next returns the next line, or io.EOF after the last one.
func (lr *LineReader) Next() (string, error) {
	for {
		if lr.text == nil {
			text, textErr := lr.nextText()
			if textErr != nil {
				return "", textErr
			}
			lr.text = text
			lr.offset = 0
			log.Print("Reading ", text.Path)
		}
		if lr.offset < len(lr.text.Data) {
			rest := lr.text.Data[lr.offset:]
			end := bytes.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
				lr.offset = len(lr.text.Data)
			} else {
				lr.offset += end + 1
			}
			return string(rest[:end]), nil
		}
		if closeErr := lr.Close(); closeErr != nil {
			return "", closeErr
		}
	}
}

func (lr *LineReader) Close() error {
	if lr.text == nil {
		return nil
	}
	text := lr.text
	lr.text = nil
	return text.Close()
}
