package resources

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Client is the part of *s3.S3 that input resolution needs.
type S3Client interface {
	GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error)
	ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output,
		error)
}

// NewS3Client creates a client from the default AWS credential chain.
func NewS3Client(region string) (*s3.S3, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

// ParseS3URI splits `s3://bucket/key` into its bucket and key.
func ParseS3URI(uri string) (bucket string, key string, ok bool) {
	rest := strings.TrimPrefix(uri, "s3://")
	if rest == uri || rest == "" {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", false
	}
	return bucket, key, true
}

// FetchS3 reads an entire object into a Text.
func FetchS3(svc S3Client, bucket string, key string) (*Text, error) {
	output, err := svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching s3://%s/%s: %w", bucket, key,
			err)
	}
	defer output.Body.Close()
	data, readErr := io.ReadAll(output.Body)
	if readErr != nil {
		return nil, fmt.Errorf("error reading s3://%s/%s: %w", bucket, key,
			readErr)
	}
	return &Text{Path: "s3://" + bucket + "/" + key, Data: data}, nil
}

// ListS3
// Lists every object key under prefix, following continuation tokens, and
// returns them sorted. Directory placeholder keys ending in `/` are skipped.
func ListS3(svc S3Client, bucket string, prefix string) ([]string, error) {
	keys := make([]string, 0)
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}
	for {
		output, err := svc.ListObjectsV2(input)
		if err != nil {
			return nil, fmt.Errorf("error listing s3://%s/%s: %w", bucket,
				prefix, err)
		}
		for _, object := range output.Contents {
			key := aws.StringValue(object.Key)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			keys = append(keys, key)
		}
		if !aws.BoolValue(output.IsTruncated) ||
			output.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = output.NextContinuationToken
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("s3://%s/%s does not contain any objects",
			bucket, prefix)
	}
	sort.Strings(keys)
	return keys, nil
}
