package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wbrown/natural_dyck"
	"github.com/wbrown/natural_dyck/pkg/tokenstats"
	"github.com/wbrown/natural_dyck/resources"
)

// DatasetCreator
// Configuration for turning Dyck-2 lines into the natural Dyck-2 dataset.
type DatasetCreator struct {
	Input     string
	Output    string
	Seed      int64
	Tokenizer string
	MaxTokens int
	S3Region  string
}

// NewDatasetCreator
// Creates a new DatasetCreator with the default configuration.
func NewDatasetCreator() DatasetCreator {
	return DatasetCreator{
		"",
		"natural_dyck_2.csv",
		0,
		"",
		512,
		"us-east-1",
	}
}

// Result is what a run produced.
type Result struct {
	natural_dyck.Summary
	BytesWritten uint64
	Tokens       *tokenstats.Counter
}

// Create
// Reads every input line, writing the dataset to dc.Output. Rows written
// before a failing line are flushed to the output before the error is
// returned.
func (dc DatasetCreator) Create(svc resources.S3Client) (result Result,
	err error) {
	nextText, err := resources.ResolveTexts(dc.Input, svc)
	if err != nil {
		return result, err
	}

	if dc.Tokenizer != "" {
		encoder, encErr := tokenstats.ResolveEncoder(dc.Tokenizer)
		if encErr != nil {
			return result, encErr
		}
		result.Tokens, err = tokenstats.NewCounter(encoder, dc.MaxTokens,
			tokenstats.DefaultCacheSize)
		if err != nil {
			return result, err
		}
	}

	outFile, err := os.OpenFile(dc.Output, os.O_TRUNC|os.O_RDWR|os.O_CREATE,
		0644)
	if err != nil {
		return result, err
	}
	defer func() {
		if closeErr := outFile.Close(); err == nil {
			err = closeErr
		}
	}()
	counter := resources.NewWriteCounter(outFile, dc.Output)
	writer := natural_dyck.NewDatasetWriter(counter)
	defer func() {
		flushErr := writer.Flush()
		result.BytesWritten = counter.Total
		if err == nil {
			err = flushErr
		}
	}()
	if err = writer.WriteHeader(); err != nil {
		return result, err
	}

	emit := func(row natural_dyck.Row) error {
		if result.Tokens != nil {
			result.Tokens.Observe(row)
		}
		return writer.Write(row)
	}
	lines := resources.NewLineReader(nextText)
	defer lines.Close()
	rng := rand.New(rand.NewSource(dc.Seed))
	result.Summary, err = natural_dyck.CreateDataset(lines.Next, emit, rng)
	return result, err
}

func main() {
	inputPath := flag.String("input", "",
		"dyck-2 input: a file, a directory of .txt files, or s3://bucket/key")
	outputPath := flag.String("output", "natural_dyck_2.csv",
		"natural dyck-2 dataset output file")
	seed := flag.Int64("seed", 0,
		"seed for choosing swapped tokens, 0 to seed from the clock")
	tokenizerId := flag.String("tokenizer", "",
		"tokenizer to measure rows with [gpt2, roberta, pile, "+
			"huggingface-id], empty to skip")
	maxTokens := flag.Int("max_tokens", 512,
		"report rows longer than this many tokens, 0 for no limit")
	s3Region := flag.String("s3_region", "us-east-1",
		"AWS region for s3:// inputs")
	flag.Parse()
	if *inputPath == "" {
		flag.Usage()
		log.Fatal("Must provide -input for dyck-2 source")
	}
	if *inputPath == *outputPath {
		log.Fatal("Input and output files must be different")
	}
	if *maxTokens < 0 {
		log.Fatal("Max tokens must not be negative")
	}

	creator := NewDatasetCreator()
	creator.Input = *inputPath
	creator.Output = *outputPath
	creator.Seed = *seed
	creator.Tokenizer = *tokenizerId
	creator.MaxTokens = *maxTokens
	creator.S3Region = *s3Region
	if creator.Seed == 0 {
		creator.Seed = time.Now().UnixNano()
	}

	log.Printf("Dataset input source: %s\n", creator.Input)
	log.Printf("Dataset output: %s\n", creator.Output)
	log.Printf("Swap seed: %d\n", creator.Seed)

	var svc resources.S3Client
	if _, _, isS3 := resources.ParseS3URI(creator.Input); isS3 {
		s3Svc, s3Err := resources.NewS3Client(creator.S3Region)
		if s3Err != nil {
			log.Fatal(s3Err)
		}
		svc = s3Svc
	}

	begin := time.Now()
	result, err := creator.Create(svc)
	if err != nil {
		log.Fatal(err)
	}
	duration := time.Since(begin).Seconds()
	log.Printf("%s lines into %s rows (%s positive, %s negative), "+
		"%s in %0.2fs", humanize.Comma(int64(result.Lines)),
		humanize.Comma(int64(result.Rows())),
		humanize.Comma(int64(result.Positives)),
		humanize.Comma(int64(result.Negatives)),
		humanize.Bytes(result.BytesWritten), duration)
	if stats := result.Tokens; stats != nil {
		log.Printf("Tokens per row: %0.1f mean, %d longest, "+
			"%d rows over %d (cache: %d hits, %d misses)", stats.Mean(),
			stats.Longest, stats.OverLimit, stats.MaxTokens, stats.CacheHits,
			stats.CacheMisses)
	}
}
