package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wbrown/natural_dyck/pkg/sampling"
)

// SplitPaths names the three output files of a split.
type SplitPaths struct {
	Train string
	Val   string
	Test  string
}

// SplitDataset
// Splits the dataset at inputPath 60/20/20 into the train, validation and
// test files, stratified on labelsColumn. passagesColumn must exist, as the
// classifier reads its inputs from it. With upsample, minority labels in the
// training set are resampled to match the majority.
func SplitDataset(inputPath string, paths SplitPaths, passagesColumn string,
	labelsColumn string, upsample bool,
	rng sampling.RandomSource) (*sampling.Split, error) {
	handle, err := os.Open(inputPath)
	if err != nil {
		return nil, err
	}
	table, err := sampling.ReadTable(handle)
	handle.Close()
	if err != nil {
		return nil, err
	}
	if _, err := table.Column(passagesColumn); err != nil {
		return nil, err
	}
	split, err := sampling.SplitTable(table, labelsColumn, rng)
	if err != nil {
		return nil, err
	}
	if upsample {
		if split.Train, err = sampling.Upsample(split.Train, labelsColumn,
			rng); err != nil {
			return nil, err
		}
	}
	for _, output := range []struct {
		path  string
		table *sampling.Table
	}{
		{paths.Train, split.Train},
		{paths.Val, split.Val},
		{paths.Test, split.Test},
	} {
		if err := writeTable(output.path, output.table); err != nil {
			return nil, err
		}
	}
	return split, nil
}

func writeTable(path string, table *sampling.Table) (err error) {
	handle, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := handle.Close(); err == nil {
			err = closeErr
		}
	}()
	return table.WriteTo(handle)
}

func main() {
	inputPath := flag.String("path_dataset", "", "path of the dataset")
	trainPath := flag.String("path_train", "",
		"path to save the training set")
	valPath := flag.String("path_val", "", "path to save the validation set")
	testPath := flag.String("path_test", "", "path to save the testing set")
	passagesColumn := flag.String("passages_column", "modified_sentence",
		"passages column name")
	labelsColumn := flag.String("labels_column", "label",
		"labels column name")
	upsample := flag.Bool("upsample", false,
		"upsample the training set for data augmentation")
	seed := flag.Int64("seed", 0, "split seed, 0 to seed from the clock")
	flag.Parse()
	if *inputPath == "" || *trainPath == "" || *valPath == "" ||
		*testPath == "" {
		flag.Usage()
		log.Fatal("Must provide -path_dataset, -path_train, -path_val " +
			"and -path_test")
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	split, err := SplitDataset(*inputPath,
		SplitPaths{*trainPath, *valPath, *testPath}, *passagesColumn,
		*labelsColumn, *upsample, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Split into %s train, %s val, %s test (seed %d)",
		humanize.Comma(int64(len(split.Train.Records))),
		humanize.Comma(int64(len(split.Val.Records))),
		humanize.Comma(int64(len(split.Test.Records))), *seed)
}
