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

// BalanceDataset
// Reads the dataset at inputPath and writes an equally distributed copy of
// it to outputPath, returning the number of records written.
func BalanceDataset(inputPath string, outputPath string, labelsColumn string,
	limit bool, nbrInstances int, rng sampling.RandomSource) (int, error) {
	table, err := readTable(inputPath)
	if err != nil {
		return 0, err
	}
	balanced, err := sampling.Balance(table, labelsColumn, limit,
		nbrInstances, rng)
	if err != nil {
		return 0, err
	}
	if err := writeTable(outputPath, balanced); err != nil {
		return 0, err
	}
	return len(balanced.Records), nil
}

func readTable(path string) (*sampling.Table, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer handle.Close()
	return sampling.ReadTable(handle)
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
	inputPath := flag.String("path_dataset", "",
		"path of the natural dyck-2 dataset")
	outputPath := flag.String("path_equally_distributed_dataset", "",
		"path to save the equally distributed dataset")
	labelsColumn := flag.String("labels_column", "label",
		"labels column name")
	limit := flag.Bool("limit", true,
		"limit each label to -nbr_instances, otherwise to the number of "+
			"positive instances")
	nbrInstances := flag.Int("nbr_instances", 5000,
		"number of positive and of negative instances")
	seed := flag.Int64("seed", 0, "sampling seed, 0 to seed from the clock")
	flag.Parse()
	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		log.Fatal("Must provide -path_dataset and " +
			"-path_equally_distributed_dataset")
	}
	if *limit && *nbrInstances < 1 {
		log.Fatal("Number of instances must be greater than 0")
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	written, err := BalanceDataset(*inputPath, *outputPath, *labelsColumn,
		*limit, *nbrInstances, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s balanced instances to %s (seed %d)",
		humanize.Comma(int64(written)), *outputPath, *seed)
}
