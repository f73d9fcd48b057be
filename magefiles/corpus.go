package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// sampleCorpus is loaded by Seed when PAPER_RECOMMENDER_CORPUS is unset.
const sampleCorpus = "data/corpus.yaml"

// Seed builds the CLI and loads a corpus into the graph database.
func Seed() error {
	mg.Deps(Build)
	corpus := os.Getenv("PAPER_RECOMMENDER_CORPUS")
	if corpus == "" {
		corpus = sampleCorpus
	}
	return sh.RunV(filepath.Join(binDir, binName), "seed", corpus)
}

// Demo seeds the sample corpus, likes one paper for user 1 and prints
// recommendations for users 1 and 2.
func Demo() error {
	mg.Deps(Seed)
	bin := filepath.Join(binDir, binName)
	if err := sh.RunV(bin, "like", "1", "paper_001"); err != nil {
		return err
	}
	for _, user := range []string{"1", "2"} {
		fmt.Printf("\nUser %s\n", user)
		if err := sh.RunV(bin, "recommend", user, "--limit", "5"); err != nil {
			return err
		}
	}
	return nil
}
