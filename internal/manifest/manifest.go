// Package manifest discovers and loads GWAS dataset manifests.
//
// A manifest is a GWAS_MANIFEST.yaml file describing one dataset and its
// components; manifests live next to the formatted summary-statistics
// files they describe and may refer to them via ${DATASET_ROOT}.
package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/statgen/sumstats/internal/gwas"
)

// FileName is the fixed name manifests are discovered by.
const FileName = "GWAS_MANIFEST.yaml"

// datasetRootVar is expanded in component file paths to the directory
// containing the manifest.
const datasetRootVar = "${DATASET_ROOT}"

// Find walks root and returns the paths of all manifests beneath it.
func Find(root string) ([]string, error) {
	var manifests []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == FileName {
			manifests = append(manifests, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return manifests, nil
}

// Load parses a single manifest into a dataset and expands
// ${DATASET_ROOT} in component file paths.
func Load(path string) (*gwas.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var dataset gwas.Dataset
	if err := yaml.Unmarshal(raw, &dataset); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	root := filepath.Dir(path)
	for i := range dataset.Components {
		c := &dataset.Components[i]
		c.FormattedFile = strings.ReplaceAll(c.FormattedFile, datasetRootVar, root)
	}

	return &dataset, nil
}

// LoadAll loads every manifest it can and skips malformed ones with a
// warning, so one broken dataset never hides the others.
func LoadAll(paths []string, logger *zap.Logger) []*gwas.Dataset {
	datasets := make([]*gwas.Dataset, 0, len(paths))
	for _, path := range paths {
		dataset, err := Load(path)
		if err != nil {
			logger.Warn("ignoring malformed manifest",
				zap.String("manifest", path),
				zap.Error(err))
			continue
		}
		datasets = append(datasets, dataset)
	}
	return datasets
}

// Discover walks root and loads all datasets found beneath it.
func Discover(root string, logger *zap.Logger) ([]*gwas.Dataset, error) {
	paths, err := Find(root)
	if err != nil {
		return nil, err
	}
	return LoadAll(paths, logger), nil
}

// FindIndexed returns the summary-statistics files beneath root that have
// a tabix index, keyed by dataset name (the file name up to the
// ".formatted" marker). Used as a fallback for directories that carry
// indexed files but no manifest.
func FindIndexed(root string) (map[string]string, error) {
	files := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tbi") {
			return nil
		}

		dataFile := strings.TrimSuffix(path, ".tbi")
		if _, err := os.Stat(dataFile); err != nil {
			return nil
		}

		name := filepath.Base(dataFile)
		if i := strings.Index(name, ".formatted"); i >= 0 {
			name = name[:i]
		}
		files[name] = dataFile
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

// Filter describes component allow-lists. Empty fields match everything.
type Filter struct {
	Traits      []string
	Sexes       []gwas.Sex
	Populations []gwas.Population
}

// Apply returns the datasets restricted to matching components; datasets
// left without any component are dropped.
func (f *Filter) Apply(datasets []*gwas.Dataset) []*gwas.Dataset {
	var kept []*gwas.Dataset

	for _, dataset := range datasets {
		var components []gwas.Component
		for _, c := range dataset.Components {
			if f.matches(&c) {
				components = append(components, c)
			}
		}
		if len(components) == 0 {
			continue
		}

		filtered := *dataset
		filtered.Components = components
		kept = append(kept, &filtered)
	}

	return kept
}

func (f *Filter) matches(c *gwas.Component) bool {
	if len(f.Traits) > 0 && !containsFold(f.Traits, c.TraitName) {
		return false
	}
	if len(f.Sexes) > 0 && !containsSex(f.Sexes, c.SexOrDefault()) {
		return false
	}
	if len(f.Populations) > 0 && !containsPopulation(f.Populations, c.PopulationOrDefault()) {
		return false
	}
	return true
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func containsSex(values []gwas.Sex, want gwas.Sex) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func containsPopulation(values []gwas.Population, want gwas.Population) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
