package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the YAML override format. See docs/knowledge.sample.yaml
// for a complete example.
type document struct {
	Coverages []coverageDoc `yaml:"coverages"`
	Plans     []planDoc     `yaml:"plans"`
}

type coverageDoc struct {
	Key  string `yaml:"key"`
	Text string `yaml:"text"`
}

type planDoc struct {
	Name        string     `yaml:"name"`
	Premium     int        `yaml:"premium"`
	Description string     `yaml:"description"`
	Coverage    []string   `yaml:"coverage"`
	Limits      []limitDoc `yaml:"limits"`
}

type limitDoc struct {
	Coverage string `yaml:"coverage"`
	Amount   int    `yaml:"amount"`
	Service  bool   `yaml:"service"`
	PerDay   bool   `yaml:"per_day"`
}

// Parse decodes a YAML knowledge document and validates it into a Base.
func Parse(data []byte) (*Base, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("knowledge: parse document: %w", err)
	}

	coverages := make([]Coverage, len(doc.Coverages))
	for i, cov := range doc.Coverages {
		coverages[i] = Coverage{Key: cov.Key, Text: cov.Text}
	}
	plans := make([]Plan, len(doc.Plans))
	for i, plan := range doc.Plans {
		limits := make([]Limit, len(plan.Limits))
		for j, limit := range plan.Limits {
			limits[j] = Limit{
				Coverage: limit.Coverage,
				Amount:   limit.Amount,
				Service:  limit.Service,
				PerDay:   limit.PerDay,
			}
		}
		plans[i] = Plan{
			Name:        plan.Name,
			Premium:     plan.Premium,
			Description: plan.Description,
			Coverage:    plan.Coverage,
			Limits:      limits,
		}
	}
	return New(coverages, plans)
}

// LoadFile reads and parses a YAML knowledge document from disk.
func LoadFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("knowledge: read %s: %w", path, err)
	}
	return Parse(data)
}
