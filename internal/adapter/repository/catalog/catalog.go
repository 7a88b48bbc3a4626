// Package catalog loads bookable resources and their blackout dates from a
// YAML file.
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"gopkg.in/yaml.v3"
)

type file struct {
	Resources []resourceEntry `yaml:"resources"`
}

type resourceEntry struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	Capacity  int             `yaml:"capacity"`
	Blackouts []blackoutEntry `yaml:"blackouts"`
}

type blackoutEntry struct {
	Date   string `yaml:"date"`
	Reason string `yaml:"reason"`
}

func LoadFile(path string) ([]domain.Resource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource catalog: %w", err)
	}
	return Parse(bytes.NewReader(raw))
}

func Parse(r io.Reader) ([]domain.Resource, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode resource catalog: %w", err)
	}

	seen := make(map[string]bool, len(f.Resources))
	resources := make([]domain.Resource, 0, len(f.Resources))
	for i, entry := range f.Resources {
		if entry.ID == "" {
			return nil, fmt.Errorf("resource #%d: id is required", i+1)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("resource %s: declared twice", entry.ID)
		}
		seen[entry.ID] = true
		if entry.Capacity < 0 {
			return nil, fmt.Errorf("resource %s: capacity must not be negative", entry.ID)
		}

		res := domain.Resource{ID: entry.ID, Name: entry.Name, Capacity: entry.Capacity}
		for _, b := range entry.Blackouts {
			date, err := domain.ParseDate(b.Date)
			if err != nil {
				return nil, fmt.Errorf("resource %s: blackout: %w", entry.ID, err)
			}
			res.Blackouts = append(res.Blackouts, domain.BlackoutEntry{Date: date, Reason: b.Reason})
		}
		resources = append(resources, res)
	}
	return resources, nil
}
