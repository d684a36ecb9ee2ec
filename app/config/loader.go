package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/keebindex/keebindex/app/catalog"
)

const defaultMaxPages = 10

// Load reads, validates and defaults the source configuration file.
func Load(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var sources Sources
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&sources)

	if err := validate(&sources); err != nil {
		return nil, fmt.Errorf("invalid sources file %s: %w", path, err)
	}

	return &sources, nil
}

func setDefaults(sources *Sources) {
	for i := range sources.Vendors {
		if sources.Vendors[i].MaxPages == 0 {
			sources.Vendors[i].MaxPages = defaultMaxPages
		}
	}
}

func validate(sources *Sources) error {
	seen := make(map[string]struct{}, len(sources.Vendors))

	for _, vendor := range sources.Vendors {
		if vendor.Name == "" {
			return fmt.Errorf("vendor with empty name")
		}
		if vendor.BaseURL == "" {
			return fmt.Errorf("vendor %s: base_url is required", vendor.Name)
		}
		if _, dup := seen[vendor.Name]; dup {
			return fmt.Errorf("duplicate vendor name: %s", vendor.Name)
		}
		seen[vendor.Name] = struct{}{}

		if (vendor.AffiliateParam == "") != (vendor.AffiliateValue == "") {
			return fmt.Errorf("vendor %s: affiliate_param and affiliate_value must be set together", vendor.Name)
		}

		for _, collection := range vendor.Collections {
			if collection.Category == "" {
				continue
			}
			if !catalog.Category(collection.Category).Valid() {
				return fmt.Errorf("vendor %s: unknown collection category %q", vendor.Name, collection.Category)
			}
		}
	}

	return nil
}

// VendorList maps the configured vendors into the dataset's vendor records.
func (s *Sources) VendorList() []catalog.Vendor {
	vendors := make([]catalog.Vendor, 0, len(s.Vendors))
	for _, v := range s.Vendors {
		vendors = append(vendors, catalog.Vendor{
			Name:             v.Name,
			URL:              v.BaseURL,
			AffiliateProgram: v.AffiliateProgram,
			Commission:       v.Commission,
		})
	}
	return vendors
}
