package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mchmarny/treemenu/pkg/route"
)

// Site describes the routes and menus of a site, as loaded from a YAML file.
type Site struct {
	Routes []route.Route `yaml:"routes"`
	Menus  []SiteMenu    `yaml:"menus"`
}

// SiteMenu is a menu definition with its nested items.
type SiteMenu struct {
	Name  string     `yaml:"name"`
	Slug  string     `yaml:"slug"`
	Items []SiteItem `yaml:"items"`
}

// SiteItem is an item definition; nested Items become children of the item.
type SiteItem struct {
	Title string     `yaml:"title"`
	URL   string     `yaml:"url"`
	Route string     `yaml:"route"`
	Order int        `yaml:"order"`
	Items []SiteItem `yaml:"items"`
}

// LoadSite reads and validates a site file.
func LoadSite(path string) (*Site, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site file %s: %w", path, err)
	}

	return ParseSite(b)
}

// ParseSite decodes and validates site YAML.
func ParseSite(b []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to parse site: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks that menu names are set and unique and every item has a title.
func (s *Site) Validate() error {
	seen := make(map[string]bool, len(s.Menus))

	for _, m := range s.Menus {
		if m.Name == "" {
			return fmt.Errorf("menu name is required")
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate menu name %q", m.Name)
		}
		seen[m.Name] = true

		if err := validateItems(m.Name, m.Items); err != nil {
			return err
		}
	}

	return nil
}

func validateItems(menuName string, items []SiteItem) error {
	for _, it := range items {
		if it.Title == "" {
			return fmt.Errorf("menu %q has an item without title", menuName)
		}
		if err := validateItems(menuName, it.Items); err != nil {
			return err
		}
	}

	return nil
}

// RouteTable builds the route table of the site.
func (s *Site) RouteTable() (*route.Table, error) {
	return route.NewTable(s.Routes...)
}
