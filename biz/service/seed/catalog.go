package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/yi-nology/opsboard/pkg/storage"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Component catalog size bounds per project type.
const (
	minComponentsPerType = 15
	maxComponentsPerType = 45
)

var errInvalidCatalog = errors.New("invalid seed catalog")

// Catalog is the versioned demo-data definition the seeder expands.
type Catalog struct {
	Version      string                     `yaml:"version"`
	Environments []CodeSpec                 `yaml:"environments"`
	Regions      []CodeSpec                 `yaml:"regions"`
	Datacenters  map[string][]string        `yaml:"datacenters"`
	Projects     []ProjectSpec              `yaml:"projects"`
	Components   map[string][]ComponentSpec `yaml:"components"`
	MatchRules   []MatchRule                `yaml:"match_rules"`
	AccessRules  []AccessRuleSpec           `yaml:"access_rules"`
}

// CodeSpec describes an environment or region master row.
type CodeSpec struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

// ProjectSpec describes one demo project.
type ProjectSpec struct {
	Name        string        `yaml:"name"`
	Slug        string        `yaml:"slug"`
	Type        string        `yaml:"type"`
	Description string        `yaml:"description"`
	Profiles    []ProfileSpec `yaml:"profiles"`
	Services    []string      `yaml:"services"`
}

// ProfileSpec is one (environment, region, profile) tuple of a project.
type ProfileSpec struct {
	Env         string `yaml:"env"`
	Region      string `yaml:"region"`
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

// ComponentSpec is a catalog entry instantiated as a component.
type ComponentSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Module      string `yaml:"module"`
}

// AccessRuleSpec grants a role a function in the listed environments.
// Environments not listed are seeded as denied.
type AccessRuleSpec struct {
	Role     string   `yaml:"role"`
	Function string   `yaml:"function"`
	Allow    []string `yaml:"allow"`
}

// DefaultCatalog parses the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// DefaultCatalogYAML returns a copy of the built-in catalog document.
func DefaultCatalogYAML() []byte {
	return bytes.Clone(defaultCatalogYAML)
}

// ParseCatalog decodes and validates a catalog document. Unknown fields are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalog returns the catalog stored under key, or the built-in one when key is empty.
func LoadCatalog(ctx context.Context, store storage.Storage, key string) (*Catalog, error) {
	if key == "" {
		return DefaultCatalog()
	}
	if store == nil {
		return nil, fmt.Errorf("catalog %q requested but no storage configured", key)
	}
	data, err := storage.ReadAll(ctx, store, key)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", key, err)
	}
	return ParseCatalog(data)
}

// PublishCatalog validates data and stores it under key.
func PublishCatalog(ctx context.Context, store storage.Storage, key string, data []byte) error {
	if key == "" {
		return errors.New("catalog key is required")
	}
	if _, err := ParseCatalog(data); err != nil {
		return err
	}
	return storage.PutBytes(ctx, store, key, data, storage.CatalogContentType)
}

// Validate checks catalog structure. Profile environment and region codes are
// resolved while seeding, where an unknown code aborts the run.
func (c *Catalog) Validate() error {
	if len(c.Environments) == 0 || len(c.Regions) == 0 {
		return fmt.Errorf("%w: environments and regions are required", errInvalidCatalog)
	}
	if len(c.Projects) == 0 {
		return fmt.Errorf("%w: at least one project is required", errInvalidCatalog)
	}
	for typ, comps := range c.Components {
		if len(comps) < minComponentsPerType || len(comps) > maxComponentsPerType {
			return fmt.Errorf("%w: project type %q has %d components, want %d-%d",
				errInvalidCatalog, typ, len(comps), minComponentsPerType, maxComponentsPerType)
		}
		seen := make(map[string]bool, len(comps))
		for _, comp := range comps {
			if comp.Name == "" {
				return fmt.Errorf("%w: project type %q has a component without a name", errInvalidCatalog, typ)
			}
			if seen[comp.Name] {
				return fmt.Errorf("%w: duplicate component %q in type %q", errInvalidCatalog, comp.Name, typ)
			}
			seen[comp.Name] = true
		}
	}
	for _, p := range c.Projects {
		if p.Name == "" || p.Slug == "" {
			return fmt.Errorf("%w: project name and slug are required", errInvalidCatalog)
		}
		if _, ok := c.Components[p.Type]; !ok {
			return fmt.Errorf("%w: project %q has unknown type %q", errInvalidCatalog, p.Name, p.Type)
		}
		if len(p.Profiles) == 0 {
			return fmt.Errorf("%w: project %q has no profiles", errInvalidCatalog, p.Name)
		}
	}
	for i, rule := range c.MatchRules {
		if rule.Keyword == "" || len(rule.Components) == 0 {
			return fmt.Errorf("%w: match rule %d needs a keyword and at least one component", errInvalidCatalog, i)
		}
	}
	for _, dcs := range c.Datacenters {
		if len(dcs) == 0 {
			return fmt.Errorf("%w: empty datacenter list", errInvalidCatalog)
		}
	}
	for _, rule := range c.AccessRules {
		if rule.Role == "" || rule.Function == "" {
			return fmt.Errorf("%w: access rule needs role and function", errInvalidCatalog)
		}
	}
	return nil
}

// ComponentNames returns the component names of a project type.
func (c *Catalog) ComponentNames(projectType string) map[string]bool {
	names := make(map[string]bool, len(c.Components[projectType]))
	for _, comp := range c.Components[projectType] {
		names[comp.Name] = true
	}
	return names
}

// datacentersFor returns the datacenter options of a region.
func (c *Catalog) datacentersFor(region string) []string {
	if dcs := c.Datacenters[region]; len(dcs) > 0 {
		return dcs
	}
	return []string{"dc-" + region}
}
