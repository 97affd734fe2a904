// Package catalog maps project types to the ordered task titles generated
// for a new project of that type.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectType names a kind of project.
type ProjectType string

const (
	WebDevelopment  ProjectType = "Web Development"
	MobileApp       ProjectType = "Mobile App"
	DesktopSoftware ProjectType = "Desktop Software"
	MachineLearning ProjectType = "AI/Machine Learning"
	Other           ProjectType = "Other"
)

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	templates map[ProjectType][]string
	order     []ProjectType
}

// Builtin returns the default catalog.
func Builtin() *Catalog {
	return New(map[ProjectType][]string{
		WebDevelopment: {
			"Setup Database & Server Architecture",
			"Create API Endpoints",
			"Build Frontend UI Components",
			"Implement Authentication & Authorization",
			"Integrate Frontend with Backend",
			"Testing & Quality Assurance",
			"Deployment & Monitoring",
		},
		MobileApp: {
			"Define App Requirements & Wireframes",
			"Setup Development Environment",
			"Create User Interface (UI)",
			"Implement Core Features",
			"Add Payment/Authentication System",
			"Testing on Devices",
			"App Store Submission",
		},
		DesktopSoftware: {
			"Define Software Architecture",
			"Setup Development Framework",
			"Create User Interface",
			"Implement Core Functionality",
			"Add Database Integration",
			"Testing & Debugging",
			"Build Installer & Documentation",
		},
		MachineLearning: {
			"Data Collection & Preparation",
			"Exploratory Data Analysis (EDA)",
			"Feature Engineering",
			"Model Selection & Training",
			"Model Evaluation & Tuning",
			"Deployment Pipeline Setup",
			"Monitoring & Maintenance",
		},
		Other: {
			"Project Planning & Requirements",
			"Development & Implementation",
			"Testing & Quality Assurance",
			"Review & Refinement",
			"Documentation",
			"Deployment",
			"Maintenance & Support",
		},
	})
}

// New copies m into a catalog. Built-in types keep their canonical order,
// extra types follow alphabetically.
func New(m map[ProjectType][]string) *Catalog {
	c := &Catalog{templates: make(map[ProjectType][]string, len(m))}
	for k, v := range m {
		c.templates[k] = append([]string(nil), v...)
	}

	var extra []ProjectType
	for k := range c.templates {
		if !isBuiltin(k) {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	for _, k := range builtinOrder {
		if _, ok := c.templates[k]; ok {
			c.order = append(c.order, k)
		}
	}
	c.order = append(c.order, extra...)
	return c
}

var builtinOrder = []ProjectType{WebDevelopment, MobileApp, DesktopSoftware, MachineLearning, Other}

func isBuiltin(t ProjectType) bool {
	for _, b := range builtinOrder {
		if b == t {
			return true
		}
	}
	return false
}

// Templates returns a copy of the titles for t, falling back to Other.
func (c *Catalog) Templates(t ProjectType) []string {
	v, ok := c.templates[t]
	if !ok {
		v = c.templates[Other]
	}
	return append([]string(nil), v...)
}

// Has reports whether t is a known type.
func (c *Catalog) Has(t ProjectType) bool {
	_, ok := c.templates[t]
	return ok
}

// Types lists every known project type.
func (c *Catalog) Types() []ProjectType {
	return append([]ProjectType(nil), c.order...)
}

type fileFormat struct {
	ProjectTypes map[string][]string `yaml:"project_types"`
}

// Load reads a YAML catalog and merges it over the built-ins. An empty path
// returns the built-ins.
//
//	project_types:
//	  Data Pipeline:
//	    - Source Discovery
//	    - Ingestion
func Load(path string) (*Catalog, error) {
	base := Builtin()
	if path == "" {
		return base, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Merge(base, raw)
}

// Merge overlays YAML content onto base.
func Merge(base *Catalog, raw []byte) (*Catalog, error) {
	var f fileFormat
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	m := make(map[ProjectType][]string, len(base.templates)+len(f.ProjectTypes))
	for k, v := range base.templates {
		m[k] = v
	}
	for name, titles := range f.ProjectTypes {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("parse catalog: empty project type name")
		}
		if len(titles) == 0 {
			return nil, fmt.Errorf("parse catalog: project type %q has no tasks", name)
		}
		m[ProjectType(name)] = titles
	}
	return New(m), nil
}
