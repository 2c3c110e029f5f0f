package symbols

import (
	_ "embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ComponentInfo enriches a declared component with descriptive fields
// from the static reference table. Pure lookup, keyed by canonical
// name; nothing here is derived from parsing.
type ComponentInfo struct {
	Name      string   `yaml:"name"`
	Aliases   []string `yaml:"aliases"`
	Formula   string   `yaml:"formula"`
	Category  string   `yaml:"category"`
	MolarMass float64  `yaml:"molar_mass"`
}

//go:embed components.yaml
var componentData []byte

var (
	componentOnce  sync.Once
	componentIndex map[string]*ComponentInfo
)

func loadComponentIndex() {
	var file struct {
		Components []*ComponentInfo `yaml:"components"`
	}
	componentIndex = make(map[string]*ComponentInfo)
	if err := yaml.Unmarshal(componentData, &file); err != nil {
		return
	}
	for _, info := range file.Components {
		componentIndex[canonical(info.Name)] = info
		for _, alias := range info.Aliases {
			componentIndex[canonical(alias)] = info
		}
	}
}

// LookupComponent returns reference data for a component name, or nil
// when the library does not know it. Matching ignores case.
func LookupComponent(name string) *ComponentInfo {
	componentOnce.Do(loadComponentIndex)
	return componentIndex[strings.ToUpper(name)]
}
