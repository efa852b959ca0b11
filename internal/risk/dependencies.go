package risk

import (
	"context"
	"strings"

	"github.com/shipgate/shipgate/internal/models"
)

// manifestFiles are the dependency manifests whose presence in a diff marks
// a dependency change
var manifestFiles = []string{
	"package.json",
	"requirements.txt",
	"Cargo.toml",
	"go.mod",
	"pom.xml",
}

// versionMarkers are loose version-range markers suggesting an unpinned or
// widened dependency constraint
var versionMarkers = []string{`"^`, "~", ">=", ".*"}

const (
	manifestWeight      = 0.3
	versionMarkerWeight = 0.2
)

// DependencyCalculator scores the risk of dependency manifest changes
type DependencyCalculator struct{}

// NewDependencyCalculator creates the dependency-change factor
func NewDependencyCalculator() *DependencyCalculator {
	return &DependencyCalculator{}
}

func (c *DependencyCalculator) Name() string     { return models.FactorDependencyChanges }
func (c *DependencyCalculator) Default() float64 { return 0.0 }

// Calculate adds 0.3 per manifest filename appearing in the diff text and
// 0.2 if any loose version marker appears anywhere in the diff, capped at 1.0
func (c *DependencyCalculator) Calculate(ctx context.Context, in Input) float64 {
	score := 0.0

	for _, name := range manifestFiles {
		if strings.Contains(in.Change.Diff, name) {
			score += manifestWeight
		}
	}

	for _, marker := range versionMarkers {
		if strings.Contains(in.Change.Diff, marker) {
			score += versionMarkerWeight
			break
		}
	}

	return models.Clamp01(score)
}
