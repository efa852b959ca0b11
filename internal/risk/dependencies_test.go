package risk

import (
	"context"
	"fmt"
	"testing"

	"github.com/shipgate/shipgate/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDependencyCalculator_NoManifests(t *testing.T) {
	calc := NewDependencyCalculator()

	score := calc.Calculate(context.Background(), Input{Change: models.ChangeSet{
		Diff: "diff --git a/main.py b/main.py\n+print('hello')\n",
	}})

	assert.Equal(t, 0.0, score)
}

func TestDependencyCalculator_SingleManifest(t *testing.T) {
	calc := NewDependencyCalculator()

	diff := "diff --git a/requirements.txt b/requirements.txt\n--- a/requirements.txt\n+++ b/requirements.txt\n@@ -1 +1 @@\n-flask==1.0\n+flask==2.0\n"
	score := calc.Calculate(context.Background(), Input{Change: models.ChangeSet{Diff: diff}})

	assert.InDelta(t, 0.3, score, 1e-9)
}

func TestDependencyCalculator_ManifestWithLooseVersionMarker(t *testing.T) {
	calc := NewDependencyCalculator()

	diff := "diff --git a/package.json b/package.json\n+    \"express\": \"^4.18.0\"\n"
	score := calc.Calculate(context.Background(), Input{Change: models.ChangeSet{Diff: diff}})

	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestDependencyCalculator_Formula(t *testing.T) {
	// Score must equal min(1.0, 0.3*matched_manifests + 0.2*marker_present)
	calc := NewDependencyCalculator()

	for matched := 0; matched <= len(manifestFiles); matched++ {
		for _, marker := range []bool{false, true} {
			diff := ""
			for i := 0; i < matched; i++ {
				diff += manifestFiles[i] + "\n"
			}
			if marker {
				diff += "pkg >= 2.0\n"
			}

			want := 0.3 * float64(matched)
			if marker {
				want += 0.2
			}
			if want > 1.0 {
				want = 1.0
			}

			got := calc.Calculate(context.Background(), Input{Change: models.ChangeSet{Diff: diff}})
			assert.InDelta(t, want, got, 1e-9,
				fmt.Sprintf("matched=%d marker=%v", matched, marker))
		}
	}
}

func TestDependencyCalculator_CapsAtOne(t *testing.T) {
	calc := NewDependencyCalculator()

	diff := "package.json requirements.txt Cargo.toml go.mod pom.xml >= \n"
	score := calc.Calculate(context.Background(), Input{Change: models.ChangeSet{Diff: diff}})

	assert.Equal(t, 1.0, score)
}

func TestDependencyCalculator_Default(t *testing.T) {
	assert.Equal(t, 0.0, NewDependencyCalculator().Default())
}
