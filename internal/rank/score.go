package rank

import (
	"regexp"
	"strings"
)

// Score tiers. Lower fires first; the first matching tier wins.
// Tier bases are spaced so that test files always score worse than any
// non-test source file at practical repository depths.
const (
	scoreReadmeRoot = 0
	scoreManifest   = 10
	scoreReadmeDeep = 20
	scoreEntryPoint = 30
	scoreRootSource = 40
	scoreDeepSource = 60
	scoreTestFile   = 80
	maxDepthOffset  = 9 // keeps tiers 2-3 under their ceilings
)

var readmePattern = regexp.MustCompile(`^(?i)readme(\.\w+)?$`)

// manifestScores maps well-known root-level build descriptors to their
// score. Per-file offsets distinguish package manifests (10) from
// container build files (12) and build-tool files (14); all stay below 20.
var manifestScores = map[string]int{
	"package.json":     scoreManifest,
	"pyproject.toml":   scoreManifest,
	"setup.py":         scoreManifest,
	"setup.cfg":        scoreManifest,
	"requirements.txt": scoreManifest,
	"Cargo.toml":       scoreManifest,
	"go.mod":           scoreManifest,
	"Gemfile":          scoreManifest,
	"pom.xml":          scoreManifest,
	"build.gradle":     scoreManifest,

	"Dockerfile":          scoreManifest + 2,
	"docker-compose.yml":  scoreManifest + 2,
	"docker-compose.yaml": scoreManifest + 2,

	"Makefile":       scoreManifest + 4,
	"CMakeLists.txt": scoreManifest + 4,
}

// entryNames lists conventional entry-point filenames.
var entryNames = map[string]bool{
	"main.py": true, "app.py": true, "server.py": true, "manage.py": true,
	"cli.py": true, "run.py": true, "__main__.py": true,
	"index.js": true, "index.ts": true, "app.js": true,
	"main.go": true,
}

// testIndicators mark files recognized as tests by name or path convention.
var testIndicators = []string{
	"test_", "_test.", "spec.", ".test.", ".spec.", "tests/", "test/",
}

// Score assigns a priority to a path; lower is more important.
// Pure and deterministic: identical paths always produce identical scores.
func Score(p string) int {
	name := p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		name = p[i+1:]
	}
	depth := Depth(p)

	// tier 0: README at repository root
	if depth == 0 && readmePattern.MatchString(name) {
		return scoreReadmeRoot
	}

	// tier 1: root-level manifests and build descriptors
	if depth == 0 {
		if s, ok := manifestScores[name]; ok {
			return s
		}
	}

	// tier 2: README deeper in the tree
	if readmePattern.MatchString(name) {
		return scoreReadmeDeep + min(depth, maxDepthOffset)
	}

	// tier 3: entry-point files at any depth
	if entryNames[name] {
		return scoreEntryPoint + min(depth, maxDepthOffset)
	}

	// Test files are checked before the catch-all tiers so they always
	// score worse than non-test sources regardless of depth.
	if isTestPath(p) {
		return scoreTestFile + depth
	}

	// tier 4: other files directly under the repository root
	if depth == 0 {
		return scoreRootSource
	}

	// tier 5: everything else, shallower first
	return scoreDeepSource + depth
}

// Depth counts the directory levels above a file; root-level is 0.
func Depth(p string) int {
	return strings.Count(p, "/")
}

func isTestPath(p string) bool {
	lower := strings.ToLower(p)
	for _, ind := range testIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}
