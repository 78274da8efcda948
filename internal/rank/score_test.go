package rank

import "testing"

func TestScore_Tiers(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		// tier 0: README at root, any casing or extension
		{"README.md", 0},
		{"readme.rst", 0},
		{"Readme", 0},

		// tier 1: root manifests with per-file offsets, all below 20
		{"package.json", 10},
		{"go.mod", 10},
		{"pyproject.toml", 10},
		{"Dockerfile", 12},
		{"docker-compose.yml", 12},
		{"Makefile", 14},

		// tier 2: deep READMEs
		{"docs/README.md", 21},
		{"a/b/c/README.md", 23},

		// tier 3: entry points at any depth
		{"src/main.py", 31},
		{"cmd/app/main.go", 32},
		{"index.js", 30},

		// tier 4: other root files
		{"util.py", 40},
		{"notes.txt", 40},

		// tier 5: other deep files
		{"src/util.py", 61},
		{"src/a/b/util.py", 63},

		// tier 6: test files, worse than any tier-5 file
		{"test_foo.py", 80},
		{"tests/test_bar.py", 81},
		{"pkg/handler_test.go", 81},
	}
	for _, tc := range tests {
		if got := Score(tc.path); got != tc.want {
			t.Errorf("Score(%q) = %d, want %d", tc.path, got, tc.want)
		}
	}
}

func TestScore_DeepManifestIsNotTier1(t *testing.T) {
	// Manifests only get the tier-1 score at the repository root.
	if got := Score("sub/package.json"); got < 20 {
		t.Errorf("Score(sub/package.json) = %d, want >= 20", got)
	}
}

func TestScore_DepthMonotonicity(t *testing.T) {
	// Within a depth-dependent tier, deeper never scores better.
	paths := []string{
		"a/f.py",
		"a/b/f.py",
		"a/b/c/f.py",
		"a/b/c/d/f.py",
	}
	prev := -1
	for _, p := range paths {
		s := Score(p)
		if s < prev {
			t.Errorf("Score(%q) = %d, smaller than shallower file's %d", p, s, prev)
		}
		prev = s
	}
}

func TestScore_TestsWorseThanSources(t *testing.T) {
	// A test file always scores worse than any non-test source at
	// practical depths, including the shallowest test vs the deepest
	// source.
	deepSource := Score("a/b/c/d/e/f/g/h/impl.py")
	rootTest := Score("test_foo.py")
	if rootTest <= deepSource {
		t.Errorf("root test scored %d, deep source %d; tests must be worse", rootTest, deepSource)
	}
}
