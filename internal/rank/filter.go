package rank

import (
	"path"
	"strings"
)

// excludedDirs blocks paths under generated-output, dependency-vendor,
// version-control, and cache directories.
var excludedDirs = map[string]bool{
	"node_modules": true, "dist": true, "build": true, ".git": true,
	"__pycache__": true, ".tox": true, ".mypy_cache": true,
	".pytest_cache": true, "vendor": true, "venv": true, ".venv": true,
	"env": true, ".env": true, "eggs": true, ".eggs": true,
	"bower_components": true, ".next": true, ".nuxt": true,
	"coverage": true, ".coverage": true, "htmlcov": true,
	"site-packages": true,
}

// excludedExtensions blocks binary and asset formats that carry no
// information for a text summary.
var excludedExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".svg": true, ".webp": true,
	".mp3": true, ".mp4": true, ".wav": true, ".avi": true, ".mov": true,
	".mkv": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".7z": true,
	".rar": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".o": true,
	".a": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true, ".otf": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".pyc": true, ".pyo": true, ".class": true, ".jar": true,
	".lock": true, ".map": true,
}

// excludedSuffixes covers compound extensions invisible to path.Ext.
var excludedSuffixes = []string{".min.js", ".min.css"}

// excludedFilenames blocks dependency lock files and repo metadata.
var excludedFilenames = map[string]bool{
	"package-lock.json": true, "yarn.lock": true, "pnpm-lock.yaml": true,
	"Pipfile.lock": true, "poetry.lock": true, "composer.lock": true,
	"Gemfile.lock": true, "Cargo.lock": true, "go.sum": true,
	".gitignore": true, ".gitattributes": true, ".editorconfig": true,
	".DS_Store": true,
}

// Keep reports whether a tree entry is worth considering at all.
// Pure function of path and size; maxBytes is the injected size threshold.
func Keep(p string, size, maxBytes int) bool {
	parts := strings.Split(p, "/")
	for _, seg := range parts[:len(parts)-1] {
		if excludedDirs[seg] {
			return false
		}
	}

	name := parts[len(parts)-1]
	if excludedFilenames[name] {
		return false
	}

	lower := strings.ToLower(name)
	if excludedExtensions[path.Ext(lower)] {
		return false
	}
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return false
		}
	}

	return size <= maxBytes
}
