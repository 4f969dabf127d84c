package manifest

import (
	"fmt"
	"strings"
)

// SourceKind identifies where a package specifier resolves from.
type SourceKind int

const (
	// SourceIndex resolves the package by name from the package index.
	SourceIndex SourceKind = iota
	// SourceVCS fetches the package directly from a version-control URL.
	SourceVCS
	// SourceWheel fetches a pre-built wheel from a static URL.
	SourceWheel
)

// String returns the string representation of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceIndex:
		return "index"
	case SourceVCS:
		return "vcs"
	case SourceWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// PackageSpec is a single package specifier: a name with an optional exact
// version pin, or a URL-sourced entry. Specs are literals declared in the
// manifest; the installer does all resolution and validation beyond shape.
type PackageSpec struct {
	// Name is the package name for index-sourced specs. Empty for URL sources.
	Name string

	// Version is an exact version pin, empty for "latest".
	Version string

	// URL is the VCS or wheel URL for URL-sourced specs.
	URL string

	// Source identifies how the installer fetches this spec.
	Source SourceKind
}

// ParseSpec parses a specifier string into a PackageSpec. Accepted forms:
//
//	name
//	name==version
//	git+<url>
//	http(s)://.../<artifact>.whl
func ParseSpec(s string) (PackageSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PackageSpec{}, fmt.Errorf("empty package specifier")
	}

	if strings.HasPrefix(s, "git+") {
		return PackageSpec{URL: s, Source: SourceVCS}, nil
	}

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		if !strings.HasSuffix(s, ".whl") {
			return PackageSpec{}, fmt.Errorf("URL specifier %q is not a wheel", s)
		}
		return PackageSpec{URL: s, Source: SourceWheel}, nil
	}

	if name, version, ok := strings.Cut(s, "=="); ok {
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if name == "" || version == "" {
			return PackageSpec{}, fmt.Errorf("malformed pinned specifier %q", s)
		}
		return PackageSpec{Name: name, Version: version, Source: SourceIndex}, nil
	}

	return PackageSpec{Name: s, Source: SourceIndex}, nil
}

// String renders the exact argument handed to the installer.
func (p PackageSpec) String() string {
	switch p.Source {
	case SourceVCS, SourceWheel:
		return p.URL
	default:
		if p.Version != "" {
			return p.Name + "==" + p.Version
		}
		return p.Name
	}
}

// Pinned reports whether the spec carries an exact version pin.
func (p PackageSpec) Pinned() bool {
	return p.Version != ""
}

// UnmarshalYAML parses the YAML scalar form of a specifier.
func (p *PackageSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	spec, err := ParseSpec(raw)
	if err != nil {
		return err
	}
	*p = spec
	return nil
}

// MarshalYAML renders the specifier back to its scalar form.
func (p PackageSpec) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}
