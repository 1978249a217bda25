package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Ref is an opaque reference to a configured asset (a file path)
type Ref string

// Kind names the role an asset plays in the game
type Kind string

const (
	KindImage  Kind = "image"
	KindSound  Kind = "sound"
	KindAvatar Kind = "avatar"
)

var (
	ErrEmptyPool     = errors.New("empty media pool")
	ErrInvalidSource = errors.New("invalid media source")
)

// Default extensions per kind
var (
	ImageExtensions  = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp"}
	SoundExtensions  = []string{".opus", ".wav"}
	AvatarExtensions = []string{".png", ".jpg", ".jpeg"}
)

// Source describes where assets of one kind are discovered
type Source struct {
	Kind       Kind
	Folder     string
	Extensions []string
	Recursive  bool
	Required   bool
}

// DefaultSource returns the source settings for kind rooted at folder.
// Images are required and walked recursively; sounds and avatars are
// optional and read from the folder top level.
func DefaultSource(kind Kind, folder string) Source {
	switch kind {
	case KindImage:
		return Source{Kind: kind, Folder: folder, Extensions: ImageExtensions, Recursive: true, Required: true}
	case KindSound:
		return Source{Kind: kind, Folder: folder, Extensions: SoundExtensions}
	case KindAvatar:
		return Source{Kind: kind, Folder: folder, Extensions: AvatarExtensions}
	default:
		return Source{Kind: kind, Folder: folder}
	}
}

// Pool holds the discovered assets, sorted per kind
type Pool struct {
	assets map[Kind][]Ref
}

// NewPool builds a pool from already known references
func NewPool(assets map[Kind][]Ref) *Pool {
	p := &Pool{assets: make(map[Kind][]Ref, len(assets))}
	for kind, refs := range assets {
		p.assets[kind] = append([]Ref(nil), refs...)
	}
	return p
}

// Discover lists every source folder and fails with ErrEmptyPool when a
// required kind yields no usable asset
func Discover(sources ...Source) (*Pool, error) {
	pool := &Pool{assets: make(map[Kind][]Ref)}
	required := make(map[Kind]bool)

	for _, src := range sources {
		if src.Kind == "" {
			return nil, fmt.Errorf("%w: source for %q has no kind", ErrInvalidSource, src.Folder)
		}
		if src.Required {
			required[src.Kind] = true
		}

		refs, err := listFiles(src)
		if err != nil {
			return nil, err
		}
		pool.assets[src.Kind] = mergeSorted(pool.assets[src.Kind], refs)
	}

	for kind := range required {
		if len(pool.assets[kind]) == 0 {
			return nil, fmt.Errorf("%w: no usable %s assets found", ErrEmptyPool, kind)
		}
	}

	return pool, nil
}

// Images returns a copy of the image references
func (p *Pool) Images() []Ref { return p.Get(KindImage) }

// Sounds returns a copy of the sound references
func (p *Pool) Sounds() []Ref { return p.Get(KindSound) }

// Avatars returns a copy of the avatar references
func (p *Pool) Avatars() []Ref { return p.Get(KindAvatar) }

// Get returns a copy of the references of kind
func (p *Pool) Get(kind Kind) []Ref {
	return append([]Ref(nil), p.assets[kind]...)
}

// Count returns the number of assets of kind
func (p *Pool) Count(kind Kind) int {
	return len(p.assets[kind])
}

// Contains reports whether ref was discovered as kind
func (p *Pool) Contains(kind Kind, ref Ref) bool {
	for _, r := range p.assets[kind] {
		if r == ref {
			return true
		}
	}
	return false
}

// listFiles returns matching files in a folder. A missing folder yields
// nothing; the required check reports it.
func listFiles(src Source) ([]Ref, error) {
	if src.Folder == "" {
		return nil, nil
	}

	info, err := os.Stat(src.Folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat %s folder: %w", src.Kind, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidSource, src.Folder)
	}

	allowed := normalizeExtensions(src.Extensions)
	var refs []Ref

	err = filepath.WalkDir(src.Folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != src.Folder && !src.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if len(allowed) > 0 && !allowed[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		refs = append(refs, Ref(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s folder: %w", src.Kind, err)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs, nil
}

// normalizeExtensions lowercases extensions and adds the leading dot
func normalizeExtensions(exts []string) map[string]bool {
	out := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out[ext] = true
	}
	return out
}

func mergeSorted(existing, refs []Ref) []Ref {
	seen := make(map[Ref]bool, len(existing))
	for _, r := range existing {
		seen[r] = true
	}
	for _, r := range refs {
		if !seen[r] {
			existing = append(existing, r)
			seen[r] = true
		}
	}
	sort.Slice(existing, func(i, j int) bool { return existing[i] < existing[j] })
	return existing
}
