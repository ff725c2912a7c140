package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"svw.info/cleanbot/internal/domain"
	"svw.info/cleanbot/internal/parser"
)

// FS reads world files from anywhere and archives plans under dir as
// {algorithm}/{id}.json.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

var algorithms = []domain.Algorithm{domain.DepthFirst, domain.UniformCost}

func (s *FS) pathFor(id string, a domain.Algorithm) string {
	return filepath.Join(s.dir, a.String(), strings.TrimSpace(id)+".json")
}

// LoadWorld reads and parses a world file. A path of "-" reads stdin.
func (s *FS) LoadWorld(ctx context.Context, path string) (*domain.World, error) {
	if path == "-" {
		return parser.Parse(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	w, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Save writes p, assigning an ID and creation time when missing.
func (s *FS) Save(ctx context.Context, p *domain.Plan) (err error) {
	if p == nil {
		return errors.New("invalid plan: nil")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	target := s.pathFor(p.ID, p.Algorithm)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer closeInto(&err, f)
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// closeInto closes c and keeps its error when *err is still nil, so a
// failed flush on close fails the write.
func closeInto(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Plan, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid plan id %q: %w", id, err)
	}
	for _, a := range algorithms {
		data, err := os.ReadFile(s.pathFor(id, a))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var out domain.Plan
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

// List returns metadata for every archived plan, newest first.
func (s *FS) List(ctx context.Context) ([]domain.PlanMeta, error) {
	var out []domain.PlanMeta
	for _, a := range algorithms {
		dir := filepath.Join(s.dir, a.String())
		ents, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			var m domain.PlanMeta
			if err := json.Unmarshal(data, &m); err != nil || m.ID == "" {
				continue
			}
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}
