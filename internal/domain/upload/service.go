package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rentcatalog/internal/domain"
)

const (
	// EquipmentURLPrefix is where the equipment image tree is served from.
	EquipmentURLPrefix = "/images/equipment/"

	DefaultMaxBytes = 5 * 1024 * 1024
	DefaultMaxWidth = 1920
	DefaultQuality  = 80
)

var unsafeSegmentChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// EquipmentSource gives the service read access to equipment records so it
// can tell referenced images from stray ones.
type EquipmentSource interface {
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
}

type Options struct {
	MaxBytes int64
	MaxWidth int
	Quality  int
}

// Service stores equipment images under <static>/images/equipment/<slug>/.
type Service struct {
	baseDir   string
	opts      Options
	equipment EquipmentSource
	log       zerolog.Logger
}

func NewService(staticDir string, opts Options, equipment EquipmentSource, log zerolog.Logger) *Service {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultMaxWidth
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}
	return &Service{
		baseDir:   filepath.Join(staticDir, "images", "equipment"),
		opts:      opts,
		equipment: equipment,
		log:       log,
	}
}

func (s *Service) MaxBytes() int64 { return s.opts.MaxBytes }

// BaseDir is the root of the equipment image tree on disk.
func (s *Service) BaseDir() string { return s.baseDir }

// Upload validates, re-encodes and stores one image for an equipment slug.
func (s *Service) Upload(ctx context.Context, equipmentSlug, imageType string, fileHeader *multipart.FileHeader) (*Result, error) {
	if imageType != TagMain && imageType != TagGallery {
		return nil, ErrInvalidType
	}
	dirName := sanitizeSegment(equipmentSlug)
	if dirName == "" {
		return nil, ErrInvalidSlug
	}
	if !within(s.baseDir, filepath.Join(s.baseDir, dirName)) {
		return nil, ErrPathTraversal
	}

	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > s.opts.MaxBytes {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// the header size comes from the client; never read past the cap
	data, err := io.ReadAll(io.LimitReader(file, s.opts.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > s.opts.MaxBytes {
		return nil, ErrFileTooLarge
	}

	sourceType, err := sniff(data)
	if err != nil {
		s.log.Debug().Str("mime_type", sourceType).Msg("rejected upload")
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	optimized, err := optimize(data, s.opts.MaxWidth, s.opts.Quality)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.baseDir, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := uuid.New().String() + ".jpg"
	absPath := filepath.Join(dir, filename)
	if err := os.WriteFile(absPath, optimized, 0o644); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	s.log.Info().
		Str("equipment_slug", dirName).
		Str("type", imageType).
		Str("source_type", sourceType).
		Int("source_bytes", len(data)).
		Int("stored_bytes", len(optimized)).
		Msg("image uploaded")

	return &Result{
		FileURL:  EquipmentURLPrefix + dirName + "/" + filename,
		Filename: filename,
		Size:     int64(len(optimized)),
		MimeType: OutputMimeType,
	}, nil
}

// ListFiles enumerates the regular files stored for a slug, tagged against
// the images of the equipment with that slug.
func (s *Service) ListFiles(ctx context.Context, equipmentSlug string) (*FileList, error) {
	dirName := sanitizeSegment(equipmentSlug)
	if dirName == "" {
		return nil, ErrInvalidSlug
	}
	dir := filepath.Join(s.baseDir, dirName)
	if !within(s.baseDir, dir) {
		return nil, ErrPathTraversal
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrDirNotFound
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var owner *domain.Equipment
	if s.equipment != nil {
		items, err := s.equipment.ListEquipment(ctx)
		if err != nil {
			return nil, err
		}
		for i := range items {
			if items[i].Slug == dirName {
				owner = &items[i]
				break
			}
		}
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		f := File{
			Name: entry.Name(),
			URL:  EquipmentURLPrefix + dirName + "/" + entry.Name(),
			Size: info.Size(),
			Tag:  TagOther,
		}
		if owner != nil {
			switch {
			case f.URL == owner.MainImage():
				f.IsMain, f.Tag = true, TagMain
			case len(owner.Images) > 1 && slices.Contains(owner.Images[1:], f.URL):
				f.IsGallery, f.Tag = true, TagGallery
			}
		}
		files = append(files, f)
	}

	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if a.IsMain != b.IsMain {
			return a.IsMain
		}
		if a.IsGallery != b.IsGallery {
			return a.IsGallery
		}
		return a.Name < b.Name
	})

	return &FileList{EquipmentSlug: dirName, Files: files, Total: len(files)}, nil
}

// DeleteFile removes one file addressed by a path relative to the
// equipment image tree, e.g. "generator/1.jpg".
func (s *Service) DeleteFile(_ context.Context, relPath string) (*DeleteResult, error) {
	segments := splitSegments(relPath)
	if len(segments) == 0 {
		return nil, ErrInvalidPath
	}

	joined := strings.Join(segments, "/")
	if strings.Contains(joined, "..") {
		return nil, ErrPathTraversal
	}

	for i, seg := range segments {
		segments[i] = sanitizeSegment(seg)
		if segments[i] == "" {
			return nil, ErrInvalidPath
		}
	}

	target := filepath.Join(append([]string{s.baseDir}, segments...)...)
	if !within(s.baseDir, target) {
		return nil, ErrPathTraversal
	}

	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("stat %s: %w", target, err)
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotAFile
	}

	if err := os.Remove(target); err != nil {
		return nil, fmt.Errorf("failed to delete file: %w", err)
	}

	s.log.Info().Str("path", joined).Msg("image deleted")
	return &DeleteResult{Message: "File deleted successfully", DeletedPath: joined}, nil
}

// RemoveImages deletes the files behind image URLs. Missing files are
// skipped silently, other failures are logged. It returns the number of
// files actually removed.
func (s *Service) RemoveImages(_ context.Context, urls []string) int {
	removed := 0
	for _, u := range urls {
		target, ok := s.pathForURL(u)
		if !ok {
			s.log.Warn().Str("url", u).Msg("skipping image outside the equipment tree")
			continue
		}
		if err := os.Remove(target); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.log.Warn().Err(err).Str("path", target).Msg("could not delete image")
			}
			continue
		}
		removed++
	}
	return removed
}

// FindOrphans walks the image tree and returns files no equipment record
// references.
func (s *Service) FindOrphans(ctx context.Context) ([]Orphan, error) {
	items, err := s.equipment.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}
	referenced := make(map[string]bool)
	for _, e := range items {
		for _, img := range e.Images {
			referenced[img] = true
		}
	}

	var orphans []Orphan
	err = filepath.WalkDir(s.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, p)
		if err != nil {
			return err
		}
		url := EquipmentURLPrefix + filepath.ToSlash(rel)
		if referenced[url] {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		orphans = append(orphans, Orphan{Path: p, URL: url, Size: info.Size()})
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrDirNotFound
		}
		return nil, err
	}
	return orphans, nil
}

// RemoveOrphans deletes the given files and reports how many went away and
// how many bytes were freed.
func (s *Service) RemoveOrphans(_ context.Context, orphans []Orphan) (int, int64) {
	var (
		removed int
		freed   int64
	)
	for _, o := range orphans {
		if err := os.Remove(o.Path); err != nil {
			s.log.Error().Err(err).Str("path", o.Path).Msg("failed to delete orphaned image")
			continue
		}
		removed++
		freed += o.Size
	}
	return removed, freed
}

func (s *Service) pathForURL(u string) (string, bool) {
	if !strings.HasPrefix(u, EquipmentURLPrefix) {
		return "", false
	}
	rel := path.Clean("/" + strings.TrimPrefix(u, EquipmentURLPrefix))
	target := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if !within(s.baseDir, target) {
		return "", false
	}
	return target, true
}

func sanitizeSegment(seg string) string {
	return unsafeSegmentChars.ReplaceAllString(seg, "")
}

func splitSegments(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// within reports whether target is strictly inside base.
func within(base, target string) bool {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
