package thicket

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// imageUploader turns a decoded image into a texture. Replaced in tests.
var imageUploader = func(img image.Image) *ebiten.Image {
	return ebiten.NewImageFromImage(img)
}

type decoded struct {
	id   string
	path string
	img  image.Image
	err  error
}

// AssetLoader decodes image files on worker goroutines and publishes them
// on the engine thread in Poll. Decoding never touches loader state; only
// Poll does.
type AssetLoader struct {
	dir    string
	logger *log.Logger

	images  map[string]*ebiten.Image
	paths   map[string]string // absolute path -> asset id
	pending int
	failed  map[string]error

	results chan decoded

	watcher *fsnotify.Watcher
}

// NewAssetLoader creates a loader resolving relative paths under dir.
func NewAssetLoader(dir string, logger *log.Logger) *AssetLoader {
	if logger == nil {
		logger = NewLogger(nil, "info")
	}
	return &AssetLoader{
		dir:     dir,
		logger:  logger.WithPrefix("assets"),
		images:  make(map[string]*ebiten.Image),
		paths:   make(map[string]string),
		failed:  make(map[string]error),
		results: make(chan decoded, 64),
	}
}

// LoadImage queues an image file for decoding under id. The asset counts as
// pending until a later Poll publishes it.
func (l *AssetLoader) LoadImage(id, path string) {
	abs := l.resolve(path)
	l.paths[abs] = id
	delete(l.failed, id)
	l.pending++
	go l.decode(id, abs)
}

// LoadImageFS queues an image from fsys, e.g. an embed.FS. FS assets are
// not watched.
func (l *AssetLoader) LoadImageFS(fsys fs.FS, id, path string) {
	delete(l.failed, id)
	l.pending++
	go func() {
		f, err := fsys.Open(path)
		if err != nil {
			l.results <- decoded{id: id, path: path, err: fmt.Errorf("%w: %s: %v", ErrAssetNotFound, path, err)}
			return
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			err = fmt.Errorf("decode %s: %w", path, err)
		}
		l.results <- decoded{id: id, path: path, img: img, err: err}
	}()
}

func (l *AssetLoader) decode(id, path string) {
	f, err := os.Open(path)
	if err != nil {
		l.results <- decoded{id: id, path: path, err: fmt.Errorf("%w: %s: %v", ErrAssetNotFound, path, err)}
		return
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		err = fmt.Errorf("decode %s: %w", path, err)
	}
	l.results <- decoded{id: id, path: path, img: img, err: err}
}

// Poll publishes finished decodes and queues reloads for watched files that
// changed. Call from the engine thread; the engine does so every frame.
func (l *AssetLoader) Poll() {
	for {
		select {
		case r := <-l.results:
			l.publish(r)
		default:
			l.pollWatcher()
			return
		}
	}
}

func (l *AssetLoader) publish(r decoded) {
	l.pending--
	if r.err != nil {
		l.failed[r.id] = r.err
		l.logger.Error("asset failed", "id", r.id, "err", r.err)
		return
	}
	tex := imageUploader(r.img)
	if old, ok := l.images[r.id]; ok && old != nil && old != tex {
		l.logger.Info("asset reloaded", "id", r.id)
	} else {
		l.logger.Debug("asset loaded", "id", r.id, "path", r.path)
	}
	l.images[r.id] = tex
}

// PendingAssetCount implements Loader.
func (l *AssetLoader) PendingAssetCount() int { return l.pending }

// Asset implements Loader.
func (l *AssetLoader) Asset(id string) (*ebiten.Image, bool) {
	img, ok := l.images[id]
	return img, ok
}

// Err returns the load error recorded for id, if any.
func (l *AssetLoader) Err(id string) error {
	return l.failed[id]
}

// Failed returns every recorded load error joined, or nil.
func (l *AssetLoader) Failed() error {
	errs := make([]error, 0, len(l.failed))
	for _, err := range l.failed {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// --- Hot reload ---

// Watch starts reloading loaded files under dir when they are written.
func (l *AssetLoader) Watch(dir string) error {
	if l.watcher == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("watch assets: %w", err)
		}
		l.watcher = w
	}
	abs := l.resolve(dir)
	err := filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return l.watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch assets: %w", err)
	}
	return nil
}

// pollWatcher drains fsnotify without blocking.
func (l *AssetLoader) pollWatcher() {
	if l.watcher == nil {
		return
	}
	for {
		select {
		case ev, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if id, ok := l.paths[abs]; ok {
				l.LoadImage(id, abs)
			}
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.logger.Warn("asset watcher", "err", err)
		default:
			return
		}
	}
}

// Close stops watching.
func (l *AssetLoader) Close() error {
	if l.watcher == nil {
		return nil
	}
	err := l.watcher.Close()
	l.watcher = nil
	return err
}

func (l *AssetLoader) resolve(path string) string {
	if !filepath.IsAbs(path) && l.dir != "" {
		path = filepath.Join(l.dir, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
