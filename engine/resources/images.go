package resources

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/tambo/core"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ImageInfo describes an image as far as layout is concerned.
type ImageInfo struct {
	Width, Height int    // intrinsic size in CSS pixels
	Format        string // as reported by the decoder
	Handle        string // opaque handle for paint commands
	Pending       bool   // loading has not completed yet
	Err           error  // non-nil if the image could not be loaded
}

// HasSize is true if the image has a usable intrinsic size.
func (info ImageInfo) HasSize() bool {
	return !info.Pending && info.Err == nil && info.Width > 0 && info.Height > 0
}

// ImageService is the image decode service used by layout.
// Lookup must not block.
type ImageService interface {
	Lookup(src string) ImageInfo
}

// NotFound returns an application error for a missing image.
func NotFound(src string) error {
	e := fmt.Errorf("resource missing: %v", src)
	return core.WrapError(e, core.EMISSING, "image not found: %s", src)
}

// --- Promises --------------------------------------------------------------

// ImagePromise is the future result of loading an image.
type ImagePromise interface {
	Image(ctx context.Context) (ImageInfo, error)
}

type imageLoader struct {
	await func(ctx context.Context) (ImageInfo, error)
}

func (loader imageLoader) Image(ctx context.Context) (ImageInfo, error) {
	return loader.await(ctx)
}

// ResolveImage loads the header of an image from a file system in the
// background.
func ResolveImage(fsys fs.FS, src string) ImagePromise {
	ch := make(chan ImageInfo, 1)
	go func(ch chan<- ImageInfo) {
		ch <- decodeImageConfig(fsys, src)
		close(ch)
	}(ch)
	var once sync.Once
	var result ImageInfo
	return imageLoader{
		await: func(ctx context.Context) (ImageInfo, error) {
			select {
			case <-ctx.Done():
				return ImageInfo{Handle: src, Pending: true}, ctx.Err()
			case r, ok := <-ch:
				once.Do(func() { result = r })
				if !ok {
					r = result
				}
				return r, r.Err
			}
		},
	}
}

func decodeImageConfig(fsys fs.FS, src string) ImageInfo {
	info := ImageInfo{Handle: src}
	name := cleanImagePath(src)
	if name == "" {
		info.Err = NotFound(src)
		return info
	}
	file, err := fsys.Open(name)
	if err != nil {
		tracer().Infof("image %q not found", src)
		info.Err = NotFound(src)
		return info
	}
	defer file.Close()
	config, format, err := image.DecodeConfig(file)
	if err != nil {
		info.Err = core.WrapError(err, core.EINVALID, "cannot decode image %s", src)
		return info
	}
	info.Width, info.Height, info.Format = config.Width, config.Height, format
	return info
}

// cleanImagePath turns an image source into a path valid for fs.FS.
// Remote sources are not supported.
func cleanImagePath(src string) string {
	src = strings.TrimSpace(src)
	if strings.Contains(src, "://") || strings.HasPrefix(src, "data:") {
		return ""
	}
	src = strings.TrimPrefix(src, "file:")
	p := path.Clean("/" + src)[1:]
	if p == "" || !fs.ValidPath(p) {
		return ""
	}
	return p
}

// --- Loader ----------------------------------------------------------------

// Loader is an ImageService loading images from a file system. Every
// source is loaded once; results are kept for the lifetime of the loader.
type Loader struct {
	fsys    fs.FS
	mu      sync.Mutex
	images  map[string]*imageEntry
	onReady func(src string)
}

type imageEntry struct {
	info    ImageInfo
	promise ImagePromise
}

var _ ImageService = (*Loader)(nil)

// NewLoader creates an image loader for a file system.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys:   fsys,
		images: make(map[string]*imageEntry),
	}
}

// OnReady sets a callback, which will be called (from a background
// goroutine) whenever an image has finished loading.
func (l *Loader) OnReady(f func(src string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onReady = f
}

// Lookup returns what is known about an image. The first lookup of a source
// starts loading it and reports it as pending.
func (l *Loader) Lookup(src string) ImageInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.images[src]; ok {
		return e.info
	}
	tracer().Debugf("start loading image %q", src)
	e := &imageEntry{info: ImageInfo{Handle: src, Pending: true}}
	e.promise = ResolveImage(l.fsys, src)
	l.images[src] = e
	go l.settle(src, e)
	return e.info
}

// Await blocks until an image has been loaded or ctx is done.
func (l *Loader) Await(ctx context.Context, src string) (ImageInfo, error) {
	l.Lookup(src)
	l.mu.Lock()
	e := l.images[src]
	l.mu.Unlock()
	return e.promise.Image(ctx)
}

func (l *Loader) settle(src string, e *imageEntry) {
	info, _ := e.promise.Image(context.Background())
	l.mu.Lock()
	e.info = info
	callback := l.onReady
	l.mu.Unlock()
	if info.Err != nil {
		tracer().Infof("image %q: %v", src, info.Err)
	}
	if callback != nil {
		callback(src)
	}
}

// Static is an ImageService with fixed, pre-computed entries. Unknown
// sources are reported as missing.
type Static map[string]ImageInfo

// Lookup implements ImageService.
func (s Static) Lookup(src string) ImageInfo {
	if info, ok := s[src]; ok {
		if info.Handle == "" {
			info.Handle = src
		}
		return info
	}
	return ImageInfo{Handle: src, Err: NotFound(src)}
}
