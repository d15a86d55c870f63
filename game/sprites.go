package game

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/patrickmn/go-cache"

	"balloonsim/log"
	"balloonsim/paint"
)

// Sprites caches rasterized balloon bodies by fill and size. Rasters and GPU
// images expire separately; an evicted GPU image is deallocated.
type Sprites struct {
	rasters *cache.Cache
	images  *cache.Cache
	toImage func(image.Image) *ebiten.Image

	hits, misses int
}

// NewSprites creates a cache whose entries expire after ttl without use
func NewSprites(ttl time.Duration) *Sprites {
	if ttl <= 0 {
		ttl = time.Minute
	}
	s := &Sprites{
		rasters: cache.New(ttl, 2*ttl),
		images:  cache.New(ttl, 2*ttl),
		toImage: ebiten.NewImageFromImage,
	}
	s.images.OnEvicted(func(_ string, v any) {
		if img, ok := v.(*ebiten.Image); ok {
			img.Deallocate()
		}
	})
	return s
}

func spriteKey(fill string, w, h int) string {
	return fmt.Sprintf("%s|%dx%d", fill, w, h)
}

// Raster returns the CPU-side sprite. A fill that fails to parse or render
// falls back to the plain balloon so one bad preset entry never blanks the
// page.
func (s *Sprites) Raster(fill string, w, h int) *image.RGBA {
	key := spriteKey(fill, w, h)
	if v, ok := s.rasters.Get(key); ok {
		s.hits++
		s.rasters.SetDefault(key, v)
		return v.(*image.RGBA)
	}
	s.misses++

	img, err := paint.Balloon(fill, w, h)
	if err != nil {
		log.Warn(log.CatHost, "balloon sprite fallback", "fill", fill, "error", err)
		img = paint.Fallback(w, h)
	}
	s.rasters.SetDefault(key, img)
	return img
}

// Image returns the GPU sprite for fill at w x h
func (s *Sprites) Image(fill string, w, h int) *ebiten.Image {
	key := spriteKey(fill, w, h)
	if v, ok := s.images.Get(key); ok {
		s.images.SetDefault(key, v)
		return v.(*ebiten.Image)
	}
	img := s.toImage(s.Raster(fill, w, h))
	s.images.SetDefault(key, img)
	return img
}

// Len returns the number of cached rasters
func (s *Sprites) Len() int {
	return s.rasters.ItemCount()
}

// Stats returns raster cache hits and misses
func (s *Sprites) Stats() (hits, misses int) {
	return s.hits, s.misses
}

// Flush drops every cached sprite
func (s *Sprites) Flush() {
	s.rasters.Flush()
	for _, item := range s.images.Items() {
		if img, ok := item.Object.(*ebiten.Image); ok {
			img.Deallocate()
		}
	}
	s.images.Flush()
}
