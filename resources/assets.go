package resources

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	catalogDir = "catalog/"
	iconDir    = "icon/"
	iconFile   = "innervation.svg"
)

//go:embed catalog/*.yaml
var catalogFS embed.FS

//go:embed icon/*.svg
var iconFS embed.FS

var catalogCache sync.Map
var iconCache sync.Map

// Catalog returns the raw YAML of a step catalog by section key.
func Catalog(key string) ([]byte, error) {
	filePath := catalogDir + key + ".yaml"
	if cached, ok := catalogCache.Load(filePath); ok {
		return cached.([]byte), nil
	}

	data, err := catalogFS.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", key, err)
	}
	catalogCache.Store(filePath, data)
	return data, nil
}

// CatalogKeys lists the embedded catalog keys in file name order.
func CatalogKeys() ([]string, error) {
	entries, err := fs.ReadDir(catalogFS, strings.TrimSuffix(catalogDir, "/"))
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	return keys, nil
}

// Icon returns the application icon as a Fyne resource.
func Icon() (fyne.Resource, error) {
	return loadResource(iconFS, iconDir+iconFile, &iconCache)
}

// MustIcon returns the application icon or panics on error.
func MustIcon() fyne.Resource {
	resource, err := Icon()
	if err != nil {
		panic(err)
	}
	return resource
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
