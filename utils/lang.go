package utils

import (
	"embed"
	"os"
	"path"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var languageFiles = []string{"en.yaml", "zh_tw.yaml"}

//go:embed i18n/*.yaml
var defaultMessages embed.FS

var (
	bundle     *i18n.Bundle
	bundleLock sync.RWMutex
)

// InitI18NBundle loads the built-in messages and then any files found in
// dir, which override them.
func InitI18NBundle(dir string) error {
	b, err := newBundle(dir)
	if err != nil {
		return err
	}

	bundleLock.Lock()
	bundle = b
	bundleLock.Unlock()
	return nil
}

func newBundle(dir string) (*i18n.Bundle, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for _, name := range languageFiles {
		if _, err := b.LoadMessageFileFS(defaultMessages, path.Join("i18n", name)); err != nil {
			return nil, err
		}
	}

	if dir == "" {
		return b, nil
	}

	for _, name := range languageFiles {
		file := path.Join(dir, name)
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if _, err := b.LoadMessageFile(file); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// NewLocalizer falls back to the built-in messages when InitI18NBundle
// has not been called
func NewLocalizer(lang string) *i18n.Localizer {
	bundleLock.RLock()
	b := bundle
	bundleLock.RUnlock()

	if b == nil {
		bundleLock.Lock()
		if bundle == nil {
			defaultBundle, err := newBundle("")
			if err != nil {
				panic(err)
			}
			bundle = defaultBundle
		}
		b = bundle
		bundleLock.Unlock()
	}

	return i18n.NewLocalizer(b, lang)
}
