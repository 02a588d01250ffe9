package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Translations map[string]string

type Language struct {
	found bool
	tr    Translations
}

// TransPool loads <basePath>/<lang>.yaml on first use of each language.
type TransPool struct {
	basePath  string
	logger    *zap.Logger
	mu        sync.Mutex
	languages map[string]*Language
}

func NewTransPool(basePath string, logger *zap.Logger) *TransPool {
	return &TransPool{
		basePath:  basePath,
		logger:    logger,
		languages: make(map[string]*Language),
	}
}

func NewLanguage(tr Translations) *Language {
	return &Language{
		found: tr != nil,
		tr:    tr,
	}
}

func (tp *TransPool) load(lang string) (Translations, error) {
	if tp.basePath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Join(tp.basePath, filepath.Base(lang)+".yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	tr := make(Translations)
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return nil, err
	}
	return tr, nil
}

// Get returns the language, falling back to untranslated text when its
// file is missing or unreadable.
func (tp *TransPool) Get(lang string) *Language {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	l, ok := tp.languages[lang]
	if !ok {
		tr, err := tp.load(lang)
		if err != nil {
			tp.logger.Warn("ignoring translations", zap.String("language", lang), zap.Error(err))
			tr = nil
		}
		l = NewLanguage(tr)
		tp.languages[lang] = l
	}
	return l
}

func (l *Language) Lang(text string) string {
	if l == nil || !l.found {
		// Language was not found, return the string
		return text
	}
	res, ok := l.tr[text]
	if !ok {
		// Key was not found
		return text
	}
	return res
}
