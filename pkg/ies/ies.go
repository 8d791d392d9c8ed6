// Package ies holds the info extractors that recognise video hosts and turn
// their links into thumbnail images.
package ies

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

type IETokens map[string]string

type InfoExtractor interface {
	Name() string
	IsMatched(link string) bool
	// ExtractID returns the host's video id for link.
	ExtractID(link string) (string, error)
	// Thumbnail returns a still image URL for a video id.
	Thumbnail(ctx context.Context, id string) (string, error)
}

// Constructor builds an extractor; token is the API key configured for it,
// possibly empty.
type Constructor func(token string) (InfoExtractor, error)

var ErrNoMatchedIE = errors.New("no matched IE")

var (
	_lock         sync.RWMutex
	_ies          = make(map[string]InfoExtractor)
	_order        []string
	_constructors = make(map[string]Constructor)
)

// RegistConstructor makes an extractor available to InitIE.
func RegistConstructor(name string, c Constructor) {
	_lock.Lock()
	defer _lock.Unlock()
	_constructors[name] = c
}

// InitIE builds every known extractor with its token.
func InitIE(tokens IETokens) error {
	_lock.RLock()
	constructors := make(map[string]Constructor, len(_constructors))
	for name, c := range _constructors {
		constructors[name] = c
	}
	_lock.RUnlock()

	for name, c := range constructors {
		ie, err := c(tokens[name])
		if err != nil {
			return errors.Wrapf(err, "init %s", name)
		}
		Regist(ie)
	}
	return nil
}

func Regist(ie InfoExtractor) {
	_lock.Lock()
	defer _lock.Unlock()
	if _, ok := _ies[ie.Name()]; !ok {
		_order = append(_order, ie.Name())
	}
	_ies[ie.Name()] = ie
}

// GetIE looks hints up first as names, then as links. Before any InitIE, the
// registered constructors are built without tokens.
func GetIE(hints ...string) (InfoExtractor, error) {
	if err := initDefaults(); err != nil {
		return nil, err
	}
	_lock.RLock()
	defer _lock.RUnlock()
	for _, name := range hints {
		if name == "" {
			continue
		}
		if ie, ok := _ies[name]; ok {
			return ie, nil
		}
	}
	for _, link := range hints {
		if link == "" {
			continue
		}
		for _, name := range _order {
			if ie := _ies[name]; ie.IsMatched(link) {
				return ie, nil
			}
		}
	}
	return nil, ErrNoMatchedIE
}

func initDefaults() error {
	_lock.RLock()
	ready := len(_ies) > 0
	_lock.RUnlock()
	if ready {
		return nil
	}
	return InitIE(nil)
}
