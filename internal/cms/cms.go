// Package cms defines the contract for publishing formatted documents to a
// headless CMS. No backend is implemented; the API answers publish requests
// with 501.
package cms

import (
	"context"
	"errors"
)

// ErrNotImplemented is returned by every Unimplemented method.
var ErrNotImplemented = errors.New("cms publishing is not implemented")

// Config identifies a CMS space.
type Config struct {
	SpaceID       string
	AccessToken   string
	EnvironmentID string
}

// Environment returns the configured environment, defaulting to "master".
func (c Config) Environment() string {
	if c.EnvironmentID == "" {
		return "master"
	}
	return c.EnvironmentID
}

// Article is a formatted document ready to publish.
type Article struct {
	Title string
	HTML  string
	Tags  []string
}

// Asset is a binary file such as an inlined image.
type Asset struct {
	FileName    string
	ContentType string
	Title       string
	Description string
	Data        []byte
}

// Publisher creates entries and assets in a CMS.
type Publisher interface {
	// CreateArticle converts a.HTML to the CMS rich-text format and creates an
	// entry. It returns the entry ID.
	CreateArticle(ctx context.Context, a Article) (string, error)
	// UploadAsset uploads and processes an asset, returning its ID.
	UploadAsset(ctx context.Context, asset Asset) (string, error)
}

// Unimplemented satisfies Publisher and fails every call.
type Unimplemented struct {
	Config Config
}

func (Unimplemented) CreateArticle(context.Context, Article) (string, error) {
	return "", ErrNotImplemented
}

func (Unimplemented) UploadAsset(context.Context, Asset) (string, error) {
	return "", ErrNotImplemented
}
