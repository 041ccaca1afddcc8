package assets

import "errors"

// AssetResolver searches a chain of loaders: the custom directory when one
// is configured, then the embedded assets. Only not-found errors move the
// search along; invalid names and read failures stop it.
type AssetResolver struct {
	chain  []AssetLoader
	custom bool
}

// NewAssetResolver builds a resolver over customBasePath and the embedded
// assets. An empty path means embedded only; a path that is not a readable
// directory is an error.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.chain = append(r.chain, fsLoader)
		r.custom = true
	}
	r.chain = append(r.chain, NewEmbeddedLoader())
	return r, nil
}

// LoadStyle returns the first style named name along the chain.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate returns the first template named name along the chain.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.chain {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !isNotFoundError(err) {
			return "", err
		}
	}
	return "", err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}

// HasCustomLoader reports whether a custom directory is searched first.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom
}

var _ AssetLoader = (*AssetResolver)(nil)
