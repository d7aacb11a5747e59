package lsp

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// jarFileContentsParams mirrors the TextDocumentIdentifier parameter shape
// of smithy/jarFileContents (spec §6): a single URI naming a smithyjar:
// entry.
type jarFileContentsParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
}

// jarFileContents reads the text of a file referenced by a smithyjar: URI
// directly from the jar (a zip archive) on demand; dependency jars are
// read-only and never tracked as ProjectFiles, so there is nothing to
// cache here beyond what the OS file cache already does.
func (e *Endpoint) jarFileContents(_ context.Context, rawParams interface{}) (interface{}, error) {
	params, err := decodeParams[jarFileContentsParams](rawParams)
	if err != nil {
		return nil, err
	}

	jarPath, entryPath, ok := SplitJarURI(params.TextDocument.URI)
	if !ok {
		return nil, fmt.Errorf("not a smithyjar: uri: %s", params.TextDocument.URI)
	}

	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return nil, fmt.Errorf("opening jar %s: %w", jarPath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	}
	return nil, errors.New("jar entry not found: " + entryPath)
}

func decodeParams[T any](raw interface{}) (T, error) {
	var out T
	data, err := json.Marshal(raw)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(data, &out)
	return out, err
}
