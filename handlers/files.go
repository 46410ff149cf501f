package handlers

import (
	"errors"
	"log/slog"

	"github.com/freekieb7/tinyhttp/filesystem"
	"github.com/freekieb7/tinyhttp/http"
)

type Files struct {
	FS filesystem.Filesystem
}

func (files *Files) name(req *http.Request) (string, error) {
	name, ok := req.TrimPrefix(FilesPrefix)
	if !ok || name == "" {
		return "", http.AsResponseError(http.BadRequest())
	}
	return name, nil
}

// Get serves /files/{name} from the store.
func (files *Files) Get(req *http.Request) (*http.Response, error) {
	name, err := files.name(req)
	if err != nil {
		return nil, err
	}

	content, err := files.FS.ReadFile(name)
	switch {
	case err == nil:
		return req.Respond(http.StatusOK, content, http.Headers{
			http.HeaderContentType: http.ApplicationOctetStream.String(),
		}), nil
	case errors.Is(err, filesystem.ErrFileNotFound):
		return nil, http.AsResponseError(http.NotFound())
	case errors.Is(err, filesystem.ErrInvalidPath):
		return nil, http.AsResponseError(http.BadRequest())
	default:
		slog.Error("reading file failed", "name", name, "error", err)
		return nil, http.AsResponseError(http.InternalServerError())
	}
}

// Create stores the request body under /files/{name}, replacing any previous
// content. A request without a body creates an empty file.
func (files *Files) Create(req *http.Request) (*http.Response, error) {
	name, err := files.name(req)
	if err != nil {
		return nil, err
	}

	if err := files.FS.WriteFile(name, req.Body); err != nil {
		if errors.Is(err, filesystem.ErrInvalidPath) {
			return nil, http.AsResponseError(http.BadRequest())
		}

		slog.Error("writing file failed", "name", name, "error", err)
		return nil, http.AsResponseError(http.InternalServerError())
	}

	return http.NewResponse(http.StatusCreated, nil, textHeaders()), nil
}
