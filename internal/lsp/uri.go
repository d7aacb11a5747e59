package lsp

import (
	"net/url"
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// smithyjarScheme is the custom URI scheme used for files that live inside
// a dependency jar rather than on the editable filesystem (spec §6).
const smithyjarScheme = "smithyjar:"

// FilePathToURI converts a filesystem path to a protocol.URI, normalized
// the same way VS Code's client-side URI handling normalizes them so that
// server- and client-issued URIs for the same file compare equal.
func FilePathToURI(path string) protocol.URI {
	return normalizeURI(uri.File(path))
}

// URIToFilePath converts a file: URI back to a filesystem path. Non-file
// URIs (smithyjar:) are returned as-is; callers should check IsJarURI
// first.
func URIToFilePath(u string) string {
	if IsJarURI(u) {
		return u
	}
	return uri.New(u).Filename()
}

// IsJarURI reports whether u names a file inside a dependency jar.
func IsJarURI(u string) bool {
	return strings.HasPrefix(u, smithyjarScheme)
}

// SplitJarURI splits a smithyjar: URI into the absolute jar path and the
// entry path within it, per the "smithyjar:<jar-path>!/<entry-path>"
// format in spec §6. ok is false if u isn't a well-formed jar URI.
func SplitJarURI(u string) (jarPath, entryPath string, ok bool) {
	if !IsJarURI(u) {
		return "", "", false
	}
	rest := strings.TrimPrefix(u, smithyjarScheme)
	jarPath, entryPath, found := strings.Cut(rest, "!/")
	if !found {
		return "", "", false
	}
	return jarPath, entryPath, true
}

// normalizeURI matches VS Code's microsoft/vscode-uri behavior: net/url
// permits '@' and ':' unencoded in path segments (valid RFC 3986 pchar),
// but vscode-uri always percent-encodes them, and lowercases Windows drive
// letters. Without this, go-to-definition can silently fail to match a
// client-issued URI against a server-issued one.
func normalizeURI(u protocol.URI) protocol.URI {
	str := string(u)

	after, found := strings.CutPrefix(str, "file:///")
	if !found {
		return protocol.URI(strings.ReplaceAll(str, "@", "%40"))
	}

	segments := strings.Split(after, "/")
	for i, segment := range segments {
		decoded, err := url.PathUnescape(segment)
		if err != nil {
			decoded = segment
		}
		encoded := url.PathEscape(decoded)
		encoded = strings.ReplaceAll(encoded, "@", "%40")
		encoded = strings.ReplaceAll(encoded, ":", "%3A")
		segments[i] = encoded
	}

	if len(segments[0]) == 4 &&
		segments[0][0] >= 'A' && segments[0][0] <= 'Z' &&
		segments[0][1:] == "%3A" {
		segments[0] = string(segments[0][0]+32) + "%3A"
	}

	return protocol.URI("file:///" + strings.Join(segments, "/"))
}
