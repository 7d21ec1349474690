package parse

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"repo-link/errors"
	"repo-link/model"
)

var (
	// /user/repo/blob/commit/path - single file URL
	blobRegex = regexp.MustCompile(`^/([^/]+)/([^/]+)/blob/([^/]+)/(.+)$`)
	// L74, L74-L80, L74C5 or L74C5-L80C12; columns are dropped
	lineAnchorRegex = regexp.MustCompile(`^L([0-9]+)(?:C[0-9]+)?(?:-L[0-9]+(?:C[0-9]+)?)?$`)
	lineLikeRegex   = regexp.MustCompile(`^L(?:[0-9]|C[0-9])`)
)

const expectedFormat = "https://<host>/<user>/<repository>/blob/<commit>/<path>[#L<line>]"

// ParseLink validates that the link is a blob URL and extracts the repository,
// commit, path and line it refers to. The commit is taken to be the first
// segment after "blob"; see model.Link.Splits for the alternatives.
func ParseLink(link string) (model.Link, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return model.Link{}, malformed(link, err.Error())
	}

	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "http" && scheme != "https" {
		return model.Link{}, malformed(link, "scheme must be http or https")
	}
	if parsedURL.Host == "" {
		return model.Link{}, malformed(link, "missing host")
	}

	match := blobRegex.FindStringSubmatch(parsedURL.EscapedPath())
	if len(match) != 5 {
		return model.Link{}, malformed(link, "")
	}

	parts := make([]string, 4)
	for i, raw := range match[1:] {
		decoded, err := url.PathUnescape(raw)
		if err != nil {
			return model.Link{}, malformed(link, err.Error())
		}
		parts[i] = decoded
	}
	user, repository, commit, filePath := parts[0], parts[1], parts[2], strings.TrimSuffix(parts[3], "/")

	if !isSafeName(user) || !isSafeName(repository) {
		return model.Link{}, malformed(link, "user and repository must be plain directory names")
	}
	if filePath == "" || hasDotSegment(filePath) {
		return model.Link{}, malformed(link, "path must stay inside the repository")
	}

	line, err := parseLineAnchor(parsedURL.Fragment)
	if err != nil {
		return model.Link{}, malformed(link, err.Error())
	}

	return model.Link{
		HostBase:   scheme + "://" + strings.ToLower(parsedURL.Host),
		User:       user,
		Repository: repository,
		Commit:     commit,
		Path:       filePath,
		Line:       line,
	}, nil
}

// parseLineAnchor returns 0 for fragments that are not line anchors.
func parseLineAnchor(fragment string) (int, error) {
	if !lineLikeRegex.MatchString(fragment) {
		return 0, nil
	}
	match := lineAnchorRegex.FindStringSubmatch(fragment)
	if match == nil {
		return 0, errors.Newf(errors.ErrMalformedLink, "bad line anchor #%s", fragment)
	}
	line, err := strconv.Atoi(match[1])
	if err != nil || line < 1 {
		return 0, errors.Newf(errors.ErrMalformedLink, "line must be a positive number, got #%s", fragment)
	}
	return line, nil
}

func isSafeName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func hasDotSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return true
		}
	}
	return false
}

func malformed(link, reason string) error {
	msg := "invalid blob link: " + link
	if reason != "" {
		msg += " (" + reason + ")"
	}
	return errors.New(errors.ErrMalformedLink, msg+"\nExpected: "+expectedFormat)
}
