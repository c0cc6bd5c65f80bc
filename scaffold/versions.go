package scaffold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
)

type (
	// Dependency is one entry of the configured dependency set, possibly
	// pinned to the latest version published on PyPI.
	Dependency struct {
		Name    string
		Version SemVer
	}

	SemVer struct {
		major  string
		minor  string
		bugfix string
		set    bool
	}
)

var (
	pypiURLPrefix = "https://pypi.org/pypi"

	semVerRegex = regexp.MustCompile(`^(\d+)\.(\d+)(\..+)?$`)
)

// Specifier renders the pip requirement specifier, unpinned when the
// version lookup never succeeded.
func (d Dependency) Specifier() string {
	if !d.Version.Set() {
		return d.Name
	}

	return d.Name + "==" + d.Version.String()
}

func (sv *SemVer) String() string {
	return fmt.Sprintf("%s.%s.%s", sv.major, sv.minor, sv.bugfix)
}

func (sv *SemVer) UnmarshalText(text []byte) error {
	if strings.EqualFold(string(text), "LATEST") {
		return nil
	}

	m := semVerRegex.FindStringSubmatch(string(text))
	if len(m) == 0 {
		return fmt.Errorf(`%s is not of the %s format`, string(text), semVerRegex)
	}

	sv.major = m[1]
	sv.minor = m[2]
	sv.bugfix = "0"

	if m[3] != "" {
		sv.bugfix = strings.TrimPrefix(m[3], ".")
	}

	sv.set = true

	return nil
}

func (sv *SemVer) SetFromString(raw string) error {
	raw = strings.TrimPrefix(raw, "v")

	return sv.UnmarshalText([]byte(raw))
}

func (sv *SemVer) Set() bool {
	return sv.set
}

// PyPIPackageLatestVersion asks the public PyPI JSON API for the newest
// release of a package.
func PyPIPackageLatestVersion(ctx context.Context, name string) (version string, err error) {
	url := fmt.Sprintf("%s/%s/json", pypiURLPrefix, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to prepare GET request to endpoint %s: %w", url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to GET from endpoint %q: %w", url, err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if rc := resp.StatusCode; rc != 200 {
		return "", fmt.Errorf("failed to GET from endpoint %q, status code %d", url, rc)
	}

	var payload struct {
		Info struct {
			Version string `json:"version"`
		} `json:"info"`
	}

	err = json.NewDecoder(resp.Body).Decode(&payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode PyPI response for %q: %w", name, err)
	}

	if payload.Info.Version == "" {
		return "", fmt.Errorf("PyPI response for %q has no version", name)
	}

	return payload.Info.Version, nil
}

// PinVersions resolves the latest PyPI version of every unpinned
// dependency concurrently. Lookup failures leave the dependency unpinned;
// the joined error is advisory.
func PinVersions(ctx context.Context, deps []Dependency) error {
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, 5)
	errs := make([]error, len(deps))

	for i := range deps {
		if deps[i].Version.Set() {
			continue
		}

		wg.Add(1)

		go func() {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			raw, err := PyPIPackageLatestVersion(ctx, deps[i].Name)
			if err != nil {
				errs[i] = fmt.Errorf("failed to fetch the latest version of %s from PyPI: %w", deps[i].Name, err)

				return
			}

			err = deps[i].Version.SetFromString(raw)
			if err != nil {
				errs[i] = fmt.Errorf("failed to parse %q as a semantic version specifier: %s", raw, err.Error())
			}
		}()
	}

	wg.Wait()

	return errors.Join(errs...)
}
