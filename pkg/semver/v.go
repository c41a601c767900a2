package semver

import (
	"fmt"
	"strconv"
	"strings"
)

type (
	// V is structured semantic version representation
	V struct {
		Major, Minor, Patch uint
		PreRelease          string
		BuildMetadata       []string
	}
)

// Parse - reads version from string like "1.2.3-beta+x64". Leading "v" is allowed.
func Parse(s string) (V, error) {
	v := V{}
	rest := strings.TrimPrefix(strings.TrimSpace(s), "v")
	if rest == "" {
		return v, fmt.Errorf("semver.Parse: empty version %q", s)
	}
	if i := strings.IndexByte(rest, '+'); i > -1 {
		meta := rest[i+1:]
		rest = rest[:i]
		if meta == "" {
			return v, fmt.Errorf("semver.Parse: empty build metadata in %q", s)
		}
		v.BuildMetadata = strings.Split(meta, ".")
	}
	if i := strings.IndexByte(rest, '-'); i > -1 {
		v.PreRelease = rest[i+1:]
		rest = rest[:i]
		if v.PreRelease == "" {
			return v, fmt.Errorf("semver.Parse: empty pre-release in %q", s)
		}
	}
	core := strings.Split(rest, ".")
	if len(core) != 3 {
		return v, fmt.Errorf("semver.Parse: expected MAJOR.MINOR.PATCH, got %q", s)
	}
	nums := [3]uint{}
	for i, c := range core {
		n, err := strconv.ParseUint(c, 10, 64)
		if err != nil {
			return v, fmt.Errorf("semver.Parse: invalid number %q in %q", c, s)
		}
		nums[i] = uint(n)
	}
	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	return v, nil
}

func (v V) String() string {
	buf := strings.Builder{}
	buf.WriteString(strconv.FormatUint(uint64(v.Major), 10))
	buf.WriteByte('.')
	buf.WriteString(strconv.FormatUint(uint64(v.Minor), 10))
	buf.WriteByte('.')
	buf.WriteString(strconv.FormatUint(uint64(v.Patch), 10))
	if v.PreRelease != "" {
		buf.WriteByte('-')
		buf.WriteString(v.PreRelease)
	}
	if len(v.BuildMetadata) > 0 {
		buf.WriteByte('+')
		buf.WriteString(strings.Join(v.BuildMetadata, "."))
	}

	return buf.String()
}
