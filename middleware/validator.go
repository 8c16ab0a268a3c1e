package middleware

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/dzonerzy/go-optparse/optparse"
)

// ValidatorFunc checks the value handed to a callback. The value is a
// string, a []string or true for options that take no value.
type ValidatorFunc func(value any) error

// Validator runs the validators in order before the callback. The first
// failure is returned as an *optparse.ValueError so the parser reports it
// as a rejected value; the callback does not run.
func Validator(validators ...ValidatorFunc) Middleware {
	return func(next optparse.CallbackFunc) optparse.CallbackFunc {
		return func(c *optparse.CallbackContext) error {
			var value any
			if c != nil {
				value = c.Value
			}
			for _, validate := range validators {
				if validate == nil {
					continue
				}
				if err := validate(value); err != nil {
					return asValueError(err)
				}
			}
			return next(c)
		}
	}
}

func asValueError(err error) *optparse.ValueError {
	var verr *optparse.ValueError
	if errors.As(err, &verr) {
		return verr
	}
	return &optparse.ValueError{Reason: err.Error()}
}

// eachString applies fn to every string carried by value. The zero-arity
// marker carries none.
func eachString(value any, fn func(string) error) error {
	switch v := value.(type) {
	case string:
		return fn(v)
	case []string:
		for _, s := range v {
			if err := fn(s); err != nil {
				return err
			}
		}
	}
	return nil
}

// OneOf accepts only the listed choices.
func OneOf(choices ...string) ValidatorFunc {
	quoted := make([]string, len(choices))
	for i, c := range choices {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	list := strings.Join(quoted, ", ")
	return func(value any) error {
		return eachString(value, func(s string) error {
			if slices.Contains(choices, s) {
				return nil
			}
			return optparse.NewValueError("invalid choice: %q (choose from %s)", s, list)
		})
	}
}

// Regex accepts values fully matching pattern. It panics if pattern does not
// compile, like regexp.MustCompile.
func Regex(pattern string) ValidatorFunc {
	re := regexp.MustCompile(`^(?:` + pattern + `)$`)
	return func(value any) error {
		return eachString(value, func(s string) error {
			if re.MatchString(s) {
				return nil
			}
			return optparse.NewValueError("%q does not match %s", s, pattern)
		})
	}
}

// NotEmpty rejects empty strings.
func NotEmpty() ValidatorFunc {
	return func(value any) error {
		return eachString(value, func(s string) error {
			if s == "" {
				return optparse.NewValueError("value must not be empty")
			}
			return nil
		})
	}
}

// FileExists requires each value to name a regular file on fs.
func FileExists(fs afero.Fs) ValidatorFunc {
	return pathCheck(fs, false)
}

// DirExists requires each value to name a directory on fs.
func DirExists(fs afero.Fs) ValidatorFunc {
	return pathCheck(fs, true)
}

func pathCheck(fs afero.Fs, wantDir bool) ValidatorFunc {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return func(value any) error {
		return eachString(value, func(path string) error {
			info, err := fs.Stat(path)
			if err != nil {
				return optparse.NewValueError("cannot access %s: %v", path, err)
			}
			switch {
			case wantDir && !info.IsDir():
				return optparse.NewValueError("%s is not a directory", path)
			case !wantDir && info.IsDir():
				return optparse.NewValueError("%s is a directory", path)
			}
			return nil
		})
	}
}
