package addon

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel categories. Every error kind below matches exactly one of these
// through errors.Is.
var (
	ErrFormat              = errors.New("not an add-on descriptor")
	ErrUnknownField        = errors.New("unknown descriptor field")
	ErrType                = errors.New("wrong field type")
	ErrSchema              = errors.New("descriptor failed validation")
	ErrMissingDescriptor   = errors.New("descriptor missing")
	ErrAmbiguousDescriptor = errors.New("more than one descriptor")
	ErrDuplicate           = errors.New("duplicate add-on id")
	ErrArchive             = errors.New("archiving failed")
	ErrIO                  = errors.New("i/o failure")
)

// FormatError reports a descriptor whose top-level form is not a
// supertux-addoninfo list, or whose entries are not (key value) pairs.
type FormatError struct {
	Head   string // head of the top-level expression, when that is the problem
	Detail string // description of a malformed entry
	Err    error  // underlying syntax error, if any
}

func (e *FormatError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("malformed descriptor: %v", e.Err)
	case e.Detail != "":
		return fmt.Sprintf("malformed descriptor: %s", e.Detail)
	default:
		return fmt.Sprintf("not a %s: %s", InfoTag, e.Head)
	}
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// UnknownFieldError reports a descriptor key outside the recognized set.
type UnknownFieldError struct {
	Key string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Key)
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrUnknownField }

// TypeError reports a field whose value has the wrong type, such as a
// non-numeric version.
type TypeError struct {
	Field string
	Want  string
	Got   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("field %q: expected %s, got %s", e.Field, e.Want, e.Got)
}

func (e *TypeError) Is(target error) bool { return target == ErrType }

// SchemaError lists every schema violation found in a descriptor.
type SchemaError struct {
	Issues []ValidationIssue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return "invalid descriptor: " + strings.Join(parts, "; ")
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// MissingDescriptorError reports an add-on directory without a descriptor.
type MissingDescriptorError struct {
	Dir string
}

func (e *MissingDescriptorError) Error() string {
	return fmt.Sprintf("%s file missing from %s", DescriptorExt, e.Dir)
}

func (e *MissingDescriptorError) Is(target error) bool { return target == ErrMissingDescriptor }

// AmbiguousDescriptorError reports an add-on directory with several
// descriptor candidates.
type AmbiguousDescriptorError struct {
	Dir     string
	Matches []string
}

func (e *AmbiguousDescriptorError) Error() string {
	return fmt.Sprintf("too many %s files in %s: %s", DescriptorExt, e.Dir, strings.Join(e.Matches, ", "))
}

func (e *AmbiguousDescriptorError) Is(target error) bool { return target == ErrAmbiguousDescriptor }

// DuplicateError reports an add-on id already emitted earlier in the same
// run. Building it would overwrite the earlier archive.
type DuplicateError struct {
	ID       string
	FirstDir string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("add-on id %q already built from %s", e.ID, e.FirstDir)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// ArchiveError reports a failure to produce an add-on archive.
type ArchiveError struct {
	Path   string
	Output string // combined output of an external archiver, if any
	Err    error
}

func (e *ArchiveError) Error() string {
	msg := fmt.Sprintf("archiving %s: %v", e.Path, e.Err)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *ArchiveError) Unwrap() error { return e.Err }

func (e *ArchiveError) Is(target error) bool { return target == ErrArchive }

// IOError reports a filesystem failure while reading or writing.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// Kind returns a short stable name for the category of err, for reports.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrUnknownField):
		return "unknown-field"
	case errors.Is(err, ErrType):
		return "type"
	case errors.Is(err, ErrSchema):
		return "schema"
	case errors.Is(err, ErrMissingDescriptor):
		return "missing-descriptor"
	case errors.Is(err, ErrAmbiguousDescriptor):
		return "ambiguous-descriptor"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrArchive):
		return "archive"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "other"
	}
}
